package models

// ChannelConfig defines the ramp behaviour of one actuator channel: how far
// the setpoint moves per control frame while a key is held, the clamp bounds,
// and whether the channel decays back to its resting value when released.
type ChannelConfig struct {
	Channel     ActuatorChannel
	Step        float64
	Min         float64
	Max         float64
	DecayStep   float64 // applied at twice this magnitude per frame
	Resting     float64
	Decays      bool
	Initial     float64
	Unit        string
	Description string
}

// Predefined ramp calibration for the IPEx rover. The calibration editor
// can override steps and bounds per channel.
var ChannelConfigs = []ChannelConfig{
	{
		Channel:     LinearSpeed,
		Step:        0.01,
		Min:         -0.5,
		Max:         0.5,
		DecayStep:   0.01,
		Resting:     0,
		Decays:      true,
		Initial:     0,
		Unit:        "m/s",
		Description: "Rover forward/backward speed, decays to rest when released",
	},
	{
		Channel:     AngularSpeed,
		Step:        0.01,
		Min:         -0.5,
		Max:         0.5,
		DecayStep:   0.01,
		Resting:     0,
		Decays:      true,
		Initial:     0,
		Unit:        "rad/s",
		Description: "Rover yaw rate, decays to rest when released",
	},
	{
		Channel:     FrontDrumSpeed,
		Step:        0.017,
		Min:         -0.17,
		Max:         0.17,
		Initial:     0,
		Unit:        "rad/s",
		Description: "Front excavation drum, holds last value",
	},
	{
		Channel:     FrontArmAngle,
		Step:        0.017,
		Min:         -2.36,
		Max:         2.36,
		Initial:     0.79,
		Unit:        "rad",
		Description: "Front arm joint angle, holds last value",
	},
	{
		Channel:     BackArmAngle,
		Step:        0.017,
		Min:         -2.36,
		Max:         2.36,
		Initial:     0.79,
		Unit:        "rad",
		Description: "Back arm joint angle, holds last value",
	},
	{
		Channel:     BackDrumSpeed,
		Step:        0.017,
		Min:         -0.17,
		Max:         0.17,
		Initial:     0,
		Unit:        "rad/s",
		Description: "Back excavation drum, holds last value",
	},
}

// ConfigFor returns the predefined calibration for a channel.
func ConfigFor(ch ActuatorChannel) (ChannelConfig, bool) {
	for _, cfg := range ChannelConfigs {
		if cfg.Channel == ch {
			return cfg, true
		}
	}
	return ChannelConfig{}, false
}

// DefaultLightStep is the percentage change applied per light toggle event.
const DefaultLightStep = 10.0

// SensorConfig is the per-position sensor setup handed to the simulator when
// an agent mission starts. Resolution is clipped server-side at 2448x2048.
type SensorConfig struct {
	CameraActive   bool    `json:"camera_active"`
	LightIntensity float64 `json:"light_intensity"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	UseSemantic    bool    `json:"use_semantic"`
}

// DefaultSensorConfigs enables the three forward cameras at full resolution
// with lights on, everything else dark and inactive.
func DefaultSensorConfigs() map[SensorPosition]SensorConfig {
	configs := make(map[SensorPosition]SensorConfig, len(SensorPositions))
	for _, pos := range SensorPositions {
		cfg := SensorConfig{Width: 2448, Height: 2048}
		switch pos {
		case Front, FrontLeft, FrontRight:
			cfg.CameraActive = true
			cfg.LightIntensity = 1.0
		}
		configs[pos] = cfg
	}
	return configs
}
