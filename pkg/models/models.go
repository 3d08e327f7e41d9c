package models

import "fmt"

// SensorPosition identifies one of the eight fixed camera/light mounts on the
// rover chassis, plus the All wildcard accepted by some simulator commands.
type SensorPosition int

const (
	Front SensorPosition = iota
	FrontLeft
	FrontRight
	Left
	Right
	BackLeft
	BackRight
	Back
	All
)

// SensorPositions lists the eight physical mounts in the order the camera
// view cycles through them.
var SensorPositions = []SensorPosition{
	Front, FrontLeft, FrontRight, Left, Right, BackLeft, BackRight, Back,
}

func (p SensorPosition) String() string {
	switch p {
	case Front:
		return "Front"
	case FrontLeft:
		return "FrontLeft"
	case FrontRight:
		return "FrontRight"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case BackLeft:
		return "BackLeft"
	case BackRight:
		return "BackRight"
	case Back:
		return "Back"
	case All:
		return "All"
	}
	return fmt.Sprintf("SensorPosition(%d)", int(p))
}

// Topic returns the position's segment in simulator topic names.
func (p SensorPosition) Topic() string {
	switch p {
	case Front:
		return "front"
	case FrontLeft:
		return "front_left"
	case FrontRight:
		return "front_right"
	case Left:
		return "left"
	case Right:
		return "right"
	case BackLeft:
		return "back_left"
	case BackRight:
		return "back_right"
	case Back:
		return "back"
	case All:
		return "all"
	}
	return "unknown"
}

// ParseSensorPosition resolves a topic segment back to a position.
func ParseSensorPosition(s string) (SensorPosition, error) {
	for _, p := range SensorPositions {
		if p.Topic() == s {
			return p, nil
		}
	}
	if s == "all" {
		return All, nil
	}
	return 0, fmt.Errorf("unknown sensor position %q", s)
}

// ActuatorChannel identifies one of the six continuously ramped setpoints.
type ActuatorChannel int

const (
	LinearSpeed ActuatorChannel = iota
	AngularSpeed
	FrontDrumSpeed
	FrontArmAngle
	BackArmAngle
	BackDrumSpeed
)

// ActuatorChannels lists all channels in command order.
var ActuatorChannels = []ActuatorChannel{
	LinearSpeed, AngularSpeed, FrontDrumSpeed, FrontArmAngle, BackArmAngle, BackDrumSpeed,
}

func (c ActuatorChannel) String() string {
	switch c {
	case LinearSpeed:
		return "Linear speed"
	case AngularSpeed:
		return "Angular speed"
	case FrontDrumSpeed:
		return "Front drum speed"
	case FrontArmAngle:
		return "Front arm angle"
	case BackArmAngle:
		return "Back arm angle"
	case BackDrumSpeed:
		return "Back drum speed"
	}
	return fmt.Sprintf("ActuatorChannel(%d)", int(c))
}

// Setpoints is the per-frame snapshot of all six channel values. It is
// emitted by value so callers cannot mutate controller state through it.
type Setpoints struct {
	LinearSpeed    float64 `json:"linear_speed"`
	AngularSpeed   float64 `json:"angular_speed"`
	FrontDrumSpeed float64 `json:"front_drum_speed"`
	FrontArmAngle  float64 `json:"front_arm_angle"`
	BackArmAngle   float64 `json:"back_arm_angle"`
	BackDrumSpeed  float64 `json:"back_drum_speed"`
}

// Value returns the snapshot value for a single channel.
func (s Setpoints) Value(c ActuatorChannel) float64 {
	switch c {
	case LinearSpeed:
		return s.LinearSpeed
	case AngularSpeed:
		return s.AngularSpeed
	case FrontDrumSpeed:
		return s.FrontDrumSpeed
	case FrontArmAngle:
		return s.FrontArmAngle
	case BackArmAngle:
		return s.BackArmAngle
	case BackDrumSpeed:
		return s.BackDrumSpeed
	}
	return 0
}

// Velocity builds the composite command the simulator expects every frame.
func (s Setpoints) Velocity() VelocityControl {
	return VelocityControl{Linear: s.LinearSpeed, Angular: s.AngularSpeed}
}

// VelocityControl is the composite linear/angular command object. The
// simulator must receive one per control step even when unchanged.
type VelocityControl struct {
	Linear  float64 `json:"linear"`
	Angular float64 `json:"angular"`
}

// RadiatorCoverState models the rover's radiator cover actuator.
type RadiatorCoverState int

const (
	RadiatorCoverClosed RadiatorCoverState = iota
	RadiatorCoverOpen
)

func (s RadiatorCoverState) String() string {
	if s == RadiatorCoverOpen {
		return "open"
	}
	return "closed"
}

// Telemetry is the state snapshot pushed by the simulator on every server
// tick.
type Telemetry struct {
	Frame         uint64  `json:"frame"`
	SimTime       float64 `json:"sim_time"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Yaw           float64 `json:"yaw"`
	CurrentPower  float64 `json:"current_power"`
	ConsumedPower float64 `json:"consumed_power"`
	MapName       string  `json:"map_name"`
}

// CameraFrame is one grayscale image delivered by a camera sensor. Pixels is
// row-major, one byte per pixel.
type CameraFrame struct {
	Position SensorPosition
	Frame    uint64
	Width    int
	Height   int
	Pixels   []byte
}

// SessionRecord is one control-frame record in a session log: frame counter,
// simulation time, the six setpoints in command order, and remaining power.
type SessionRecord struct {
	Frame     uint64
	SimTime   float64
	Setpoints Setpoints
	Power     float64
}
