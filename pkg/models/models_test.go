package models

import "testing"

func TestSensorPositionTopicRoundTrip(t *testing.T) {
	for _, pos := range SensorPositions {
		got, err := ParseSensorPosition(pos.Topic())
		if err != nil || got != pos {
			t.Errorf("ParseSensorPosition(%q) = %v, %v", pos.Topic(), got, err)
		}
	}
	if _, err := ParseSensorPosition("dome"); err == nil {
		t.Error("unknown position accepted")
	}
}

func TestSetpointsValueCoversAllChannels(t *testing.T) {
	sp := Setpoints{
		LinearSpeed:    0.1,
		AngularSpeed:   0.2,
		FrontDrumSpeed: 0.3,
		FrontArmAngle:  0.4,
		BackArmAngle:   0.5,
		BackDrumSpeed:  0.6,
	}

	want := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	for i, ch := range ActuatorChannels {
		if v := sp.Value(ch); v != want[i] {
			t.Errorf("Value(%v) = %v, want %v", ch, v, want[i])
		}
	}

	vel := sp.Velocity()
	if vel.Linear != 0.1 || vel.Angular != 0.2 {
		t.Errorf("Velocity() = %+v", vel)
	}
}

func TestConfigFor(t *testing.T) {
	cfg, ok := ConfigFor(FrontArmAngle)
	if !ok || cfg.Initial != 0.79 || cfg.Decays {
		t.Fatalf("ConfigFor(FrontArmAngle) = %+v, %v", cfg, ok)
	}
	if _, ok := ConfigFor(ActuatorChannel(99)); ok {
		t.Error("unknown channel accepted")
	}
}

func TestDefaultSensorConfigs(t *testing.T) {
	configs := DefaultSensorConfigs()
	if len(configs) != len(SensorPositions) {
		t.Fatalf("configs = %d positions", len(configs))
	}

	active := 0
	for _, cfg := range configs {
		if cfg.CameraActive {
			active++
			if cfg.Width != 2448 || cfg.Height != 2048 {
				t.Errorf("active camera resolution = %dx%d", cfg.Width, cfg.Height)
			}
		}
	}
	if active != 3 {
		t.Fatalf("active cameras = %d, want 3", active)
	}
}
