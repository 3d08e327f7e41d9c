package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
	if cfg.TopicPrefix != "lac" {
		t.Errorf("TopicPrefix = %q", cfg.TopicPrefix)
	}
	if cfg.ControlRate != 60 || cfg.StepRate != 20 {
		t.Errorf("rates = %d/%d", cfg.ControlRate, cfg.StepRate)
	}
	if cfg.CameraWidth != 2448 || cfg.CameraHeight != 2048 {
		t.Errorf("camera = %dx%d", cfg.CameraWidth, cfg.CameraHeight)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MQTT_BROKER", "tcp://rover:1883")
	t.Setenv("WORLD_PRESET", "3")
	t.Setenv("WORLD_RANDOMIZE", "true")
	t.Setenv("WEB_PORT", "9090")

	cfg := Load()
	if cfg.MQTTBroker != "tcp://rover:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
	if cfg.Preset != 3 || !cfg.RandomizePreset {
		t.Errorf("preset = %d randomize = %v", cfg.Preset, cfg.RandomizePreset)
	}
	if cfg.WebPort != 9090 {
		t.Errorf("WebPort = %d", cfg.WebPort)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CONTROL_RATE", "fast")
	t.Setenv("WORLD_RANDOMIZE", "maybe")

	cfg := Load()
	if cfg.ControlRate != 60 {
		t.Errorf("ControlRate = %d, want default", cfg.ControlRate)
	}
	if cfg.RandomizePreset {
		t.Error("RandomizePreset should fall back to default")
	}
}
