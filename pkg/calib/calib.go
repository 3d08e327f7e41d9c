// Package calib loads, edits and persists ramp calibration overrides for
// the manual control client.
package calib

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// ChannelOverride adjusts one channel's ramp behaviour. Zero fields leave
// the built-in value untouched, so a calibration file only needs to name
// what it changes.
type ChannelOverride struct {
	Step    float64 `json:"step,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Initial float64 `json:"initial,omitempty"`
}

// Calibration is the on-disk override file. Channel keys are the snake_case
// channel names used by the CSV exporter.
type Calibration struct {
	Channels  map[string]ChannelOverride `json:"channels,omitempty"`
	LightStep float64                    `json:"light_step,omitempty"`
}

// Load reads a calibration file. A missing file is not an error; it loads
// as an empty calibration.
func Load(path string) (Calibration, error) {
	var cal Calibration
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cal, nil
	}
	if err != nil {
		return cal, err
	}
	if err := json.Unmarshal(data, &cal); err != nil {
		return cal, fmt.Errorf("failed to parse calibration file: %w", err)
	}
	for name := range cal.Channels {
		if _, ok := channelByName(name); !ok {
			return cal, fmt.Errorf("calibration file names unknown channel %q", name)
		}
	}
	return cal, nil
}

// Save writes the calibration as indented JSON.
func Save(path string, cal Calibration) error {
	data, err := json.MarshalIndent(cal, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// CreateBackup copies an existing calibration file to a timestamped name
// before it is overwritten.
func CreateBackup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	backupName := path + ".backup_" + timestamp
	if err := os.WriteFile(backupName, data, 0644); err != nil {
		return "", err
	}
	return backupName, nil
}

// Apply merges the overrides over the built-in channel table and returns
// the effective configs plus the light step to use.
func (c Calibration) Apply() ([]models.ChannelConfig, float64) {
	configs := make([]models.ChannelConfig, len(models.ChannelConfigs))
	copy(configs, models.ChannelConfigs)

	for i := range configs {
		ov, ok := c.Channels[ChannelName(configs[i].Channel)]
		if !ok {
			continue
		}
		if ov.Step > 0 {
			configs[i].Step = ov.Step
			if configs[i].Decays {
				configs[i].DecayStep = ov.Step
			}
		}
		if ov.Max > 0 {
			configs[i].Max = ov.Max
			configs[i].Min = -ov.Max
		}
		if ov.Initial != 0 {
			configs[i].Initial = ov.Initial
		}
	}

	lightStep := c.LightStep
	if lightStep <= 0 {
		lightStep = models.DefaultLightStep
	}
	return configs, lightStep
}

// Presets bundles named calibrations for common driving styles.
var Presets = map[string]Calibration{
	"gentle": {
		Channels: map[string]ChannelOverride{
			ChannelName(models.LinearSpeed):  {Step: 0.005, Max: 0.3},
			ChannelName(models.AngularSpeed): {Step: 0.005, Max: 0.3},
		},
		LightStep: 5,
	},
	"aggressive": {
		Channels: map[string]ChannelOverride{
			ChannelName(models.LinearSpeed):  {Step: 0.02},
			ChannelName(models.AngularSpeed): {Step: 0.02},
		},
		LightStep: 20,
	},
}

// ChannelName returns the stable snake_case identifier for a channel.
func ChannelName(ch models.ActuatorChannel) string {
	switch ch {
	case models.LinearSpeed:
		return "linear_speed"
	case models.AngularSpeed:
		return "angular_speed"
	case models.FrontDrumSpeed:
		return "front_drum_speed"
	case models.FrontArmAngle:
		return "front_arm_angle"
	case models.BackArmAngle:
		return "back_arm_angle"
	case models.BackDrumSpeed:
		return "back_drum_speed"
	}
	return "unknown"
}

func channelByName(name string) (models.ActuatorChannel, bool) {
	for _, ch := range models.ActuatorChannels {
		if ChannelName(ch) == name {
			return ch, true
		}
	}
	return 0, false
}
