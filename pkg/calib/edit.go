package calib

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// InteractiveEdit walks through adjusting the ramp calibration and writes
// the result back to the calibration file. With dryRun set, nothing is
// persisted.
func InteractiveEdit(path string, dryRun bool) {
	pterm.DefaultHeader.WithFullWidth().Println("Ramp Calibration Editor")

	cal, err := Load(path)
	if err != nil {
		pterm.Error.Printf("Error: %v\n", err)
		return
	}
	if cal.Channels == nil {
		cal.Channels = make(map[string]ChannelOverride)
	}

	displayEffective(cal)

	for {
		options := []string{"Edit channel", "Apply preset", "Adjust light step", "Reset to defaults", "Save and exit", "Exit without saving"}
		selected, _ := pterm.DefaultInteractiveSelect.
			WithOptions(options).
			Show("Select an action:")

		switch selected {
		case "Edit channel":
			editChannel(&cal)
			displayEffective(cal)
		case "Apply preset":
			applyPreset(&cal)
			displayEffective(cal)
		case "Adjust light step":
			editLightStep(&cal)
		case "Reset to defaults":
			cal = Calibration{Channels: make(map[string]ChannelOverride)}
			pterm.Success.Println("Calibration reset")
		case "Save and exit":
			save(path, cal, dryRun)
			return
		case "Exit without saving":
			pterm.Info.Println("No changes saved.")
			return
		}
	}
}

func displayEffective(cal Calibration) {
	configs, lightStep := cal.Apply()

	tableData := pterm.TableData{
		{"Channel", "Step", "Max", "Initial", "Unit"},
	}
	for _, cfg := range configs {
		tableData = append(tableData, []string{
			cfg.Channel.String(),
			fmt.Sprintf("%.3f", cfg.Step),
			fmt.Sprintf("%.2f", cfg.Max),
			fmt.Sprintf("%.2f", cfg.Initial),
			cfg.Unit,
		})
	}

	pterm.Println()
	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	pterm.Info.Printf("Light step: %.0f%% per toggle\n", lightStep)
}

func editChannel(cal *Calibration) {
	names := make([]string, 0, len(models.ActuatorChannels))
	for _, ch := range models.ActuatorChannels {
		names = append(names, ch.String())
	}
	selected, _ := pterm.DefaultInteractiveSelect.
		WithOptions(names).
		Show("Select channel:")

	var channel models.ActuatorChannel
	for _, ch := range models.ActuatorChannels {
		if ch.String() == selected {
			channel = ch
		}
	}
	cfg, _ := models.ConfigFor(channel)
	key := ChannelName(channel)
	ov := cal.Channels[key]

	stepStr, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(fmt.Sprintf("%.3f", cfg.Step)).
		Show(fmt.Sprintf("Step per frame (%s)", cfg.Unit))
	maxStr, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(fmt.Sprintf("%.2f", cfg.Max)).
		Show(fmt.Sprintf("Clamp magnitude (%s)", cfg.Unit))

	step, err1 := strconv.ParseFloat(stepStr, 64)
	max, err2 := strconv.ParseFloat(maxStr, 64)
	if err1 != nil || err2 != nil || step <= 0 || max <= 0 || step > max {
		pterm.Error.Println("Invalid values, channel unchanged")
		return
	}

	ov.Step = step
	ov.Max = max
	cal.Channels[key] = ov
	pterm.Success.Printf("%s updated\n", selected)
}

func applyPreset(cal *Calibration) {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	selected, _ := pterm.DefaultInteractiveSelect.
		WithOptions(names).
		Show("Select preset:")

	preset, ok := Presets[selected]
	if !ok {
		return
	}
	for key, ov := range preset.Channels {
		cal.Channels[key] = ov
	}
	if preset.LightStep > 0 {
		cal.LightStep = preset.LightStep
	}
	pterm.Success.Printf("Preset %q applied\n", selected)
}

func editLightStep(cal *Calibration) {
	current := cal.LightStep
	if current <= 0 {
		current = models.DefaultLightStep
	}
	input, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(fmt.Sprintf("%.0f", current)).
		Show("Light step (% per toggle, 1-100)")

	step, err := strconv.ParseFloat(input, 64)
	if err != nil || step < 1 || step > 100 {
		pterm.Error.Println("Invalid light step, unchanged")
		return
	}
	cal.LightStep = step
}

func save(path string, cal Calibration, dryRun bool) {
	if dryRun {
		pterm.Warning.Println("DRY RUN - No changes made")
		return
	}

	if _, err := Load(path); err == nil {
		if backup, err := CreateBackup(path); err == nil {
			pterm.Success.Printf("Backup created: %s\n", backup)
		}
	}

	if err := Save(path, cal); err != nil {
		pterm.Error.Printf("Failed to write calibration: %v\n", err)
		return
	}
	pterm.Success.Printf("Calibration saved to %s\n", path)
}
