package replay

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// Inspect loads a session log and prints a per-channel summary table.
func Inspect(path string) {
	spinner, _ := pterm.DefaultSpinner.Start("Loading session log...")

	records, err := ReadSession(path)
	if err != nil {
		spinner.Fail("Error reading session log")
		pterm.Error.Printf("Error: %v\n", err)
		return
	}
	if len(records) == 0 {
		spinner.Fail("Session log is empty")
		return
	}

	first, last := records[0], records[len(records)-1]
	spinner.Success(fmt.Sprintf("Session loaded: %d frames", len(records)))

	pterm.Println()
	pterm.DefaultSection.Println("Session Summary")
	pterm.Info.Printf("Sim time: %.2fs - %.2fs (%.2fs total)\n",
		first.SimTime, last.SimTime, last.SimTime-first.SimTime)
	pterm.Info.Printf("Power: %.1f Wh -> %.1f Wh (%.1f Wh consumed)\n",
		first.Power, last.Power, first.Power-last.Power)

	pterm.Println()
	pterm.DefaultSection.Println("Actuator Channels")
	displayStats(SessionStats(records))
}

func displayStats(stats []ChannelStats) {
	tableData := pterm.TableData{
		{"Channel", "Min", "Max", "Mean", "Variance"},
	}

	for _, s := range stats {
		tableData = append(tableData, []string{
			s.Channel.String(),
			fmt.Sprintf("%.3f", s.Min),
			fmt.Sprintf("%.3f", s.Max),
			fmt.Sprintf("%.3f", s.Mean),
			fmt.Sprintf("%.4f", s.Variance),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// Timeline renders a coarse activity strip per channel: one glyph per
// bucket of frames, darker meaning a larger absolute setpoint.
func Timeline(records []models.SessionRecord, width int) string {
	if len(records) == 0 || width <= 0 {
		return ""
	}

	out := ""
	for _, ch := range models.ActuatorChannels {
		cfg, _ := models.ConfigFor(ch)
		out += fmt.Sprintf("%-18s |", ch.String())
		for b := 0; b < width; b++ {
			lo := b * len(records) / width
			hi := (b + 1) * len(records) / width
			if hi == lo {
				hi = lo + 1
			}
			peak := 0.0
			for _, rec := range records[lo:hi] {
				v := rec.Setpoints.Value(ch)
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
			out += activityGlyph(peak, cfg.Max)
		}
		out += "|\n"
	}
	return out
}

func activityGlyph(peak, max float64) string {
	if max <= 0 || peak == 0 {
		return "·"
	}
	switch normalized := peak / max; {
	case normalized > 0.75:
		return "█"
	case normalized > 0.5:
		return "▓"
	case normalized > 0.25:
		return "▒"
	default:
		return "░"
	}
}
