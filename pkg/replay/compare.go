package replay

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// CompareSessions loads two session logs and reports how the second run
// differs from the first, channel by channel.
func CompareSessions(path1, path2 string) {
	pterm.DefaultHeader.WithFullWidth().Println("Session Comparison")

	records1, err1 := ReadSession(path1)
	records2, err2 := ReadSession(path2)
	if err1 != nil || err2 != nil {
		pterm.Error.Println("Failed to read one or both session logs")
		if err1 != nil {
			pterm.Error.Printf("%s: %v\n", path1, err1)
		}
		if err2 != nil {
			pterm.Error.Printf("%s: %v\n", path2, err2)
		}
		return
	}
	if len(records1) == 0 || len(records2) == 0 {
		pterm.Error.Println("One or both sessions are empty")
		return
	}

	frames := len(records1)
	if len(records2) < frames {
		frames = len(records2)
	}
	pterm.Info.Printf("Comparing %d overlapping frames (%d vs %d recorded)\n",
		frames, len(records1), len(records2))

	for _, ch := range models.ActuatorChannels {
		pterm.Println()
		pterm.DefaultSection.Printf("Comparing: %s\n", ch.String())

		diff := make([]float64, frames)
		for i := 0; i < frames; i++ {
			diff[i] = records2[i].Setpoints.Value(ch) - records1[i].Setpoints.Value(ch)
		}
		displayComparison(ch, diff)
	}

	powerDelta := (records1[0].Power - records1[frames-1].Power) -
		(records2[0].Power - records2[frames-1].Power)
	pterm.Println()
	if powerDelta > 0 {
		pterm.Success.Printf("Second run consumed %.1f Wh less over the overlap\n", powerDelta)
	} else {
		pterm.Info.Printf("Second run consumed %.1f Wh more over the overlap\n", -powerDelta)
	}
}

func displayComparison(ch models.ActuatorChannel, diff []float64) {
	cfg, _ := models.ConfigFor(ch)

	var totalDiff, maxDiff, minDiff float64
	changedFrames := 0
	for _, d := range diff {
		if d != 0 {
			changedFrames++
			totalDiff += d
			if d > maxDiff {
				maxDiff = d
			}
			if d < minDiff {
				minDiff = d
			}
		}
	}

	if changedFrames == 0 {
		pterm.Info.Println("Identical over the overlap")
		return
	}

	avgDiff := totalDiff / float64(changedFrames)
	pterm.Info.Printf("Changed frames: %d / %d (%.1f%%)\n",
		changedFrames, len(diff),
		float64(changedFrames)/float64(len(diff))*100)
	pterm.Info.Printf("Average change: %.3f %s\n", avgDiff, cfg.Unit)
	pterm.Info.Printf("Max increase: %.3f %s\n", maxDiff, cfg.Unit)
	pterm.Info.Printf("Max decrease: %.3f %s\n", minDiff, cfg.Unit)

	pterm.Println("\nDifference Timeline (Run2 - Run1):")
	visualizeDifferences(diff)
}

func visualizeDifferences(diff []float64) {
	var result strings.Builder

	maxAbs := 0.0
	for _, d := range diff {
		abs := d
		if abs < 0 {
			abs = -abs
		}
		if abs > maxAbs {
			maxAbs = abs
		}
	}

	const width = 40
	result.WriteString(fmt.Sprintf("  Frame 0 .. %d\n  |", len(diff)-1))
	for b := 0; b < width; b++ {
		lo := b * len(diff) / width
		hi := (b + 1) * len(diff) / width
		if hi == lo {
			hi = lo + 1
		}
		// keep the largest-magnitude change in the bucket, sign and all
		bucket := 0.0
		for _, d := range diff[lo:hi] {
			abs, bucketAbs := d, bucket
			if abs < 0 {
				abs = -abs
			}
			if bucketAbs < 0 {
				bucketAbs = -bucketAbs
			}
			if abs > bucketAbs {
				bucket = d
			}
		}
		result.WriteString(getDiffSymbol(bucket, maxAbs))
	}
	result.WriteString("|\n")

	result.WriteString("\nLegend: ")
	result.WriteString(pterm.FgBlue.Sprint("▼") + " Large Decrease  ")
	result.WriteString(pterm.FgCyan.Sprint("▽") + " Small Decrease  ")
	result.WriteString(pterm.FgGray.Sprint("·") + " No Change  ")
	result.WriteString(pterm.FgYellow.Sprint("△") + " Small Increase  ")
	result.WriteString(pterm.FgRed.Sprint("▲") + " Large Increase")

	pterm.DefaultBox.Println(result.String())
}

func getDiffSymbol(val, maxAbs float64) string {
	if val == 0 || maxAbs == 0 {
		return pterm.FgGray.Sprint("·")
	}

	normalized := val / maxAbs

	if normalized < -0.5 {
		return pterm.FgBlue.Sprint("▼")
	} else if normalized < -0.1 {
		return pterm.FgCyan.Sprint("▽")
	} else if normalized > 0.5 {
		return pterm.FgRed.Sprint("▲")
	} else if normalized > 0.1 {
		return pterm.FgYellow.Sprint("△")
	}

	return pterm.FgGray.Sprint("·")
}
