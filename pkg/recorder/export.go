package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// ExportCSV writes a recorded session to CSV: metadata comment rows, then
// one row per control frame with the six setpoints in command order.
func ExportCSV(records []models.SessionRecord, path string) error {
	if len(records) == 0 {
		return fmt.Errorf("session is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{fmt.Sprintf("# Session export, %d frames", len(records))})
	writer.Write([]string{fmt.Sprintf("# Sim time %.2fs - %.2fs", records[0].SimTime, records[len(records)-1].SimTime)})
	writer.Write([]string{""})

	header := []string{"frame", "sim_time"}
	for _, ch := range models.ActuatorChannels {
		header = append(header, columnName(ch))
	}
	header = append(header, "power")
	writer.Write(header)

	for _, rec := range records {
		row := []string{
			fmt.Sprintf("%d", rec.Frame),
			fmt.Sprintf("%.3f", rec.SimTime),
		}
		for _, ch := range models.ActuatorChannels {
			row = append(row, fmt.Sprintf("%.4f", rec.Setpoints.Value(ch)))
		}
		row = append(row, fmt.Sprintf("%.1f", rec.Power))
		writer.Write(row)
	}

	return writer.Error()
}

func columnName(ch models.ActuatorChannel) string {
	return strings.ReplaceAll(strings.ToLower(ch.String()), " ", "_")
}
