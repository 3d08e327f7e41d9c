// Package replay loads recorded session logs for inspection, comparison
// and CSV export.
package replay

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// ReadSession reads every record from a session log written by the manual
// control client.
func ReadSession(path string) ([]models.SessionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var records []models.SessionRecord
	for {
		var rec models.SessionRecord
		err := binary.Read(r, binary.LittleEndian, &rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("session log is truncated after %d records", len(records))
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ChannelStats summarizes one actuator channel over a session.
type ChannelStats struct {
	Channel  models.ActuatorChannel
	Min      float64
	Max      float64
	Mean     float64
	Variance float64
}

// SessionStats computes per-channel statistics for a loaded session.
func SessionStats(records []models.SessionRecord) []ChannelStats {
	stats := make([]ChannelStats, 0, len(models.ActuatorChannels))
	for _, ch := range models.ActuatorChannels {
		values := make([]float64, len(records))
		for i, rec := range records {
			values[i] = rec.Setpoints.Value(ch)
		}
		min, max, mean, variance := calculateStats(values)
		stats = append(stats, ChannelStats{
			Channel:  ch,
			Min:      min,
			Max:      max,
			Mean:     mean,
			Variance: variance,
		})
	}
	return stats
}

func calculateStats(values []float64) (float64, float64, float64, float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	min := values[0]
	max := values[0]
	sum := 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return min, max, mean, variance
}
