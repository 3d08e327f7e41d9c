package recorder

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/sim"
)

// DefaultSessionName matches the recording name the simulator's stock
// client uses, so replays stay interchangeable.
const DefaultSessionName = "manual_recording.rec"

// SessionToggler drives the simulator's server-side recorder, mirroring the
// on/off state locally.
type SessionToggler struct {
	sim    sim.Simulator
	name   string
	active bool
}

func NewSessionToggler(s sim.Simulator, name string) *SessionToggler {
	if name == "" {
		name = DefaultSessionName
	}
	return &SessionToggler{sim: s, name: name}
}

// Toggle starts or stops the server-side recorder and reports the new
// state.
func (s *SessionToggler) Toggle() (bool, error) {
	if s.active {
		if err := s.sim.StopRecorder(); err != nil {
			return true, err
		}
		s.active = false
		return false, nil
	}
	if err := s.sim.StartRecorder(s.name); err != nil {
		return false, err
	}
	s.active = true
	return true, nil
}

// Active reports whether a server-side recording is running.
func (s *SessionToggler) Active() bool { return s.active }

// Stop ends any running recording; used during teardown.
func (s *SessionToggler) Stop() error {
	if !s.active {
		return nil
	}
	s.active = false
	return s.sim.StopRecorder()
}

// Replay stops any recording and asks the server to play the session back
// from the given start offset.
func (s *SessionToggler) Replay(start float64) error {
	if err := s.Stop(); err != nil {
		return err
	}
	return s.sim.Replay(s.name, start, 0)
}

// LogWriter appends one fixed-size little-endian record per control frame
// to a local session log. The format is shared with pkg/replay.
type LogWriter struct {
	f   *os.File
	buf *bufio.Writer
}

// NewLogWriter creates (or truncates) a session log.
func NewLogWriter(path string) (*LogWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}
	return &LogWriter{f: f, buf: bufio.NewWriter(f)}, nil
}

// Append writes one record.
func (w *LogWriter) Append(rec models.SessionRecord) error {
	return binary.Write(w.buf, binary.LittleEndian, rec)
}

// Close flushes and closes the log.
func (w *LogWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
