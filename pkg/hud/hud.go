// Package hud renders the manual-control overlay: telemetry, target values,
// light levels, notifications and the terminal camera view.
package hud

import (
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// HUD accumulates display state for the manual-control loop. Telemetry
// arrives from the transport goroutine; rendering happens on the control
// loop, so the mutable pieces are guarded.
type HUD struct {
	mu        sync.Mutex
	show      bool
	notif     notification
	serverFPS *fpsCounter

	now func() time.Time
}

func New() *HUD {
	return &HUD{
		show:      true,
		serverFPS: newFPSCounter(64),
		now:       time.Now,
	}
}

// ToggleInfo flips the info panel and reports the new state.
func (h *HUD) ToggleInfo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.show = !h.show
	return h.show
}

// Showing reports whether the info panel is visible.
func (h *HUD) Showing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.show
}

// Notify displays a short message that fades after two seconds.
func (h *HUD) Notify(format string, args ...interface{}) {
	h.mu.Lock()
	h.notif = notification{
		text:  fmt.Sprintf(format, args...),
		until: h.now().Add(2 * time.Second),
	}
	h.mu.Unlock()
}

// OnTelemetry feeds the server-side tick clock. Registered with the sim
// client's telemetry registry.
func (h *HUD) OnTelemetry(models.Telemetry) {
	h.mu.Lock()
	h.serverFPS.tick(h.now())
	h.mu.Unlock()
}

// ServerFPS reports the measured simulator tick rate.
func (h *HUD) ServerFPS() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.serverFPS.fps(h.now())
}

// InfoLines builds the info panel in the simulator's stock HUD layout.
func (h *HUD) InfoLines(clientFPS float64, t models.Telemetry, sp models.Setpoints, lights map[models.SensorPosition]float64) []string {
	lines := []string{
		fmt.Sprintf("Server:  %16.0f FPS", h.ServerFPS()),
		fmt.Sprintf("Client:  %16.0f FPS", clientFPS),
		"",
		fmt.Sprintf("Map:     %20s", t.MapName),
		fmt.Sprintf("Simulation time: %12s", formatSimTime(t.SimTime)),
		"",
		fmt.Sprintf("Location:%20s", fmt.Sprintf("(%5.1f, %5.1f)", t.X, t.Y)),
		fmt.Sprintf("Height:  %18.0f m", t.Z),
		"",
		"Target values:",
		"",
		fmt.Sprintf(" Linear speed:     %5.2f   m/s", sp.LinearSpeed),
		fmt.Sprintf(" Angular speed:    %5.2f rad/s", sp.AngularSpeed),
		fmt.Sprintf(" Front Drum speed: %5.2f rad/s", sp.FrontDrumSpeed),
		fmt.Sprintf(" Front Arm angle:  %5.2f   rad", sp.FrontArmAngle),
		fmt.Sprintf(" Back Arm angle:   %5.2f   rad", sp.BackArmAngle),
		fmt.Sprintf(" Back Drum speed:  %5.2f rad/s", sp.BackDrumSpeed),
		"",
		fmt.Sprintf("Current power  %8.0f Wh", t.CurrentPower),
		fmt.Sprintf("Consumed power %8.0f Wh", t.ConsumedPower),
		"",
		"Lights values:",
		"",
	}
	for _, pos := range models.SensorPositions {
		lines = append(lines, fmt.Sprintf(" %-11s %3.0f%%", pos.String()+":", lights[pos]))
	}
	return lines
}

// Render composes the full HUD string for the live terminal area: the
// camera view boxed with the active mount as title, the info panel when
// visible, and any active notification.
func (h *HUD) Render(view string, position models.SensorPosition, infoLines []string) string {
	out := pterm.DefaultBox.WithTitle(position.String() + " camera").WithTitleTopLeft().Sprint(view)
	if h.Showing() {
		info := ""
		for i, line := range infoLines {
			if i > 0 {
				info += "\n"
			}
			info += line
		}
		out += "\n" + pterm.DefaultBox.Sprint(info)
	}
	if line := h.notificationLine(); line != "" {
		out += "\n" + pterm.FgLightWhite.Sprint(line)
	}
	return out
}

func (h *HUD) notificationLine() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.notif.line(h.now())
}

// notification is a single fading message shown under the camera view.
type notification struct {
	text  string
	until time.Time
}

func (n notification) line(now time.Time) string {
	if n.text == "" || now.After(n.until) {
		return ""
	}
	return n.text
}

func formatSimTime(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// fpsCounter measures event rate over a sliding window of timestamps.
type fpsCounter struct {
	samples []time.Time
	next    int
	filled  bool
}

func newFPSCounter(window int) *fpsCounter {
	return &fpsCounter{samples: make([]time.Time, window)}
}

func (f *fpsCounter) tick(now time.Time) {
	f.samples[f.next] = now
	f.next++
	if f.next == len(f.samples) {
		f.next = 0
		f.filled = true
	}
}

func (f *fpsCounter) fps(now time.Time) float64 {
	count := f.next
	oldest := f.samples[0]
	if f.filled {
		count = len(f.samples)
		oldest = f.samples[f.next]
	}
	if count < 2 {
		return 0
	}
	elapsed := now.Sub(oldest).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed
}
