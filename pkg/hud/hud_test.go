package hud

import (
	"strings"
	"testing"
	"time"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

func fixedClock(h *HUD) *time.Time {
	now := time.Unix(5000, 0)
	h.now = func() time.Time { return now }
	return &now
}

func TestInfoLinesLayout(t *testing.T) {
	h := New()
	fixedClock(h)

	tel := models.Telemetry{
		MapName: "Moon_001", SimTime: 3725, X: 8.0, Y: -4.0, Z: 2,
		CurrentPower: 280, ConsumedPower: 20,
	}
	sp := models.Setpoints{LinearSpeed: 0.5, FrontArmAngle: 0.79, BackArmAngle: 0.79}
	lights := map[models.SensorPosition]float64{models.Front: 40}

	lines := h.InfoLines(60, tel, sp, lights)

	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"Moon_001",
		"1:02:05", // 3725 s
		"Linear speed:      0.50   m/s",
		"Front Arm angle:   0.79   rad",
		"Current power       280 Wh",
		"Front:       40%",
		"Back:         0%",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("info panel missing %q:\n%s", want, joined)
		}
	}

	// One line per light position at the tail.
	tail := lines[len(lines)-len(models.SensorPositions):]
	for i, pos := range models.SensorPositions {
		if !strings.Contains(tail[i], pos.String()) {
			t.Errorf("light line %d = %q, want position %v", i, tail[i], pos)
		}
	}
}

func TestToggleInfoHidesPanel(t *testing.T) {
	h := New()
	fixedClock(h)

	visible := h.Render("view", models.Front, h.InfoLines(0, models.Telemetry{}, models.Setpoints{}, nil))
	if on := h.ToggleInfo(); on {
		t.Fatal("expected panel off after first toggle")
	}
	hidden := h.Render("view", models.Front, nil)

	if len(hidden) >= len(visible) {
		t.Fatal("hidden panel not smaller than visible panel")
	}
	if on := h.ToggleInfo(); !on {
		t.Fatal("expected panel back on")
	}
}

func TestNotificationFades(t *testing.T) {
	h := New()
	now := fixedClock(h)

	h.Notify("Recorder is %s", "ON")
	if got := h.notificationLine(); got != "Recorder is ON" {
		t.Fatalf("notification = %q", got)
	}

	*now = now.Add(3 * time.Second)
	if got := h.notificationLine(); got != "" {
		t.Fatalf("notification survived fade: %q", got)
	}
}

func TestServerFPS(t *testing.T) {
	h := New()
	now := fixedClock(h)

	// 20 ticks at 50 ms spacing is a 20 Hz server.
	for i := 0; i < 20; i++ {
		h.OnTelemetry(models.Telemetry{})
		*now = now.Add(50 * time.Millisecond)
	}
	fps := h.ServerFPS()
	if fps < 19 || fps > 21 {
		t.Fatalf("server fps = %v, want ~20", fps)
	}
}

func TestFrameViewPlaceholderAndShades(t *testing.T) {
	if got := FrameView(models.CameraFrame{}, 8, 4); !strings.Contains(got, "waiting") {
		t.Fatalf("placeholder = %q", got)
	}

	// 2x2 frame: black and white pixels map to the extreme shade blocks.
	f := models.CameraFrame{
		Width: 2, Height: 2,
		Pixels: []byte{0, 255, 255, 0},
	}
	view := FrameView(f, 2, 2)
	rows := strings.Split(view, "\n")
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if !strings.Contains(view, "██") {
		t.Fatalf("bright pixel not rendered: %q", view)
	}
}

func TestFrameViewDownsamples(t *testing.T) {
	f := models.CameraFrame{Width: 64, Height: 32, Pixels: make([]byte, 64*32)}
	view := FrameView(f, 16, 8)
	rows := strings.Split(view, "\n")
	if len(rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(rows))
	}
	// Two cells per sample keeps a stable row width.
	if got := len([]rune(rows[0])); got != 32 {
		t.Fatalf("row width = %d runes, want 32", got)
	}
}
