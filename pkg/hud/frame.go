package hud

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// brightness buckets from dark to bright, two cells wide so the view keeps
// a roughly square aspect in a terminal.
var shadeBlocks = []string{"  ", "░░", "▒▒", "▓▓", "██"}

// FrameView downsamples a grayscale camera frame to a glyph grid of at most
// cols x rows cells. Returns a placeholder when no frame has arrived yet.
func FrameView(f models.CameraFrame, cols, rows int) string {
	if f.Width <= 0 || f.Height <= 0 || len(f.Pixels) < f.Width*f.Height {
		return pterm.FgGray.Sprint("waiting for camera feed...")
	}
	if cols <= 0 {
		cols = 48
	}
	if rows <= 0 {
		rows = 16
	}
	if cols > f.Width {
		cols = f.Width
	}
	if rows > f.Height {
		rows = f.Height
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		y := row * f.Height / rows
		for col := 0; col < cols; col++ {
			x := col * f.Width / cols
			b.WriteString(shadeFor(f.Pixels[y*f.Width+x]))
		}
	}
	return b.String()
}

func shadeFor(luminance byte) string {
	idx := int(luminance) * len(shadeBlocks) / 256
	if idx >= len(shadeBlocks) {
		idx = len(shadeBlocks) - 1
	}
	return shadeBlocks[idx]
}
