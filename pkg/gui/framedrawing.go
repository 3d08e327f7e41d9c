//go:build gtk

package gui

import (
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Full-resolution frames are far denser than the widget; drawing is capped
// at this many cells across so repaints stay cheap.
const maxDrawCols = 160

// drawCameraFunc is the drawing callback for the camera view
func (mw *MainWindow) drawCameraFunc(area *gtk.DrawingArea, cr *cairo.Context, width, height int) {
	frame, ok := mw.session.CameraFrame()
	if !ok || frame.Width <= 0 || frame.Height <= 0 || len(frame.Pixels) < frame.Width*frame.Height {
		mw.drawEmptyState(cr, width, height)
		return
	}

	cr.SetSourceRGB(0, 0, 0)
	cr.Paint()

	cols := frame.Width
	if cols > maxDrawCols {
		cols = maxDrawCols
	}
	rows := cols * frame.Height / frame.Width
	if rows < 1 {
		rows = 1
	}

	// Fit the cell grid to the widget, keeping aspect ratio.
	scale := float64(width) / float64(cols)
	if s := float64(height) / float64(rows); s < scale {
		scale = s
	}
	offsetX := (float64(width) - float64(cols)*scale) / 2
	offsetY := (float64(height) - float64(rows)*scale) / 2

	for row := 0; row < rows; row++ {
		srcY := row * frame.Height / rows
		for col := 0; col < cols; col++ {
			srcX := col * frame.Width / cols
			v := float64(frame.Pixels[srcY*frame.Width+srcX]) / 255

			cr.SetSourceRGB(v, v, v)
			cr.Rectangle(offsetX+float64(col)*scale, offsetY+float64(row)*scale, scale+1, scale+1)
			cr.Fill()
		}
	}

	// Overlay the active camera name.
	cr.SetSourceRGB(0.9, 0.9, 0.9)
	cr.SelectFontFace("Sans", cairo.FontSlantNormal, cairo.FontWeightBold)
	cr.SetFontSize(14)
	cr.MoveTo(offsetX+10, offsetY+22)
	cr.ShowText(mw.session.ActiveCamera().String() + " camera")
}

// drawEmptyState renders a placeholder when no frame has arrived yet
func (mw *MainWindow) drawEmptyState(cr *cairo.Context, width, height int) {
	cr.SetSourceRGB(0.1, 0.1, 0.1)
	cr.Paint()

	cr.SetSourceRGB(0.6, 0.6, 0.6)
	cr.SelectFontFace("Sans", cairo.FontSlantNormal, cairo.FontWeightNormal)
	cr.SetFontSize(16)

	text := "Waiting for camera feed..."
	extents := cr.TextExtents(text)
	cr.MoveTo(float64(width)/2-extents.Width/2, float64(height)/2)
	cr.ShowText(text)
}
