// Package recorder captures a session: camera frames to disk, a binary
// session log of every control frame, and CSV export of recorded logs.
package recorder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// ImageRecorder writes camera frames to an output directory while enabled.
// It registers as a plain frame consumer; toggling only flips a flag so the
// transport goroutine never blocks on setup work.
type ImageRecorder struct {
	dir string

	mu      sync.Mutex
	enabled bool
	errs    int
}

func NewImageRecorder(dir string) *ImageRecorder {
	if dir == "" {
		dir = "_out"
	}
	return &ImageRecorder{dir: dir}
}

// Toggle flips recording and reports the new state. The output directory is
// created on first enable.
func (r *ImageRecorder) Toggle() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = !r.enabled
	if r.enabled {
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			r.enabled = false
			return false, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return r.enabled, nil
}

// Enabled reports whether frames are currently being written.
func (r *ImageRecorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// HandleFrame persists one frame when recording is on. Write failures are
// counted rather than surfaced; the delivery goroutine has nowhere to
// report them.
func (r *ImageRecorder) HandleFrame(f models.CameraFrame) {
	r.mu.Lock()
	enabled := r.enabled
	r.mu.Unlock()
	if !enabled {
		return
	}

	if err := writePNG(filepath.Join(r.dir, fmt.Sprintf("%08d.png", f.Frame)), f); err != nil {
		r.mu.Lock()
		r.errs++
		r.mu.Unlock()
	}
}

// Errors reports how many frames failed to persist.
func (r *ImageRecorder) Errors() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errs
}

func writePNG(path string, f models.CameraFrame) error {
	if f.Width <= 0 || f.Height <= 0 || len(f.Pixels) < f.Width*f.Height {
		return fmt.Errorf("malformed frame %d", f.Frame)
	}

	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pixels[:f.Width*f.Height])

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}
