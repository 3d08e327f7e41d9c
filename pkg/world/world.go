// Package world manages the client's session state: the spawned rover, the
// active camera view and teardown. All simulator access goes through the
// sim interfaces so the package is testable without a broker.
package world

import (
	"fmt"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/sim"
)

// Notifier surfaces short status messages to the HUD.
type Notifier func(format string, args ...interface{})

// Config selects the spawn parameters for a manual session.
type Config struct {
	Width   int
	Height  int
	Preset  int
	Initial models.Setpoints
}

// World owns the rover handle and camera manager for one session.
type World struct {
	sim    sim.Simulator
	cfg    Config
	notify Notifier

	rover  sim.Rover
	camera *CameraManager
}

// New spawns the rover and activates the first camera view. The initial arm
// angles are applied immediately so the rover spawns in its stowed pose.
func New(s sim.Simulator, cfg Config, notify Notifier) (*World, error) {
	if notify == nil {
		notify = func(string, ...interface{}) {}
	}
	w := &World{sim: s, cfg: cfg, notify: notify}
	if err := w.spawn(0); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) spawn(cameraIndex int) error {
	if err := w.sim.SetPreset(w.cfg.Preset, false); err != nil {
		return fmt.Errorf("failed to select preset: %w", err)
	}

	configs := make(map[models.SensorPosition]models.SensorConfig, len(models.SensorPositions))
	for _, pos := range models.SensorPositions {
		configs[pos] = models.SensorConfig{Width: w.cfg.Width, Height: w.cfg.Height}
	}
	rover, err := w.sim.SpawnRover(configs)
	if err != nil {
		return fmt.Errorf("failed to spawn rover: %w", err)
	}
	w.rover = rover

	if err := rover.SetFrontArmAngle(w.cfg.Initial.FrontArmAngle); err != nil {
		return err
	}
	if err := rover.SetBackArmAngle(w.cfg.Initial.BackArmAngle); err != nil {
		return err
	}
	if err := rover.SetLightState(models.All, 0); err != nil {
		return err
	}

	camera, err := newCameraManager(rover, w.sim.Frames(), w.notify, cameraIndex)
	if err != nil {
		return err
	}
	w.camera = camera
	return nil
}

// Rover returns the live vehicle handle.
func (w *World) Rover() sim.Rover { return w.rover }

// Camera returns the camera manager for the session.
func (w *World) Camera() *CameraManager { return w.camera }

// MapName reports the simulator's current map.
func (w *World) MapName() string { return w.sim.MapName() }

// Restart tears the rover down and respawns it, keeping the camera view the
// user had selected.
func (w *World) Restart() error {
	index := 0
	if w.camera != nil {
		index = w.camera.Index()
	}
	w.Destroy()
	if err := w.spawn(index); err != nil {
		return err
	}
	w.notify("Rover respawned")
	return nil
}

// Destroy stops the camera view and destroys the rover. Safe to call twice.
func (w *World) Destroy() {
	if w.camera != nil {
		w.camera.shutdown()
		w.camera = nil
	}
	if w.rover != nil {
		if err := w.rover.Destroy(); err != nil {
			w.notify("Failed to destroy rover: %v", err)
		}
		w.rover = nil
	}
}
