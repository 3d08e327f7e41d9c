package world

import (
	"sync"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/sim"
)

// frameConsumerID is the camera view's slot in the frame registry. The
// registry is owned by the sim client and outlives the manager, so the
// handler needs no back-reference beyond this ID.
const frameConsumerID = "camera-view"

// CameraManager cycles the live view through the rover's eight camera
// mounts, keeping exactly one camera streaming at a time and remembering
// the latest frame for the HUD, web viewer and recorder.
type CameraManager struct {
	rover  sim.Rover
	frames *sim.FrameRegistry
	notify Notifier

	mu     sync.Mutex
	index  int
	latest models.CameraFrame
	has    bool
}

func newCameraManager(rover sim.Rover, frames *sim.FrameRegistry, notify Notifier, index int) (*CameraManager, error) {
	cm := &CameraManager{
		rover:  rover,
		frames: frames,
		notify: notify,
		index:  index % len(models.SensorPositions),
	}
	frames.Register(frameConsumerID, cm.handleFrame)
	if err := rover.SetCameraState(cm.Position(), true); err != nil {
		frames.Unregister(frameConsumerID)
		return nil, err
	}
	notify("Changing to %s camera", cm.Position())
	return cm, nil
}

// Position returns the mount currently streaming.
func (cm *CameraManager) Position() models.SensorPosition {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return models.SensorPositions[cm.index]
}

// Index returns the current position index, used to preserve the view
// across a respawn.
func (cm *CameraManager) Index() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.index
}

// Toggle switches to the next mount, or the previous one when reverse is
// set. The old camera is deactivated before the new one starts.
func (cm *CameraManager) Toggle(reverse bool) error {
	cm.mu.Lock()
	old := models.SensorPositions[cm.index]
	n := len(models.SensorPositions)
	if reverse {
		cm.index = (cm.index - 1 + n) % n
	} else {
		cm.index = (cm.index + 1) % n
	}
	next := models.SensorPositions[cm.index]
	cm.has = false
	cm.mu.Unlock()

	if err := cm.rover.SetCameraState(old, false); err != nil {
		return err
	}
	if err := cm.rover.SetCameraState(next, true); err != nil {
		return err
	}
	cm.notify("Changing to %s camera", next)
	return nil
}

// handleFrame runs on the transport's delivery goroutine; frames from
// mounts other than the active view are ignored.
func (cm *CameraManager) handleFrame(f models.CameraFrame) {
	cm.mu.Lock()
	if f.Position == models.SensorPositions[cm.index] {
		cm.latest = f
		cm.has = true
	}
	cm.mu.Unlock()
}

// Latest returns the most recent frame for the active view, if any.
func (cm *CameraManager) Latest() (models.CameraFrame, bool) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.latest, cm.has
}

// shutdown deregisters the consumer and turns every camera off.
func (cm *CameraManager) shutdown() {
	cm.frames.Unregister(frameConsumerID)
	if err := cm.rover.SetCameraState(models.All, false); err != nil {
		cm.notify("Failed to stop cameras: %v", err)
	}
}
