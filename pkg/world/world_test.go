package world

import (
	"testing"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/sim"
)

type fakeRover struct {
	velocity    []models.VelocityControl
	frontArm    []float64
	backArm     []float64
	lights      map[models.SensorPosition]float64
	cameraState map[models.SensorPosition]bool
	destroyed   bool
}

func newFakeRover() *fakeRover {
	return &fakeRover{
		lights:      make(map[models.SensorPosition]float64),
		cameraState: make(map[models.SensorPosition]bool),
	}
}

func (r *fakeRover) ApplyVelocityControl(v models.VelocityControl) error {
	r.velocity = append(r.velocity, v)
	return nil
}
func (r *fakeRover) SetFrontArmAngle(v float64) error { r.frontArm = append(r.frontArm, v); return nil }
func (r *fakeRover) SetBackArmAngle(v float64) error  { r.backArm = append(r.backArm, v); return nil }
func (r *fakeRover) SetFrontDrumSpeed(float64) error  { return nil }
func (r *fakeRover) SetBackDrumSpeed(float64) error   { return nil }
func (r *fakeRover) SetLightState(pos models.SensorPosition, v float64) error {
	r.lights[pos] = v
	return nil
}
func (r *fakeRover) SetCameraState(pos models.SensorPosition, active bool) error {
	if pos == models.All {
		for p := range r.cameraState {
			r.cameraState[p] = active
		}
		return nil
	}
	r.cameraState[pos] = active
	return nil
}
func (r *fakeRover) SetRadiatorCover(models.RadiatorCoverState) error { return nil }
func (r *fakeRover) Destroy() error                                   { r.destroyed = true; return nil }

type fakeSim struct {
	frames    *sim.FrameRegistry
	telemetry *sim.TelemetryRegistry
	rovers    []*fakeRover
	presets   []int
}

func newFakeSim() *fakeSim {
	return &fakeSim{
		frames:    sim.NewFrameRegistry(),
		telemetry: sim.NewTelemetryRegistry(),
	}
}

func (s *fakeSim) SpawnRover(map[models.SensorPosition]models.SensorConfig) (sim.Rover, error) {
	r := newFakeRover()
	s.rovers = append(s.rovers, r)
	return r, nil
}
func (s *fakeSim) SetPreset(id int, randomize bool) error { s.presets = append(s.presets, id); return nil }
func (s *fakeSim) StartRecorder(string) error             { return nil }
func (s *fakeSim) StopRecorder() error                    { return nil }
func (s *fakeSim) Replay(string, float64, float64) error  { return nil }
func (s *fakeSim) Frames() *sim.FrameRegistry             { return s.frames }
func (s *fakeSim) Telemetry() *sim.TelemetryRegistry      { return s.telemetry }
func (s *fakeSim) MapName() string                        { return "Moon_001" }
func (s *fakeSim) Close()                                 {}

func testConfig() Config {
	return Config{
		Width:  1080,
		Height: 720,
		Initial: models.Setpoints{
			FrontArmAngle: 0.79,
			BackArmAngle:  0.79,
		},
	}
}

func TestNewAppliesInitialPose(t *testing.T) {
	s := newFakeSim()
	w, err := New(s, testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r := s.rovers[0]
	if len(r.frontArm) != 1 || r.frontArm[0] != 0.79 {
		t.Fatalf("front arm init = %v", r.frontArm)
	}
	if len(r.backArm) != 1 || r.backArm[0] != 0.79 {
		t.Fatalf("back arm init = %v", r.backArm)
	}
	if r.lights[models.All] != 0 {
		t.Fatalf("lights not reset: %v", r.lights)
	}
	if !r.cameraState[models.Front] {
		t.Fatal("first camera not activated")
	}
	if w.Camera().Position() != models.Front {
		t.Fatalf("initial view = %v", w.Camera().Position())
	}
}

func TestCameraToggleCycles(t *testing.T) {
	s := newFakeSim()
	w, err := New(s, testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cm := w.Camera()
	r := s.rovers[0]

	if err := cm.Toggle(false); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if cm.Position() != models.FrontLeft {
		t.Fatalf("position = %v", cm.Position())
	}
	if r.cameraState[models.Front] {
		t.Fatal("old camera still active")
	}
	if !r.cameraState[models.FrontLeft] {
		t.Fatal("new camera not active")
	}

	// Reverse through the wrap-around.
	cm.Toggle(true)
	if cm.Position() != models.Front {
		t.Fatalf("position after reverse = %v", cm.Position())
	}
	cm.Toggle(true)
	if cm.Position() != models.Back {
		t.Fatalf("position after wrap = %v", cm.Position())
	}
}

func TestLatestFrameFollowsActiveView(t *testing.T) {
	s := newFakeSim()
	w, _ := New(s, testConfig(), nil)
	cm := w.Camera()

	// Frames from inactive mounts are ignored.
	s.frames.Dispatch(models.CameraFrame{Position: models.Back, Frame: 1})
	if _, ok := cm.Latest(); ok {
		t.Fatal("inactive mount frame stored")
	}

	s.frames.Dispatch(models.CameraFrame{Position: models.Front, Frame: 2})
	f, ok := cm.Latest()
	if !ok || f.Frame != 2 {
		t.Fatalf("latest = %+v ok=%v", f, ok)
	}

	// Toggling clears the stale frame.
	cm.Toggle(false)
	if _, ok := cm.Latest(); ok {
		t.Fatal("stale frame survived toggle")
	}
}

func TestRestartPreservesCameraIndex(t *testing.T) {
	s := newFakeSim()
	w, _ := New(s, testConfig(), nil)
	w.Camera().Toggle(false)
	w.Camera().Toggle(false)

	if err := w.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	if !s.rovers[0].destroyed {
		t.Fatal("old rover not destroyed")
	}
	if len(s.rovers) != 2 {
		t.Fatalf("rover count = %d", len(s.rovers))
	}
	if w.Camera().Position() != models.FrontRight {
		t.Fatalf("camera view after restart = %v", w.Camera().Position())
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	s := newFakeSim()
	w, _ := New(s, testConfig(), nil)

	w.Destroy()
	if !s.rovers[0].destroyed {
		t.Fatal("rover not destroyed")
	}
	if s.frames.Len() != 0 {
		t.Fatal("frame consumer still registered after destroy")
	}
	w.Destroy() // must not panic
}
