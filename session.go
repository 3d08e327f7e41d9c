package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/config"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/control"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/hud"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/input"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/recorder"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/sim"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/web"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/world"
)

const (
	telemetryConsumerID = "session-hud"
	recorderConsumerID  = "session-images"

	viewCols = 48
	viewRows = 18
)

// session is one manual control run: keyboard in, actuator commands out,
// HUD on the terminal. It also backs the web viewer and the GTK window.
type session struct {
	cfg        *config.Config
	client     *sim.Client
	world      *world.World
	controller *control.Controller
	capture    *input.Capture
	hud        *hud.HUD
	images     *recorder.ImageRecorder
	recording  *recorder.SessionToggler
	log        *recorder.LogWriter

	// headless skips terminal capture and rendering; the GTK front end
	// drives input and drawing instead.
	headless bool

	mu      sync.RWMutex
	guiHeld control.HeldKeys

	frameCount int
	fps        float64
}

func newSession(cfg *config.Config, client *sim.Client) (*session, error) {
	configs, lightStep := loadCalibration(cfg.CalibrationPath)
	controller := control.NewController(configs)
	controller.SetLightStep(lightStep)

	h := hud.New()
	initial := controller.Setpoints()
	w, err := world.New(client, world.Config{
		Width:   cfg.CameraWidth,
		Height:  cfg.CameraHeight,
		Preset:  cfg.Preset,
		Initial: initial,
	}, h.Notify)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:        cfg,
		client:     client,
		world:      w,
		controller: controller,
		capture:    input.NewCapture(input.DefaultHoldWindow),
		hud:        h,
		images:     recorder.NewImageRecorder(cfg.OutputDir),
		recording:  recorder.NewSessionToggler(client, cfg.RecordingName),
		guiHeld:    make(control.HeldKeys),
	}

	logPath := cfg.RecordingName + ".log"
	if s.log, err = recorder.NewLogWriter(logPath); err != nil {
		w.Destroy()
		return nil, err
	}

	client.Telemetry().Register(telemetryConsumerID, func(t models.Telemetry) {
		h.OnTelemetry(t)
	})
	client.Frames().Register(recorderConsumerID, s.images.HandleFrame)
	return s, nil
}

func runManual(withWeb bool) error {
	cfg := loadConfig()
	client, err := connect(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	s, err := newSession(cfg, client)
	if err != nil {
		return err
	}
	defer s.teardown()

	if withWeb {
		server := web.NewServer(s, cfg.WebPort)
		go func() {
			if err := server.Start(); err != nil {
				pterm.Warning.Printf("Web viewer stopped: %v\n", err)
			}
		}()
	}

	printWelcome()
	s.capture.Start()
	defer s.capture.Stop()

	return s.loop()
}

// loop runs the fixed-rate control cycle until quit.
func (s *session) loop() error {
	var area *pterm.AreaPrinter
	if !s.headless {
		var err error
		if area, err = pterm.DefaultArea.WithFullscreen().Start(); err != nil {
			return err
		}
		defer area.Stop()
	}

	interval := time.Second / time.Duration(s.cfg.ControlRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fpsWindow := time.Now()
	framesInWindow := 0

	for range ticker.C {
		held := s.capture.Held()
		s.mu.Lock()
		for k, down := range s.guiHeld {
			if down {
				held[k] = true
			}
		}
		s.mu.Unlock()

		sp := s.controller.Update(held)
		if err := s.sendCommands(sp); err != nil {
			return err
		}
		s.appendLog(sp)

		quit, err := s.drainEvents()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		framesInWindow++
		if now := time.Now(); now.Sub(fpsWindow) >= time.Second {
			s.mu.Lock()
			s.fps = float64(framesInWindow) / now.Sub(fpsWindow).Seconds()
			s.mu.Unlock()
			framesInWindow = 0
			fpsWindow = now
		}

		if area != nil {
			area.Update(s.render())
		}
	}
	return nil
}

// Telemetry returns the latest pushed rover state.
func (s *session) Telemetry() models.Telemetry {
	return s.client.LastTelemetry()
}

// Setpoints returns the current actuator targets.
func (s *session) Setpoints() models.Setpoints {
	return s.controller.Setpoints()
}

// LightLevels returns the commanded light intensity per position.
func (s *session) LightLevels() map[models.SensorPosition]float64 {
	return s.controller.LightLevels()
}

// CameraFrame returns the latest frame from the active camera.
func (s *session) CameraFrame() (models.CameraFrame, bool) {
	return s.world.Camera().Latest()
}

// ActiveCamera returns the currently viewed mount.
func (s *session) ActiveCamera() models.SensorPosition {
	return s.world.Camera().Position()
}

// PressKey marks a directional key held; used by front ends with real
// key-release events.
func (s *session) PressKey(key control.DirectionalKey) {
	s.mu.Lock()
	s.guiHeld[key] = true
	s.mu.Unlock()
}

// ReleaseKey clears a directional key.
func (s *session) ReleaseKey(key control.DirectionalKey) {
	s.mu.Lock()
	delete(s.guiHeld, key)
	s.mu.Unlock()
}

// ToggleLight adjusts one light and sends the new level to the rover.
func (s *session) ToggleLight(pos models.SensorPosition, reverse bool) {
	level := s.controller.ToggleLight(pos, reverse)
	s.world.Rover().SetLightState(pos, level/100)
}

// ToggleCamera cycles the active camera mount.
func (s *session) ToggleCamera(reverse bool) {
	s.world.Camera().Toggle(reverse)
}

// sendCommands re-issues every actuator setpoint. The simulator treats
// repeated commands as idempotent, so no change tracking is needed.
func (s *session) sendCommands(sp models.Setpoints) error {
	rover := s.world.Rover()

	if err := rover.ApplyVelocityControl(sp.Velocity()); err != nil {
		return fmt.Errorf("failed to send velocity: %w", err)
	}
	if err := rover.SetFrontDrumSpeed(sp.FrontDrumSpeed); err != nil {
		return err
	}
	if err := rover.SetFrontArmAngle(sp.FrontArmAngle); err != nil {
		return err
	}
	if err := rover.SetBackArmAngle(sp.BackArmAngle); err != nil {
		return err
	}
	return rover.SetBackDrumSpeed(sp.BackDrumSpeed)
}

func (s *session) appendLog(sp models.Setpoints) {
	t := s.client.LastTelemetry()
	s.frameCount++
	s.log.Append(models.SessionRecord{
		Frame:     uint64(s.frameCount),
		SimTime:   t.SimTime,
		Setpoints: sp,
		Power:     t.CurrentPower,
	})
}

// drainEvents applies every pending discrete action. Returns true on quit.
func (s *session) drainEvents() (bool, error) {
	for {
		select {
		case ev := <-s.capture.Events():
			quit, err := s.handleEvent(ev)
			if quit || err != nil {
				return quit, err
			}
		default:
			return false, nil
		}
	}
}

func (s *session) handleEvent(ev input.Event) (bool, error) {
	switch ev.Action {
	case input.ActionQuit:
		return true, nil

	case input.ActionRestart:
		if err := s.world.Restart(); err != nil {
			return false, fmt.Errorf("failed to restart: %w", err)
		}
		configs, lightStep := loadCalibration(s.cfg.CalibrationPath)
		s.controller = control.NewController(configs)
		s.controller.SetLightStep(lightStep)
		s.hud.Notify("World restarted")

	case input.ActionToggleHUD:
		s.hud.ToggleInfo()

	case input.ActionCycleCamera:
		s.world.Camera().Toggle(false)

	case input.ActionCycleCameraReverse:
		s.world.Camera().Toggle(true)

	case input.ActionToggleImageRecording:
		on, err := s.images.Toggle()
		if err != nil {
			s.hud.Notify("Image recording failed: %v", err)
		} else if on {
			s.hud.Notify("Image recording ON -> %s", s.cfg.OutputDir)
		} else {
			s.hud.Notify("Image recording OFF")
		}

	case input.ActionToggleRecorder:
		on, err := s.recording.Toggle()
		if err != nil {
			s.hud.Notify("Recorder failed: %v", err)
		} else if on {
			s.hud.Notify("Session recording ON")
		} else {
			s.hud.Notify("Session recording OFF")
		}

	case input.ActionReplay:
		if err := s.recording.Replay(0); err != nil {
			s.hud.Notify("Replay failed: %v", err)
		} else {
			s.hud.Notify("Replaying session")
		}

	case input.ActionOpenRadiator:
		s.world.Rover().SetRadiatorCover(models.RadiatorCoverOpen)
		s.hud.Notify("Radiator cover open")

	case input.ActionCloseRadiator:
		s.world.Rover().SetRadiatorCover(models.RadiatorCoverClosed)
		s.hud.Notify("Radiator cover closed")

	case input.ActionLight:
		level := s.controller.ToggleLight(ev.Position, ev.Reverse)
		s.world.Rover().SetLightState(ev.Position, level/100)
		s.hud.Notify("%s light %.0f%%", ev.Position, level)

	case input.ActionHelp:
		s.hud.Notify("WASD drive, F/V G/B H/N J/M actuators, 1-8 lights, Tab camera, Esc quit")
	}
	return false, nil
}

func (s *session) render() string {
	frame, _ := s.world.Camera().Latest()
	view := hud.FrameView(frame, viewCols, viewRows)

	s.mu.RLock()
	fps := s.fps
	s.mu.RUnlock()

	var info []string
	if s.hud.Showing() {
		info = s.hud.InfoLines(fps, s.client.LastTelemetry(), s.controller.Setpoints(), s.controller.LightLevels())
	}
	return s.hud.Render(view, s.world.Camera().Position(), info)
}

func (s *session) teardown() {
	s.client.Telemetry().Unregister(telemetryConsumerID)
	s.client.Frames().Unregister(recorderConsumerID)
	s.recording.Stop()
	s.log.Close()
	s.world.Destroy()
}

func printWelcome() {
	pterm.DefaultHeader.WithFullWidth().Println("Lunar Rover Manual Control")
	pterm.Info.Println("Press ? for controls, Esc or Q to quit")
}
