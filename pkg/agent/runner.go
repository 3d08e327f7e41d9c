package agent

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/sim"
)

const (
	// DefaultStepRate is the simulation step rate the mission runs at.
	DefaultStepRate = 20

	// cameraStride delivers camera frames every Nth step. Rendering every
	// step costs more sim time than the imagery is worth.
	cameraStride = 2

	agentConsumerID = "agent-runner"
)

// Runner drives one mission: spawn, step loop, teardown.
type Runner struct {
	sim      sim.Simulator
	agent    Agent
	stepRate int

	mu        sync.Mutex
	telemetry models.Telemetry
	frames    map[models.SensorPosition]models.CameraFrame
}

func NewRunner(s sim.Simulator, a Agent) *Runner {
	return &Runner{
		sim:      s,
		agent:    a,
		stepRate: DefaultStepRate,
		frames:   make(map[models.SensorPosition]models.CameraFrame),
	}
}

// Run executes the mission until the agent reports done, the context is
// cancelled, or a command fails. The rover is destroyed on the way out.
func (r *Runner) Run(ctx context.Context) error {
	rover, err := r.sim.SpawnRover(r.agent.Setup())
	if err != nil {
		return fmt.Errorf("failed to spawn rover: %w", err)
	}
	defer rover.Destroy()

	r.sim.Telemetry().Register(agentConsumerID, r.handleTelemetry)
	defer r.sim.Telemetry().Unregister(agentConsumerID)
	r.sim.Frames().Register(agentConsumerID, r.handleFrame)
	defer r.sim.Frames().Unregister(agentConsumerID)

	log.Printf("mission started on map %q", r.sim.MapName())

	ticker := time.NewTicker(time.Second / time.Duration(r.stepRate))
	defer ticker.Stop()

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		in := r.takeInput(step%cameraStride == 0)
		cmd, done := r.agent.RunStep(in)
		if done {
			log.Printf("mission complete after %d steps", step+1)
			return nil
		}
		if err := rover.ApplyVelocityControl(cmd); err != nil {
			return fmt.Errorf("failed to apply velocity control: %w", err)
		}
	}
}

func (r *Runner) handleTelemetry(t models.Telemetry) {
	r.mu.Lock()
	r.telemetry = t
	r.mu.Unlock()
}

func (r *Runner) handleFrame(f models.CameraFrame) {
	r.mu.Lock()
	r.frames[f.Position] = f
	r.mu.Unlock()
}

// takeInput snapshots the latest telemetry and, on camera steps, drains
// the accumulated frames.
func (r *Runner) takeInput(cameraStep bool) Input {
	r.mu.Lock()
	defer r.mu.Unlock()

	in := Input{Telemetry: r.telemetry}
	if cameraStep && len(r.frames) > 0 {
		in.Frames = r.frames
		r.frames = make(map[models.SensorPosition]models.CameraFrame)
	}
	return in
}
