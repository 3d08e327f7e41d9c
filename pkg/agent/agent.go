// Package agent hosts autonomous mission agents. An agent receives sensor
// input each simulation step and returns the velocity command to apply;
// everything else about the mission loop is owned by the Runner.
package agent

import (
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// Input is the per-step sensor snapshot handed to an agent. Frames holds
// the camera images delivered since the previous step; on steps where no
// camera rendered, it is empty.
type Input struct {
	Telemetry models.Telemetry
	Frames    map[models.SensorPosition]models.CameraFrame
}

// Agent is implemented by mission logic. Setup runs once after the rover
// spawns; RunStep runs every simulation step and returns the velocity
// command for the next step. Returning done ends the mission.
type Agent interface {
	// Setup declares the sensor layout the mission needs.
	Setup() map[models.SensorPosition]models.SensorConfig

	// UseFiducials reports whether the lander's fiducial markers should
	// be available to the mission.
	UseFiducials() bool

	// RunStep consumes one step of sensor data and returns the next
	// velocity command.
	RunStep(in Input) (cmd models.VelocityControl, done bool)
}

// NoOp is the empty mission scaffold: default sensors, no fiducials, and a
// rover that never moves. New missions start by copying it.
type NoOp struct{}

func (NoOp) Setup() map[models.SensorPosition]models.SensorConfig {
	return models.DefaultSensorConfigs()
}

func (NoOp) UseFiducials() bool { return false }

func (NoOp) RunStep(Input) (models.VelocityControl, bool) {
	return models.VelocityControl{}, false
}
