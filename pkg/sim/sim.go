// Package sim is the client-side boundary to the external rover simulator.
//
// The simulator itself is an opaque remote service: it owns physics, sensor
// rendering and world state. This package only issues commands and receives
// pushed telemetry and camera frames. Everything above it programs against
// the Simulator and Rover interfaces, never a concrete transport.
package sim

import "github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"

// FrameHandler receives camera frames pushed from the simulator. Handlers
// run on the transport's delivery goroutine and must not block.
type FrameHandler func(models.CameraFrame)

// TelemetryHandler receives per-tick rover state.
type TelemetryHandler func(models.Telemetry)

// Rover is the handle to a spawned vehicle. Commands are idempotent; the
// simulator tolerates the same command arriving every control frame.
type Rover interface {
	ApplyVelocityControl(models.VelocityControl) error
	SetFrontArmAngle(rad float64) error
	SetBackArmAngle(rad float64) error
	SetFrontDrumSpeed(radPerSec float64) error
	SetBackDrumSpeed(radPerSec float64) error
	SetLightState(pos models.SensorPosition, intensity float64) error
	SetCameraState(pos models.SensorPosition, active bool) error
	SetRadiatorCover(state models.RadiatorCoverState) error
	Destroy() error
}

// Simulator is the remote service boundary. Frame and telemetry consumers
// register into registries owned by the client, so no callback ever needs a
// back-reference to its owner: the registry outlives every registration and
// a consumer is removed by plain ID.
type Simulator interface {
	SpawnRover(configs map[models.SensorPosition]models.SensorConfig) (Rover, error)
	SetPreset(id int, randomize bool) error
	StartRecorder(name string) error
	StopRecorder() error
	Replay(name string, start, duration float64) error
	Frames() *FrameRegistry
	Telemetry() *TelemetryRegistry
	MapName() string
	Close()
}
