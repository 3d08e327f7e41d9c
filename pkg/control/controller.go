// Package control converts held-key state into actuator setpoints.
//
// Each actuator channel carries a RampState that moves a fixed step per
// control frame while its key is held and is clamped to the channel bounds.
// The two velocity channels decay back to rest when released; the drum and
// arm channels freeze at their last value. The controller is driven from a
// single goroutine, once per control frame, and performs no I/O.
package control

import (
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// DirectionalKey is one of the twelve ramp inputs sampled every frame.
type DirectionalKey int

const (
	KeyForward DirectionalKey = iota
	KeyBackward
	KeyTurnLeft
	KeyTurnRight
	KeyFrontDrumUp
	KeyFrontDrumDown
	KeyFrontArmUp
	KeyFrontArmDown
	KeyBackArmUp
	KeyBackArmDown
	KeyBackDrumUp
	KeyBackDrumDown
)

// HeldKeys is the set of directional keys held during the current frame.
type HeldKeys map[DirectionalKey]bool

// RampState tracks one channel's live setpoint between frames.
type RampState struct {
	current   float64
	step      float64
	min       float64
	max       float64
	decayStep float64
	resting   float64
	decays    bool
}

// Value returns the live setpoint.
func (r *RampState) Value() float64 { return r.current }

// advance applies one frame of input to the state. The increase branch wins
// when both keys are held. Released decaying channels move toward the
// resting value at twice the decay step, clamped so they never pass it.
func (r *RampState) advance(increase, decrease bool) {
	switch {
	case increase:
		r.current = min(r.current+r.step, r.max)
	case decrease:
		r.current = max(r.current-r.step, r.min)
	case r.decays:
		r.current = max(r.current-2*r.decayStep, r.resting)
	}
}

// channelKeys binds a channel to its increase/decrease keys. For angular
// speed the turn-right key is the positive direction.
var channelKeys = []struct {
	channel  models.ActuatorChannel
	increase DirectionalKey
	decrease DirectionalKey
}{
	{models.LinearSpeed, KeyForward, KeyBackward},
	{models.AngularSpeed, KeyTurnRight, KeyTurnLeft},
	{models.FrontDrumSpeed, KeyFrontDrumUp, KeyFrontDrumDown},
	{models.FrontArmAngle, KeyFrontArmUp, KeyFrontArmDown},
	{models.BackArmAngle, KeyBackArmUp, KeyBackArmDown},
	{models.BackDrumSpeed, KeyBackDrumUp, KeyBackDrumDown},
}

// Controller owns the six ramp states and the light levels. Created once per
// session and mutated exactly once per control frame by Update.
type Controller struct {
	states    map[models.ActuatorChannel]*RampState
	lights    map[models.SensorPosition]float64
	lightStep float64
}

// NewController builds a controller from a channel calibration table.
// Unlisted channels fall back to the built-in defaults.
func NewController(configs []models.ChannelConfig) *Controller {
	byChannel := make(map[models.ActuatorChannel]models.ChannelConfig, len(models.ChannelConfigs))
	for _, cfg := range models.ChannelConfigs {
		byChannel[cfg.Channel] = cfg
	}
	for _, cfg := range configs {
		byChannel[cfg.Channel] = cfg
	}

	c := &Controller{
		states:    make(map[models.ActuatorChannel]*RampState, len(byChannel)),
		lights:    make(map[models.SensorPosition]float64, len(models.SensorPositions)),
		lightStep: models.DefaultLightStep,
	}
	for _, ch := range models.ActuatorChannels {
		cfg := byChannel[ch]
		c.states[ch] = &RampState{
			current:   cfg.Initial,
			step:      cfg.Step,
			min:       cfg.Min,
			max:       cfg.Max,
			decayStep: cfg.DecayStep,
			resting:   cfg.Resting,
			decays:    cfg.Decays,
		}
	}
	for _, pos := range models.SensorPositions {
		c.lights[pos] = 0
	}
	return c
}

// SetLightStep overrides the per-toggle light percentage step.
func (c *Controller) SetLightStep(step float64) {
	if step > 0 {
		c.lightStep = step
	}
}

// Update advances every channel exactly once for the current frame and
// returns the resulting snapshot. It must be called at the control cadence
// regardless of whether any key is held; the consumer tolerates unchanged
// commands.
func (c *Controller) Update(held HeldKeys) models.Setpoints {
	for _, binding := range channelKeys {
		c.states[binding.channel].advance(held[binding.increase], held[binding.decrease])
	}
	return c.Setpoints()
}

// Setpoints returns the current snapshot without advancing any state.
func (c *Controller) Setpoints() models.Setpoints {
	return models.Setpoints{
		LinearSpeed:    c.states[models.LinearSpeed].current,
		AngularSpeed:   c.states[models.AngularSpeed].current,
		FrontDrumSpeed: c.states[models.FrontDrumSpeed].current,
		FrontArmAngle:  c.states[models.FrontArmAngle].current,
		BackArmAngle:   c.states[models.BackArmAngle].current,
		BackDrumSpeed:  c.states[models.BackDrumSpeed].current,
	}
}

// ToggleLight adjusts one position's light level by the configured step,
// lowered instead of raised when reverse is set, clamped to [0,100]. Called
// once per key event, never per frame. Returns the new percentage.
func (c *Controller) ToggleLight(pos models.SensorPosition, reverse bool) float64 {
	step := c.lightStep
	if reverse {
		step = -step
	}
	level := max(min(c.lights[pos]+step, 100), 0)
	c.lights[pos] = level
	return level
}

// LightLevels returns a copy of the current light percentages.
func (c *Controller) LightLevels() map[models.SensorPosition]float64 {
	out := make(map[models.SensorPosition]float64, len(c.lights))
	for pos, v := range c.lights {
		out[pos] = v
	}
	return out
}
