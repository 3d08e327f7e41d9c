// Package input turns terminal key events into the per-frame held-key set
// and the discrete one-shot actions of the manual-control client.
//
// Terminals report key presses and auto-repeats but never releases, so a
// directional key counts as held until no event for it has arrived within
// the hold window. The window must exceed the terminal's auto-repeat delay
// or a held key flickers off between the first press and the first repeat.
package input

import (
	"sync"
	"sync/atomic"
	"time"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/control"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// DefaultHoldWindow covers the common 500 ms auto-repeat delay.
const DefaultHoldWindow = 550 * time.Millisecond

// Action is a discrete command triggered once per key event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRestart
	ActionToggleHUD
	ActionCycleCamera
	ActionCycleCameraReverse
	ActionToggleImageRecording
	ActionToggleRecorder
	ActionReplay
	ActionOpenRadiator
	ActionCloseRadiator
	ActionLight
	ActionHelp
)

// Event is one discrete action. Position and Reverse are set for
// ActionLight only.
type Event struct {
	Action   Action
	Position models.SensorPosition
	Reverse  bool
}

// Capture listens for key events on its own goroutine and exposes the
// held-key set for per-frame sampling plus a channel of discrete events.
type Capture struct {
	mu      sync.Mutex
	held    map[control.DirectionalKey]time.Time
	window  time.Duration
	events  chan Event
	stopped atomic.Bool
	now     func() time.Time
}

// NewCapture builds a capture with the given hold window; zero selects
// DefaultHoldWindow.
func NewCapture(window time.Duration) *Capture {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &Capture{
		held:   make(map[control.DirectionalKey]time.Time),
		window: window,
		events: make(chan Event, 32),
		now:    time.Now,
	}
}

// Start begins listening on a background goroutine. The listener exits when
// Stop is called or a quit key arrives.
func (c *Capture) Start() {
	go keyboard.Listen(c.Handle)
}

// Stop terminates the listener after its next key event.
func (c *Capture) Stop() {
	c.stopped.Store(true)
	keyboard.SimulateKeyPress(keys.Escape)
}

// Events delivers discrete actions, one per key event. Events are dropped if
// the consumer falls behind rather than blocking the listener.
func (c *Capture) Events() <-chan Event {
	return c.events
}

// Held returns the directional keys seen within the hold window. Sampled
// once per control frame; the ramper never sees raw key events.
func (c *Capture) Held() control.HeldKeys {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	held := make(control.HeldKeys, len(c.held))
	for k, last := range c.held {
		if now.Sub(last) <= c.window {
			held[k] = true
		} else {
			delete(c.held, k)
		}
	}
	return held
}

// directionalRunes maps the letter keys onto their ramp inputs, mirroring
// the sim's manual-control bindings.
var directionalRunes = map[rune]control.DirectionalKey{
	'w': control.KeyForward,
	's': control.KeyBackward,
	'a': control.KeyTurnLeft,
	'd': control.KeyTurnRight,
	'f': control.KeyFrontDrumUp,
	'v': control.KeyFrontDrumDown,
	'g': control.KeyFrontArmUp,
	'b': control.KeyFrontArmDown,
	'h': control.KeyBackArmUp,
	'n': control.KeyBackArmDown,
	'j': control.KeyBackDrumUp,
	'm': control.KeyBackDrumDown,
}

// lightRunes selects a light position per digit key; the shifted variants
// reverse the toggle direction.
var lightRunes = map[rune]models.SensorPosition{
	'1': models.Front,
	'2': models.FrontLeft,
	'3': models.FrontRight,
	'4': models.Left,
	'5': models.Right,
	'6': models.BackLeft,
	'7': models.BackRight,
	'8': models.Back,
}

var shiftedLightRunes = map[rune]models.SensorPosition{
	'!': models.Front,
	'@': models.FrontLeft,
	'#': models.FrontRight,
	'$': models.Left,
	'%': models.Right,
	'^': models.BackLeft,
	'&': models.BackRight,
	'*': models.Back,
}

// Handle processes one key event. Exported so tests can drive the capture
// without a terminal.
func (c *Capture) Handle(key keys.Key) (bool, error) {
	if c.stopped.Load() {
		return true, nil
	}

	switch key.Code {
	case keys.Escape, keys.CtrlC:
		c.emit(Event{Action: ActionQuit})
		return true, nil
	case keys.Up:
		c.press(control.KeyForward)
		return false, nil
	case keys.Down:
		c.press(control.KeyBackward)
		return false, nil
	case keys.Left:
		c.press(control.KeyTurnLeft)
		return false, nil
	case keys.Right:
		c.press(control.KeyTurnRight)
		return false, nil
	case keys.Tab:
		c.emit(Event{Action: ActionCycleCamera})
		return false, nil
	case keys.Backspace:
		c.emit(Event{Action: ActionRestart})
		return false, nil
	case keys.F1:
		c.emit(Event{Action: ActionToggleHUD})
		return false, nil
	case keys.RuneKey, keys.Space:
	default:
		return false, nil
	}

	for _, r := range key.Runes {
		c.handleRune(r)
	}
	return false, nil
}

func (c *Capture) handleRune(r rune) {
	if k, ok := directionalRunes[r]; ok {
		c.press(k)
		return
	}
	if pos, ok := lightRunes[r]; ok {
		c.emit(Event{Action: ActionLight, Position: pos})
		return
	}
	if pos, ok := shiftedLightRunes[r]; ok {
		c.emit(Event{Action: ActionLight, Position: pos, Reverse: true})
		return
	}

	switch r {
	case 'q':
		c.stopped.Store(true)
		c.emit(Event{Action: ActionQuit})
	case 'r':
		c.emit(Event{Action: ActionToggleImageRecording})
	case 'o':
		c.emit(Event{Action: ActionToggleRecorder})
	case 'p':
		c.emit(Event{Action: ActionReplay})
	case 'x':
		c.emit(Event{Action: ActionOpenRadiator})
	case 'c':
		c.emit(Event{Action: ActionCloseRadiator})
	case '`':
		c.emit(Event{Action: ActionCycleCameraReverse})
	case '?':
		c.emit(Event{Action: ActionHelp})
	}
}

func (c *Capture) press(k control.DirectionalKey) {
	c.mu.Lock()
	c.held[k] = c.now()
	c.mu.Unlock()
}

func (c *Capture) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}
