package input

import (
	"testing"
	"time"

	"atomicgo.dev/keyboard/keys"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/control"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

func runeKey(r rune) keys.Key {
	return keys.Key{Code: keys.RuneKey, Runes: []rune{r}}
}

func newTestCapture(window time.Duration) (*Capture, *time.Time) {
	c := NewCapture(window)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestHeldWithinWindow(t *testing.T) {
	c, now := newTestCapture(100 * time.Millisecond)

	c.Handle(runeKey('w'))
	c.Handle(keys.Key{Code: keys.Left})

	held := c.Held()
	if !held[control.KeyForward] || !held[control.KeyTurnLeft] {
		t.Fatalf("expected forward and turn-left held, got %v", held)
	}

	// Inside the window the key stays held without new events.
	*now = now.Add(80 * time.Millisecond)
	if held := c.Held(); !held[control.KeyForward] {
		t.Fatal("key released before hold window elapsed")
	}

	// Past the window it expires.
	*now = now.Add(200 * time.Millisecond)
	if held := c.Held(); len(held) != 0 {
		t.Fatalf("expected empty held set, got %v", held)
	}
}

func TestRepeatRefreshesHold(t *testing.T) {
	c, now := newTestCapture(100 * time.Millisecond)

	c.Handle(runeKey('j'))
	*now = now.Add(90 * time.Millisecond)
	c.Handle(runeKey('j')) // terminal auto-repeat
	*now = now.Add(90 * time.Millisecond)

	if held := c.Held(); !held[control.KeyBackDrumUp] {
		t.Fatal("auto-repeat did not refresh hold")
	}
}

func TestDirectionalBindings(t *testing.T) {
	cases := []struct {
		r    rune
		want control.DirectionalKey
	}{
		{'w', control.KeyForward},
		{'s', control.KeyBackward},
		{'a', control.KeyTurnLeft},
		{'d', control.KeyTurnRight},
		{'f', control.KeyFrontDrumUp},
		{'v', control.KeyFrontDrumDown},
		{'g', control.KeyFrontArmUp},
		{'b', control.KeyFrontArmDown},
		{'h', control.KeyBackArmUp},
		{'n', control.KeyBackArmDown},
		{'j', control.KeyBackDrumUp},
		{'m', control.KeyBackDrumDown},
	}

	for _, tc := range cases {
		c, _ := newTestCapture(time.Second)
		c.Handle(runeKey(tc.r))
		if held := c.Held(); !held[tc.want] {
			t.Errorf("rune %q: expected %v held, got %v", tc.r, tc.want, held)
		}
	}
}

func TestLightEvents(t *testing.T) {
	c, _ := newTestCapture(time.Second)

	c.Handle(runeKey('1'))
	ev := <-c.Events()
	if ev.Action != ActionLight || ev.Position != models.Front || ev.Reverse {
		t.Fatalf("unexpected event for '1': %+v", ev)
	}

	// Shifted digit reverses the direction.
	c.Handle(runeKey('*'))
	ev = <-c.Events()
	if ev.Action != ActionLight || ev.Position != models.Back || !ev.Reverse {
		t.Fatalf("unexpected event for '*': %+v", ev)
	}
}

func TestDiscreteEvents(t *testing.T) {
	cases := []struct {
		key  keys.Key
		want Action
	}{
		{keys.Key{Code: keys.Tab}, ActionCycleCamera},
		{runeKey('`'), ActionCycleCameraReverse},
		{keys.Key{Code: keys.Backspace}, ActionRestart},
		{keys.Key{Code: keys.F1}, ActionToggleHUD},
		{runeKey('r'), ActionToggleImageRecording},
		{runeKey('o'), ActionToggleRecorder},
		{runeKey('p'), ActionReplay},
		{runeKey('x'), ActionOpenRadiator},
		{runeKey('c'), ActionCloseRadiator},
		{runeKey('?'), ActionHelp},
	}

	for _, tc := range cases {
		c, _ := newTestCapture(time.Second)
		c.Handle(tc.key)
		select {
		case ev := <-c.Events():
			if ev.Action != tc.want {
				t.Errorf("key %v: got action %v, want %v", tc.key, ev.Action, tc.want)
			}
		default:
			t.Errorf("key %v: no event emitted", tc.key)
		}
	}
}

func TestQuitStopsListener(t *testing.T) {
	c, _ := newTestCapture(time.Second)

	stop, err := c.Handle(keys.Key{Code: keys.Escape})
	if err != nil || !stop {
		t.Fatalf("escape should stop the listener, got stop=%v err=%v", stop, err)
	}
	if ev := <-c.Events(); ev.Action != ActionQuit {
		t.Fatalf("expected quit event, got %+v", ev)
	}

	// 'q' quits too and the next event terminates the listener.
	c2, _ := newTestCapture(time.Second)
	c2.Handle(runeKey('q'))
	if ev := <-c2.Events(); ev.Action != ActionQuit {
		t.Fatalf("expected quit event for 'q', got %+v", ev)
	}
	if stop, _ := c2.Handle(runeKey('w')); !stop {
		t.Fatal("listener kept running after quit")
	}
}

func TestEventsDropWhenFull(t *testing.T) {
	c, _ := newTestCapture(time.Second)
	for i := 0; i < 100; i++ {
		c.Handle(runeKey('r'))
	}
	// The listener must never block; the buffered channel simply drops.
	if len(c.events) != cap(c.events) {
		t.Fatalf("expected full event buffer, got %d/%d", len(c.events), cap(c.events))
	}
}
