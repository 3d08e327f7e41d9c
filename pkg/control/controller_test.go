package control

import (
	"math/rand"
	"testing"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

func newTestController() *Controller {
	return NewController(nil)
}

func TestValuesStayWithinBounds(t *testing.T) {
	c := newTestController()
	bounds := map[models.ActuatorChannel][2]float64{
		models.LinearSpeed:    {-0.5, 0.5},
		models.AngularSpeed:   {-0.5, 0.5},
		models.FrontDrumSpeed: {-0.17, 0.17},
		models.FrontArmAngle:  {-2.36, 2.36},
		models.BackArmAngle:   {-2.36, 2.36},
		models.BackDrumSpeed:  {-0.17, 0.17},
	}

	rng := rand.New(rand.NewSource(42))
	allKeys := []DirectionalKey{
		KeyForward, KeyBackward, KeyTurnLeft, KeyTurnRight,
		KeyFrontDrumUp, KeyFrontDrumDown, KeyFrontArmUp, KeyFrontArmDown,
		KeyBackArmUp, KeyBackArmDown, KeyBackDrumUp, KeyBackDrumDown,
	}

	for frame := 0; frame < 5000; frame++ {
		held := HeldKeys{}
		for _, k := range allKeys {
			if rng.Intn(3) == 0 {
				held[k] = true
			}
		}
		sp := c.Update(held)
		for ch, b := range bounds {
			v := sp.Value(ch)
			if v < b[0] || v > b[1] {
				t.Fatalf("frame %d: %s = %v outside [%v, %v]", frame, ch, v, b[0], b[1])
			}
		}
	}
}

func TestHoldDrivesToMaxThenHolds(t *testing.T) {
	c := newTestController()
	held := HeldKeys{KeyForward: true}

	// 0.5 / 0.01 = 50 frames to the clamp.
	var sp models.Setpoints
	for i := 0; i < 50; i++ {
		sp = c.Update(held)
	}
	if got := sp.LinearSpeed; got != 0.5 {
		t.Fatalf("after 50 held frames linear speed = %v, want 0.5", got)
	}
	for i := 0; i < 10; i++ {
		sp = c.Update(held)
		if sp.LinearSpeed != 0.5 {
			t.Fatalf("held at clamp drifted to %v", sp.LinearSpeed)
		}
	}
}

func TestDecayIsMonotonicAndStopsAtRest(t *testing.T) {
	c := newTestController()
	for i := 0; i < 60; i++ {
		c.Update(HeldKeys{KeyForward: true})
	}

	prev := c.Setpoints().LinearSpeed
	for i := 0; i < 100; i++ {
		sp := c.Update(HeldKeys{})
		if sp.LinearSpeed > prev {
			t.Fatalf("decay increased value: %v -> %v", prev, sp.LinearSpeed)
		}
		if sp.LinearSpeed < 0 {
			t.Fatalf("decay overshot resting value: %v", sp.LinearSpeed)
		}
		prev = sp.LinearSpeed
	}
	if prev != 0 {
		t.Fatalf("decay did not settle at rest, got %v", prev)
	}
}

func TestDecayScenario(t *testing.T) {
	// Hold forward 60 frames (clamp hit at frame 50), then
	// release for 10 frames decaying 0.02 per frame down to 0.3.
	c := newTestController()
	var sp models.Setpoints
	for i := 0; i < 60; i++ {
		sp = c.Update(HeldKeys{KeyForward: true})
	}
	if sp.LinearSpeed != 0.5 {
		t.Fatalf("after 60 held frames linear speed = %v, want 0.5", sp.LinearSpeed)
	}
	for i := 0; i < 10; i++ {
		sp = c.Update(HeldKeys{})
	}
	if got := sp.LinearSpeed; !almostEqual(got, 0.3) {
		t.Fatalf("after 10 released frames linear speed = %v, want 0.3", got)
	}
}

func TestHoldAndRampChannelsFreezeOnRelease(t *testing.T) {
	cases := []struct {
		name    string
		key     DirectionalKey
		channel models.ActuatorChannel
	}{
		{"front drum", KeyFrontDrumUp, models.FrontDrumSpeed},
		{"front arm", KeyFrontArmUp, models.FrontArmAngle},
		{"back arm", KeyBackArmDown, models.BackArmAngle},
		{"back drum", KeyBackDrumDown, models.BackDrumSpeed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController()
			for i := 0; i < 5; i++ {
				c.Update(HeldKeys{tc.key: true})
			}
			frozen := c.Setpoints().Value(tc.channel)
			for i := 0; i < 50; i++ {
				sp := c.Update(HeldKeys{})
				if sp.Value(tc.channel) != frozen {
					t.Fatalf("released %s moved from %v to %v", tc.channel, frozen, sp.Value(tc.channel))
				}
			}
		})
	}
}

func TestSimultaneousKeysFavourIncrease(t *testing.T) {
	c := newTestController()
	sp := c.Update(HeldKeys{KeyForward: true, KeyBackward: true})
	if sp.LinearSpeed != 0.01 {
		t.Fatalf("tie-break linear speed = %v, want 0.01", sp.LinearSpeed)
	}

	sp = c.Update(HeldKeys{KeyTurnRight: true, KeyTurnLeft: true})
	if sp.AngularSpeed != 0.01 {
		t.Fatalf("tie-break angular speed = %v, want 0.01", sp.AngularSpeed)
	}
}

func TestAngularSpeedSymmetricDecrease(t *testing.T) {
	c := newTestController()
	var sp models.Setpoints
	for i := 0; i < 60; i++ {
		sp = c.Update(HeldKeys{KeyTurnLeft: true})
	}
	if sp.AngularSpeed != -0.5 {
		t.Fatalf("left turn floor = %v, want -0.5", sp.AngularSpeed)
	}
}

func TestInitialArmAngles(t *testing.T) {
	c := newTestController()
	sp := c.Setpoints()
	if sp.FrontArmAngle != 0.79 || sp.BackArmAngle != 0.79 {
		t.Fatalf("initial arm angles = %v/%v, want 0.79/0.79", sp.FrontArmAngle, sp.BackArmAngle)
	}
}

func TestLightToggle(t *testing.T) {
	c := newTestController()

	if got := c.ToggleLight(models.Front, false); got != 10 {
		t.Fatalf("first toggle = %v, want 10", got)
	}
	if got := c.ToggleLight(models.Front, true); got != 0 {
		t.Fatalf("reversed toggle = %v, want 0", got)
	}
	// Clamped, never negative.
	if got := c.ToggleLight(models.Front, true); got != 0 {
		t.Fatalf("toggle below floor = %v, want 0", got)
	}
	for i := 0; i < 15; i++ {
		c.ToggleLight(models.Back, false)
	}
	if got := c.LightLevels()[models.Back]; got != 100 {
		t.Fatalf("toggle above ceiling = %v, want 100", got)
	}
	// Other positions untouched.
	if got := c.LightLevels()[models.Left]; got != 0 {
		t.Fatalf("unrelated position moved to %v", got)
	}
}

func TestCustomLightStep(t *testing.T) {
	c := newTestController()
	c.SetLightStep(25)
	if got := c.ToggleLight(models.Right, false); got != 25 {
		t.Fatalf("custom step toggle = %v, want 25", got)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
