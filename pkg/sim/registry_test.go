package sim

import (
	"sync"
	"testing"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

func TestFrameRegistryRegisterUnregister(t *testing.T) {
	r := NewFrameRegistry()

	var a, b int
	r.Register("a", func(models.CameraFrame) { a++ })
	r.Register("b", func(models.CameraFrame) { b++ })
	if r.Len() != 2 {
		t.Fatalf("Len = %d", r.Len())
	}

	r.Dispatch(models.CameraFrame{})
	if a != 1 || b != 1 {
		t.Fatalf("dispatch counts a=%d b=%d", a, b)
	}

	r.Unregister("a")
	r.Dispatch(models.CameraFrame{})
	if a != 1 || b != 2 {
		t.Fatalf("after unregister a=%d b=%d", a, b)
	}

	// Unknown IDs are a no-op.
	r.Unregister("missing")
}

func TestFrameRegistryReplaceHandler(t *testing.T) {
	r := NewFrameRegistry()

	var old, replacement int
	r.Register("camera", func(models.CameraFrame) { old++ })
	r.Register("camera", func(models.CameraFrame) { replacement++ })

	r.Dispatch(models.CameraFrame{})
	if old != 0 || replacement != 1 {
		t.Fatalf("old=%d new=%d", old, replacement)
	}
}

func TestRegistryConcurrentDispatch(t *testing.T) {
	r := NewTelemetryRegistry()

	var mu sync.Mutex
	count := 0
	r.Register("hud", func(models.Telemetry) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Dispatch(models.Telemetry{})
			}
		}()
	}
	for i := 0; i < 100; i++ {
		r.Register("web", func(models.Telemetry) {})
		r.Unregister("web")
	}
	wg.Wait()

	if count != 800 {
		t.Fatalf("count = %d, want 800", count)
	}
}
