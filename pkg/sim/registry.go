package sim

import (
	"sync"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// FrameRegistry fans camera frames out to registered consumers. The client
// owns the registry for its whole lifetime; consumers hold only their ID.
type FrameRegistry struct {
	mu       sync.RWMutex
	handlers map[string]FrameHandler
}

func NewFrameRegistry() *FrameRegistry {
	return &FrameRegistry{handlers: make(map[string]FrameHandler)}
}

// Register installs or replaces the handler under id.
func (r *FrameRegistry) Register(id string, h FrameHandler) {
	r.mu.Lock()
	r.handlers[id] = h
	r.mu.Unlock()
}

// Unregister removes the handler; unknown IDs are a no-op.
func (r *FrameRegistry) Unregister(id string) {
	r.mu.Lock()
	delete(r.handlers, id)
	r.mu.Unlock()
}

// Dispatch delivers a frame to every registered handler. Runs on the
// transport's delivery goroutine.
func (r *FrameRegistry) Dispatch(frame models.CameraFrame) {
	r.mu.RLock()
	hs := make([]FrameHandler, 0, len(r.handlers))
	for _, h := range r.handlers {
		hs = append(hs, h)
	}
	r.mu.RUnlock()

	for _, h := range hs {
		h(frame)
	}
}

// Len reports the number of registered consumers.
func (r *FrameRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// TelemetryRegistry is the telemetry counterpart of FrameRegistry.
type TelemetryRegistry struct {
	mu       sync.RWMutex
	handlers map[string]TelemetryHandler
}

func NewTelemetryRegistry() *TelemetryRegistry {
	return &TelemetryRegistry{handlers: make(map[string]TelemetryHandler)}
}

func (r *TelemetryRegistry) Register(id string, h TelemetryHandler) {
	r.mu.Lock()
	r.handlers[id] = h
	r.mu.Unlock()
}

func (r *TelemetryRegistry) Unregister(id string) {
	r.mu.Lock()
	delete(r.handlers, id)
	r.mu.Unlock()
}

// Len reports the number of registered consumers.
func (r *TelemetryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

func (r *TelemetryRegistry) Dispatch(t models.Telemetry) {
	r.mu.RLock()
	hs := make([]TelemetryHandler, 0, len(r.handlers))
	for _, h := range r.handlers {
		hs = append(hs, h)
	}
	r.mu.RUnlock()

	for _, h := range hs {
		h(t)
	}
}
