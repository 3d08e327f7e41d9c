// Package web serves a read-only browser view of the running client:
// live telemetry, the current setpoints and the active camera feed.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

//go:embed templates/*
var templates embed.FS

// StateSource is what the server reads from; the manual control loop
// implements it over its own state.
type StateSource interface {
	Telemetry() models.Telemetry
	Setpoints() models.Setpoints
	LightLevels() map[models.SensorPosition]float64
	CameraFrame() (models.CameraFrame, bool)
}

type Server struct {
	source StateSource
	port   int

	upgrader websocket.Upgrader
}

func NewServer(source StateSource, port int) *Server {
	return &Server{
		source: source,
		port:   port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Router builds the HTTP surface; split out so tests can drive it with
// httptest.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/api/telemetry", s.handleTelemetry).Methods("GET")
	r.HandleFunc("/api/setpoints", s.handleSetpoints).Methods("GET")
	r.HandleFunc("/api/lights", s.handleLights).Methods("GET")
	r.HandleFunc("/camera.png", s.handleCamera).Methods("GET")
	r.HandleFunc("/ws", s.handleWS)

	return r
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	url := fmt.Sprintf("http://localhost%s", addr)

	pterm.Info.Printf("Web viewer listening at %s\n", url)
	openBrowser(url)

	server := &http.Server{
		Addr:        addr,
		Handler:     handlers.LoggingHandler(os.Stdout, s.Router()),
		ReadTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	content, err := templates.ReadFile("templates/index.html")
	if err != nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.source.Telemetry())
}

func (s *Server) handleSetpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.source.Setpoints())
}

func (s *Server) handleLights(w http.ResponseWriter, r *http.Request) {
	levels := s.source.LightLevels()
	out := make(map[string]float64, len(levels))
	for pos, level := range levels {
		out[pos.String()] = level
	}
	writeJSON(w, out)
}

func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.source.CameraFrame()
	if !ok || frame.Width <= 0 || frame.Height <= 0 || len(frame.Pixels) < frame.Width*frame.Height {
		http.Error(w, "No camera frame available", http.StatusNotFound)
		return
	}

	img := image.NewGray(image.Rect(0, 0, frame.Width, frame.Height))
	copy(img.Pix, frame.Pixels[:frame.Width*frame.Height])

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	png.Encode(w, img)
}

// wsUpdate is one websocket push: telemetry plus the current setpoints.
type wsUpdate struct {
	Telemetry models.Telemetry `json:"telemetry"`
	Setpoints models.Setpoints `json:"setpoints"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		update := wsUpdate{
			Telemetry: s.source.Telemetry(),
			Setpoints: s.source.Setpoints(),
		}
		if err := conn.WriteJSON(update); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
