package sim

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// broker is the slice of the paho client the sim client actually uses.
// mqtt.Client satisfies it; tests substitute a fake.
type broker interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	Disconnect(quiesce uint)
	IsConnected() bool
}

// ClientConfig holds the connection settings for the simulator broker.
type ClientConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// Client is the MQTT-backed Simulator implementation. Commands go out as
// JSON payloads on per-actuator topics; telemetry and camera frames arrive
// as pushed messages on the broker's delivery goroutine and are fanned out
// through the registries.
type Client struct {
	client broker
	prefix string

	frames    *FrameRegistry
	telemetry *TelemetryRegistry

	mu   sync.RWMutex
	last models.Telemetry
}

// NewClient connects to the simulator broker and subscribes to the
// telemetry and camera topics.
func NewClient(cfg ClientConfig) (*Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("sim: connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		log.Println("sim: connection established")
	})

	native := mqtt.NewClient(opts)
	if token := native.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to simulator broker: %w", token.Error())
	}

	c := newClientWithBroker(native, cfg.TopicPrefix)
	if err := c.subscribeAll(); err != nil {
		native.Disconnect(250)
		return nil, err
	}
	return c, nil
}

func newClientWithBroker(b broker, prefix string) *Client {
	if prefix == "" {
		prefix = "lac"
	}
	return &Client{
		client:    b,
		prefix:    strings.TrimSuffix(prefix, "/"),
		frames:    NewFrameRegistry(),
		telemetry: NewTelemetryRegistry(),
	}
}

func (c *Client) subscribeAll() error {
	if err := c.subscribe(c.topic("telemetry"), c.handleTelemetry); err != nil {
		return fmt.Errorf("failed to subscribe to telemetry: %w", err)
	}
	if err := c.subscribe(c.topic("camera/+"), c.handleFrame); err != nil {
		return fmt.Errorf("failed to subscribe to camera frames: %w", err)
	}
	return nil
}

func (c *Client) subscribe(topic string, handler mqtt.MessageHandler) error {
	token := c.client.Subscribe(topic, 1, handler)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (c *Client) topic(suffix string) string {
	return c.prefix + "/" + suffix
}

func (c *Client) publish(topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}
	token := c.client.Publish(topic, 1, false, body)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}
	return nil
}

// framePayload is the wire form of a camera frame; Data is base64 in JSON.
type framePayload struct {
	Frame  uint64 `json:"frame"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

func (c *Client) handleFrame(_ mqtt.Client, msg mqtt.Message) {
	pos, err := models.ParseSensorPosition(topicTail(msg.Topic()))
	if err != nil {
		log.Printf("sim: dropping frame: %v", err)
		return
	}

	var payload framePayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.Printf("sim: dropping malformed frame on %s: %v", msg.Topic(), err)
		return
	}

	c.frames.Dispatch(models.CameraFrame{
		Position: pos,
		Frame:    payload.Frame,
		Width:    payload.Width,
		Height:   payload.Height,
		Pixels:   payload.Data,
	})
}

func (c *Client) handleTelemetry(_ mqtt.Client, msg mqtt.Message) {
	var t models.Telemetry
	if err := json.Unmarshal(msg.Payload(), &t); err != nil {
		log.Printf("sim: dropping malformed telemetry: %v", err)
		return
	}

	c.mu.Lock()
	c.last = t
	c.mu.Unlock()

	c.telemetry.Dispatch(t)
}

// topicTail returns the segment after the last slash.
func topicTail(topic string) string {
	if i := strings.LastIndex(topic, "/"); i >= 0 {
		return topic[i+1:]
	}
	return topic
}

// Frames returns the camera frame consumer registry.
func (c *Client) Frames() *FrameRegistry { return c.frames }

// Telemetry returns the telemetry consumer registry.
func (c *Client) Telemetry() *TelemetryRegistry { return c.telemetry }

// MapName reports the map named by the most recent telemetry tick.
func (c *Client) MapName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last.MapName == "" {
		return "unknown"
	}
	return c.last.MapName
}

// LastTelemetry returns the most recent telemetry tick.
func (c *Client) LastTelemetry() models.Telemetry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// SpawnRover asks the simulator to spawn the vehicle with the given sensor
// setup and returns its command handle.
func (c *Client) SpawnRover(configs map[models.SensorPosition]models.SensorConfig) (Rover, error) {
	payload := make(map[string]models.SensorConfig, len(configs))
	for pos, cfg := range configs {
		payload[pos.Topic()] = cfg
	}
	if err := c.publish(c.topic("world/spawn"), payload); err != nil {
		return nil, err
	}
	return &rover{c: c}, nil
}

// SetPreset selects a world preset.
func (c *Client) SetPreset(id int, randomize bool) error {
	return c.publish(c.topic("world/preset"), map[string]interface{}{
		"id":        id,
		"randomize": randomize,
	})
}

// StartRecorder begins a server-side session recording.
func (c *Client) StartRecorder(name string) error {
	return c.publish(c.topic("recorder/start"), map[string]string{"name": name})
}

// StopRecorder ends the current session recording.
func (c *Client) StopRecorder() error {
	return c.publish(c.topic("recorder/stop"), map[string]string{})
}

// Replay plays back a recorded session on the server.
func (c *Client) Replay(name string, start, duration float64) error {
	return c.publish(c.topic("recorder/replay"), map[string]interface{}{
		"name":     name,
		"start":    start,
		"duration": duration,
	})
}

// Close disconnects from the broker.
func (c *Client) Close() {
	c.client.Disconnect(250)
}

// rover delegates vehicle commands to its owning client.
type rover struct {
	c *Client
}

func (r *rover) ApplyVelocityControl(v models.VelocityControl) error {
	return r.c.publish(r.c.topic("rover/velocity"), v)
}

func (r *rover) SetFrontArmAngle(rad float64) error {
	return r.c.publish(r.c.topic("rover/front_arm"), map[string]float64{"value": rad})
}

func (r *rover) SetBackArmAngle(rad float64) error {
	return r.c.publish(r.c.topic("rover/back_arm"), map[string]float64{"value": rad})
}

func (r *rover) SetFrontDrumSpeed(v float64) error {
	return r.c.publish(r.c.topic("rover/front_drum"), map[string]float64{"value": v})
}

func (r *rover) SetBackDrumSpeed(v float64) error {
	return r.c.publish(r.c.topic("rover/back_drum"), map[string]float64{"value": v})
}

func (r *rover) SetLightState(pos models.SensorPosition, intensity float64) error {
	return r.c.publish(r.c.topic("rover/light/"+pos.Topic()), map[string]float64{"intensity": intensity})
}

func (r *rover) SetCameraState(pos models.SensorPosition, active bool) error {
	return r.c.publish(r.c.topic("rover/camera/"+pos.Topic()), map[string]bool{"active": active})
}

func (r *rover) SetRadiatorCover(state models.RadiatorCoverState) error {
	return r.c.publish(r.c.topic("rover/radiator"), map[string]string{"state": state.String()})
}

func (r *rover) Destroy() error {
	return r.c.publish(r.c.topic("rover/destroy"), map[string]string{})
}
