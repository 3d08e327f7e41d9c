// Package config loads client settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// MQTT Configuration
	MQTTBroker   string
	MQTTClientID string
	MQTTUsername string
	MQTTPassword string
	TopicPrefix  string

	// World setup
	Preset           int
	RandomizePreset  bool
	CameraWidth      int
	CameraHeight     int

	// Loop rates
	ControlRate int
	StepRate    int

	// Recording
	OutputDir     string
	RecordingName string

	// Calibration
	CalibrationPath string

	// Web viewer
	WebPort int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "lunar-client"),
		MQTTUsername: getEnv("MQTT_USERNAME", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),
		TopicPrefix:  getEnv("MQTT_TOPIC_PREFIX", "lac"),

		Preset:          getEnvInt("WORLD_PRESET", 0),
		RandomizePreset: getEnvBool("WORLD_RANDOMIZE", false),
		CameraWidth:     getEnvInt("CAMERA_WIDTH", 2448),
		CameraHeight:    getEnvInt("CAMERA_HEIGHT", 2048),

		ControlRate: getEnvInt("CONTROL_RATE", 60),
		StepRate:    getEnvInt("STEP_RATE", 20),

		OutputDir:     getEnv("OUTPUT_DIR", "_out"),
		RecordingName: getEnv("RECORDING_NAME", "manual_recording.rec"),

		CalibrationPath: getEnv("CALIBRATION_PATH", "calibration.json"),

		WebPort: getEnvInt("WEB_PORT", 8080),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as bool, using default: %v", key, err)
		return defaultValue
	}
	return boolValue
}
