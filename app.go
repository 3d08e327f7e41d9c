package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/agent"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/calib"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/config"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/sim"
)

func loadConfig() *config.Config {
	return config.Load()
}

func splitPair(s string) []string {
	parts := strings.Split(s, ",")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	return parts
}

func printChannels() {
	tableData := pterm.TableData{
		{"Channel", "Step", "Range", "Initial", "Unit", "Behaviour"},
	}
	for _, cfg := range models.ChannelConfigs {
		tableData = append(tableData, []string{
			cfg.Channel.String(),
			fmt.Sprintf("%.3f", cfg.Step),
			fmt.Sprintf("[%.2f, %.2f]", cfg.Min, cfg.Max),
			fmt.Sprintf("%.2f", cfg.Initial),
			cfg.Unit,
			cfg.Description,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// connect dials the simulator broker from the environment config.
func connect(cfg *config.Config) (*sim.Client, error) {
	return sim.NewClient(sim.ClientConfig{
		Broker:      cfg.MQTTBroker,
		ClientID:    cfg.MQTTClientID,
		Username:    cfg.MQTTUsername,
		Password:    cfg.MQTTPassword,
		TopicPrefix: cfg.TopicPrefix,
	})
}

func runAgent(a agent.Agent) error {
	cfg := loadConfig()
	client, err := connect(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := agent.NewRunner(client, a)
	return runner.Run(ctx)
}

// loadCalibration resolves the effective channel configs and light step,
// falling back to built-ins when the file is absent or unreadable.
func loadCalibration(path string) ([]models.ChannelConfig, float64) {
	cal, err := calib.Load(path)
	if err != nil {
		pterm.Warning.Printf("Ignoring calibration file: %v\n", err)
		cal = calib.Calibration{}
	}
	return cal.Apply()
}
