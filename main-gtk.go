//go:build gtk

package main

import (
	"os"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/gui"
)

func main() {
	cfg := loadConfig()
	client, err := connect(cfg)
	if err != nil {
		pterm.Error.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	s, err := newSession(cfg, client)
	if err != nil {
		pterm.Error.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	s.headless = true
	defer s.teardown()

	go func() {
		if err := s.loop(); err != nil {
			pterm.Error.Printf("Control loop stopped: %v\n", err)
		}
	}()

	app := gtk.NewApplication("com.github.alex-tanton.lunar-rover", gio.ApplicationFlagsNone)
	app.ConnectActivate(func() {
		gui.NewMainWindow(app, s)
	})

	if code := app.Run(os.Args); code > 0 {
		os.Exit(code)
	}
}
