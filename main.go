//go:build !gtk

package main

import (
	"flag"
	"os"

	"github.com/pterm/pterm"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/agent"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/calib"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/recorder"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/replay"
)

func main() {
	agentMode := flag.Bool("agent", false, "Run the autonomous agent instead of manual control")
	webMode := flag.Bool("web", false, "Serve the browser viewer alongside manual control")
	inspectFile := flag.String("inspect", "", "Inspect a recorded session log and exit")
	compareFiles := flag.String("compare", "", "Compare two session logs, comma separated")
	exportFile := flag.String("export", "", "Export a session log to CSV and exit")
	exportOut := flag.String("out", "session.csv", "CSV output path for -export")
	calibrate := flag.Bool("calibrate", false, "Edit the ramp calibration and exit")
	dryRun := flag.Bool("dry-run", false, "With -calibrate, preview without saving")
	listChannels := flag.Bool("list", false, "List actuator channels and exit")
	flag.Parse()

	switch {
	case *inspectFile != "":
		replay.Inspect(*inspectFile)

	case *compareFiles != "":
		paths := splitPair(*compareFiles)
		if paths == nil {
			pterm.Error.Println("Usage: -compare first.rec,second.rec")
			os.Exit(1)
		}
		replay.CompareSessions(paths[0], paths[1])

	case *exportFile != "":
		records, err := replay.ReadSession(*exportFile)
		if err != nil {
			pterm.Error.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := recorder.ExportCSV(records, *exportOut); err != nil {
			pterm.Error.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		pterm.Success.Printf("Exported %d frames to %s\n", len(records), *exportOut)

	case *calibrate:
		calib.InteractiveEdit(loadConfig().CalibrationPath, *dryRun)

	case *listChannels:
		printChannels()

	case *agentMode:
		if err := runAgent(agent.NoOp{}); err != nil {
			pterm.Error.Printf("Mission failed: %v\n", err)
			os.Exit(1)
		}

	default:
		if err := runManual(*webMode); err != nil {
			pterm.Error.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
}
