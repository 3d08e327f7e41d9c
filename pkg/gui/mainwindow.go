//go:build gtk

// Package gui is the optional GTK4 front end: camera view, live telemetry
// and the same keyboard controls as the terminal client.
package gui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/control"
	"github.com/alex-tanton/LunarAutonomyChallenge/pkg/models"
)

// Session is what the window reads from and drives. The manual control
// loop implements it; the window never talks to the transport directly.
type Session interface {
	Telemetry() models.Telemetry
	Setpoints() models.Setpoints
	LightLevels() map[models.SensorPosition]float64
	CameraFrame() (models.CameraFrame, bool)
	ActiveCamera() models.SensorPosition

	PressKey(key control.DirectionalKey)
	ReleaseKey(key control.DirectionalKey)
	ToggleLight(pos models.SensorPosition, reverse bool)
	ToggleCamera(reverse bool)
}

// MainWindow represents the main application window
type MainWindow struct {
	app     *gtk.Application
	window  *gtk.ApplicationWindow
	session Session

	headerBar    *gtk.HeaderBar
	mainBox      *gtk.Box
	sidebar      *gtk.Box
	cameraArea   *gtk.DrawingArea
	telemetryLbl *gtk.Label
	setpointsLbl *gtk.Label
	lightsLbl    *gtk.Label
	statusBar    *gtk.Label
}

// NewMainWindow creates and displays the main application window
func NewMainWindow(app *gtk.Application, session Session) *MainWindow {
	mw := &MainWindow{
		app:     app,
		session: session,
	}

	mw.buildUI()
	mw.setupActions()
	mw.setupKeyboard()
	mw.startRefresh()
	mw.window.Show()

	return mw
}

// buildUI constructs the entire window layout
func (mw *MainWindow) buildUI() {
	mw.window = gtk.NewApplicationWindow(mw.app)
	mw.window.SetTitle("Lunar Rover Control")
	mw.window.SetDefaultSize(1200, 800)

	mw.headerBar = gtk.NewHeaderBar()
	title := gtk.NewLabel("Lunar Rover Control")
	title.AddCSSClass("title")
	mw.headerBar.SetTitleWidget(title)
	mw.window.SetTitlebar(mw.headerBar)

	mw.mainBox = gtk.NewBox(gtk.OrientationHorizontal, 0)

	// Camera view fills the left side.
	mw.cameraArea = gtk.NewDrawingArea()
	mw.cameraArea.SetHExpand(true)
	mw.cameraArea.SetVExpand(true)
	mw.cameraArea.SetDrawFunc(mw.drawCameraFunc)
	mw.mainBox.Append(mw.cameraArea)

	// Sidebar with live state.
	mw.sidebar = gtk.NewBox(gtk.OrientationVertical, 12)
	mw.sidebar.SetMarginTop(12)
	mw.sidebar.SetMarginBottom(12)
	mw.sidebar.SetMarginStart(12)
	mw.sidebar.SetMarginEnd(12)
	mw.sidebar.SetSizeRequest(320, -1)

	mw.telemetryLbl = mw.addSection("Telemetry")
	mw.setpointsLbl = mw.addSection("Target Values")
	mw.lightsLbl = mw.addSection("Lights")

	mw.statusBar = gtk.NewLabel("Connecting...")
	mw.statusBar.SetXAlign(0)
	mw.sidebar.Append(mw.statusBar)

	mw.mainBox.Append(mw.sidebar)
	mw.window.SetChild(mw.mainBox)
}

func (mw *MainWindow) addSection(heading string) *gtk.Label {
	head := gtk.NewLabel(heading)
	head.AddCSSClass("heading")
	head.SetXAlign(0)
	mw.sidebar.Append(head)

	body := gtk.NewLabel("")
	body.SetXAlign(0)
	body.AddCSSClass("monospace")
	mw.sidebar.Append(body)
	return body
}

func (mw *MainWindow) setupActions() {
	cameraAction := gio.NewSimpleAction("next-camera", nil)
	cameraAction.ConnectActivate(func(param *gio.Variant) {
		mw.session.ToggleCamera(false)
	})
	mw.window.AddAction(cameraAction)

	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(param *gio.Variant) {
		mw.window.Close()
	})
	mw.window.AddAction(quitAction)

	mw.app.SetAccelsForAction("win.next-camera", []string{"Tab"})
	mw.app.SetAccelsForAction("win.quit", []string{"Escape"})
}

// setupKeyboard routes held keys into the control loop. GTK delivers real
// press and release events, so no hold-window heuristic is needed here.
func (mw *MainWindow) setupKeyboard() {
	controller := gtk.NewEventControllerKey()

	controller.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		if key, ok := directionalKeyval(keyval); ok {
			mw.session.PressKey(key)
			return true
		}
		if pos, ok := lightKeyval(keyval); ok {
			mw.session.ToggleLight(pos, state&gdk.ShiftMask != 0)
			return true
		}
		return false
	})
	controller.ConnectKeyReleased(func(keyval, keycode uint, state gdk.ModifierType) {
		if key, ok := directionalKeyval(keyval); ok {
			mw.session.ReleaseKey(key)
		}
	})

	mw.window.AddController(controller)
}

// startRefresh repaints the camera and sidebar on a fixed cadence.
func (mw *MainWindow) startRefresh() {
	glib.TimeoutAdd(50, func() bool {
		mw.cameraArea.QueueDraw()
		mw.updateSidebar()
		return true
	})
}

func (mw *MainWindow) updateSidebar() {
	t := mw.session.Telemetry()
	mw.telemetryLbl.SetText(fmt.Sprintf(
		"Map: %s\nFrame: %d\nSim time: %.2fs\nLocation: (%.2f, %.2f, %.2f)\nYaw: %.1f\nPower: %.1f Wh",
		t.MapName, t.Frame, t.SimTime, t.X, t.Y, t.Z, t.Yaw, t.CurrentPower))

	sp := mw.session.Setpoints()
	var lines string
	for _, ch := range models.ActuatorChannels {
		cfg, _ := models.ConfigFor(ch)
		lines += fmt.Sprintf("%-18s %7.3f %s\n", ch.String(), sp.Value(ch), cfg.Unit)
	}
	mw.setpointsLbl.SetText(lines)

	levels := mw.session.LightLevels()
	var lights string
	for _, pos := range models.SensorPositions {
		lights += fmt.Sprintf("%-12s %3.0f%%\n", pos.String(), levels[pos])
	}
	mw.lightsLbl.SetText(lights)

	mw.statusBar.SetText(fmt.Sprintf("Viewing %s camera", mw.session.ActiveCamera()))
}

func directionalKeyval(keyval uint) (control.DirectionalKey, bool) {
	switch keyval {
	case gdk.KEY_w, gdk.KEY_W, gdk.KEY_Up:
		return control.KeyForward, true
	case gdk.KEY_s, gdk.KEY_S, gdk.KEY_Down:
		return control.KeyBackward, true
	case gdk.KEY_a, gdk.KEY_A, gdk.KEY_Left:
		return control.KeyTurnLeft, true
	case gdk.KEY_d, gdk.KEY_D, gdk.KEY_Right:
		return control.KeyTurnRight, true
	case gdk.KEY_f, gdk.KEY_F:
		return control.KeyFrontDrumUp, true
	case gdk.KEY_v, gdk.KEY_V:
		return control.KeyFrontDrumDown, true
	case gdk.KEY_g, gdk.KEY_G:
		return control.KeyFrontArmUp, true
	case gdk.KEY_b, gdk.KEY_B:
		return control.KeyFrontArmDown, true
	case gdk.KEY_h, gdk.KEY_H:
		return control.KeyBackArmUp, true
	case gdk.KEY_n, gdk.KEY_N:
		return control.KeyBackArmDown, true
	case gdk.KEY_j, gdk.KEY_J:
		return control.KeyBackDrumUp, true
	case gdk.KEY_m, gdk.KEY_M:
		return control.KeyBackDrumDown, true
	}
	return 0, false
}

func lightKeyval(keyval uint) (models.SensorPosition, bool) {
	switch keyval {
	case gdk.KEY_1, gdk.KEY_exclam:
		return models.Front, true
	case gdk.KEY_2, gdk.KEY_at:
		return models.FrontLeft, true
	case gdk.KEY_3, gdk.KEY_numbersign:
		return models.FrontRight, true
	case gdk.KEY_4, gdk.KEY_dollar:
		return models.Left, true
	case gdk.KEY_5, gdk.KEY_percent:
		return models.Right, true
	case gdk.KEY_6, gdk.KEY_asciicircum:
		return models.BackLeft, true
	case gdk.KEY_7, gdk.KEY_ampersand:
		return models.BackRight, true
	case gdk.KEY_8, gdk.KEY_asterisk:
		return models.Back, true
	}
	return 0, false
}
