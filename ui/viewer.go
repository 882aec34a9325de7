package ui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thermocam/app"
)

const controlsHelp = "Space: pause | S: snapshot | R: reset range | L: legend | P: perf | F11: fullscreen"

// Viewer is the windowed front end for a running camera.
type Viewer struct {
	app       *app.App
	presenter *Presenter
	legend    *Legend
	hud       *HUD
	controls  *ControlPanel
	perfPanel *PerfPanel

	title      string
	source     string
	showLegend bool
	showPerf   bool
	err        error
}

// NewViewer creates a viewer for a. The raylib window must already exist.
func NewViewer(a *app.App, title, source string, scale int) *Viewer {
	p := NewPresenter(a.Framebuffer(), scale)
	p.Init()
	p.Upload()

	stripW := int32(a.Pipeline().Layout().OriginX) * p.Scale()
	panelW := stripW - 20
	if panelW < 160 {
		panelW = 160
	}

	return &Viewer{
		app:        a,
		presenter:  p,
		legend:     NewLegend(a.Pipeline().Ramp()),
		hud:        NewHUD(),
		controls:   NewControlPanel(10, 290, panelW),
		perfPanel:  NewPerfPanel(int32(rl.GetScreenWidth())-240, 16),
		title:      title,
		source:     source,
		showLegend: true,
	}
}

// Update handles input and runs a pipeline tick when one is due.
// It returns the error that ended the run, if any.
func (v *Viewer) Update() error {
	v.app.RecordFrame()
	if v.err != nil {
		return v.err
	}

	v.handleInput()

	ticked, err := v.app.Poll()
	if err != nil {
		v.err = err
		slog.Error("camera stopped", "error", err, "tick", v.app.Tick())
		return err
	}
	if ticked {
		v.presenter.Upload()
	}
	return nil
}

func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.app.SetPaused(!v.app.Paused())
	}
	if rl.IsKeyPressed(rl.KeyS) {
		v.snapshot()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.app.ResetRange()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		v.showLegend = !v.showLegend
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}
	if rl.IsKeyPressed(rl.KeyH) {
		v.controls.Toggle()
	}
}

func (v *Viewer) snapshot() {
	if _, err := v.app.SaveSnapshot(nil); err != nil {
		slog.Warn("snapshot not saved", "error", err)
	}
}

// Draw renders one window frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Black)
	v.presenter.Draw()

	frame := v.app.Frame()
	layout := v.app.Pipeline().Layout()
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	if v.showLegend && frame.Tick > 0 {
		v.legend.Draw(10, 70, 20, 200, frame.Display)
	}

	actions := v.controls.Draw(ControlState{
		Paused:     v.app.Paused(),
		ShowLegend: v.showLegend,
		ShowPerf:   v.showPerf,
	})
	v.apply(actions)

	history := v.app.Pipeline().History()
	data := HUDData{
		Title:        v.title,
		Source:       v.source,
		Tick:         v.app.Tick(),
		FPS:          rl.GetFPS(),
		Overruns:     v.app.Overruns(),
		Paused:       v.app.Paused(),
		WarmingUp:    history.WarmingUp(),
		Filled:       history.Filled(),
		Depth:        history.Depth(),
		Extremes:     frame.Extremes,
		Hover:        v.presenter.Hover(layout, frame.Smoothed),
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	}
	if bm := v.app.LastBookmark(); bm != nil {
		data.LastBookmark = fmt.Sprintf("%s @ %d", bm.Type, bm.Tick)
	}
	if v.err != nil {
		data.LastBookmark = "STOPPED: sensor read failed"
	}
	v.hud.Draw(data, 10, v.controls.width)
	v.hud.DrawControls(screenH, controlsHelp)

	if v.showPerf {
		v.perfPanel.SetPosition(screenW-240, 16)
		v.perfPanel.Draw(v.app.PerfStats())
	}
}

func (v *Viewer) apply(a ControlActions) {
	if !a.Any() {
		return
	}
	if a.TogglePause {
		v.app.SetPaused(!v.app.Paused())
	}
	if a.Snapshot {
		v.snapshot()
	}
	if a.ResetRange {
		v.app.ResetRange()
	}
	if a.ToggleLegend {
		v.showLegend = !v.showLegend
	}
	if a.TogglePerf {
		v.showPerf = !v.showPerf
	}
}

// Unload releases GPU resources.
func (v *Viewer) Unload() {
	v.presenter.Unload()
}

// RunSensorMissing shows the inert sensor screen until the window closes.
func RunSensorMissing(reason string) {
	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		DrawSensorMissing(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), reason)
		rl.EndDrawing()
	}
}
