package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
)

// ControlActions reports which control panel buttons were pressed this frame.
type ControlActions struct {
	TogglePause  bool
	Snapshot     bool
	ToggleLegend bool
	TogglePerf   bool
	ResetRange   bool
}

// Any reports whether any button was pressed.
func (a ControlActions) Any() bool {
	return a.TogglePause || a.Snapshot || a.ToggleLegend || a.TogglePerf || a.ResetRange
}

// ControlPanel is a column of raygui buttons.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible sets panel visibility.
func (c *ControlPanel) SetVisible(visible bool) {
	c.visible = visible
}

// Toggle toggles visibility and returns the new state.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// ControlState is the state reflected in button labels.
type ControlState struct {
	Paused     bool
	ShowLegend bool
	ShowPerf   bool
}

// Draw renders the buttons and returns the actions taken. Returns the zero
// value when hidden.
func (c *ControlPanel) Draw(state ControlState) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	t := c.renderer.Theme
	const buttonH = 22
	const gap = 4
	bw := float32(c.width - 2*t.Padding)
	height := int32(5*(buttonH+gap)) + 2*t.Padding - gap
	c.renderer.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + t.Padding)
	y := float32(c.y + t.Padding)
	button := func(label string) bool {
		pressed := gui.Button(rl.NewRectangle(x, y, bw, buttonH), label)
		y += buttonH + gap
		return pressed
	}

	actions.TogglePause = button(toggleText(state.Paused, "Resume", "Pause"))
	actions.Snapshot = button("Snapshot")
	actions.ResetRange = button("Reset Range")
	actions.ToggleLegend = button(toggleText(state.ShowLegend, "Hide Legend", "Show Legend"))
	actions.TogglePerf = button(toggleText(state.ShowPerf, "Hide Perf", "Show Perf"))
	return actions
}
