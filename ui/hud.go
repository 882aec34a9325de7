package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thermocam/telemetry"
	"github.com/pthm-cable/thermocam/thermal"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Source       string
	Tick         uint64
	FPS          int32
	Overruns     uint64
	Paused       bool
	WarmingUp    bool
	Filled       int
	Depth        int
	Extremes     thermal.Range
	Hover        string
	LastBookmark string
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD as a panel in the bottom-left corner.
func (h *HUD) Draw(data HUDData, x, width int32) {
	r := h.renderer
	height := int32(8)*r.Theme.LineHeight + 2*r.Theme.Padding
	y := data.ScreenHeight - height - 30

	r.DrawPanel(x, y, width, height)
	x += r.Theme.Padding
	y += r.Theme.Padding

	y = r.DrawSectionHeader(x, y, data.Title)
	y = r.DrawLabelValue(x, y, "Source", data.Source)
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Overruns", fmt.Sprintf("%d", data.Overruns))
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%.1f..%.1f", data.Extremes.Min, data.Extremes.Max))

	if data.WarmingUp && data.Depth > 0 {
		y = r.DrawBar(x, y, "Warm-up", float32(data.Filled)/float32(data.Depth), width-2*r.Theme.Padding)
	} else if data.Hover != "" {
		y = r.DrawLabelValue(x, y, "Cursor", data.Hover)
	}

	switch {
	case data.Paused:
		rl.DrawText("PAUSED", x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	case data.LastBookmark != "":
		rl.DrawText(data.LastBookmark, x, y, r.Theme.FontSize, r.Theme.WarnColor)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 12, rl.Gray)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y
	width := int32(230)
	height := int32(40 + 14*len(telemetry.Phases))

	p.renderer.DrawPanel(x-6, y-6, width, height)

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// DrawSensorMissing paints the screen shown when the sensor could not be
// opened. The camera stays inert; only the window can be closed.
func DrawSensorMissing(screenWidth, screenHeight int32, reason string) {
	rl.ClearBackground(rl.Black)
	title := "SENSOR NOT FOUND"
	size := int32(32)
	tw := rl.MeasureText(title, size)
	rl.DrawText(title, (screenWidth-tw)/2, screenHeight/2-size, size, rl.Red)

	rw := rl.MeasureText(reason, 14)
	if rw > screenWidth-20 {
		rl.DrawText(reason, 10, screenHeight/2+10, 14, rl.LightGray)
		return
	}
	rl.DrawText(reason, (screenWidth-rw)/2, screenHeight/2+10, 14, rl.LightGray)
}
