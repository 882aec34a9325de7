package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thermocam/thermal"
)

// Legend draws the color ramp as a vertical bar, hottest at the top,
// labelled with the display range.
type Legend struct {
	renderer *Renderer
	ramp     thermal.Ramp
}

// NewLegend creates a legend for ramp.
func NewLegend(ramp thermal.Ramp) *Legend {
	return &Legend{renderer: NewRenderer(), ramp: ramp}
}

// Draw renders the legend with its top-left corner at (x, y).
func (l *Legend) Draw(x, y, width, height int32, rng thermal.Range) {
	if height < 2 {
		return
	}
	n := int32(l.ramp.Len())
	for row := int32(0); row < height; row++ {
		// Row 0 is the hottest entry.
		i := int((height - 1 - row) * (n - 1) / (height - 1))
		rl.DrawRectangle(x, y+row, width, 1, l.ramp.At(i).ToRGBA())
	}
	rl.DrawRectangleLines(x, y, width, height, l.renderer.Theme.PanelBorder)

	t := l.renderer.Theme
	labelX := x + width + 4
	mid := (rng.Min + rng.Max) / 2
	rl.DrawText(fmt.Sprintf("%.1f", rng.Max), labelX, y, t.FontSize, t.ValueColor)
	rl.DrawText(fmt.Sprintf("%.1f", mid), labelX, y+height/2-t.FontSize/2, t.FontSize, t.LabelColor)
	rl.DrawText(fmt.Sprintf("%.1f", rng.Min), labelX, y+height-t.FontSize, t.FontSize, t.ValueColor)
}
