package ui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thermocam/display"
	"github.com/pthm-cable/thermocam/thermal"
)

// Presenter shows a framebuffer in the raylib window, magnified by an
// integer scale, and draws the overlay text the pipeline printed.
type Presenter struct {
	fb       *display.Framebuffer
	scale    int32
	tex      rl.Texture2D
	pixels   []color.RGBA
	renderer *Renderer
	loaded   bool
}

// NewPresenter creates a presenter for fb. Init must be called once the
// raylib window exists.
func NewPresenter(fb *display.Framebuffer, scale int) *Presenter {
	if scale < 1 {
		scale = 1
	}
	w, h := fb.Bounds()
	return &Presenter{
		fb:       fb,
		scale:    int32(scale),
		pixels:   make([]color.RGBA, 0, w*h),
		renderer: NewRenderer(),
	}
}

// Init creates the GPU texture.
func (p *Presenter) Init() {
	if p.loaded {
		return
	}
	w, h := p.fb.Bounds()
	img := rl.GenImageColor(w, h, rl.Black)
	p.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(p.tex, rl.FilterPoint)
	rl.UnloadImage(img)
	p.loaded = true
}

// Upload copies the framebuffer into the texture.
func (p *Presenter) Upload() {
	if !p.loaded {
		p.Init()
	}
	p.pixels = p.fb.AppendRGBA(p.pixels)
	rl.UpdateTexture(p.tex, p.pixels)
}

// Draw renders the framebuffer and its overlay text at the window origin.
func (p *Presenter) Draw() {
	p.DrawAt(0, 0)
}

// DrawAt renders the framebuffer with its top-left corner at (x, y).
func (p *Presenter) DrawAt(x, y int32) {
	if !p.loaded {
		return
	}
	w, h := p.fb.Bounds()
	rl.DrawTexturePro(
		p.tex,
		rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)},
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(int32(w) * p.scale), Height: float32(int32(h) * p.scale)},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)

	if text, tx, ty := p.fb.Text(); text != "" {
		rl.DrawText(text, x+int32(tx)*p.scale+4, y+int32(ty)*p.scale+4, p.renderer.Theme.OverlayFont, rl.White)
	}
}

// Hover returns a readout for the map cell under the mouse, or "" when the
// mouse is outside the map.
func (p *Presenter) Hover(layout thermal.Layout, smoothed *thermal.Grid) string {
	if smoothed == nil {
		return ""
	}
	mouse := rl.GetMousePosition()
	x, y, ok := layout.CellAt(int(mouse.X)/int(p.scale), int(mouse.Y)/int(p.scale))
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%d,%d) %.1f°C", x, y, smoothed.At(x, y))
}

// Scale returns the window magnification.
func (p *Presenter) Scale() int32 { return p.scale }

// Unload releases the texture.
func (p *Presenter) Unload() {
	if p.loaded {
		rl.UnloadTexture(p.tex)
		p.loaded = false
	}
}
