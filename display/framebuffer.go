// Package display holds the device surface the pipeline paints into.
package display

import (
	"image"
	"image/color"

	"github.com/pthm-cable/thermocam/thermal"
)

// Framebuffer is a W x H RGB565 surface. It implements thermal.Surface.
// Text is not rasterised; the most recent overlay string is kept for the
// front end to draw.
type Framebuffer struct {
	w, h  int
	pix   []thermal.RGB565
	text  string
	textX int
	textY int
	rects uint64
}

// NewFramebuffer allocates a black w x h framebuffer.
func NewFramebuffer(w, h int) *Framebuffer {
	if w < 1 || h < 1 {
		panic("display: framebuffer needs positive dimensions")
	}
	return &Framebuffer{w: w, h: h, pix: make([]thermal.RGB565, w*h)}
}

// PaintRect fills the rectangle with c, clipped to the framebuffer.
func (f *Framebuffer) PaintRect(x, y, w, h int, c thermal.RGB565) {
	f.rects++
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.w), min(y+h, f.h)
	for py := y0; py < y1; py++ {
		row := f.pix[py*f.w : (py+1)*f.w]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// PrintText records text as the current overlay.
func (f *Framebuffer) PrintText(x, y int, text string) {
	f.text = text
	f.textX, f.textY = x, y
}

// Bounds returns the framebuffer size.
func (f *Framebuffer) Bounds() (w, h int) { return f.w, f.h }

// Pixel returns the color at (x, y). Out-of-range coordinates return black.
func (f *Framebuffer) Pixel(x, y int) thermal.RGB565 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return thermal.Black
	}
	return f.pix[y*f.w+x]
}

// Text returns the overlay text and its position.
func (f *Framebuffer) Text() (text string, x, y int) { return f.text, f.textX, f.textY }

// RectCount returns how many rectangles have been painted.
func (f *Framebuffer) RectCount() uint64 { return f.rects }

// Clear fills the framebuffer with black and drops the overlay text.
func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = thermal.Black
	}
	f.text = ""
}

// AppendRGBA converts the framebuffer to 8-bit RGBA, reusing dst when it
// has enough capacity.
func (f *Framebuffer) AppendRGBA(dst []color.RGBA) []color.RGBA {
	dst = dst[:0]
	for _, c := range f.pix {
		dst = append(dst, c.ToRGBA())
	}
	return dst
}

// Image returns a copy of the framebuffer as an image.RGBA.
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := f.pix[y*f.w+x].ToRGBA()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}
