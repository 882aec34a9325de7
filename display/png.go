package display

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// EncodePNG writes the framebuffer as a PNG magnified by scale with
// nearest-neighbour sampling so map cells keep hard edges.
func EncodePNG(w io.Writer, fb *Framebuffer, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := fb.Image()
	if scale == 1 {
		return png.Encode(w, src)
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return png.Encode(w, dst)
}

// WritePNG encodes the framebuffer to path.
func WritePNG(path string, fb *Framebuffer, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePNG(f, fb, scale); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
