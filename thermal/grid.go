// Package thermal turns low-resolution temperature samples into a smoothed,
// range-tracked false-color image.
package thermal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is a row-major Rows x Cols grid of temperatures.
// X addresses columns and Y addresses rows.
type Grid struct {
	Rows, Cols int
	Data       []float64
}

// NewGrid allocates a zero-valued grid.
func NewGrid(rows, cols int) *Grid {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("thermal: invalid grid size %dx%d", rows, cols))
	}
	return &Grid{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the value at (x, y). Coordinates outside the grid are clamped
// to the nearest edge cell, never wrapped.
func (g *Grid) At(x, y int) float64 {
	if x < 0 {
		x = 0
	} else if x >= g.Cols {
		x = g.Cols - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.Rows {
		y = g.Rows - 1
	}
	return g.Data[y*g.Cols+x]
}

// Set writes v at (x, y). Out-of-range coordinates are a caller bug and panic.
func (g *Grid) Set(x, y int, v float64) {
	if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		panic(fmt.Sprintf("thermal: Set(%d, %d) outside %dx%d grid", x, y, g.Cols, g.Rows))
	}
	g.Data[y*g.Cols+x] = v
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// CopyFrom copies src into g. Both grids must have the same dimensions.
func (g *Grid) CopyFrom(src *Grid) error {
	if !g.SameSize(src) {
		return fmt.Errorf("copy %dx%d grid into %dx%d grid: %w", src.Rows, src.Cols, g.Rows, g.Cols, ErrGridSize)
	}
	copy(g.Data, src.Data)
	return nil
}

// SameSize reports whether g and o have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.Rows == o.Rows && g.Cols == o.Cols
}

// MinMax returns the exact extremes of the grid.
func (g *Grid) MinMax() Range {
	return Range{Min: floats.Min(g.Data), Max: floats.Max(g.Data)}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{Rows: g.Rows, Cols: g.Cols, Data: make([]float64, len(g.Data))}
	copy(c.Data, g.Data)
	return c
}
