package thermal

// Layout places a Rows x Cols map of square boxes on a device surface.
// The map is right-aligned and top-aligned; the strip to its left holds
// the min/max overlay.
type Layout struct {
	ScreenW, ScreenH int
	Rows, Cols       int
	Box              int
	OriginX, OriginY int
}

// NewLayout picks the largest square box that fits rows x cols cells on a
// screenW x screenH surface.
func NewLayout(screenW, screenH, rows, cols int) Layout {
	box := screenW / cols
	if h := screenH / rows; h < box {
		box = h
	}
	if box < 1 {
		box = 1
	}
	return Layout{
		ScreenW: screenW,
		ScreenH: screenH,
		Rows:    rows,
		Cols:    cols,
		Box:     box,
		OriginX: screenW - box*cols,
		OriginY: 0,
	}
}

// Cell returns the device rectangle of map cell (x, y).
func (l Layout) Cell(x, y int) (px, py, w, h int) {
	return l.OriginX + l.Box*x, l.OriginY + l.Box*y, l.Box, l.Box
}

// Overlay returns the rectangle reserved for the text overlay.
// Width is zero when the map spans the whole surface.
func (l Layout) Overlay() (x, y, w, h int) {
	if l.OriginX < 0 {
		return 0, 0, 0, l.ScreenH
	}
	return 0, 0, l.OriginX, l.ScreenH
}

// CellAt converts a device coordinate into a map cell.
// ok is false when the point lies outside the map.
func (l Layout) CellAt(px, py int) (x, y int, ok bool) {
	dx := px - l.OriginX
	dy := py - l.OriginY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	x = dx / l.Box
	y = dy / l.Box
	if x >= l.Cols || y >= l.Rows {
		return 0, 0, false
	}
	return x, y, true
}
