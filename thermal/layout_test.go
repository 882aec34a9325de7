package thermal

import "testing"

func TestNewLayoutDefaultScreen(t *testing.T) {
	l := NewLayout(320, 240, 24, 24)
	if l.Box != 10 {
		t.Errorf("Box = %d, want 10", l.Box)
	}
	if l.OriginX != 80 || l.OriginY != 0 {
		t.Errorf("origin = (%d, %d), want (80, 0)", l.OriginX, l.OriginY)
	}

	x, y, w, h := l.Cell(23, 23)
	if x != 310 || y != 230 || w != 10 || h != 10 {
		t.Errorf("Cell(23,23) = %d,%d %dx%d", x, y, w, h)
	}

	ox, oy, ow, oh := l.Overlay()
	if ox != 0 || oy != 0 || ow != 80 || oh != 240 {
		t.Errorf("Overlay = %d,%d %dx%d, want 0,0 80x240", ox, oy, ow, oh)
	}
}

func TestNewLayoutNonSquareGrid(t *testing.T) {
	l := NewLayout(320, 240, 12, 40)
	// Width limits: 320/40 = 8, height would allow 20.
	if l.Box != 8 {
		t.Errorf("Box = %d, want 8", l.Box)
	}
	if _, _, ow, _ := l.Overlay(); ow != 0 {
		t.Errorf("overlay width = %d, want 0 for a full-width map", ow)
	}
}

func TestLayoutCellAt(t *testing.T) {
	l := NewLayout(320, 240, 24, 24)

	tests := []struct {
		px, py int
		x, y   int
		ok     bool
	}{
		{80, 0, 0, 0, true},
		{89, 9, 0, 0, true},
		{90, 10, 1, 1, true},
		{319, 239, 23, 23, true},
		{79, 5, 0, 0, false},
		{200, 240, 0, 0, false},
		{320, 10, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := l.CellAt(tt.px, tt.py)
		if ok != tt.ok || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("CellAt(%d, %d) = %d, %d, %v; want %d, %d, %v",
				tt.px, tt.py, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}
