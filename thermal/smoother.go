package thermal

import "gonum.org/v1/gonum/floats"

// FrameHistory is a fixed ring of interpolated frames averaged cell by cell.
//
// All slots start zeroed and the mean always divides by the full depth, so
// the first depth-1 outputs are biased toward zero while the ring warms up.
type FrameHistory struct {
	slots  []*Grid
	next   int
	pushed int
	sum    []float64
}

// NewFrameHistory creates a ring of depth zero-valued rows x cols frames.
func NewFrameHistory(depth, rows, cols int) *FrameHistory {
	if depth < 1 {
		depth = 1
	}
	h := &FrameHistory{
		slots: make([]*Grid, depth),
		sum:   make([]float64, rows*cols),
	}
	for i := range h.slots {
		h.slots[i] = NewGrid(rows, cols)
	}
	return h
}

// Next returns the slot that the incoming frame should be written into and
// advances the ring. The oldest frame is overwritten.
func (h *FrameHistory) Next() *Grid {
	slot := h.slots[h.next]
	h.next = (h.next + 1) % len(h.slots)
	if h.pushed < len(h.slots) {
		h.pushed++
	}
	return slot
}

// Push copies frame into the ring, overwriting the oldest slot.
func (h *FrameHistory) Push(frame *Grid) error {
	slot := h.slots[h.next]
	if !slot.SameSize(frame) {
		return ErrGridSize
	}
	copy(h.Next().Data, frame.Data)
	return nil
}

// Mean writes the per-cell arithmetic mean of every slot into dst.
func (h *FrameHistory) Mean(dst *Grid) {
	for i := range h.sum {
		h.sum[i] = 0
	}
	for _, s := range h.slots {
		floats.Add(h.sum, s.Data)
	}
	n := float64(len(h.slots))
	for i, v := range h.sum {
		dst.Data[i] = v / n
	}
}

// Current returns a newly allocated grid holding the current mean.
func (h *FrameHistory) Current() *Grid {
	out := NewGrid(h.slots[0].Rows, h.slots[0].Cols)
	h.Mean(out)
	return out
}

// Depth returns the number of slots in the ring.
func (h *FrameHistory) Depth() int { return len(h.slots) }

// Filled returns how many real frames have entered the ring, capped at Depth.
func (h *FrameHistory) Filled() int { return h.pushed }

// WarmingUp reports whether zero-valued startup slots still contribute to the mean.
func (h *FrameHistory) WarmingUp() bool { return h.pushed < len(h.slots) }

// Reset zeroes every slot.
func (h *FrameHistory) Reset() {
	for _, s := range h.slots {
		s.Fill(0)
	}
	h.next = 0
	h.pushed = 0
}
