package thermal

import "math"

// Range is a closed temperature interval.
type Range struct {
	Min, Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether o lies entirely within r.
func (r Range) Contains(o Range) bool {
	return r.Min <= o.Min && o.Max <= r.Max
}

// Union returns the smallest range covering both r and o.
func (r Range) Union(o Range) Range {
	return Range{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

// RangeTracker keeps the last few frame extremes and reports a display range
// that grows immediately to cover a new extreme but only shrinks once old
// extremes age out of the ring.
type RangeTracker struct {
	mins, maxs []float64
	next       int
	seed       Range
	current    Range
}

// NewRangeTracker creates a tracker whose rings hold depth entries, every
// slot initialised to seed.
func NewRangeTracker(depth int, seed Range) *RangeTracker {
	if depth < 1 {
		depth = 1
	}
	t := &RangeTracker{
		mins: make([]float64, depth),
		maxs: make([]float64, depth),
		seed: seed,
	}
	t.Reset()
	return t
}

// Reset re-seeds every ring slot.
func (t *RangeTracker) Reset() {
	for i := range t.mins {
		t.mins[i] = t.seed.Min
		t.maxs[i] = t.seed.Max
	}
	t.next = 0
	t.current = t.seed
}

// Update records one frame's extremes and returns the display range.
func (t *RangeTracker) Update(frame Range) Range {
	t.mins[t.next] = frame.Min
	t.maxs[t.next] = frame.Max
	t.next = (t.next + 1) % len(t.mins)

	r := frame
	for i := range t.mins {
		if t.mins[i] < r.Min {
			r.Min = t.mins[i]
		}
		if t.maxs[i] > r.Max {
			r.Max = t.maxs[i]
		}
	}
	t.current = r
	return r
}

// Observe computes the exact extremes of g, records them and returns the
// frame range together with the display range.
func (t *RangeTracker) Observe(g *Grid) (frame, display Range) {
	frame = g.MinMax()
	return frame, t.Update(frame)
}

// Current returns the display range from the most recent Update.
func (t *RangeTracker) Current() Range { return t.current }

// Depth returns the ring length.
func (t *RangeTracker) Depth() int { return len(t.mins) }
