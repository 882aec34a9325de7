package thermal

import "math"

// MidpointIndex is the ramp index used when the display range is flat.
const MidpointIndex = RampSize / 2

// Ramp maps temperatures within a display range onto a fixed color table.
// The zero value is not usable; use DefaultRamp.
type Ramp struct {
	colors *[RampSize]RGB565
}

// DefaultRamp returns the built-in cold-to-hot ramp.
func DefaultRamp() Ramp {
	return Ramp{colors: &camColors}
}

// Len returns the number of ramp entries.
func (r Ramp) Len() int { return RampSize }

// At returns the ramp entry at index i, clamped to the table.
func (r Ramp) At(i int) RGB565 {
	if i < 0 {
		i = 0
	} else if i >= RampSize {
		i = RampSize - 1
	}
	return r.colors[i]
}

// Index linearly maps v from rng onto [0, RampSize-1], clamping values that
// fall outside rng. A flat range maps to MidpointIndex; NaN maps to 0.
func (r Ramp) Index(v float64, rng Range) int {
	if math.IsNaN(v) {
		return 0
	}
	span := rng.Max - rng.Min
	if span == 0 {
		return MidpointIndex
	}
	t := (v - rng.Min) / span * float64(RampSize-1)
	if t <= 0 {
		return 0
	}
	if t >= RampSize-1 {
		return RampSize - 1
	}
	return int(t)
}

// Color returns the device color for v within rng.
func (r Ramp) Color(v float64, rng Range) RGB565 {
	return r.colors[r.Index(v, rng)]
}
