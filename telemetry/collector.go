package telemetry

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/thermocam/thermal"
)

// Collector accumulates per-tick observations within windows and produces
// WindowStats.
type Collector struct {
	windowTicks uint64
	tickPeriod  time.Duration

	windowStartTick uint64

	// Per-tick series for the current window
	frameMins  []float64
	frameMaxs  []float64
	frameMeans []float64
	overruns   int
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window covers
// tickPeriod: nominal tick period (used for tick-to-time conversion)
func NewCollector(windowTicks int, tickPeriod time.Duration) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: uint64(windowTicks),
		tickPeriod:  tickPeriod,
		frameMins:   make([]float64, 0, windowTicks),
		frameMaxs:   make([]float64, 0, windowTicks),
		frameMeans:  make([]float64, 0, windowTicks),
	}
}

// RecordFrame records one completed tick.
func (c *Collector) RecordFrame(f thermal.Frame) {
	c.frameMins = append(c.frameMins, f.Extremes.Min)
	c.frameMaxs = append(c.frameMaxs, f.Extremes.Max)
	if f.Smoothed != nil && len(f.Smoothed.Data) > 0 {
		c.frameMeans = append(c.frameMeans, floats.Sum(f.Smoothed.Data)/float64(len(f.Smoothed.Data)))
	}
}

// RecordOverrun records a tick that missed its deadline.
func (c *Collector) RecordOverrun() {
	c.overruns++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets the series for the next window.
// display and warmingUp describe the pipeline state at window end.
func (c *Collector) Flush(currentTick uint64, display thermal.Range, warmingUp bool) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		ElapsedSec:      float64(currentTick) * c.tickPeriod.Seconds(),
		Frames:          len(c.frameMaxs),
		Overruns:        c.overruns,
		DisplayMin:      display.Min,
		DisplayMax:      display.Max,
		WarmingUp:       warmingUp,
	}

	if len(c.frameMaxs) > 0 {
		stats.SceneMin = floats.Min(c.frameMins)
		stats.SceneMax = floats.Max(c.frameMaxs)
		_, _, stats.PeakP10, stats.PeakP50, stats.PeakP90 = ComputeSeriesStats(c.frameMaxs)
	}
	if len(c.frameMeans) > 0 {
		stats.SceneMean, stats.SceneStd, _, _, _ = ComputeSeriesStats(c.frameMeans)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.frameMins = c.frameMins[:0]
	c.frameMaxs = c.frameMaxs[:0]
	c.frameMeans = c.frameMeans[:0]
	c.overruns = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() uint64 {
	return c.windowTicks
}
