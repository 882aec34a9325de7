package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	ElapsedSec      float64 `csv:"elapsed"`

	// Pacing
	Frames   int `csv:"frames"`
	Overruns int `csv:"overruns"`

	// Scene temperatures over the window (smoothed frames)
	SceneMin  float64 `csv:"scene_min"`
	SceneMax  float64 `csv:"scene_max"`
	SceneMean float64 `csv:"scene_mean"`
	SceneStd  float64 `csv:"scene_std"` // spread of the per-tick means

	// Distribution of the per-tick frame maxima
	PeakP10 float64 `csv:"peak_p10"`
	PeakP50 float64 `csv:"peak_p50"`
	PeakP90 float64 `csv:"peak_p90"`

	// Display range at window end
	DisplayMin float64 `csv:"display_min"`
	DisplayMax float64 `csv:"display_max"`

	WarmingUp bool `csv:"warming_up"`
}

// DisplaySpan returns the width of the display range at window end.
func (s WindowStats) DisplaySpan() float64 { return s.DisplayMax - s.DisplayMin }

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSeriesStats calculates mean, standard deviation and percentiles.
// The standard deviation is the population form so a single value has zero spread.
func ComputeSeriesStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	std = stat.PopStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int("frames", s.Frames),
		slog.Int("overruns", s.Overruns),
		slog.Float64("scene_min", s.SceneMin),
		slog.Float64("scene_max", s.SceneMax),
		slog.Float64("scene_mean", s.SceneMean),
		slog.Float64("scene_std", s.SceneStd),
		slog.Float64("peak_p10", s.PeakP10),
		slog.Float64("peak_p50", s.PeakP50),
		slog.Float64("peak_p90", s.PeakP90),
		slog.Float64("display_min", s.DisplayMin),
		slog.Float64("display_max", s.DisplayMax),
		slog.Bool("warming_up", s.WarmingUp),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"elapsed", s.ElapsedSec,
		"frames", s.Frames,
		"overruns", s.Overruns,
		"scene_min", s.SceneMin,
		"scene_max", s.SceneMax,
		"scene_mean", s.SceneMean,
		"scene_std", s.SceneStd,
		"peak_p50", s.PeakP50,
		"display_min", s.DisplayMin,
		"display_max", s.DisplayMax,
		"warming_up", s.WarmingUp,
	)
}
