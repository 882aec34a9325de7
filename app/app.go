// Package app wires a sensor, the thermal pipeline, the tick scheduler and
// telemetry into a running camera.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/thermocam/config"
	"github.com/pthm-cable/thermocam/display"
	"github.com/pthm-cable/thermocam/sensor"
	"github.com/pthm-cable/thermocam/telemetry"
	"github.com/pthm-cable/thermocam/thermal"
	"github.com/pthm-cable/thermocam/timing"
)

// Options holds runtime configuration that is not part of config.yaml.
type Options struct {
	LogStats    bool
	SnapshotDir string
	OutputDir   string
	Headless    bool

	// Clock drives the tick scheduler. Nil selects the wall clock.
	Clock timing.Clock
	// Source overrides the sensor selected by config.
	Source sensor.Source
	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// App holds the complete camera state.
type App struct {
	cfg  *config.Config
	opts Options

	src       sensor.Source
	fb        *display.Framebuffer
	pipeline  *thermal.Pipeline
	scheduler *timing.Scheduler
	clock     timing.Clock

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	run              telemetry.RunInfo

	last         thermal.Frame
	lastBookmark *telemetry.Bookmark
	paused       bool
	snapshots    []string
}

// PipelineOptions translates the loaded config into pipeline options.
func PipelineOptions(cfg *config.Config) thermal.Options {
	return thermal.Options{
		SourceRows:   cfg.Sensor.Rows,
		SourceCols:   cfg.Sensor.Cols,
		DestRows:     cfg.Interpolation.Rows,
		DestCols:     cfg.Interpolation.Cols,
		FrameHistory: cfg.Smoothing.FrameHistory,
		RangeHistory: cfg.Range.History,
		RangeSeed:    thermal.Range{Min: cfg.Range.InitialMin, Max: cfg.Range.InitialMax},
		ScreenW:      cfg.Screen.Width,
		ScreenH:      cfg.Screen.Height,
	}
}

// New opens the sensor, builds the pipeline and starts it. When the sensor
// cannot be opened or probed the returned error wraps
// thermal.ErrSensorUnavailable and nothing has been painted.
func New(cfg *config.Config, opts Options) (*App, error) {
	src := opts.Source
	if src == nil {
		var err error
		src, err = sensor.Open(cfg.Sensor)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", thermal.ErrSensorUnavailable, err)
		}
	}

	clock := opts.Clock
	if clock == nil {
		clock = timing.RealClock{}
	}

	a := &App{
		cfg:              cfg,
		opts:             opts,
		src:              src,
		clock:            clock,
		fb:               display.NewFramebuffer(cfg.Screen.Width, cfg.Screen.Height),
		scheduler:        timing.NewScheduler(clock, cfg.Derived.TickPeriod),
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.TickPeriod),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		run:              telemetry.NewRunInfo(cfg.Sensor.Source, opts.Headless),
	}

	pipeOpts := PipelineOptions(cfg)
	pipeOpts.Phase = a.perfCollector.StartPhase
	p, err := thermal.NewPipeline(pipeOpts, src, a.fb)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	a.pipeline = p

	if err := p.Start(); err != nil {
		src.Close()
		return nil, err
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.RecordSamples)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("create output manager: %w", err)
		}
		a.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		if err := om.WriteRun(a.run); err != nil {
			slog.Error("failed to write run info", "error", err)
		}
	}

	slog.Info("camera started",
		"run_id", a.run.ID,
		"source", cfg.Sensor.Source,
		"source_grid", fmt.Sprintf("%dx%d", cfg.Sensor.Cols, cfg.Sensor.Rows),
		"dest_grid", fmt.Sprintf("%dx%d", cfg.Interpolation.Cols, cfg.Interpolation.Rows),
		"tick", cfg.Derived.TickPeriod,
		"headless", opts.Headless,
	)

	return a, nil
}

// Step runs one pipeline tick and its telemetry. It does not wait for the
// scheduler. A sensor failure ends the run: the error is returned and every
// later Step fails with thermal.ErrInert.
func (a *App) Step() error {
	a.perfCollector.StartTick()
	frame, err := a.pipeline.Tick()
	if err != nil {
		return err
	}
	a.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	a.last = frame
	a.collector.RecordFrame(frame)

	if a.outputManager.Recording() {
		if err := a.outputManager.WriteSamples(frame.Tick, frame.Samples); err != nil {
			slog.Error("failed to record samples", "error", err)
		}
	}
	a.perfCollector.EndTick()

	a.flushTelemetry()
	return nil
}

// RunHeadless drives the pipeline from the scheduler until ctx is done,
// maxTicks ticks have run (0 = unlimited) or the sensor fails.
func (a *App) RunHeadless(ctx context.Context, maxTicks uint64) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if maxTicks > 0 && a.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", a.Tick())
			return nil
		}
		if a.scheduler.Wait() {
			a.collector.RecordOverrun()
		}
		if err := a.Step(); err != nil {
			return err
		}
	}
}

// Poll runs a tick when the scheduler says one is due and the camera is not
// paused. It reports whether a tick ran. Used by render loops that cannot
// block for a full period.
func (a *App) Poll() (bool, error) {
	if a.paused || a.pipeline.Inert() {
		return false, a.pipeline.Err()
	}
	before := a.scheduler.Overruns()
	if !a.scheduler.Due() {
		return false, nil
	}
	if a.scheduler.Overruns() > before {
		a.collector.RecordOverrun()
	}
	if err := a.Step(); err != nil {
		return false, err
	}
	return true, nil
}

// SetPaused freezes or resumes ticking. Resuming re-bases the schedule so
// the pause is not reported as an overrun.
func (a *App) SetPaused(paused bool) {
	if a.paused && !paused {
		a.scheduler.Reset()
	}
	a.paused = paused
}

// Paused reports whether ticking is frozen.
func (a *App) Paused() bool { return a.paused }

// ResetRange restarts smoothing and range tracking from the seed.
func (a *App) ResetRange() {
	a.pipeline.ResetHistory()
	slog.Info("range reset", "tick", a.Tick())
}

// Close flushes outputs and releases the sensor.
func (a *App) Close() error {
	var firstErr error
	if err := a.outputManager.Close(); err != nil {
		firstErr = err
	}
	if err := a.src.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Tick returns the number of completed ticks.
func (a *App) Tick() uint64 { return a.pipeline.Ticks() }

// Frame returns the most recent frame. Grids are overwritten by the next tick.
func (a *App) Frame() thermal.Frame { return a.last }

// Framebuffer returns the device surface the pipeline paints into.
func (a *App) Framebuffer() *display.Framebuffer { return a.fb }

// Pipeline returns the thermal pipeline.
func (a *App) Pipeline() *thermal.Pipeline { return a.pipeline }

// Overruns returns the number of missed tick deadlines.
func (a *App) Overruns() uint64 { return a.scheduler.Overruns() }

// PerfStats returns the rolling tick timing.
func (a *App) PerfStats() telemetry.PerfStats { return a.perfCollector.Stats() }

// RecordFrame records render loop frame timing.
func (a *App) RecordFrame() { a.perfCollector.RecordFrame() }

// LastBookmark returns the most recent bookmark, or nil.
func (a *App) LastBookmark() *telemetry.Bookmark { return a.lastBookmark }

// Run returns the run metadata.
func (a *App) Run() telemetry.RunInfo { return a.run }

// Snapshots returns the paths of snapshots saved so far.
func (a *App) Snapshots() []string { return a.snapshots }

// Uptime returns the scheduled time covered by completed ticks.
func (a *App) Uptime() time.Duration {
	return time.Duration(a.Tick()) * a.scheduler.Period()
}
