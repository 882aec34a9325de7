package thermal

import "fmt"

// Source fills a sample grid with one calibrated reading per sensing element.
type Source interface {
	ReadSamples(dst *Grid) error
}

// Surface is a device that paints filled rectangles and text.
type Surface interface {
	PaintRect(x, y, w, h int, c RGB565)
	PrintText(x, y int, text string)
}

// Phase names reported through Options.Phase.
const (
	PhaseAcquire     = "acquire"
	PhaseInterpolate = "interpolate"
	PhaseSmooth      = "smooth"
	PhaseRange       = "range"
	PhaseRender      = "render"
)

// Options configures a Pipeline.
type Options struct {
	SourceRows, SourceCols int
	DestRows, DestCols     int
	FrameHistory           int
	RangeHistory           int
	RangeSeed              Range
	ScreenW, ScreenH       int

	// Phase, if set, is called as each tick phase begins.
	Phase func(name string)
}

// DefaultOptions returns the 8x8 -> 24x24 geometry on a 320x240 surface.
func DefaultOptions() Options {
	return Options{
		SourceRows:   8,
		SourceCols:   8,
		DestRows:     24,
		DestCols:     24,
		FrameHistory: 4,
		RangeHistory: 10,
		RangeSeed:    Range{Min: 10, Max: 30},
		ScreenW:      320,
		ScreenH:      240,
	}
}

// Frame describes the outcome of one tick. The grids are owned by the
// pipeline and are overwritten by the next tick.
type Frame struct {
	Tick      uint64
	Samples   *Grid
	Smoothed  *Grid
	Extremes  Range // exact extremes of Smoothed
	Display   Range // range used for color mapping
	Overlay   string
	WarmingUp bool
}

type pipelineState int

const (
	stateIdle pipelineState = iota
	stateRunning
	stateInert
)

// Pipeline runs acquire, interpolate, smooth, range and render once per tick.
// All buffers are allocated up front and reused; it is not safe for
// concurrent use.
type Pipeline struct {
	opts    Options
	src     Source
	surface Surface

	samples  *Grid
	history  *FrameHistory
	smoothed *Grid
	tracker  *RangeTracker
	ramp     Ramp
	layout   Layout

	tick  uint64
	state pipelineState
	err   error
}

// NewPipeline validates opts and allocates the pipeline buffers.
func NewPipeline(opts Options, src Source, surface Surface) (*Pipeline, error) {
	if src == nil || surface == nil {
		return nil, fmt.Errorf("pipeline needs a source and a surface")
	}
	if opts.SourceRows < 1 || opts.SourceCols < 1 || opts.DestRows < 1 || opts.DestCols < 1 {
		return nil, fmt.Errorf("invalid geometry %dx%d -> %dx%d",
			opts.SourceCols, opts.SourceRows, opts.DestCols, opts.DestRows)
	}
	if opts.FrameHistory < 1 || opts.RangeHistory < 1 {
		return nil, fmt.Errorf("history depths must be positive (frames %d, range %d)",
			opts.FrameHistory, opts.RangeHistory)
	}
	if opts.ScreenW < opts.DestCols || opts.ScreenH < opts.DestRows {
		return nil, fmt.Errorf("%dx%d surface cannot hold %dx%d map",
			opts.ScreenW, opts.ScreenH, opts.DestCols, opts.DestRows)
	}

	return &Pipeline{
		opts:     opts,
		src:      src,
		surface:  surface,
		samples:  NewGrid(opts.SourceRows, opts.SourceCols),
		history:  NewFrameHistory(opts.FrameHistory, opts.DestRows, opts.DestCols),
		smoothed: NewGrid(opts.DestRows, opts.DestCols),
		tracker:  NewRangeTracker(opts.RangeHistory, opts.RangeSeed),
		ramp:     DefaultRamp(),
		layout:   NewLayout(opts.ScreenW, opts.ScreenH, opts.DestRows, opts.DestCols),
	}, nil
}

// Start probes the sensor once and paints the startup screen. If the probe
// fails the pipeline becomes inert: nothing is painted and every later Tick
// returns ErrInert.
func (p *Pipeline) Start() error {
	if err := p.src.ReadSamples(p.samples); err != nil {
		p.halt(fmt.Errorf("%w: %w", ErrSensorUnavailable, err))
		return p.err
	}
	p.samples.Fill(0)

	p.surface.PaintRect(0, 0, p.opts.ScreenW, p.opts.ScreenH, Black)
	p.surface.PrintText(0, 0, "Temp")
	p.state = stateRunning
	return nil
}

// Tick runs the whole pipeline once. A sensor error halts the pipeline.
func (p *Pipeline) Tick() (Frame, error) {
	switch p.state {
	case stateIdle:
		return Frame{}, ErrNotStarted
	case stateInert:
		return Frame{}, ErrInert
	}

	p.phase(PhaseAcquire)
	if err := p.src.ReadSamples(p.samples); err != nil {
		p.halt(fmt.Errorf("tick %d: read samples: %w", p.tick+1, err))
		return Frame{}, p.err
	}

	p.phase(PhaseInterpolate)
	Interpolate(p.samples, p.history.Next())

	p.phase(PhaseSmooth)
	p.history.Mean(p.smoothed)

	p.phase(PhaseRange)
	extremes, display := p.tracker.Observe(p.smoothed)

	// Colors depend on the full-frame range, so painting is a second pass.
	p.phase(PhaseRender)
	p.paint(display)
	overlay := fmt.Sprintf("Min: %.1f\nMax: %.1f", display.Min, display.Max)
	p.paintOverlay(overlay)

	p.tick++
	return Frame{
		Tick:      p.tick,
		Samples:   p.samples,
		Smoothed:  p.smoothed,
		Extremes:  extremes,
		Display:   display,
		Overlay:   overlay,
		WarmingUp: p.history.WarmingUp(),
	}, nil
}

func (p *Pipeline) paint(display Range) {
	cols := p.smoothed.Cols
	for y := 0; y < p.smoothed.Rows; y++ {
		for x := 0; x < cols; x++ {
			c := p.ramp.Color(p.smoothed.Data[y*cols+x], display)
			px, py, w, h := p.layout.Cell(x, y)
			p.surface.PaintRect(px, py, w, h, c)
		}
	}
}

func (p *Pipeline) paintOverlay(text string) {
	if x, y, w, h := p.layout.Overlay(); w > 0 {
		p.surface.PaintRect(x, y, w, h, Black)
	}
	p.surface.PrintText(0, 0, text)
}

func (p *Pipeline) phase(name string) {
	if p.opts.Phase != nil {
		p.opts.Phase(name)
	}
}

func (p *Pipeline) halt(err error) {
	p.state = stateInert
	p.err = err
}

// ResetHistory forgets the smoothing window and the display range so the
// next tick warms up from scratch against the seed range.
func (p *Pipeline) ResetHistory() {
	p.history.Reset()
	p.tracker.Reset()
}

// Err returns the error that halted the pipeline, if any.
func (p *Pipeline) Err() error { return p.err }

// Inert reports whether the pipeline has halted.
func (p *Pipeline) Inert() bool { return p.state == stateInert }

// Ticks returns the number of completed ticks.
func (p *Pipeline) Ticks() uint64 { return p.tick }

// Layout returns the device layout of the map.
func (p *Pipeline) Layout() Layout { return p.layout }

// Ramp returns the color ramp.
func (p *Pipeline) Ramp() Ramp { return p.ramp }

// Smoothed returns the most recent smoothed frame.
func (p *Pipeline) Smoothed() *Grid { return p.smoothed }

// Samples returns the most recent raw samples.
func (p *Pipeline) Samples() *Grid { return p.samples }

// Display returns the current display range.
func (p *Pipeline) Display() Range { return p.tracker.Current() }

// History returns the frame history ring.
func (p *Pipeline) History() *FrameHistory { return p.history }
