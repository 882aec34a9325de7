package thermal

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeSource struct {
	fill   func(g *Grid)
	reads  int
	failAt int // 1-based read that fails; 0 never fails
	err    error
}

func (s *fakeSource) ReadSamples(dst *Grid) error {
	s.reads++
	if s.failAt > 0 && s.reads >= s.failAt {
		return s.err
	}
	if s.fill != nil {
		s.fill(dst)
	}
	return nil
}

type rect struct {
	x, y, w, h int
	c          RGB565
}

type fakeSurface struct {
	rects []rect
	texts []string
}

func (s *fakeSurface) PaintRect(x, y, w, h int, c RGB565) {
	s.rects = append(s.rects, rect{x, y, w, h, c})
}

func (s *fakeSurface) PrintText(x, y int, text string) {
	s.texts = append(s.texts, text)
}

func (s *fakeSurface) reset() {
	s.rects = s.rects[:0]
	s.texts = s.texts[:0]
}

func flatSource(v float64) *fakeSource {
	return &fakeSource{fill: func(g *Grid) { g.Fill(v) }}
}

func startedPipeline(t *testing.T, src Source, surface Surface) *Pipeline {
	t.Helper()
	p, err := NewPipeline(DefaultOptions(), src, surface)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return p
}

func TestPipelineStartPaintsSplash(t *testing.T) {
	surface := &fakeSurface{}
	startedPipeline(t, flatSource(21), surface)

	want := []rect{{0, 0, 320, 240, Black}}
	if diff := cmp.Diff(want, surface.rects, cmp.AllowUnexported(rect{})); diff != "" {
		t.Errorf("splash rects (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Temp"}, surface.texts); diff != "" {
		t.Errorf("splash text (-want +got):\n%s", diff)
	}
}

func TestPipelineFlatScene(t *testing.T) {
	surface := &fakeSurface{}
	p := startedPipeline(t, flatSource(25), surface)

	var frame Frame
	for i := 0; i < 14; i++ {
		surface.reset()
		var err error
		frame, err = p.Tick()
		if err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}

		// Every map cell shares one color on every tick.
		mapRects := surface.rects[:24*24]
		for _, r := range mapRects {
			if r.c != mapRects[0].c {
				t.Fatalf("tick %d: map has more than one color", i+1)
			}
		}
	}

	if frame.Overlay != "Min: 25.0\nMax: 25.0" {
		t.Errorf("overlay = %q", frame.Overlay)
	}
	if frame.WarmingUp {
		t.Error("pipeline still warming up after 14 ticks")
	}
	if frame.Tick != 14 || p.Ticks() != 14 {
		t.Errorf("tick count = %d / %d, want 14", frame.Tick, p.Ticks())
	}
	if surface.rects[0].c != p.Ramp().At(MidpointIndex) {
		t.Errorf("flat scene color = %#04x, want ramp midpoint", uint16(surface.rects[0].c))
	}
	if got := surface.texts[len(surface.texts)-1]; got != frame.Overlay {
		t.Errorf("printed %q, want %q", got, frame.Overlay)
	}
}

func TestPipelineWarmUpOverlay(t *testing.T) {
	surface := &fakeSurface{}
	p := startedPipeline(t, flatSource(25), surface)

	frame, err := p.Tick()
	if err != nil {
		t.Fatal(err)
	}
	// One real frame in a four-slot ring; the seed still dominates the range.
	if frame.Smoothed.At(0, 0) != 6.25 {
		t.Errorf("first smoothed value = %v, want 6.25", frame.Smoothed.At(0, 0))
	}
	if frame.Overlay != "Min: 6.2\nMax: 30.0" {
		t.Errorf("overlay = %q", frame.Overlay)
	}
	if !frame.WarmingUp {
		t.Error("expected WarmingUp on first tick")
	}
}

func TestPipelineResetHistoryWarmsUpAgain(t *testing.T) {
	p := startedPipeline(t, flatSource(25), &fakeSurface{})
	for i := 0; i < 14; i++ {
		if _, err := p.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Display(); got != (Range{Min: 25, Max: 25}) {
		t.Fatalf("settled display = %+v", got)
	}

	p.ResetHistory()
	frame, err := p.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if frame.Overlay != "Min: 6.2\nMax: 30.0" {
		t.Errorf("overlay after reset = %q", frame.Overlay)
	}
	if !frame.WarmingUp {
		t.Error("expected WarmingUp after reset")
	}
	if frame.Tick != 15 {
		t.Errorf("tick = %d, want 15 (reset keeps the tick count)", frame.Tick)
	}
}

func TestPipelineTickPaintsMapThenOverlay(t *testing.T) {
	surface := &fakeSurface{}
	p := startedPipeline(t, flatSource(22), surface)
	surface.reset()

	if _, err := p.Tick(); err != nil {
		t.Fatal(err)
	}
	if len(surface.rects) != 24*24+1 {
		t.Fatalf("painted %d rects, want %d", len(surface.rects), 24*24+1)
	}
	first := surface.rects[0]
	if first.x != 80 || first.y != 0 || first.w != 10 || first.h != 10 {
		t.Errorf("first cell = %+v", first)
	}
	last := surface.rects[len(surface.rects)-1]
	if last != (rect{0, 0, 80, 240, Black}) {
		t.Errorf("overlay clear = %+v", last)
	}
}

func TestPipelineCornerHotspot(t *testing.T) {
	src := &fakeSource{fill: func(g *Grid) {
		g.Fill(20)
		g.Set(0, 0, 40)
	}}
	surface := &fakeSurface{}
	p := startedPipeline(t, src, surface)

	var frame Frame
	for i := 0; i < 4; i++ {
		surface.reset()
		var err error
		if frame, err = p.Tick(); err != nil {
			t.Fatal(err)
		}
	}

	if frame.Display.Max < 39.99 {
		t.Errorf("display max = %v, want the hotspot", frame.Display.Max)
	}

	ramp := p.Ramp()
	background := ramp.Index(20, frame.Display)
	colors := map[RGB565]bool{}
	hot := 0
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			v := frame.Smoothed.At(x, y)
			colors[ramp.Color(v, frame.Display)] = true
			if ramp.Index(v, frame.Display) > background {
				hot++
			}
		}
	}
	if len(colors) < 3 {
		t.Errorf("corner region has %d colors, want a gradient", len(colors))
	}
	if hot < 4 {
		t.Errorf("%d cells warmer than background, want a cluster", hot)
	}
	if ramp.Index(frame.Smoothed.At(0, 0), frame.Display) != RampSize-1 {
		t.Errorf("corner cell is not the hottest color")
	}
}

func TestPipelineStartupFailureIsInert(t *testing.T) {
	cause := errors.New("no ack on i2c bus")
	src := &fakeSource{failAt: 1, err: cause}
	surface := &fakeSurface{}

	p, err := NewPipeline(DefaultOptions(), src, surface)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Start()
	if !errors.Is(err, ErrSensorUnavailable) || !errors.Is(err, cause) {
		t.Fatalf("Start err = %v, want ErrSensorUnavailable wrapping cause", err)
	}
	if !p.Inert() {
		t.Error("pipeline not inert after failed probe")
	}

	for i := 0; i < 3; i++ {
		if _, err := p.Tick(); !errors.Is(err, ErrInert) {
			t.Errorf("tick %d err = %v, want ErrInert", i, err)
		}
	}
	if len(surface.rects) != 0 || len(surface.texts) != 0 {
		t.Errorf("inert pipeline painted %d rects and %d texts", len(surface.rects), len(surface.texts))
	}
	if src.reads != 1 {
		t.Errorf("sensor read %d times, want only the probe", src.reads)
	}
}

func TestPipelineReadFailureHalts(t *testing.T) {
	cause := errors.New("bus timeout")
	src := &fakeSource{fill: func(g *Grid) { g.Fill(23) }, failAt: 4, err: cause}
	surface := &fakeSurface{}
	p := startedPipeline(t, src, surface)

	for i := 0; i < 2; i++ {
		if _, err := p.Tick(); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
	}

	_, err := p.Tick()
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped cause", err)
	}
	if !strings.Contains(err.Error(), "tick 3") {
		t.Errorf("err %q does not name the tick", err)
	}
	if !p.Inert() || p.Ticks() != 2 {
		t.Errorf("Inert=%v Ticks=%d after failure", p.Inert(), p.Ticks())
	}
	if _, err := p.Tick(); !errors.Is(err, ErrInert) {
		t.Errorf("tick after failure err = %v, want ErrInert", err)
	}
}

func TestPipelineTickBeforeStart(t *testing.T) {
	p, err := NewPipeline(DefaultOptions(), flatSource(20), &fakeSurface{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Tick(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("err = %v, want ErrNotStarted", err)
	}
}

func TestPipelinePhaseOrder(t *testing.T) {
	var phases []string
	opts := DefaultOptions()
	opts.Phase = func(name string) { phases = append(phases, name) }

	p, err := NewPipeline(opts, flatSource(20), &fakeSurface{})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Tick(); err != nil {
		t.Fatal(err)
	}

	want := []string{PhaseAcquire, PhaseInterpolate, PhaseSmooth, PhaseRange, PhaseRender}
	if diff := cmp.Diff(want, phases); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
}

func TestNewPipelineRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero source", func(o *Options) { o.SourceRows = 0 }},
		{"zero dest", func(o *Options) { o.DestCols = 0 }},
		{"zero history", func(o *Options) { o.FrameHistory = 0 }},
		{"zero range history", func(o *Options) { o.RangeHistory = 0 }},
		{"tiny screen", func(o *Options) { o.ScreenW = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if _, err := NewPipeline(opts, flatSource(20), &fakeSurface{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func BenchmarkPipelineTick(b *testing.B) {
	surface := &fakeSurface{}
	p, err := NewPipeline(DefaultOptions(), flatSource(24), surface)
	if err != nil {
		b.Fatal(err)
	}
	if err := p.Start(); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		surface.reset()
		if _, err := p.Tick(); err != nil {
			b.Fatal(err)
		}
	}
}
