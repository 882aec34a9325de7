// Simulated scene preview tool - tune the synthetic sensor with sliders and
// watch it through the full interpolation and color pipeline.
//
// Usage: go run ./cmd/scenepreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/thermocam/app"
	"github.com/pthm-cable/thermocam/config"
	"github.com/pthm-cable/thermocam/display"
	"github.com/pthm-cable/thermocam/sensor"
	"github.com/pthm-cable/thermocam/thermal"
	"github.com/pthm-cable/thermocam/timing"
	"github.com/pthm-cable/thermocam/ui"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewScale = 2
	panelX       = 520
	panelWidth   = windowWidth - panelX - 20
)

// preview owns one simulated sensor and the pipeline it feeds.
type preview struct {
	cfg       *config.Config
	fb        *display.Framebuffer
	src       *sensor.Simulated
	pipeline  *thermal.Pipeline
	presenter *ui.Presenter
	legend    *ui.Legend
}

func newPreview(cfg *config.Config) (*preview, error) {
	// The map at ten device pixels per cell, with the overlay strip to its left.
	w := cfg.Interpolation.Cols * 10
	h := cfg.Interpolation.Rows * 10
	fb := display.NewFramebuffer(w+80, h)

	p := &preview{
		cfg:       cfg,
		fb:        fb,
		presenter: ui.NewPresenter(fb, previewScale),
	}
	p.presenter.Init()
	if err := p.rebuild(); err != nil {
		return nil, err
	}
	p.legend = ui.NewLegend(p.pipeline.Ramp())
	return p, nil
}

// rebuild restarts the sensor and pipeline with the current parameters.
func (p *preview) rebuild() error {
	if p.src != nil {
		p.src.Close()
	}
	p.src = sensor.NewSimulated(p.cfg.Sensor.Rows, p.cfg.Sensor.Cols, p.cfg.Sensor.Simulated)

	w, h := p.fb.Bounds()
	opts := app.PipelineOptions(p.cfg)
	opts.ScreenW, opts.ScreenH = w, h
	pipeline, err := thermal.NewPipeline(opts, p.src, p.fb)
	if err != nil {
		return err
	}
	if err := pipeline.Start(); err != nil {
		return err
	}
	p.pipeline = pipeline
	p.presenter.Upload()
	return nil
}

func (p *preview) tick() {
	if _, err := p.pipeline.Tick(); err != nil {
		slog.Error("preview tick failed", "error", err)
		return
	}
	p.presenter.Upload()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	// The preview always shows the simulated scene; pin the seed so slider
	// changes are comparable.
	if cfg.Sensor.Simulated.Seed == 0 {
		cfg.Sensor.Simulated.Seed = 12345
	}
	cfg.Sensor.Simulated.FailAfter = 0
	defaults := cfg.Sensor.Simulated

	rl.InitWindow(windowWidth, windowHeight, "Thermal Scene Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	p, err := newPreview(cfg)
	if err != nil {
		slog.Error("failed to start preview", "error", err)
		os.Exit(1)
	}
	defer p.presenter.Unload()

	scheduler := timing.NewScheduler(timing.RealClock{}, cfg.Derived.TickPeriod)
	running := true

	for !rl.WindowShouldClose() {
		if running && scheduler.Due() {
			p.tick()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		w, h := p.fb.Bounds()
		rl.DrawRectangle(10, 10, int32(w*previewScale), int32(h*previewScale), rl.Black)
		p.presenter.DrawAt(10, 10)
		rl.DrawRectangleLines(10, 10, int32(w*previewScale), int32(h*previewScale), rl.DarkGray)

		// Draw stats
		samples := p.pipeline.Samples().MinMax()
		smoothed := p.pipeline.Smoothed().MinMax()
		statsY := int32(h*previewScale + 25)
		rl.DrawText(fmt.Sprintf("Samples: %.1f..%.1f  Smoothed: %.1f..%.1f",
			samples.Min, samples.Max, smoothed.Min, smoothed.Max), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Tick: %d  Reads: %d", p.pipeline.Ticks(), p.src.Reads()), 15, statsY+20, 16, rl.DarkGray)
		if p.pipeline.Ticks() > 0 {
			p.legend.Draw(15, statsY+50, 20, 120, p.pipeline.Display())
		}

		// Control panel
		sim := &cfg.Sensor.Simulated
		x := float32(panelX)
		y := float32(10)
		needsRebuild := false

		rl.DrawText("Simulated Scene Parameters", int32(x), int32(y), 20, rl.DarkGray)
		y += 35

		slider := func(label, format string, value *float64, lo, hi float64) {
			rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
			y += 18
			nv := gui.SliderBar(
				rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
				float32(*value), float32(lo), float32(hi),
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
			if nv != float32(*value) {
				*value = float64(nv)
				needsRebuild = true
			}
			y += 35
		}

		slider("Ambient (background °C)", "%.1f", &sim.Ambient, 0, 40)
		slider("Variation (background amplitude °C)", "%.1f", &sim.Variation, 0, 10)
		slider("Field scale (background frequency)", "%.2f", &sim.FieldScale, 0.05, 2)
		slider("Drift speed (background change per read)", "%.3f", &sim.DriftSpeed, 0, 0.2)
		slider("Hotspot temperature (°C)", "%.1f", &sim.HotspotTemp, 0, 80)
		slider("Hotspot sigma (sensor cells)", "%.2f", &sim.HotspotSigma, 0.3, 4)
		slider("Orbit speed (radians per read)", "%.3f", &sim.OrbitSpeed, 0, 0.5)
		slider("Noise (sample stddev °C)", "%.2f", &sim.Noise, 0, 2)

		hotspots := float64(sim.Hotspots)
		slider("Hotspots", "%.0f", &hotspots, 0, 4)
		sim.Hotspots = int(hotspots + 0.5)

		y += 10
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, toggleText(running, "Stop", "Run")) {
			running = !running
			if running {
				scheduler.Reset()
			}
		}
		if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 30}, "Step") {
			p.tick()
		}
		if gui.Button(rl.Rectangle{X: x + 260, Y: y, Width: 120, Height: 30}, "Reset Range") {
			p.pipeline.ResetHistory()
		}
		y += 40

		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, "Random Seed") {
			sim.Seed = int64(rl.GetRandomValue(1, 99999))
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			*sim = defaults
			needsRebuild = true
		}
		y += 45

		if needsRebuild {
			if err := p.rebuild(); err != nil {
				slog.Error("failed to rebuild preview", "error", err)
			}
		}

		// Output YAML
		snippet := simulatedYAML(*sim)
		rl.DrawText("YAML Config:", int32(x), int32(y), 16, rl.DarkGray)
		rl.DrawText(snippet, int32(x), int32(y+22), 12, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(x), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// simulatedYAML renders the simulated sensor section as a config overlay.
func simulatedYAML(sim config.SimulatedConfig) string {
	doc := map[string]any{
		"sensor": map[string]any{
			"source":    sensor.KindSimulated,
			"simulated": sim,
		},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
