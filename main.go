package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thermocam/app"
	"github.com/pthm-cable/thermocam/config"
	"github.com/pthm-cable/thermocam/thermal"
	"github.com/pthm-cable/thermocam/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	source := flag.String("source", "", "Sensor source: simulated, serial, replay (empty = use config)")
	port := flag.String("port", "", "Serial port for the serial source (empty = use config)")
	replay := flag.String("replay", "", "samples.csv to play back (implies -source replay)")
	seed := flag.Int64("seed", 0, "Simulated scene seed (0 = use config)")
	record := flag.Bool("record", false, "Record raw samples to samples.csv in the output dir")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *replay != "" {
		cfg.Sensor.Source = "replay"
		cfg.Sensor.Replay.Path = *replay
	}
	if *source != "" {
		cfg.Sensor.Source = *source
	}
	if *port != "" {
		cfg.Sensor.Serial.Port = *port
	}
	if *seed != 0 {
		cfg.Sensor.Simulated.Seed = *seed
	}
	if *record {
		cfg.Telemetry.RecordSamples = true
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	opts := app.Options{
		LogStats:    *logStats,
		SnapshotDir: *snapshotDir,
		OutputDir:   *outputDir,
		Headless:    *headless,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *maxTicks))
	}
	os.Exit(runWindowed(cfg, opts, *maxTicks))
}

func runHeadless(cfg *config.Config, opts app.Options, maxTicks uint64) int {
	a, err := app.New(cfg, opts)
	if err != nil {
		if errors.Is(err, thermal.ErrSensorUnavailable) {
			slog.Error("sensor unavailable", "source", cfg.Sensor.Source, "error", err)
		} else {
			slog.Error("failed to start camera", "error", err)
		}
		return 1
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting headless camera",
		"tick", cfg.Derived.TickPeriod,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", maxTicks,
	)

	if err := a.RunHeadless(ctx, maxTicks); err != nil {
		slog.Error("camera stopped", "error", err, "tick", a.Tick())
		return 1
	}
	return 0
}

func runWindowed(cfg *config.Config, opts app.Options, maxTicks uint64) int {
	rl.InitWindow(cfg.Derived.WindowWidth, cfg.Derived.WindowHeight, cfg.Screen.Title)
	defer rl.CloseWindow()

	if cfg.Screen.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	}

	a, err := app.New(cfg, opts)
	if err != nil {
		if !errors.Is(err, thermal.ErrSensorUnavailable) {
			slog.Error("failed to start camera", "error", err)
			return 1
		}
		slog.Error("sensor unavailable", "source", cfg.Sensor.Source, "error", err)
		ui.RunSensorMissing(err.Error())
		return 1
	}
	defer a.Close()

	v := ui.NewViewer(a, cfg.Screen.Title, cfg.Sensor.Source, cfg.Screen.Scale)
	defer v.Unload()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if maxTicks > 0 && a.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", a.Tick())
			break
		}
	}
	return 0
}
