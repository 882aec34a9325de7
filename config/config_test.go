package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsMatchSensorGeometry(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Sensor.Rows != 8 || cfg.Sensor.Cols != 8 {
		t.Errorf("sensor grid = %dx%d, want 8x8", cfg.Sensor.Rows, cfg.Sensor.Cols)
	}
	if cfg.Interpolation.Rows != 24 || cfg.Interpolation.Cols != 24 {
		t.Errorf("interpolation grid = %dx%d, want 24x24", cfg.Interpolation.Rows, cfg.Interpolation.Cols)
	}
	if cfg.Smoothing.FrameHistory != 4 {
		t.Errorf("frame_history = %d, want 4", cfg.Smoothing.FrameHistory)
	}
	if cfg.Range.History != 10 {
		t.Errorf("range.history = %d, want 10", cfg.Range.History)
	}
	if cfg.Range.InitialMin != 10 || cfg.Range.InitialMax != 30 {
		t.Errorf("range seed = (%v, %v), want (10, 30)", cfg.Range.InitialMin, cfg.Range.InitialMax)
	}
	if cfg.Derived.TickPeriod != 200*time.Millisecond {
		t.Errorf("tick period = %v, want 200ms", cfg.Derived.TickPeriod)
	}
	if cfg.Derived.DestCells != 576 {
		t.Errorf("dest cells = %d, want 576", cfg.Derived.DestCells)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "camera.yaml")
	data := []byte("timing:\n  tick_ms: 100\ninterpolation:\n  rows: 32\n  cols: 32\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Derived.TickPeriod != 100*time.Millisecond {
		t.Errorf("tick period = %v, want 100ms", cfg.Derived.TickPeriod)
	}
	if cfg.Interpolation.Rows != 32 {
		t.Errorf("interpolation rows = %d, want 32", cfg.Interpolation.Rows)
	}
	// Untouched keys keep their defaults
	if cfg.Smoothing.FrameHistory != 4 {
		t.Errorf("frame_history = %d, want default 4", cfg.Smoothing.FrameHistory)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown source", func(c *Config) { c.Sensor.Source = "usb" }, "sensor.source"},
		{"zero sensor rows", func(c *Config) { c.Sensor.Rows = 0 }, "sensor grid"},
		{"zero history", func(c *Config) { c.Smoothing.FrameHistory = 0 }, "frame_history"},
		{"zero range history", func(c *Config) { c.Range.History = 0 }, "range.history"},
		{"inverted seed", func(c *Config) { c.Range.InitialMin = 40 }, "initial_min"},
		{"zero tick", func(c *Config) { c.Timing.TickMS = 0 }, "tick_ms"},
		{"tiny screen", func(c *Config) { c.Screen.Width = 10 }, "cannot hold"},
		{"serial without port", func(c *Config) { c.Sensor.Source = "serial" }, "serial.port"},
		{"replay without path", func(c *Config) { c.Sensor.Source = "replay" }, "replay.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Defaults()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Timing.TickMS = 150

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config failed: %v", err)
	}
	if loaded.Timing.TickMS != 150 {
		t.Errorf("tick_ms = %d, want 150", loaded.Timing.TickMS)
	}
}
