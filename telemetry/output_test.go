package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/thermocam/config"
	"github.com/pthm-cable/thermocam/sensor"
	"github.com/pthm-cable/thermocam/thermal"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("", true)
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Every method is nil-safe.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteSamples(1, thermal.NewGrid(1, 1)); err != nil {
		t.Error(err)
	}
	if om.Recording() || om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager misbehaved")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: uint64(i * 25), Frames: 25}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkHeatSpike, Tick: 50, Description: "hot"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{AvgTickDuration: time.Millisecond}, 50); err != nil {
		t.Fatal(err)
	}
	if om.Recording() {
		t.Error("recording without record flag")
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,elapsed,frames") {
		t.Errorf("header = %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "heat_spike,50,hot") {
		t.Errorf("bookmarks.csv = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "samples.csv")); !os.IsNotExist(err) {
		t.Error("samples.csv created without recording")
	}
}

func TestOutputManagerRecordsReplayableSamples(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, true)
	if err != nil {
		t.Fatal(err)
	}

	g := thermal.NewGrid(2, 2)
	for tick := uint64(1); tick <= 3; tick++ {
		g.Fill(float64(20 + tick))
		if err := om.WriteSamples(tick, g); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	replay, err := sensor.OpenReplay(filepath.Join(dir, "samples.csv"), 2, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if replay.Len() != 3 {
		t.Fatalf("replay has %d frames, want 3", replay.Len())
	}
	out := thermal.NewGrid(2, 2)
	for want := 21.0; want <= 23; want++ {
		if err := replay.ReadSamples(out); err != nil {
			t.Fatal(err)
		}
		if out.At(1, 1) != want {
			t.Errorf("replayed %v, want %v", out.At(1, 1), want)
		}
	}
}

func TestOutputManagerRunAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	info := NewRunInfo("simulated", true)
	if _, err := uuid.Parse(info.ID); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", info.ID, err)
	}
	if err := om.WriteRun(info); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run.json"))
	if err != nil {
		t.Fatal(err)
	}
	var loaded RunInfo
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.ID != info.ID || loaded.Source != "simulated" || !loaded.Headless {
		t.Errorf("run.json = %+v", loaded)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
