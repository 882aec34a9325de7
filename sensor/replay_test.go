package sensor

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/thermocam/thermal"
)

func writeSamples(t *testing.T, records []SampleRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&records, f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplayFromFile(t *testing.T) {
	path := writeSamples(t, []SampleRecord{
		{Tick: 1, Samples: "1,2,3,4"},
		{Tick: 2, Samples: "5,6,7,8"},
	})

	r, err := OpenReplay(path, 2, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	g := thermal.NewGrid(2, 2)
	if err := r.ReadSamples(g); err != nil {
		t.Fatal(err)
	}
	if g.At(1, 1) != 4 {
		t.Errorf("first frame = %v", g.Data)
	}
	if err := r.ReadSamples(g); err != nil {
		t.Fatal(err)
	}
	if g.At(0, 0) != 5 {
		t.Errorf("second frame = %v", g.Data)
	}
	if err := r.ReadSamples(g); !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestReplayLoops(t *testing.T) {
	r, err := NewReplay([]SampleRecord{{Tick: 1, Samples: "1"}, {Tick: 2, Samples: "2"}}, 1, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	g := thermal.NewGrid(1, 1)
	var got []float64
	for i := 0; i < 5; i++ {
		if err := r.ReadSamples(g); err != nil {
			t.Fatal(err)
		}
		got = append(got, g.Data[0])
	}
	want := []float64{1, 2, 1, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("playback = %v, want %v", got, want)
		}
	}
}

func TestReplayErrors(t *testing.T) {
	if _, err := NewReplay(nil, 1, 1, true); err == nil {
		t.Error("expected error for empty recording")
	}
	if _, err := OpenReplay(filepath.Join(t.TempDir(), "missing.csv"), 1, 1, true); err == nil {
		t.Error("expected error for missing file")
	}

	r, err := NewReplay([]SampleRecord{{Tick: 7, Samples: "1,2"}}, 1, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ReadSamples(thermal.NewGrid(1, 1)); err == nil {
		t.Error("expected error for malformed frame")
	}
}
