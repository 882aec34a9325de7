package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pthm-cable/thermocam/display"
	"github.com/pthm-cable/thermocam/thermal"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds one tick of pipeline state.
type Snapshot struct {
	Version int       `json:"version"`
	RunID   string    `json:"run_id,omitempty"`
	Tick    uint64    `json:"tick"`
	Taken   time.Time `json:"taken"`

	// Raw sensor samples
	SourceRows int       `json:"source_rows"`
	SourceCols int       `json:"source_cols"`
	Samples    []float64 `json:"samples"`

	// Smoothed, interpolated frame
	DestRows int       `json:"dest_rows"`
	DestCols int       `json:"dest_cols"`
	Smoothed []float64 `json:"smoothed"`

	FrameMin   float64 `json:"frame_min"`
	FrameMax   float64 `json:"frame_max"`
	DisplayMin float64 `json:"display_min"`
	DisplayMax float64 `json:"display_max"`
	Overlay    string  `json:"overlay"`
	WarmingUp  bool    `json:"warming_up"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`

	// Image is the PNG written next to the JSON, relative to it.
	Image string `json:"image,omitempty"`
}

// NewSnapshot copies the state described by f.
func NewSnapshot(f thermal.Frame, runID string, taken time.Time) *Snapshot {
	s := &Snapshot{
		Version:    SnapshotVersion,
		RunID:      runID,
		Tick:       f.Tick,
		Taken:      taken.UTC(),
		FrameMin:   f.Extremes.Min,
		FrameMax:   f.Extremes.Max,
		DisplayMin: f.Display.Min,
		DisplayMax: f.Display.Max,
		Overlay:    f.Overlay,
		WarmingUp:  f.WarmingUp,
	}
	if f.Samples != nil {
		s.SourceRows, s.SourceCols = f.Samples.Rows, f.Samples.Cols
		s.Samples = append([]float64(nil), f.Samples.Data...)
	}
	if f.Smoothed != nil {
		s.DestRows, s.DestCols = f.Smoothed.Rows, f.Smoothed.Cols
		s.Smoothed = append([]float64(nil), f.Smoothed.Data...)
	}
	return s
}

// SmoothedGrid rebuilds the smoothed frame as a grid.
func (s *Snapshot) SmoothedGrid() (*thermal.Grid, error) {
	if s.DestRows < 1 || s.DestCols < 1 || len(s.Smoothed) != s.DestRows*s.DestCols {
		return nil, fmt.Errorf("snapshot holds %d values for a %dx%d grid: %w",
			len(s.Smoothed), s.DestRows, s.DestCols, thermal.ErrGridSize)
	}
	g := thermal.NewGrid(s.DestRows, s.DestCols)
	copy(g.Data, s.Smoothed)
	return g, nil
}

func snapshotName(s *Snapshot) string {
	name := fmt.Sprintf("snapshot_%d", s.Tick)
	if s.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(s.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", s.Tick, sanitized)
	}
	return name
}

// SaveSnapshot writes a snapshot to disk. When fb is non-nil the framebuffer
// is also written as a PNG magnified by scale.
// Returns the filepath of the JSON document.
func SaveSnapshot(snapshot *Snapshot, fb *display.Framebuffer, scale int, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := snapshotName(snapshot)

	if fb != nil {
		snapshot.Image = name + ".png"
		if err := display.WritePNG(filepath.Join(dir, snapshot.Image), fb, scale); err != nil {
			return "", fmt.Errorf("write snapshot image: %w", err)
		}
	}

	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
