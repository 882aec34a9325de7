package sensor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/thermocam/thermal"
)

// SampleRecord is one row of samples.csv: the raw sensor frame of a tick.
type SampleRecord struct {
	Tick    uint64 `csv:"tick"`
	Samples string `csv:"samples"` // FormatFrame encoding
}

// Replay plays back frames recorded to samples.csv.
type Replay struct {
	rows, cols int
	records    []SampleRecord
	pos        int
	loop       bool
}

// OpenReplay loads every record from path.
func OpenReplay(path string, rows, cols int, loop bool) (*Replay, error) {
	if path == "" {
		return nil, errors.New("replay path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []SampleRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewReplay(records, rows, cols, loop)
}

// NewReplay plays back records held in memory.
func NewReplay(records []SampleRecord, rows, cols int, loop bool) (*Replay, error) {
	if len(records) == 0 {
		return nil, errors.New("replay has no frames")
	}
	return &Replay{rows: rows, cols: cols, records: records, loop: loop}, nil
}

// ReadSamples decodes the next recorded frame into dst. At the end of the
// recording it wraps around when looping and returns io.EOF otherwise.
func (r *Replay) ReadSamples(dst *thermal.Grid) error {
	if err := checkDims(dst, r.rows, r.cols); err != nil {
		return err
	}
	if r.records == nil {
		return errors.New("replay closed")
	}
	if r.pos >= len(r.records) {
		if !r.loop {
			return io.EOF
		}
		r.pos = 0
	}
	rec := r.records[r.pos]
	r.pos++
	if err := ParseFrame(rec.Samples, dst); err != nil {
		return fmt.Errorf("replay tick %d: %w", rec.Tick, err)
	}
	return nil
}

// Dims returns the sample grid dimensions.
func (r *Replay) Dims() (rows, cols int) { return r.rows, r.cols }

// Len returns the number of recorded frames.
func (r *Replay) Len() int { return len(r.records) }

// Close releases the recording.
func (r *Replay) Close() error {
	r.records = nil
	r.pos = 0
	return nil
}
