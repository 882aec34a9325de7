// Package sensor provides sample sources for the thermal pipeline: a
// simulated scene, a serial bridge and playback of recorded samples.
package sensor

import (
	"fmt"
	"io"
	"time"

	"github.com/pthm-cable/thermocam/config"
	"github.com/pthm-cable/thermocam/thermal"
)

// Source is a thermal.Source that owns a device.
type Source interface {
	thermal.Source
	io.Closer

	// Dims returns the sample grid dimensions the source produces.
	Dims() (rows, cols int)
}

// Source kinds accepted by Open.
const (
	KindSimulated = "simulated"
	KindSerial    = "serial"
	KindReplay    = "replay"
)

// Open builds the source selected by cfg.Source.
func Open(cfg config.SensorConfig) (Source, error) {
	switch cfg.Source {
	case KindSimulated, "":
		return NewSimulated(cfg.Rows, cfg.Cols, cfg.Simulated), nil
	case KindSerial:
		opts := PortOptions{
			BaudRate: cfg.Serial.BaudRate,
			DataBits: cfg.Serial.DataBits,
			StopBits: cfg.Serial.StopBits,
			Parity:   cfg.Serial.Parity,
		}
		timeout := time.Duration(cfg.Serial.ReadTimeoutMS) * time.Millisecond
		s, err := OpenSerial(cfg.Serial.Port, opts, timeout, cfg.Rows, cfg.Cols)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindReplay:
		r, err := OpenReplay(cfg.Replay.Path, cfg.Rows, cfg.Cols, cfg.Replay.Loop)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown sensor source %q", cfg.Source)
	}
}

func checkDims(dst *thermal.Grid, rows, cols int) error {
	if dst.Rows != rows || dst.Cols != cols {
		return fmt.Errorf("sensor produces %dx%d samples, destination is %dx%d: %w",
			rows, cols, dst.Rows, dst.Cols, thermal.ErrGridSize)
	}
	return nil
}
