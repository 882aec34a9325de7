package sensor

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/thermocam/config"
	"github.com/pthm-cable/thermocam/thermal"
)

// ErrSimulatedFailure is returned once a simulated sensor passes FailAfter reads.
var ErrSimulatedFailure = errors.New("simulated sensor stopped responding")

// Simulated synthesises a scene: a slowly drifting background field from
// OpenSimplex noise, warm bodies orbiting the center of view and per-sample
// Gaussian noise.
type Simulated struct {
	rows, cols int
	cfg        config.SimulatedConfig
	field      opensimplex.Noise
	rng        *rand.Rand
	reads      int
	closed     bool
}

// NewSimulated creates a simulated rows x cols sensor.
func NewSimulated(rows, cols int, cfg config.SimulatedConfig) *Simulated {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulated{
		rows:  rows,
		cols:  cols,
		cfg:   cfg,
		field: opensimplex.New(seed),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// ReadSamples fills dst with the next simulated frame.
func (s *Simulated) ReadSamples(dst *thermal.Grid) error {
	if s.closed {
		return errors.New("simulated sensor closed")
	}
	if s.cfg.FailAfter > 0 && s.reads >= s.cfg.FailAfter {
		return ErrSimulatedFailure
	}
	if err := checkDims(dst, s.rows, s.cols); err != nil {
		return err
	}

	t := float64(s.reads)
	s.reads++

	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			v := s.cfg.Ambient
			if s.cfg.Variation != 0 {
				v += s.cfg.Variation * s.field.Eval3(
					float64(x)*s.cfg.FieldScale,
					float64(y)*s.cfg.FieldScale,
					t*s.cfg.DriftSpeed,
				)
			}
			v += s.hotspots(float64(x), float64(y), t)
			if s.cfg.Noise > 0 {
				v += s.rng.NormFloat64() * s.cfg.Noise
			}
			dst.Data[y*s.cols+x] = v
		}
	}
	return nil
}

// hotspots returns the combined contribution of the orbiting warm bodies at (x, y).
func (s *Simulated) hotspots(x, y, t float64) float64 {
	n := s.cfg.Hotspots
	if n <= 0 || s.cfg.HotspotSigma <= 0 {
		return 0
	}
	cx := float64(s.cols-1) / 2
	cy := float64(s.rows-1) / 2
	radius := math.Min(float64(s.rows), float64(s.cols)) / 4
	amp := s.cfg.HotspotTemp - s.cfg.Ambient
	twoSigma2 := 2 * s.cfg.HotspotSigma * s.cfg.HotspotSigma

	var sum float64
	for k := 0; k < n; k++ {
		angle := t*s.cfg.OrbitSpeed + 2*math.Pi*float64(k)/float64(n)
		hx := cx + radius*math.Cos(angle)
		hy := cy + radius*math.Sin(angle)
		d2 := (x-hx)*(x-hx) + (y-hy)*(y-hy)
		sum += amp * math.Exp(-d2/twoSigma2)
	}
	return sum
}

// Dims returns the sample grid dimensions.
func (s *Simulated) Dims() (rows, cols int) { return s.rows, s.cols }

// Reads returns how many frames have been produced.
func (s *Simulated) Reads() int { return s.reads }

// Close stops the sensor.
func (s *Simulated) Close() error {
	s.closed = true
	return nil
}
