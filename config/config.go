// Package config provides configuration loading and access for the thermal camera.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all camera configuration parameters.
type Config struct {
	Screen        ScreenConfig        `yaml:"screen"`
	Sensor        SensorConfig        `yaml:"sensor"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Smoothing     SmoothingConfig     `yaml:"smoothing"`
	Range         RangeConfig         `yaml:"range"`
	Timing        TimingConfig        `yaml:"timing"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Bookmarks     BookmarksConfig     `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// Width and Height describe the device surface the pipeline paints into;
// Scale is the window magnification used by the windowed front end.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Scale     int    `yaml:"scale"`
	TargetFPS int    `yaml:"target_fps"` // 0 = let the tick scheduler pace frames
	Title     string `yaml:"title"`
}

// SensorConfig selects and configures the sample source.
type SensorConfig struct {
	Source    string          `yaml:"source"` // simulated, serial, replay
	Rows      int             `yaml:"rows"`
	Cols      int             `yaml:"cols"`
	Serial    SerialConfig    `yaml:"serial"`
	Simulated SimulatedConfig `yaml:"simulated"`
	Replay    ReplayConfig    `yaml:"replay"`
}

// SerialConfig holds serial bridge parameters.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	StopBits int    `yaml:"stop_bits"`
	Parity   string `yaml:"parity"`
	// Read timeout per frame line in milliseconds (0 = block)
	ReadTimeoutMS int `yaml:"read_timeout_ms"`
}

// SimulatedConfig holds synthetic scene parameters.
type SimulatedConfig struct {
	Seed         int64   `yaml:"seed"`          // 0 = time-based
	Ambient      float64 `yaml:"ambient"`       // Background temperature (°C)
	Variation    float64 `yaml:"variation"`     // Amplitude of the drifting background field (°C)
	FieldScale   float64 `yaml:"field_scale"`   // Spatial frequency of the background field
	DriftSpeed   float64 `yaml:"drift_speed"`   // Background evolution per read
	Hotspots     int     `yaml:"hotspots"`      // Number of orbiting warm bodies
	HotspotTemp  float64 `yaml:"hotspot_temp"`  // Peak temperature of a hotspot (°C)
	HotspotSigma float64 `yaml:"hotspot_sigma"` // Gaussian radius in sensor cells
	OrbitSpeed   float64 `yaml:"orbit_speed"`   // Radians per read
	Noise        float64 `yaml:"noise"`         // Per-sample Gaussian noise stddev (°C)
	FailAfter    int     `yaml:"fail_after"`    // Fail reads after N frames (0 = never)
}

// ReplayConfig holds recorded-sample playback parameters.
type ReplayConfig struct {
	Path string `yaml:"path"`
	Loop bool   `yaml:"loop"`
}

// InterpolationConfig holds the destination grid dimensions.
type InterpolationConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// SmoothingConfig holds temporal smoothing parameters.
type SmoothingConfig struct {
	FrameHistory int `yaml:"frame_history"`
}

// RangeConfig holds range tracking parameters.
type RangeConfig struct {
	History    int     `yaml:"history"`
	InitialMin float64 `yaml:"initial_min"`
	InitialMax float64 `yaml:"initial_max"`
}

// TimingConfig holds scheduler parameters.
type TimingConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int  `yaml:"stats_window"` // ticks per stats window
	BookmarkHistorySize int  `yaml:"bookmark_history_size"`
	PerfCollectorWindow int  `yaml:"perf_collector_window"`
	RecordSamples       bool `yaml:"record_samples"`
	SnapshotScale       int  `yaml:"snapshot_scale"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	HeatSpike HeatSpikeConfig `yaml:"heat_spike"`
	CoolDown  CoolDownConfig  `yaml:"cool_down"`
	FlatScene FlatSceneConfig `yaml:"flat_scene"`
}

// HeatSpikeConfig holds heat spike detection parameters.
type HeatSpikeConfig struct {
	Delta float64 `yaml:"delta"` // °C above the rolling mean of window maxima
}

// CoolDownConfig holds cool down detection parameters.
type CoolDownConfig struct {
	Delta float64 `yaml:"delta"` // °C below the recent peak
}

// FlatSceneConfig holds flat scene detection parameters.
type FlatSceneConfig struct {
	MaxSpan     float64 `yaml:"max_span"`     // Display span at or below this counts as flat
	FlatWindows int     `yaml:"flat_windows"` // Consecutive flat windows required
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickPeriod   time.Duration // Timing.TickMS as a duration
	SourceCells  int           // Sensor.Rows * Sensor.Cols
	DestCells    int           // Interpolation.Rows * Interpolation.Cols
	WindowWidth  int32         // Screen.Width * Screen.Scale
	WindowHeight int32         // Screen.Height * Screen.Scale
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks that the configuration describes a runnable pipeline.
func (c *Config) Validate() error {
	switch c.Sensor.Source {
	case "simulated", "serial", "replay":
	default:
		return fmt.Errorf("sensor.source %q: expected simulated, serial, or replay", c.Sensor.Source)
	}
	if c.Sensor.Rows < 1 || c.Sensor.Cols < 1 {
		return fmt.Errorf("sensor grid %dx%d: dimensions must be positive", c.Sensor.Rows, c.Sensor.Cols)
	}
	if c.Interpolation.Rows < 1 || c.Interpolation.Cols < 1 {
		return fmt.Errorf("interpolation grid %dx%d: dimensions must be positive",
			c.Interpolation.Rows, c.Interpolation.Cols)
	}
	if c.Smoothing.FrameHistory < 1 {
		return fmt.Errorf("smoothing.frame_history must be at least 1, got %d", c.Smoothing.FrameHistory)
	}
	if c.Range.History < 1 {
		return fmt.Errorf("range.history must be at least 1, got %d", c.Range.History)
	}
	if c.Range.InitialMin > c.Range.InitialMax {
		return fmt.Errorf("range.initial_min %.1f exceeds range.initial_max %.1f",
			c.Range.InitialMin, c.Range.InitialMax)
	}
	if c.Timing.TickMS < 1 {
		return fmt.Errorf("timing.tick_ms must be positive, got %d", c.Timing.TickMS)
	}
	if c.Screen.Width < c.Interpolation.Cols || c.Screen.Height < c.Interpolation.Rows {
		return fmt.Errorf("screen %dx%d cannot hold a %dx%d map",
			c.Screen.Width, c.Screen.Height, c.Interpolation.Cols, c.Interpolation.Rows)
	}
	if c.Sensor.Source == "serial" && c.Sensor.Serial.Port == "" {
		return fmt.Errorf("sensor.serial.port is required for the serial source")
	}
	if c.Sensor.Source == "replay" && c.Sensor.Replay.Path == "" {
		return fmt.Errorf("sensor.replay.path is required for the replay source")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickPeriod = time.Duration(c.Timing.TickMS) * time.Millisecond
	c.Derived.SourceCells = c.Sensor.Rows * c.Sensor.Cols
	c.Derived.DestCells = c.Interpolation.Rows * c.Interpolation.Cols

	scale := c.Screen.Scale
	if scale < 1 {
		scale = 1
	}
	c.Derived.WindowWidth = int32(c.Screen.Width * scale)
	c.Derived.WindowHeight = int32(c.Screen.Height * scale)

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
	if c.Telemetry.SnapshotScale < 1 {
		c.Telemetry.SnapshotScale = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
