// Package config provides configuration loading for the noise tools.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/latticenoise/noise"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tool's configuration parameters.
type Config struct {
	Noise     noise.Config    `yaml:"noise"`
	Sampling  SamplingConfig  `yaml:"sampling"`
	Preview   PreviewConfig   `yaml:"preview"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Search    SearchConfig    `yaml:"search"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SamplingConfig describes the grid a batch run fills.
type SamplingConfig struct {
	Type       noise.NoiseType `yaml:"type"`
	Dimensions int             `yaml:"dimensions"` // 2 = square, 3 = cube, 4 = cube at fixed w
	Width      int             `yaml:"width"`
	Height     int             `yaml:"height"`
	Depth      int             `yaml:"depth"` // Ignored for 2D
	Start      StartConfig     `yaml:"start"`
}

// StartConfig is the world coordinate of the first sample.
type StartConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
}

// PreviewConfig holds display settings for the interactive preview.
type PreviewConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	TexScale  int `yaml:"tex_scale"` // Screen pixels per noise sample
}

// ServerConfig holds SSH previewer settings.
type ServerConfig struct {
	Addr        string  `yaml:"addr"`
	HostKey     string  `yaml:"host_key"`     // Path to the PEM host key, created if missing
	IdleTimeout int     `yaml:"idle_timeout"` // Seconds; 0 disables
	PanStep     int     `yaml:"pan_step"`     // Samples moved per keypress
	ZoomFactor  float64 `yaml:"zoom_factor"`
}

// TelemetryConfig holds batch statistics parameters.
type TelemetryConfig struct {
	PerfWindow   int     `yaml:"perf_window"`   // Batches kept in the rolling perf window
	RangeBound   float64 `yaml:"range_bound"`   // |v| above this counts as out of range
	WriteSamples bool    `yaml:"write_samples"` // Write samples.csv
	SampleStride int     `yaml:"sample_stride"` // Keep every Nth sample in samples.csv
}

// SearchConfig holds extremum search parameters.
type SearchConfig struct {
	Starts        int     `yaml:"starts"`         // Random starting points per noise type and dimension
	MaxIterations int     `yaml:"max_iterations"` // Per local optimisation
	Span          float64 `yaml:"span"`           // Starting points are drawn from [-span, span]
	Seed          uint64  `yaml:"seed"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SampleCount int           // Samples in one configured batch
	FrameTime   time.Duration // 1 / Preview.TargetFPS
	IdleTimeout time.Duration // Server.IdleTimeout in seconds
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values. Call it again
// after overriding fields from flags.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	c.computeDerived()
	return nil
}

// Validate checks the noise parameters and the sampling grid.
func (c *Config) Validate() error {
	if err := c.Noise.Validate(); err != nil {
		return err
	}
	s := c.Sampling
	if !s.Type.Valid() {
		return fmt.Errorf("%w: unknown sampling type %d", noise.ErrInvalidConfig, uint8(s.Type))
	}
	if s.Dimensions < 2 || s.Dimensions > 4 {
		return fmt.Errorf("%w: sampling dimensions must be 2, 3 or 4, got %d", noise.ErrInvalidConfig, s.Dimensions)
	}
	if !s.Type.Supports(s.Dimensions) {
		return fmt.Errorf("%w: %s in %dD", noise.ErrUnsupportedDimension, s.Type, s.Dimensions)
	}
	if s.Width < 1 || s.Height < 1 || (s.Dimensions > 2 && s.Depth < 1) {
		return fmt.Errorf("%w: sampling extents %dx%dx%d", noise.ErrInvalidSize, s.Width, s.Height, s.Depth)
	}
	if c.Telemetry.SampleStride < 1 {
		return fmt.Errorf("%w: sample_stride must be at least 1", noise.ErrInvalidConfig)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	s := c.Sampling
	c.Derived.SampleCount = s.Width * s.Height
	if s.Dimensions > 2 {
		c.Derived.SampleCount *= s.Depth
	}

	fps := c.Preview.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameTime = time.Second / time.Duration(fps)
	c.Derived.IdleTimeout = time.Duration(c.Server.IdleTimeout) * time.Second
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
