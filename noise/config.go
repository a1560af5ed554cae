package noise

import "fmt"

// Config holds every user-settable parameter of a Generator.
type Config struct {
	Seed          int32       `yaml:"seed" json:"seed"`
	Frequency     float64     `yaml:"frequency" json:"frequency"`
	Interpolation Interp      `yaml:"interpolation" json:"interpolation"`
	FractalType   FractalType `yaml:"fractal_type" json:"fractal_type"`
	Octaves       int         `yaml:"octaves" json:"octaves"`
	Lacunarity    float64     `yaml:"lacunarity" json:"lacunarity"`
	Gain          float64     `yaml:"gain" json:"gain"`
}

// DefaultConfig returns the configuration a fresh generator starts with.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		Frequency:     0.01,
		Interpolation: Quintic,
		FractalType:   FBM,
		Octaves:       3,
		Lacunarity:    2.0,
		Gain:          0.5,
	}
}

// Validate reports the first parameter that would make evaluation meaningless.
func (c Config) Validate() error {
	if !isFinite(c.Frequency) || c.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be positive and finite, got %v", ErrInvalidConfig, c.Frequency)
	}
	if !c.Interpolation.Valid() {
		return fmt.Errorf("%w: unknown interpolation %d", ErrInvalidConfig, uint8(c.Interpolation))
	}
	_, err := NewFractal(c.FractalType, c.Octaves, c.Lacunarity, c.Gain)
	return err
}
