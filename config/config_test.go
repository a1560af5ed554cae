package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/latticenoise/noise"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Noise != noise.DefaultConfig() {
		t.Errorf("embedded noise defaults = %+v, want %+v", cfg.Noise, noise.DefaultConfig())
	}
	if cfg.Sampling.Type != noise.SimplexFractal {
		t.Errorf("sampling type = %s, want simplex_fractal", cfg.Sampling.Type)
	}
	if cfg.Derived.SampleCount != 256*256 {
		t.Errorf("SampleCount = %d, want %d", cfg.Derived.SampleCount, 256*256)
	}
	if cfg.Derived.FrameTime != time.Second/60 {
		t.Errorf("FrameTime = %v", cfg.Derived.FrameTime)
	}
	if cfg.Derived.IdleTimeout != 600*time.Second {
		t.Errorf("IdleTimeout = %v", cfg.Derived.IdleTimeout)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte(`
noise:
  seed: -5
  fractal_type: ridged_multi
  interpolation: hermite
sampling:
  type: perlin
  dimensions: 3
  depth: 4
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Noise.Seed != -5 {
		t.Errorf("seed = %d, want -5", cfg.Noise.Seed)
	}
	if cfg.Noise.FractalType != noise.RidgedMulti || cfg.Noise.Interpolation != noise.Hermite {
		t.Errorf("enums not decoded: %+v", cfg.Noise)
	}
	// Untouched keys keep their defaults.
	if cfg.Noise.Octaves != 3 || cfg.Noise.Frequency != 0.01 {
		t.Errorf("defaults lost: %+v", cfg.Noise)
	}
	if cfg.Derived.SampleCount != 256*256*4 {
		t.Errorf("SampleCount = %d, want %d", cfg.Derived.SampleCount, 256*256*4)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown enum", "noise:\n  fractal_type: spiky\n", nil},
		{"zero frequency", "noise:\n  frequency: 0\n", noise.ErrInvalidConfig},
		{"too many octaves", "noise:\n  octaves: 99\n", noise.ErrInvalidConfig},
		{"perlin 4D", "sampling:\n  type: perlin\n  dimensions: 4\n", noise.ErrUnsupportedDimension},
		{"zero width", "sampling:\n  width: 0\n", noise.ErrInvalidSize},
		{"bad dimensions", "sampling:\n  dimensions: 5\n", noise.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Noise.Seed = 777
	cfg.Noise.FractalType = noise.Billow
	cfg.Sampling.Type = noise.OpenSimplex

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Noise != cfg.Noise {
		t.Errorf("noise config = %+v, want %+v", back.Noise, cfg.Noise)
	}
	if back.Sampling != cfg.Sampling {
		t.Errorf("sampling config = %+v, want %+v", back.Sampling, cfg.Sampling)
	}
}
