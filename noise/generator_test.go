package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/latticenoise/rng"
)

func mustGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestPerlinZeroAtLatticePoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Frequency = 0.01
	g := mustGenerator(t, cfg)

	// Lattice points sit on every gradient's zero plane.
	if got := g.Perlin2(0, 0); got != 0 {
		t.Errorf("Perlin2(0, 0) = %v, want 0", got)
	}
	if got := g.Perlin3(0, 0, 0); got != 0 {
		t.Errorf("Perlin3(0, 0, 0) = %v, want 0", got)
	}
	if got := g.Perlin2(100, -300); got != 0 {
		t.Errorf("Perlin2 at lattice point (1, -3) = %v, want 0", got)
	}
}

// Values captured once for seed 42, frequency 0.01, quintic, 3-octave FBM.
// The tolerance only absorbs fused multiply-add on some architectures.
func TestGoldenValuesSeed42(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Frequency = 0.01
	g := mustGenerator(t, cfg)

	const x, y, z, w = 12.3, 45.6, 78.9, -3.21
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Perlin2", g.Perlin2(x, y), 0.4911116978781184},
		{"PerlinFractal2", g.PerlinFractal2(x, y), 0.28242299653612035},
		{"Simplex2", g.Simplex2(x, y), 0.4668645424477708},
		{"Simplex3", g.Simplex3(x, y, z), -0.24614511311692933},
		{"Simplex4", g.Simplex4(x, y, z, w), -0.11768115472195945},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-12 {
				t.Errorf("%s = %.17g, want %.17g", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestDeterminismAcrossGenerators(t *testing.T) {
	for _, seed := range []int32{0, 42, -7, 1 << 30} {
		cfg := DefaultConfig()
		cfg.Seed = seed
		cfg.Octaves = 5
		a := mustGenerator(t, cfg)
		b := mustGenerator(t, cfg)

		src := rng.New(uint64(seed) + 1)
		for i := 0; i < 500; i++ {
			x := (src.Float64() - 0.5) * 10000
			y := (src.Float64() - 0.5) * 10000
			z := (src.Float64() - 0.5) * 10000
			w := (src.Float64() - 0.5) * 10000

			for _, typ := range NoiseTypes() {
				va, err := a.Eval3(typ, x, y, z)
				if err != nil {
					t.Fatal(err)
				}
				vb, _ := b.Eval3(typ, x, y, z)
				if va != vb {
					t.Fatalf("seed %d %s: %v != %v at (%v, %v, %v)", seed, typ, va, vb, x, y, z)
				}
			}
			if a.Simplex4(x, y, z, w) != b.Simplex4(x, y, z, w) {
				t.Fatalf("seed %d: Simplex4 differs", seed)
			}
		}
	}
}

func TestSeedChangesOutput(t *testing.T) {
	a := mustGenerator(t, DefaultConfig())
	cfg := DefaultConfig()
	cfg.Seed = 43
	b := mustGenerator(t, cfg)

	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i)*13.7 + 0.5
		if a.Simplex2(x, x*0.3) == b.Simplex2(x, x*0.3) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("expected different seeds to differ, %d of 100 samples equal", same)
	}
}

func TestSetSeedMatchesFreshGenerator(t *testing.T) {
	g := mustGenerator(t, DefaultConfig())
	if err := g.SetSeed(9001); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Seed = 9001
	fresh := mustGenerator(t, cfg)

	if g.Table().Perm() != fresh.Table().Perm() {
		t.Fatal("expected SetSeed to rebuild the permutation table")
	}
	for i := 0; i < 50; i++ {
		x, y := float64(i)*3.1, float64(i)*-7.3
		if g.PerlinFractal2(x, y) != fresh.PerlinFractal2(x, y) {
			t.Fatalf("PerlinFractal2 differs after SetSeed at %d", i)
		}
		if g.OpenSimplex2(x, y) != fresh.OpenSimplex2(x, y) {
			t.Fatalf("OpenSimplex2 differs after SetSeed at %d", i)
		}
	}
}

func TestRangeBound(t *testing.T) {
	const bound = 1.05
	g := mustGenerator(t, Config{
		Seed: 1337, Frequency: 1, Interpolation: Quintic,
		FractalType: FBM, Octaves: 1, Lacunarity: 2, Gain: 0.5,
	})
	src := rng.New(2024)
	coord := func() float64 { return (src.Float64() - 0.5) * 512 }

	check := func(name string, v float64) {
		t.Helper()
		if math.IsNaN(v) || math.Abs(v) > bound {
			t.Fatalf("%s = %v outside [-%v, %v]", name, v, bound, bound)
		}
	}

	for _, interp := range []Interp{Hermite, Quintic} {
		if err := g.SetInterpolation(interp); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 20000; i++ {
			check("Perlin2", g.Perlin2(coord(), coord()))
			check("Perlin3", g.Perlin3(coord(), coord(), coord()))
		}
	}
	for i := 0; i < 20000; i++ {
		check("Simplex2", g.Simplex2(coord(), coord()))
		check("Simplex3", g.Simplex3(coord(), coord(), coord()))
		check("Simplex4", g.Simplex4(coord(), coord(), coord(), coord()))
	}
}

func TestNoiseIsNotFlat(t *testing.T) {
	g := mustGenerator(t, DefaultConfig())
	src := rng.New(3)
	nonZero := 0
	for i := 0; i < 1000; i++ {
		x := src.Float64() * 1000
		y := src.Float64() * 1000
		if math.Abs(g.Simplex2(x, y)) > 0.05 && math.Abs(g.Perlin2(x+0.5, y+0.5)) > 0.01 {
			nonZero++
		}
	}
	if nonZero < 300 {
		t.Errorf("expected most samples to be away from zero, got %d of 1000", nonZero)
	}
}

func TestContinuity(t *testing.T) {
	g := mustGenerator(t, Config{
		Seed: 77, Frequency: 1, Interpolation: Quintic,
		FractalType: FBM, Octaves: 3, Lacunarity: 2, Gain: 0.5,
	})
	src := rng.New(77)
	const eps = 1e-6
	const tol = 1e-3

	fields := []struct {
		name string
		fn   func(x, y float64) float64
	}{
		{"Perlin2", g.Perlin2},
		{"Simplex2", g.Simplex2},
		{"PerlinFractal2", g.PerlinFractal2},
		{"Perlin3", func(x, y float64) float64 { return g.Perlin3(x, y, x-y) }},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				x := (src.Float64() - 0.5) * 200
				y := (src.Float64() - 0.5) * 200
				a := f.fn(x, y)
				b := f.fn(x+eps, y+eps)
				if math.Abs(a-b) > tol {
					t.Fatalf("jump of %v at (%v, %v)", math.Abs(a-b), x, y)
				}
			}
		})
	}
}

func TestFBMNormalization(t *testing.T) {
	src := rng.New(11)
	for _, octaves := range []int{1, 2, 4, 8, 16} {
		for _, gain := range []float64{0.1, 0.5, 0.9} {
			g := mustGenerator(t, Config{
				Seed: 5, Frequency: 0.37, Interpolation: Quintic,
				FractalType: FBM, Octaves: octaves, Lacunarity: 2, Gain: gain,
			})
			for i := 0; i < 1000; i++ {
				x := (src.Float64() - 0.5) * 1000
				y := (src.Float64() - 0.5) * 1000
				z := (src.Float64() - 0.5) * 1000
				for _, v := range []float64{g.PerlinFractal2(x, y), g.PerlinFractal3(x, y, z), g.SimplexFractal3(x, y, z)} {
					if math.Abs(v) > 1.1 {
						t.Fatalf("octaves=%d gain=%v: FBM value %v outside [-1.1, 1.1]", octaves, gain, v)
					}
				}
			}
		}
	}
}

func TestSingleOctaveFBMEqualsKernel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Octaves = 1
	g := mustGenerator(t, cfg)
	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*1.7, float64(i)*-2.3, float64(i)*0.9
		if g.PerlinFractal2(x, y) != g.Perlin2(x, y) {
			t.Fatalf("PerlinFractal2 != Perlin2 at %d", i)
		}
		if g.SimplexFractal3(x, y, z) != g.Simplex3(x, y, z) {
			t.Fatalf("SimplexFractal3 != Simplex3 at %d", i)
		}
		if g.SimplexFractal4(x, y, z, x) != g.Simplex4(x, y, z, x) {
			t.Fatalf("SimplexFractal4 != Simplex4 at %d", i)
		}
	}
}

func TestSettersRecomputeDerived(t *testing.T) {
	g := mustGenerator(t, DefaultConfig())
	if err := g.SetFractalOctaves(4); err != nil {
		t.Fatal(err)
	}
	if err := g.SetFractalGain(0.5); err != nil {
		t.Fatal(err)
	}
	want := 1 / (1 + 0.5 + 0.25 + 0.125)
	if got := g.Fractal().Bounding(); math.Abs(got-want) > 1e-12 {
		t.Errorf("bounding = %v, want %v", got, want)
	}

	if err := g.SetFractalLacunarity(3); err != nil {
		t.Fatal(err)
	}
	if got := g.Fractal().SpectralWeight(2); math.Abs(got-1.0/9) > 1e-12 {
		t.Errorf("spectral weight 2 = %v, want 1/9", got)
	}

	if err := g.SetFractalType(Billow); err != nil {
		t.Fatal(err)
	}
	if err := g.SetFrequency(0.5); err != nil {
		t.Fatal(err)
	}
	cfg := g.Config()
	if cfg.Octaves != 4 || cfg.Gain != 0.5 || cfg.Lacunarity != 3 || cfg.FractalType != Billow || cfg.Frequency != 0.5 {
		t.Errorf("unexpected config after setters: %+v", cfg)
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero frequency", func(c *Config) { c.Frequency = 0 }},
		{"negative frequency", func(c *Config) { c.Frequency = -1 }},
		{"NaN frequency", func(c *Config) { c.Frequency = math.NaN() }},
		{"zero octaves", func(c *Config) { c.Octaves = 0 }},
		{"too many octaves", func(c *Config) { c.Octaves = MaxOctaves + 1 }},
		{"zero lacunarity", func(c *Config) { c.Lacunarity = 0 }},
		{"infinite lacunarity", func(c *Config) { c.Lacunarity = math.Inf(1) }},
		{"NaN gain", func(c *Config) { c.Gain = math.NaN() }},
		{"bad interpolation", func(c *Config) { c.Interpolation = Interp(9) }},
		{"bad fractal type", func(c *Config) { c.FractalType = FractalType(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if _, err := NewGenerator(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestFailedSetterKeepsConfig(t *testing.T) {
	g := mustGenerator(t, DefaultConfig())
	before := g.Config()
	if err := g.SetFractalOctaves(0); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if g.Config() != before {
		t.Errorf("config changed after failed setter: %+v", g.Config())
	}
	if g.Fractal().Octaves() != before.Octaves {
		t.Errorf("fractal octaves = %d, want %d", g.Fractal().Octaves(), before.Octaves)
	}
}

func TestPerlinHasNo4D(t *testing.T) {
	g := mustGenerator(t, DefaultConfig())
	for _, typ := range []NoiseType{Perlin, PerlinFractal} {
		if _, err := g.Eval4(typ, 1, 2, 3, 4); !errors.Is(err, ErrUnsupportedDimension) {
			t.Errorf("%s: expected ErrUnsupportedDimension, got %v", typ, err)
		}
		if typ.Supports(4) {
			t.Errorf("%s reports 4D support", typ)
		}
	}
	if _, err := g.Eval2(NoiseType(99), 0, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown type, got %v", err)
	}
}

func TestEvalDispatchMatchesScalar(t *testing.T) {
	g := mustGenerator(t, DefaultConfig())
	x, y, z, w := 12.5, -40.25, 7.75, 3.5

	scalar2 := map[NoiseType]float64{
		Perlin:             g.Perlin2(x, y),
		PerlinFractal:      g.PerlinFractal2(x, y),
		Simplex:            g.Simplex2(x, y),
		SimplexFractal:     g.SimplexFractal2(x, y),
		OpenSimplex:        g.OpenSimplex2(x, y),
		OpenSimplexFractal: g.OpenSimplexFractal2(x, y),
	}
	for typ, want := range scalar2 {
		got, err := g.Eval2(typ, x, y)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("Eval2(%s) = %v, want %v", typ, got, want)
		}
	}

	scalar4 := map[NoiseType]float64{
		Simplex:            g.Simplex4(x, y, z, w),
		SimplexFractal:     g.SimplexFractal4(x, y, z, w),
		OpenSimplex:        g.OpenSimplex4(x, y, z, w),
		OpenSimplexFractal: g.OpenSimplexFractal4(x, y, z, w),
	}
	for typ, want := range scalar4 {
		got, err := g.Eval4(typ, x, y, z, w)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("Eval4(%s) = %v, want %v", typ, got, want)
		}
	}

	if got, _ := g.Eval3(OpenSimplexFractal, x, y, z); got != g.OpenSimplexFractal3(x, y, z) {
		t.Errorf("Eval3(opensimplex_fractal) = %v, want %v", got, g.OpenSimplexFractal3(x, y, z))
	}
}

func TestFieldIsSnapshot(t *testing.T) {
	g := mustGenerator(t, DefaultConfig())
	fn, err := g.Field2(SimplexFractal)
	if err != nil {
		t.Fatal(err)
	}
	before := fn(1.3, 4.2)

	if err := g.SetSeed(1); err != nil {
		t.Fatal(err)
	}
	if err := g.SetFractalOctaves(7); err != nil {
		t.Fatal(err)
	}
	if after := fn(1.3, 4.2); after != before {
		t.Errorf("field changed after reconfigure: %v -> %v", before, after)
	}
}

func TestOpenSimplexOctavesDecorrelated(t *testing.T) {
	k := NewOpenSimplexKernel(42)
	same := 0
	for i := 0; i < 100; i++ {
		x, y := float64(i)*0.37, float64(i)*0.11
		v := k.Eval2(0, x, y)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite OpenSimplex value at %d", i)
		}
		if v == k.Eval2(1, x, y) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("offset slots 0 and 1 agree on %d of 100 samples", same)
	}
}
