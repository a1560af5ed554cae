package noise

import "fmt"

// Generator evaluates seeded coherent noise.
//
// A Generator is not safe for concurrent use. Create one per goroutine; two
// generators built from equal configs produce bit-identical output.
type Generator struct {
	cfg Config

	table   *PermutationTable
	perlin  PerlinKernel
	simplex SimplexKernel
	open    OpenSimplexKernel
	fractal Fractal
}

// NewGenerator builds a generator for cfg.
func NewGenerator(cfg Config) (*Generator, error) {
	g := &Generator{}
	if err := g.Configure(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Configure replaces the whole configuration. The permutation table is rebuilt
// only when the seed changes. On error the previous configuration is kept.
func (g *Generator) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	fractal, err := NewFractal(cfg.FractalType, cfg.Octaves, cfg.Lacunarity, cfg.Gain)
	if err != nil {
		return err
	}

	if g.table == nil || cfg.Seed != g.cfg.Seed {
		// Fresh table so fields handed out earlier keep hashing through the old one.
		g.table = NewPermutationTable(cfg.Seed)
		g.open = NewOpenSimplexKernel(cfg.Seed)
	}

	g.cfg = cfg
	g.perlin = NewPerlinKernel(g.table, cfg.Interpolation)
	g.simplex = NewSimplexKernel(g.table)
	g.fractal = fractal
	return nil
}

// Config returns the active configuration.
func (g *Generator) Config() Config { return g.cfg }

// Seed returns the active seed.
func (g *Generator) Seed() int32 { return g.cfg.Seed }

// Table returns the permutation table shared by the lattice kernels.
func (g *Generator) Table() *PermutationTable { return g.table }

// Fractal returns the active octave combinator.
func (g *Generator) Fractal() Fractal { return g.fractal }

// SetSeed reseeds the generator and rebuilds the permutation table.
func (g *Generator) SetSeed(seed int32) error {
	cfg := g.cfg
	cfg.Seed = seed
	return g.Configure(cfg)
}

// SetFrequency sets the world-to-lattice coordinate scale.
func (g *Generator) SetFrequency(frequency float64) error {
	cfg := g.cfg
	cfg.Frequency = frequency
	return g.Configure(cfg)
}

// SetInterpolation sets the Perlin interpolation curve.
func (g *Generator) SetInterpolation(interp Interp) error {
	cfg := g.cfg
	cfg.Interpolation = interp
	return g.Configure(cfg)
}

// SetFractalOctaves sets the octave count.
func (g *Generator) SetFractalOctaves(octaves int) error {
	cfg := g.cfg
	cfg.Octaves = octaves
	return g.Configure(cfg)
}

// SetFractalLacunarity sets the per-octave frequency multiplier.
func (g *Generator) SetFractalLacunarity(lacunarity float64) error {
	cfg := g.cfg
	cfg.Lacunarity = lacunarity
	return g.Configure(cfg)
}

// SetFractalGain sets the per-octave amplitude multiplier.
func (g *Generator) SetFractalGain(gain float64) error {
	cfg := g.cfg
	cfg.Gain = gain
	return g.Configure(cfg)
}

// SetFractalType sets the octave combination algorithm.
func (g *Generator) SetFractalType(typ FractalType) error {
	cfg := g.cfg
	cfg.FractalType = typ
	return g.Configure(cfg)
}

// Perlin2 returns 2D Perlin noise at world coordinates (x, y).
func (g *Generator) Perlin2(x, y float64) float64 {
	f := g.cfg.Frequency
	return g.perlin.Eval2(0, x*f, y*f)
}

// Perlin3 returns 3D Perlin noise at world coordinates (x, y, z).
func (g *Generator) Perlin3(x, y, z float64) float64 {
	f := g.cfg.Frequency
	return g.perlin.Eval3(0, x*f, y*f, z*f)
}

// PerlinFractal2 returns fractal 2D Perlin noise.
func (g *Generator) PerlinFractal2(x, y float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval2(g.perlin, x*f, y*f)
}

// PerlinFractal3 returns fractal 3D Perlin noise.
func (g *Generator) PerlinFractal3(x, y, z float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval3(g.perlin, x*f, y*f, z*f)
}

// Simplex2 returns 2D simplex noise at world coordinates (x, y).
func (g *Generator) Simplex2(x, y float64) float64 {
	f := g.cfg.Frequency
	return g.simplex.Eval2(0, x*f, y*f)
}

// Simplex3 returns 3D simplex noise.
func (g *Generator) Simplex3(x, y, z float64) float64 {
	f := g.cfg.Frequency
	return g.simplex.Eval3(0, x*f, y*f, z*f)
}

// Simplex4 returns 4D simplex noise.
func (g *Generator) Simplex4(x, y, z, w float64) float64 {
	f := g.cfg.Frequency
	return g.simplex.Eval4(0, x*f, y*f, z*f, w*f)
}

// SimplexFractal2 returns fractal 2D simplex noise.
func (g *Generator) SimplexFractal2(x, y float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval2(g.simplex, x*f, y*f)
}

// SimplexFractal3 returns fractal 3D simplex noise.
func (g *Generator) SimplexFractal3(x, y, z float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval3(g.simplex, x*f, y*f, z*f)
}

// SimplexFractal4 returns fractal 4D simplex noise.
func (g *Generator) SimplexFractal4(x, y, z, w float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval4(g.simplex, x*f, y*f, z*f, w*f)
}

// OpenSimplex2 returns 2D OpenSimplex noise.
func (g *Generator) OpenSimplex2(x, y float64) float64 {
	f := g.cfg.Frequency
	return g.open.Eval2(0, x*f, y*f)
}

// OpenSimplex3 returns 3D OpenSimplex noise.
func (g *Generator) OpenSimplex3(x, y, z float64) float64 {
	f := g.cfg.Frequency
	return g.open.Eval3(0, x*f, y*f, z*f)
}

// OpenSimplex4 returns 4D OpenSimplex noise.
func (g *Generator) OpenSimplex4(x, y, z, w float64) float64 {
	f := g.cfg.Frequency
	return g.open.Eval4(0, x*f, y*f, z*f, w*f)
}

// OpenSimplexFractal2 returns fractal 2D OpenSimplex noise.
func (g *Generator) OpenSimplexFractal2(x, y float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval2(g.open, x*f, y*f)
}

// OpenSimplexFractal3 returns fractal 3D OpenSimplex noise.
func (g *Generator) OpenSimplexFractal3(x, y, z float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval3(g.open, x*f, y*f, z*f)
}

// OpenSimplexFractal4 returns fractal 4D OpenSimplex noise.
func (g *Generator) OpenSimplexFractal4(x, y, z, w float64) float64 {
	f := g.cfg.Frequency
	return g.fractal.Eval4(g.open, x*f, y*f, z*f, w*f)
}

// Eval2 evaluates noise type t at world coordinates (x, y).
func (g *Generator) Eval2(t NoiseType, x, y float64) (float64, error) {
	fn, err := g.Field2(t)
	if err != nil {
		return 0, err
	}
	f := g.cfg.Frequency
	return fn(x*f, y*f), nil
}

// Eval3 evaluates noise type t at world coordinates (x, y, z).
func (g *Generator) Eval3(t NoiseType, x, y, z float64) (float64, error) {
	fn, err := g.Field3(t)
	if err != nil {
		return 0, err
	}
	f := g.cfg.Frequency
	return fn(x*f, y*f, z*f), nil
}

// Eval4 evaluates noise type t at world coordinates (x, y, z, w).
func (g *Generator) Eval4(t NoiseType, x, y, z, w float64) (float64, error) {
	fn, err := g.Field4(t)
	if err != nil {
		return 0, err
	}
	f := g.cfg.Frequency
	return fn(x*f, y*f, z*f, w*f), nil
}

// Func2 evaluates a 2D field at lattice-space coordinates.
type Func2 func(x, y float64) float64

// Func3 evaluates a 3D field at lattice-space coordinates.
type Func3 func(x, y, z float64) float64

// Func4 evaluates a 4D field at lattice-space coordinates.
type Func4 func(x, y, z, w float64) float64

// Field2 returns the evaluator for t over coordinates already scaled by the
// frequency. The function captures the current configuration; later calls to
// Configure do not affect it.
func (g *Generator) Field2(t NoiseType) (Func2, error) {
	k, err := g.lattice2(t)
	if err != nil {
		return nil, err
	}
	if t.IsFractal() {
		fr := g.fractal
		return func(x, y float64) float64 { return fr.Eval2(k, x, y) }, nil
	}
	return func(x, y float64) float64 { return k.Eval2(0, x, y) }, nil
}

// Field3 is the 3D form of Field2.
func (g *Generator) Field3(t NoiseType) (Func3, error) {
	k, err := g.lattice3(t)
	if err != nil {
		return nil, err
	}
	if t.IsFractal() {
		fr := g.fractal
		return func(x, y, z float64) float64 { return fr.Eval3(k, x, y, z) }, nil
	}
	return func(x, y, z float64) float64 { return k.Eval3(0, x, y, z) }, nil
}

// Field4 is the 4D form of Field2. Perlin types return ErrUnsupportedDimension.
func (g *Generator) Field4(t NoiseType) (Func4, error) {
	k, err := g.lattice4(t)
	if err != nil {
		return nil, err
	}
	if t.IsFractal() {
		fr := g.fractal
		return func(x, y, z, w float64) float64 { return fr.Eval4(k, x, y, z, w) }, nil
	}
	return func(x, y, z, w float64) float64 { return k.Eval4(0, x, y, z, w) }, nil
}

func (g *Generator) lattice2(t NoiseType) (Lattice2, error) {
	switch t {
	case Perlin, PerlinFractal:
		return g.perlin, nil
	case Simplex, SimplexFractal:
		return g.simplex, nil
	case OpenSimplex, OpenSimplexFractal:
		return g.open, nil
	}
	return nil, fmt.Errorf("%w: unknown noise type %d", ErrInvalidConfig, uint8(t))
}

func (g *Generator) lattice3(t NoiseType) (Lattice3, error) {
	switch t {
	case Perlin, PerlinFractal:
		return g.perlin, nil
	case Simplex, SimplexFractal:
		return g.simplex, nil
	case OpenSimplex, OpenSimplexFractal:
		return g.open, nil
	}
	return nil, fmt.Errorf("%w: unknown noise type %d", ErrInvalidConfig, uint8(t))
}

func (g *Generator) lattice4(t NoiseType) (Lattice4, error) {
	switch t {
	case Perlin, PerlinFractal:
		return nil, fmt.Errorf("%w: %s has no 4D form", ErrUnsupportedDimension, t)
	case Simplex, SimplexFractal:
		return g.simplex, nil
	case OpenSimplex, OpenSimplexFractal:
		return g.open, nil
	}
	return nil, fmt.Errorf("%w: unknown noise type %d", ErrInvalidConfig, uint8(t))
}
