package noise

import (
	"fmt"
	"math"
)

// MaxOctaves bounds the octave count; each octave needs a distinct permutation slot
// and a spectral weight.
const MaxOctaves = 32

// Ridged multifractal shaping constants.
const (
	ridgeOffset   = 1.0
	ridgeGain     = 2.0
	ridgeExponent = 1.0 // H, the spectral exponent
)

// Fractal combines octaves of a lattice kernel. The derived constants are
// computed in NewFractal and the value is immutable afterwards.
type Fractal struct {
	typ        FractalType
	octaves    int
	lacunarity float64
	gain       float64

	// Derived
	bounding float64
	spectral []float64
}

// NewFractal validates the parameters and precomputes the amplitude bounding
// factor and the per-octave spectral weights.
func NewFractal(typ FractalType, octaves int, lacunarity, gain float64) (Fractal, error) {
	if !typ.Valid() {
		return Fractal{}, fmt.Errorf("%w: unknown fractal type %d", ErrInvalidConfig, uint8(typ))
	}
	if octaves < 1 || octaves > MaxOctaves {
		return Fractal{}, fmt.Errorf("%w: octaves must be in [1, %d], got %d", ErrInvalidConfig, MaxOctaves, octaves)
	}
	if !isFinite(lacunarity) || lacunarity <= 0 {
		return Fractal{}, fmt.Errorf("%w: lacunarity must be positive and finite, got %v", ErrInvalidConfig, lacunarity)
	}
	if !isFinite(gain) {
		return Fractal{}, fmt.Errorf("%w: gain must be finite, got %v", ErrInvalidConfig, gain)
	}

	f := Fractal{
		typ:        typ,
		octaves:    octaves,
		lacunarity: lacunarity,
		gain:       gain,
		bounding:   fractalBounding(octaves, gain),
		spectral:   spectralWeights(octaves, lacunarity),
	}
	return f, nil
}

// fractalBounding returns 1 / (1 + g + g^2 + ... + g^(octaves-1)).
func fractalBounding(octaves int, gain float64) float64 {
	amp := gain
	ampFractal := 1.0
	for i := 1; i < octaves; i++ {
		ampFractal += amp
		amp *= gain
	}
	return 1 / ampFractal
}

// spectralWeights returns lacunarity^(-H*i) for each octave i.
func spectralWeights(octaves int, lacunarity float64) []float64 {
	w := make([]float64, octaves)
	freq := 1.0
	for i := range w {
		w[i] = math.Pow(freq, -ridgeExponent)
		freq *= lacunarity
	}
	return w
}

// Type returns the combination algorithm.
func (f Fractal) Type() FractalType { return f.typ }

// Octaves returns the octave count.
func (f Fractal) Octaves() int { return f.octaves }

// Lacunarity returns the per-octave frequency multiplier.
func (f Fractal) Lacunarity() float64 { return f.lacunarity }

// Gain returns the per-octave amplitude multiplier.
func (f Fractal) Gain() float64 { return f.gain }

// Bounding returns the FBM/Billow normalisation factor.
func (f Fractal) Bounding() float64 { return f.bounding }

// SpectralWeight returns the ridged weight of octave i.
func (f Fractal) SpectralWeight(i int) float64 { return f.spectral[i] }

// Eval2 combines octaves of k at (x, y). Octave i hashes through offset i.
func (f Fractal) Eval2(k Lattice2, x, y float64) float64 {
	return f.combine(func(offset uint8) float64 {
		v := k.Eval2(offset, x, y)
		x *= f.lacunarity
		y *= f.lacunarity
		return v
	})
}

// Eval3 combines octaves of k at (x, y, z).
func (f Fractal) Eval3(k Lattice3, x, y, z float64) float64 {
	return f.combine(func(offset uint8) float64 {
		v := k.Eval3(offset, x, y, z)
		x *= f.lacunarity
		y *= f.lacunarity
		z *= f.lacunarity
		return v
	})
}

// Eval4 combines octaves of k at (x, y, z, w).
func (f Fractal) Eval4(k Lattice4, x, y, z, w float64) float64 {
	return f.combine(func(offset uint8) float64 {
		v := k.Eval4(offset, x, y, z, w)
		x *= f.lacunarity
		y *= f.lacunarity
		z *= f.lacunarity
		w *= f.lacunarity
		return v
	})
}

// combine runs the selected algorithm. octave is called once per octave, in
// order, and advances its own coordinates by the lacunarity after sampling.
func (f Fractal) combine(octave func(offset uint8) float64) float64 {
	switch f.typ {
	case Billow:
		return f.billow(octave)
	case RidgedMulti:
		return f.ridgedMulti(octave)
	default:
		return f.fbm(octave)
	}
}

func (f Fractal) fbm(octave func(uint8) float64) float64 {
	sum := octave(0)
	amp := 1.0
	for i := 1; i < f.octaves; i++ {
		amp *= f.gain
		sum += octave(uint8(i)) * amp
	}
	return sum * f.bounding
}

func (f Fractal) billow(octave func(uint8) float64) float64 {
	sum := math.Abs(octave(0))*2 - 1
	amp := 1.0
	for i := 1; i < f.octaves; i++ {
		amp *= f.gain
		sum += (math.Abs(octave(uint8(i)))*2 - 1) * amp
	}
	return sum * f.bounding
}

func (f Fractal) ridgedMulti(octave func(uint8) float64) float64 {
	sum := 0.0
	weight := 1.0
	for i := 0; i < f.octaves; i++ {
		signal := ridgeOffset - math.Abs(octave(uint8(i)))
		signal *= signal
		signal *= weight

		weight = signal * ridgeGain
		if weight > 1 {
			weight = 1
		} else if weight < 0 {
			weight = 0
		}

		sum += signal * f.spectral[i]
	}
	return sum*1.25 - 1
}
