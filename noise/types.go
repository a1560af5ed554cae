package noise

import "fmt"

// Interp selects the Perlin interpolation curve.
type Interp uint8

const (
	Linear Interp = iota
	Hermite
	Quintic
)

var interpNames = [...]string{"linear", "hermite", "quintic"}

// Interps lists every interpolation curve in declaration order.
func Interps() []Interp {
	return []Interp{Linear, Hermite, Quintic}
}

func (i Interp) String() string {
	if int(i) < len(interpNames) {
		return interpNames[i]
	}
	return fmt.Sprintf("Interp(%d)", uint8(i))
}

// Valid reports whether i is a known interpolation.
func (i Interp) Valid() bool { return int(i) < len(interpNames) }

// MarshalText implements encoding.TextMarshaler.
func (i Interp) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: unknown interpolation %d", ErrInvalidConfig, uint8(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interp) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), interpNames[:], "interpolation")
	if err != nil {
		return err
	}
	*i = Interp(v)
	return nil
}

// FractalType selects the octave combination algorithm.
type FractalType uint8

const (
	FBM FractalType = iota
	Billow
	RidgedMulti
)

var fractalNames = [...]string{"fbm", "billow", "ridged_multi"}

// FractalTypes lists every fractal type in declaration order.
func FractalTypes() []FractalType {
	out := make([]FractalType, len(fractalNames))
	for i := range out {
		out[i] = FractalType(i)
	}
	return out
}

func (f FractalType) String() string {
	if int(f) < len(fractalNames) {
		return fractalNames[f]
	}
	return fmt.Sprintf("FractalType(%d)", uint8(f))
}

// Valid reports whether f is a known fractal type.
func (f FractalType) Valid() bool { return int(f) < len(fractalNames) }

// MarshalText implements encoding.TextMarshaler.
func (f FractalType) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: unknown fractal type %d", ErrInvalidConfig, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FractalType) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), fractalNames[:], "fractal type")
	if err != nil {
		return err
	}
	*f = FractalType(v)
	return nil
}

// NoiseType selects a kernel and whether it is evaluated as a fractal.
type NoiseType uint8

const (
	Perlin NoiseType = iota
	PerlinFractal
	Simplex
	SimplexFractal
	OpenSimplex
	OpenSimplexFractal

	numNoiseTypes
)

var noiseTypeNames = [...]string{
	"perlin", "perlin_fractal",
	"simplex", "simplex_fractal",
	"opensimplex", "opensimplex_fractal",
}

// NoiseTypes lists every noise type in declaration order.
func NoiseTypes() []NoiseType {
	out := make([]NoiseType, numNoiseTypes)
	for i := range out {
		out[i] = NoiseType(i)
	}
	return out
}

func (t NoiseType) String() string {
	if int(t) < len(noiseTypeNames) {
		return noiseTypeNames[t]
	}
	return fmt.Sprintf("NoiseType(%d)", uint8(t))
}

// Valid reports whether t is a known noise type.
func (t NoiseType) Valid() bool { return t < numNoiseTypes }

// IsFractal reports whether t runs through the fractal combinator.
func (t NoiseType) IsFractal() bool {
	return t == PerlinFractal || t == SimplexFractal || t == OpenSimplexFractal
}

// Supports reports whether t has a form in the given dimension.
func (t NoiseType) Supports(dim int) bool {
	if !t.Valid() {
		return false
	}
	switch dim {
	case 2, 3:
		return true
	case 4:
		return t != Perlin && t != PerlinFractal
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t NoiseType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown noise type %d", ErrInvalidConfig, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *NoiseType) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), noiseTypeNames[:], "noise type")
	if err != nil {
		return err
	}
	*t = NoiseType(v)
	return nil
}

// Axis selects the direction a strip is walked along.
type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
	WAxis
)

var axisNames = [...]string{"x", "y", "z", "w"}

func (a Axis) String() string {
	if int(a) < len(axisNames) {
		return axisNames[a]
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// Plane selects the two axes a square is laid over. The first named axis is
// the width (fast) axis, the second is the height axis.
type Plane uint8

const (
	XYPlane Plane = iota
	XZPlane
	ZYPlane
	XWPlane
	YWPlane
	ZWPlane
)

var planeNames = [...]string{"xy", "xz", "zy", "xw", "yw", "zw"}

func (p Plane) String() string {
	if int(p) < len(planeNames) {
		return planeNames[p]
	}
	return fmt.Sprintf("Plane(%d)", uint8(p))
}

func parseEnum(s string, names []string, what string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, what, s)
}
