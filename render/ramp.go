// Package render turns noise samples into colours for the preview tools.
package render

import (
	"fmt"
	"image/color"
)

// Stop is one colour at position At in [0, 1].
type Stop struct {
	At      float64
	R, G, B uint8
}

// Ramp is a piecewise-linear colour gradient. Stops must be sorted by At.
type Ramp []Stop

// Built-in ramps.
var (
	// Ocean runs dark blue -> cyan -> yellow-green -> white.
	Ocean = Ramp{
		{0, 10, 20, 60},
		{0.25, 40, 80, 160},
		{0.5, 60, 200, 200},
		{0.75, 200, 160, 50},
		{1, 255, 255, 255},
	}

	// Terrain runs deep water -> shore -> grass -> rock -> snow.
	Terrain = Ramp{
		{0, 0, 0, 90},
		{0.45, 30, 90, 190},
		{0.5, 220, 210, 150},
		{0.6, 60, 150, 60},
		{0.8, 110, 100, 90},
		{1, 250, 250, 250},
	}

	Gray = Ramp{
		{0, 0, 0, 0},
		{1, 255, 255, 255},
	}
)

var ramps = []struct {
	name string
	ramp Ramp
}{
	{"ocean", Ocean},
	{"terrain", Terrain},
	{"gray", Gray},
}

// RampNames lists the built-in ramps in cycling order.
func RampNames() []string {
	names := make([]string, len(ramps))
	for i, r := range ramps {
		names[i] = r.name
	}
	return names
}

// RampByName returns a built-in ramp.
func RampByName(name string) (Ramp, error) {
	for _, r := range ramps {
		if r.name == name {
			return r.ramp, nil
		}
	}
	return nil, fmt.Errorf("unknown colour ramp %q", name)
}

// Normalize maps a noise value in [-1, 1] to [0, 1], clamping outliers.
func Normalize(v float64) float64 {
	t := (v + 1) * 0.5
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// At returns the ramp colour at t in [0, 1].
func (r Ramp) At(t float64) color.RGBA {
	if len(r) == 0 {
		return color.RGBA{A: 255}
	}
	if t <= r[0].At {
		return r[0].rgba()
	}
	for i := 1; i < len(r); i++ {
		hi := r[i]
		if t > hi.At {
			continue
		}
		lo := r[i-1]
		span := hi.At - lo.At
		if span <= 0 {
			return hi.rgba()
		}
		f := (t - lo.At) / span
		return color.RGBA{
			R: mix(lo.R, hi.R, f),
			G: mix(lo.G, hi.G, f),
			B: mix(lo.B, hi.B, f),
			A: 255,
		}
	}
	return r[len(r)-1].rgba()
}

// Value returns the ramp colour for a noise value in [-1, 1].
func (r Ramp) Value(v float64) color.RGBA {
	return r.At(Normalize(v))
}

// Fill colours every value into dst, which must be at least len(values) long.
func (r Ramp) Fill(dst []color.RGBA, values []float64) {
	for i, v := range values {
		dst[i] = r.Value(v)
	}
}

func (s Stop) rgba() color.RGBA {
	return color.RGBA{R: s.R, G: s.G, B: s.B, A: 255}
}

func mix(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}
