package noise

import "math"

func fastFloor(f float64) int {
	return int(math.Floor(f))
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func interpHermite(t float64) float64 {
	return t * t * (3 - 2*t)
}

func interpQuintic(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// curve applies the interpolation curve to a fractional offset.
func (i Interp) curve(t float64) float64 {
	switch i {
	case Hermite:
		return interpHermite(t)
	case Quintic:
		return interpQuintic(t)
	default:
		return t
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
