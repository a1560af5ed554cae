package noise

import (
	"fmt"
	"math"
)

// Batch calls map integer grid offsets to world coordinates start+i, scale by
// the frequency and evaluate once per sample. Squares are stored row-major
// (width*y + x); cubes as height*width*z + width*y + x.

// axisIndex returns the coordinate slot walked by axis in a dim-dimensional space.
func axisIndex(axis Axis, dim int) (int, error) {
	if int(axis) >= dim {
		return 0, fmt.Errorf("%w: %s axis in %dD", ErrInvalidAxisForDimension, axis, dim)
	}
	return int(axis), nil
}

// planeAxes maps a plane to its (width, height) coordinate slots.
var planeAxes = [...][2]int{
	XYPlane: {0, 1},
	XZPlane: {0, 2},
	ZYPlane: {2, 1},
	XWPlane: {0, 3},
	YWPlane: {1, 3},
	ZWPlane: {2, 3},
}

func planeIndex(plane Plane, dim int) (int, int, error) {
	if int(plane) >= len(planeAxes) {
		return 0, 0, fmt.Errorf("%w: %s plane", ErrInvalidAxisForDimension, plane)
	}
	a := planeAxes[plane]
	if a[0] >= dim || a[1] >= dim {
		return 0, 0, fmt.Errorf("%w: %s plane in %dD", ErrInvalidAxisForDimension, plane, dim)
	}
	return a[0], a[1], nil
}

// sampleCount validates extents and returns their product.
func sampleCount(extents ...int) (int, error) {
	n := 1
	for _, e := range extents {
		if e < 0 {
			return 0, fmt.Errorf("%w: negative extent %d", ErrInvalidSize, e)
		}
		if e != 0 && n > math.MaxInt/e {
			return 0, fmt.Errorf("%w: extents %v overflow", ErrInvalidSize, extents)
		}
		n *= e
	}
	return n, nil
}

func checkDst(dst []float64, n int) error {
	if len(dst) != n {
		return fmt.Errorf("%w: output has %d slots, need %d", ErrInvalidSize, len(dst), n)
	}
	return nil
}

// Strip2 samples length points from (sx, sy) along axis.
func (g *Generator) Strip2(t NoiseType, sx, sy float64, length int, axis Axis) ([]float64, error) {
	n, err := sampleCount(length)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Strip2Into(dst, t, sx, sy, length, axis); err != nil {
		return nil, err
	}
	return dst, nil
}

// Strip2Into is Strip2 writing into dst, which must hold exactly length values.
func (g *Generator) Strip2Into(dst []float64, t NoiseType, sx, sy float64, length int, axis Axis) error {
	fn, err := g.Field2(t)
	if err != nil {
		return err
	}
	ai, err := axisIndex(axis, 2)
	if err != nil {
		return err
	}
	n, err := sampleCount(length)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	for i := 0; i < length; i++ {
		p := [2]float64{sx, sy}
		p[ai] += float64(i)
		dst[i] = fn(p[0]*f, p[1]*f)
	}
	return nil
}

// Strip3 samples length points from (sx, sy, sz) along axis.
func (g *Generator) Strip3(t NoiseType, sx, sy, sz float64, length int, axis Axis) ([]float64, error) {
	n, err := sampleCount(length)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Strip3Into(dst, t, sx, sy, sz, length, axis); err != nil {
		return nil, err
	}
	return dst, nil
}

// Strip3Into is Strip3 writing into dst.
func (g *Generator) Strip3Into(dst []float64, t NoiseType, sx, sy, sz float64, length int, axis Axis) error {
	fn, err := g.Field3(t)
	if err != nil {
		return err
	}
	ai, err := axisIndex(axis, 3)
	if err != nil {
		return err
	}
	n, err := sampleCount(length)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	for i := 0; i < length; i++ {
		p := [3]float64{sx, sy, sz}
		p[ai] += float64(i)
		dst[i] = fn(p[0]*f, p[1]*f, p[2]*f)
	}
	return nil
}

// Strip4 samples length points from (sx, sy, sz, sw) along axis.
func (g *Generator) Strip4(t NoiseType, sx, sy, sz, sw float64, length int, axis Axis) ([]float64, error) {
	n, err := sampleCount(length)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Strip4Into(dst, t, sx, sy, sz, sw, length, axis); err != nil {
		return nil, err
	}
	return dst, nil
}

// Strip4Into is Strip4 writing into dst.
func (g *Generator) Strip4Into(dst []float64, t NoiseType, sx, sy, sz, sw float64, length int, axis Axis) error {
	fn, err := g.Field4(t)
	if err != nil {
		return err
	}
	ai, err := axisIndex(axis, 4)
	if err != nil {
		return err
	}
	n, err := sampleCount(length)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	for i := 0; i < length; i++ {
		p := [4]float64{sx, sy, sz, sw}
		p[ai] += float64(i)
		dst[i] = fn(p[0]*f, p[1]*f, p[2]*f, p[3]*f)
	}
	return nil
}

// Square2 samples a width x height grid starting at (sx, sy).
func (g *Generator) Square2(t NoiseType, sx, sy float64, width, height int) ([]float64, error) {
	n, err := sampleCount(width, height)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Square2Into(dst, t, sx, sy, width, height); err != nil {
		return nil, err
	}
	return dst, nil
}

// Square2Into is Square2 writing into dst.
func (g *Generator) Square2Into(dst []float64, t NoiseType, sx, sy float64, width, height int) error {
	fn, err := g.Field2(t)
	if err != nil {
		return err
	}
	n, err := sampleCount(width, height)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	for y := 0; y < height; y++ {
		yf := (sy + float64(y)) * f
		for x := 0; x < width; x++ {
			dst[width*y+x] = fn((sx+float64(x))*f, yf)
		}
	}
	return nil
}

// Square3 samples a width x height grid on plane starting at (sx, sy, sz).
func (g *Generator) Square3(t NoiseType, sx, sy, sz float64, width, height int, plane Plane) ([]float64, error) {
	n, err := sampleCount(width, height)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Square3Into(dst, t, sx, sy, sz, width, height, plane); err != nil {
		return nil, err
	}
	return dst, nil
}

// Square3Into is Square3 writing into dst.
func (g *Generator) Square3Into(dst []float64, t NoiseType, sx, sy, sz float64, width, height int, plane Plane) error {
	fn, err := g.Field3(t)
	if err != nil {
		return err
	}
	wi, hi, err := planeIndex(plane, 3)
	if err != nil {
		return err
	}
	n, err := sampleCount(width, height)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := [3]float64{sx, sy, sz}
			p[wi] += float64(x)
			p[hi] += float64(y)
			dst[width*y+x] = fn(p[0]*f, p[1]*f, p[2]*f)
		}
	}
	return nil
}

// Square4 samples a width x height grid on plane starting at (sx, sy, sz, sw).
func (g *Generator) Square4(t NoiseType, sx, sy, sz, sw float64, width, height int, plane Plane) ([]float64, error) {
	n, err := sampleCount(width, height)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Square4Into(dst, t, sx, sy, sz, sw, width, height, plane); err != nil {
		return nil, err
	}
	return dst, nil
}

// Square4Into is Square4 writing into dst.
func (g *Generator) Square4Into(dst []float64, t NoiseType, sx, sy, sz, sw float64, width, height int, plane Plane) error {
	fn, err := g.Field4(t)
	if err != nil {
		return err
	}
	wi, hi, err := planeIndex(plane, 4)
	if err != nil {
		return err
	}
	n, err := sampleCount(width, height)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := [4]float64{sx, sy, sz, sw}
			p[wi] += float64(x)
			p[hi] += float64(y)
			dst[width*y+x] = fn(p[0]*f, p[1]*f, p[2]*f, p[3]*f)
		}
	}
	return nil
}

// Cube3 samples a width x height x depth block starting at (sx, sy, sz).
func (g *Generator) Cube3(t NoiseType, sx, sy, sz float64, width, height, depth int) ([]float64, error) {
	n, err := sampleCount(width, height, depth)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Cube3Into(dst, t, sx, sy, sz, width, height, depth); err != nil {
		return nil, err
	}
	return dst, nil
}

// Cube3Into is Cube3 writing into dst.
func (g *Generator) Cube3Into(dst []float64, t NoiseType, sx, sy, sz float64, width, height, depth int) error {
	fn, err := g.Field3(t)
	if err != nil {
		return err
	}
	n, err := sampleCount(width, height, depth)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	for z := 0; z < depth; z++ {
		zf := (sz + float64(z)) * f
		for y := 0; y < height; y++ {
			yf := (sy + float64(y)) * f
			for x := 0; x < width; x++ {
				dst[height*width*z+width*y+x] = fn((sx+float64(x))*f, yf, zf)
			}
		}
	}
	return nil
}

// Cube4 samples a width x height x depth block of x, y, z at fixed w.
func (g *Generator) Cube4(t NoiseType, sx, sy, sz, sw float64, width, height, depth int) ([]float64, error) {
	n, err := sampleCount(width, height, depth)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if err := g.Cube4Into(dst, t, sx, sy, sz, sw, width, height, depth); err != nil {
		return nil, err
	}
	return dst, nil
}

// Cube4Into is Cube4 writing into dst.
func (g *Generator) Cube4Into(dst []float64, t NoiseType, sx, sy, sz, sw float64, width, height, depth int) error {
	fn, err := g.Field4(t)
	if err != nil {
		return err
	}
	n, err := sampleCount(width, height, depth)
	if err != nil {
		return err
	}
	if err := checkDst(dst, n); err != nil {
		return err
	}

	f := g.cfg.Frequency
	wf := sw * f
	for z := 0; z < depth; z++ {
		zf := (sz + float64(z)) * f
		for y := 0; y < height; y++ {
			yf := (sy + float64(y)) * f
			for x := 0; x < width; x++ {
				dst[height*width*z+width*y+x] = fn((sx+float64(x))*f, yf, zf, wf)
			}
		}
	}
	return nil
}
