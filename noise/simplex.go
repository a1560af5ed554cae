package noise

import "math"

// Skew and unskew factors for 2D, 3D and 4D simplex grids.
var (
	sqrt3 = math.Sqrt(3)
	sqrt5 = math.Sqrt(5)

	f2 = 0.5 * (sqrt3 - 1)
	g2 = (3 - sqrt3) / 6
	f3 = 1.0 / 3
	g3 = 1.0 / 6
	f4 = (sqrt5 - 1) / 4
	g4 = (5 - sqrt5) / 20
)

// simplex4D maps a 6-bit magnitude ordering code (times four) to the traversal
// rank of each axis. Unreachable codes are zero.
var simplex4D = [256]uint8{
	0, 1, 2, 3, 0, 1, 3, 2, 0, 0, 0, 0, 0, 2, 3, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 0,
	0, 2, 1, 3, 0, 0, 0, 0, 0, 3, 1, 2, 0, 3, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 3, 2, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 2, 0, 3, 0, 0, 0, 0, 1, 3, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 3, 0, 1, 2, 3, 1, 0,
	1, 0, 2, 3, 1, 0, 3, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 3, 1, 0, 0, 0, 0, 2, 1, 3, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	2, 0, 1, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 1, 2, 3, 0, 2, 1, 0, 0, 0, 0, 3, 1, 2, 0,
	2, 1, 0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 1, 0, 2, 0, 0, 0, 0, 3, 2, 0, 1, 3, 2, 1, 0,
}

// SimplexKernel is gradient noise summed over the corners of a skewed simplex.
type SimplexKernel struct {
	table *PermutationTable
}

// NewSimplexKernel creates a simplex kernel hashing through table.
func NewSimplexKernel(table *PermutationTable) SimplexKernel {
	return SimplexKernel{table: table}
}

// Eval2 returns 2D simplex noise at (x, y).
func (s SimplexKernel) Eval2(offset uint8, x, y float64) float64 {
	t := (x + y) * f2
	i := fastFloor(x + t)
	j := fastFloor(y + t)

	t = float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	tab := s.table
	var n0, n1, n2 float64

	if t = 0.5 - x0*x0 - y0*y0; t > 0 {
		t *= t
		n0 = t * t * tab.gradCoord2D(offset, i, j, x0, y0)
	}
	if t = 0.5 - x1*x1 - y1*y1; t > 0 {
		t *= t
		n1 = t * t * tab.gradCoord2D(offset, i+i1, j+j1, x1, y1)
	}
	if t = 0.5 - x2*x2 - y2*y2; t > 0 {
		t *= t
		n2 = t * t * tab.gradCoord2D(offset, i+1, j+1, x2, y2)
	}

	return 70 * (n0 + n1 + n2)
}

// Eval3 returns 3D simplex noise at (x, y, z).
func (s SimplexKernel) Eval3(offset uint8, x, y, z float64) float64 {
	t := (x + y + z) * f3
	i := fastFloor(x + t)
	j := fastFloor(y + t)
	k := fastFloor(z + t)

	t = float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	tab := s.table
	var n0, n1, n2, n3 float64

	if t = 0.6 - x0*x0 - y0*y0 - z0*z0; t > 0 {
		t *= t
		n0 = t * t * tab.gradCoord3D(offset, i, j, k, x0, y0, z0)
	}
	if t = 0.6 - x1*x1 - y1*y1 - z1*z1; t > 0 {
		t *= t
		n1 = t * t * tab.gradCoord3D(offset, i+i1, j+j1, k+k1, x1, y1, z1)
	}
	if t = 0.6 - x2*x2 - y2*y2 - z2*z2; t > 0 {
		t *= t
		n2 = t * t * tab.gradCoord3D(offset, i+i2, j+j2, k+k2, x2, y2, z2)
	}
	if t = 0.6 - x3*x3 - y3*y3 - z3*z3; t > 0 {
		t *= t
		n3 = t * t * tab.gradCoord3D(offset, i+1, j+1, k+1, x3, y3, z3)
	}

	return 32 * (n0 + n1 + n2 + n3)
}

// Eval4 returns 4D simplex noise at (x, y, z, w).
func (s SimplexKernel) Eval4(offset uint8, x, y, z, w float64) float64 {
	t := (x + y + z + w) * f4
	i := fastFloor(x + t)
	j := fastFloor(y + t)
	k := fastFloor(z + t)
	l := fastFloor(w + t)

	t = float64(i+j+k+l) * g4
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)
	w0 := w - (float64(l) - t)

	c := 0
	if x0 > y0 {
		c += 32
	}
	if x0 > z0 {
		c += 16
	}
	if y0 > z0 {
		c += 8
	}
	if x0 > w0 {
		c += 4
	}
	if y0 > w0 {
		c += 2
	}
	if z0 > w0 {
		c++
	}
	c <<= 2

	rank := simplex4D[c : c+4]
	step := func(r, threshold uint8) int {
		if r >= threshold {
			return 1
		}
		return 0
	}
	i1, i2, i3 := step(rank[0], 3), step(rank[0], 2), step(rank[0], 1)
	j1, j2, j3 := step(rank[1], 3), step(rank[1], 2), step(rank[1], 1)
	k1, k2, k3 := step(rank[2], 3), step(rank[2], 2), step(rank[2], 1)
	l1, l2, l3 := step(rank[3], 3), step(rank[3], 2), step(rank[3], 1)

	x1 := x0 - float64(i1) + g4
	y1 := y0 - float64(j1) + g4
	z1 := z0 - float64(k1) + g4
	w1 := w0 - float64(l1) + g4
	x2 := x0 - float64(i2) + 2*g4
	y2 := y0 - float64(j2) + 2*g4
	z2 := z0 - float64(k2) + 2*g4
	w2 := w0 - float64(l2) + 2*g4
	x3 := x0 - float64(i3) + 3*g4
	y3 := y0 - float64(j3) + 3*g4
	z3 := z0 - float64(k3) + 3*g4
	w3 := w0 - float64(l3) + 3*g4
	x4 := x0 - 1 + 4*g4
	y4 := y0 - 1 + 4*g4
	z4 := z0 - 1 + 4*g4
	w4 := w0 - 1 + 4*g4

	tab := s.table
	var n0, n1, n2, n3, n4 float64

	if t = 0.6 - x0*x0 - y0*y0 - z0*z0 - w0*w0; t > 0 {
		t *= t
		n0 = t * t * tab.gradCoord4D(offset, i, j, k, l, x0, y0, z0, w0)
	}
	if t = 0.6 - x1*x1 - y1*y1 - z1*z1 - w1*w1; t > 0 {
		t *= t
		n1 = t * t * tab.gradCoord4D(offset, i+i1, j+j1, k+k1, l+l1, x1, y1, z1, w1)
	}
	if t = 0.6 - x2*x2 - y2*y2 - z2*z2 - w2*w2; t > 0 {
		t *= t
		n2 = t * t * tab.gradCoord4D(offset, i+i2, j+j2, k+k2, l+l2, x2, y2, z2, w2)
	}
	if t = 0.6 - x3*x3 - y3*y3 - z3*z3 - w3*w3; t > 0 {
		t *= t
		n3 = t * t * tab.gradCoord4D(offset, i+i3, j+j3, k+k3, l+l3, x3, y3, z3, w3)
	}
	if t = 0.6 - x4*x4 - y4*y4 - z4*z4 - w4*w4; t > 0 {
		t *= t
		n4 = t * t * tab.gradCoord4D(offset, i+1, j+1, k+1, l+1, x4, y4, z4, w4)
	}

	return 27 * (n0 + n1 + n2 + n3 + n4)
}
