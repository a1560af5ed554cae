package noise

// Lattice2 is a 2D noise kernel. The offset selects an interleaved slot of the
// permutation table so repeated calls at different offsets are decorrelated.
type Lattice2 interface {
	Eval2(offset uint8, x, y float64) float64
}

// Lattice3 is a 3D noise kernel.
type Lattice3 interface {
	Eval3(offset uint8, x, y, z float64) float64
}

// Lattice4 is a 4D noise kernel.
type Lattice4 interface {
	Eval4(offset uint8, x, y, z, w float64) float64
}

// PerlinKernel is classic gradient noise interpolated over the grid cell.
type PerlinKernel struct {
	table  *PermutationTable
	interp Interp
}

// NewPerlinKernel creates a Perlin kernel hashing through table.
func NewPerlinKernel(table *PermutationTable, interp Interp) PerlinKernel {
	return PerlinKernel{table: table, interp: interp}
}

// Eval2 returns 2D Perlin noise at (x, y).
func (p PerlinKernel) Eval2(offset uint8, x, y float64) float64 {
	x0 := fastFloor(x)
	y0 := fastFloor(y)
	x1 := x0 + 1
	y1 := y0 + 1

	xd0 := x - float64(x0)
	yd0 := y - float64(y0)
	xd1 := xd0 - 1
	yd1 := yd0 - 1

	xs := p.interp.curve(xd0)
	ys := p.interp.curve(yd0)

	t := p.table
	xf0 := lerp(t.gradCoord2D(offset, x0, y0, xd0, yd0), t.gradCoord2D(offset, x1, y0, xd1, yd0), xs)
	xf1 := lerp(t.gradCoord2D(offset, x0, y1, xd0, yd1), t.gradCoord2D(offset, x1, y1, xd1, yd1), xs)

	return lerp(xf0, xf1, ys)
}

// Eval3 returns 3D Perlin noise at (x, y, z).
func (p PerlinKernel) Eval3(offset uint8, x, y, z float64) float64 {
	x0 := fastFloor(x)
	y0 := fastFloor(y)
	z0 := fastFloor(z)
	x1 := x0 + 1
	y1 := y0 + 1
	z1 := z0 + 1

	xd0 := x - float64(x0)
	yd0 := y - float64(y0)
	zd0 := z - float64(z0)
	xd1 := xd0 - 1
	yd1 := yd0 - 1
	zd1 := zd0 - 1

	xs := p.interp.curve(xd0)
	ys := p.interp.curve(yd0)
	zs := p.interp.curve(zd0)

	t := p.table
	xf00 := lerp(t.gradCoord3D(offset, x0, y0, z0, xd0, yd0, zd0), t.gradCoord3D(offset, x1, y0, z0, xd1, yd0, zd0), xs)
	xf10 := lerp(t.gradCoord3D(offset, x0, y1, z0, xd0, yd1, zd0), t.gradCoord3D(offset, x1, y1, z0, xd1, yd1, zd0), xs)
	xf01 := lerp(t.gradCoord3D(offset, x0, y0, z1, xd0, yd0, zd1), t.gradCoord3D(offset, x1, y0, z1, xd1, yd0, zd1), xs)
	xf11 := lerp(t.gradCoord3D(offset, x0, y1, z1, xd0, yd1, zd1), t.gradCoord3D(offset, x1, y1, z1, xd1, yd1, zd1), xs)

	yf0 := lerp(xf00, xf10, ys)
	yf1 := lerp(xf01, xf11, ys)

	return lerp(yf0, yf1, zs)
}
