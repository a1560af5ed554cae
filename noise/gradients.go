package noise

// Gradient tables indexed by the permutation hash.
//
// 2D and 3D share one 12-entry table: the edge midpoints of a cube. Read as 2D
// (ignoring z) it collapses to 8 distinct directions, the diagonals and axes.
var (
	gradX = [12]float64{
		1, -1, 1, -1,
		1, -1, 1, -1,
		0, 0, 0, 0,
	}
	gradY = [12]float64{
		1, 1, -1, -1,
		0, 0, 0, 0,
		1, -1, 1, -1,
	}
	gradZ = [12]float64{
		0, 0, 0, 0,
		1, 1, -1, -1,
		1, 1, -1, -1,
	}
)

// grad4 holds 32 4D directions, four components each. Every vector has one zero
// component and three of magnitude one.
var grad4 = [128]float64{
	0, 1, 1, 1, 0, 1, 1, -1, 0, 1, -1, 1, 0, 1, -1, -1,
	0, -1, 1, 1, 0, -1, 1, -1, 0, -1, -1, 1, 0, -1, -1, -1,
	1, 0, 1, 1, 1, 0, 1, -1, 1, 0, -1, 1, 1, 0, -1, -1,
	-1, 0, 1, 1, -1, 0, 1, -1, -1, 0, -1, 1, -1, 0, -1, -1,
	1, 1, 0, 1, 1, 1, 0, -1, 1, -1, 0, 1, 1, -1, 0, -1,
	-1, 1, 0, 1, -1, 1, 0, -1, -1, -1, 0, 1, -1, -1, 0, -1,
	1, 1, 1, 0, 1, 1, -1, 0, 1, -1, 1, 0, 1, -1, -1, 0,
	-1, 1, 1, 0, -1, 1, -1, 0, -1, -1, 1, 0, -1, -1, -1, 0,
}

func (t *PermutationTable) gradCoord2D(offset uint8, x, y int, xd, yd float64) float64 {
	i := t.index2D12(offset, x, y)
	return xd*gradX[i] + yd*gradY[i]
}

func (t *PermutationTable) gradCoord3D(offset uint8, x, y, z int, xd, yd, zd float64) float64 {
	i := t.index3D12(offset, x, y, z)
	return xd*gradX[i] + yd*gradY[i] + zd*gradZ[i]
}

func (t *PermutationTable) gradCoord4D(offset uint8, x, y, z, w int, xd, yd, zd, wd float64) float64 {
	i := int(t.index4D32(offset, x, y, z, w)) << 2
	return xd*grad4[i] + yd*grad4[i+1] + zd*grad4[i+2] + wd*grad4[i+3]
}
