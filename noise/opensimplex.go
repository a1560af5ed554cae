package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// openSimplexOffsetStep translates the sample point per offset slot. It is not
// an integer so shifted octaves never land on the same lattice.
const openSimplexOffsetStep = 131.7

// OpenSimplexKernel adapts OpenSimplex noise to the lattice kernel interfaces.
type OpenSimplexKernel struct {
	base opensimplex.Noise
}

// NewOpenSimplexKernel creates an OpenSimplex kernel for seed.
func NewOpenSimplexKernel(seed int32) OpenSimplexKernel {
	return OpenSimplexKernel{base: opensimplex.New(int64(seed))}
}

// Eval2 returns 2D OpenSimplex noise at (x, y).
func (o OpenSimplexKernel) Eval2(offset uint8, x, y float64) float64 {
	d := float64(offset) * openSimplexOffsetStep
	return o.base.Eval2(x+d, y+d)
}

// Eval3 returns 3D OpenSimplex noise at (x, y, z).
func (o OpenSimplexKernel) Eval3(offset uint8, x, y, z float64) float64 {
	d := float64(offset) * openSimplexOffsetStep
	return o.base.Eval3(x+d, y+d, z+d)
}

// Eval4 returns 4D OpenSimplex noise at (x, y, z, w).
func (o OpenSimplexKernel) Eval4(offset uint8, x, y, z, w float64) float64 {
	d := float64(offset) * openSimplexOffsetStep
	return o.base.Eval4(x+d, y+d, z+d, w+d)
}
