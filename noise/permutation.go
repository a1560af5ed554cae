package noise

import "github.com/pthm-cable/latticenoise/rng"

// PermutationTable hashes integer lattice coordinates to gradient indices.
//
// perm[0:256] holds a seeded permutation of 0..255 and perm[256:512] repeats it,
// so chained lookups of the form perm[a + perm[b]] never need wrapping.
// perm12 holds the same values reduced modulo 12.
type PermutationTable struct {
	perm   [512]uint8
	perm12 [512]uint8
}

// NewPermutationTable builds the table for seed.
func NewPermutationTable(seed int32) *PermutationTable {
	t := &PermutationTable{}
	t.rebuild(seed)
	return t
}

// rebuild runs a seeded Fisher-Yates shuffle over 0..255.
// The swap index is drawn from [j, 255], not [j, 256]: the wider range could
// pick index 256 and leave the base table without a bijection.
func (t *PermutationTable) rebuild(seed int32) {
	gen := rng.NewFromInt32(seed)

	for i := 0; i < 256; i++ {
		t.perm[i] = uint8(i)
	}

	for j := 0; j < 256; j++ {
		k := int(rng.UniformUint32(gen, 0, uint32(255-j))) + j
		t.perm[j], t.perm[k] = t.perm[k], t.perm[j]
	}

	// Duplicate
	for i := 0; i < 256; i++ {
		t.perm[i+256] = t.perm[i]
		t.perm12[i] = t.perm[i] % 12
		t.perm12[i+256] = t.perm12[i]
	}
}

// Perm returns the base permutation (the first 256 entries).
func (t *PermutationTable) Perm() [256]uint8 {
	var out [256]uint8
	copy(out[:], t.perm[:256])
	return out
}

// At returns perm[i] for i in [0, 512).
func (t *PermutationTable) At(i int) uint8 { return t.perm[i] }

// index2D12 hashes a 2D lattice point to a gradient index in [0, 12).
func (t *PermutationTable) index2D12(offset uint8, x, y int) uint8 {
	return t.perm12[(x&0xff)+int(t.perm[(y&0xff)+int(offset)])]
}

// index3D12 hashes a 3D lattice point to a gradient index in [0, 12).
func (t *PermutationTable) index3D12(offset uint8, x, y, z int) uint8 {
	return t.perm12[(x&0xff)+int(t.perm[(y&0xff)+int(t.perm[(z&0xff)+int(offset)])])]
}

// index4D32 hashes a 4D lattice point to a gradient index in [0, 32).
func (t *PermutationTable) index4D32(offset uint8, x, y, z, w int) uint8 {
	return t.perm[(x&0xff)+int(t.perm[(y&0xff)+int(t.perm[(z&0xff)+int(t.perm[(w&0xff)+int(offset)])])])] & 31
}
