package rng

import "math/bits"

// Source is any generator producing uniformly distributed 64-bit values.
type Source interface {
	Uint64() uint64
}

// UniformUint32 returns a uniformly distributed value in [lo, hi].
//
// The draw matches libc++'s uniform_int_distribution over a full-range 64-bit
// engine: the low w bits of each draw are kept, where w is the smallest width
// that covers the range, and draws falling outside the range are rejected.
// Panics if hi < lo.
func UniformUint32(src Source, lo, hi uint32) uint32 {
	if hi < lo {
		panic("rng: UniformUint32 called with hi < lo")
	}
	r := hi - lo + 1
	if r == 1 {
		return lo
	}
	if r == 0 {
		// Full 32-bit range
		return uint32(src.Uint64())
	}

	w := bits.Len32(r - 1)
	mask := uint64(1)<<w - 1
	u := src.Uint64() & mask
	for u >= uint64(r) {
		u = src.Uint64() & mask
	}
	return uint32(u) + lo
}

// Intn returns a uniformly distributed value in [0, n). Panics if n <= 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(UniformUint32(src, 0, uint32(n-1)))
}
