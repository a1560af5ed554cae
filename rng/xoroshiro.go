package rng

import "math/bits"

// Xoroshiro128Plus implements the xoroshiro128+ generator by Blackman and Vigna.
// It satisfies math/rand/v2.Source.
type Xoroshiro128Plus struct {
	s [2]uint64
}

// New creates a generator whose state is expanded from seed with SplitMix64.
func New(seed uint64) *Xoroshiro128Plus {
	x := &Xoroshiro128Plus{}
	x.Seed(seed)
	return x
}

// NewFromInt32 seeds from a signed 32-bit value, sign-extending it to 64 bits.
func NewFromInt32(seed int32) *Xoroshiro128Plus {
	return New(uint64(int64(seed)))
}

// Seed resets the state from a single 64-bit seed.
func (x *Xoroshiro128Plus) Seed(seed uint64) {
	sm := NewSplitMix64(seed)
	x.s[0] = sm.Uint64()
	x.s[1] = sm.Uint64()
}

// SetState sets both state words directly. The state must not be all zero.
func (x *Xoroshiro128Plus) SetState(s0, s1 uint64) {
	x.s[0], x.s[1] = s0, s1
}

// State returns the two state words.
func (x *Xoroshiro128Plus) State() (uint64, uint64) {
	return x.s[0], x.s[1]
}

// Uint64 returns the next value in the stream.
func (x *Xoroshiro128Plus) Uint64() uint64 {
	s0 := x.s[0]
	s1 := x.s[1]
	result := s0 + s1

	s1 ^= s0
	x.s[0] = bits.RotateLeft64(s0, 55) ^ s1 ^ (s1 << 14)
	x.s[1] = bits.RotateLeft64(s1, 36)

	return result
}

// Float64 returns a value in [0, 1) built from the top 53 bits.
func (x *Xoroshiro128Plus) Float64() float64 {
	return float64(x.Uint64()>>11) / (1 << 53)
}

var jumpTable = [2]uint64{0xbeac0467eba5facb, 0xd86b048b86aa9922}

// Jump advances the generator by 2^64 steps, giving a non-overlapping subsequence.
func (x *Xoroshiro128Plus) Jump() {
	var s0, s1 uint64
	for _, j := range jumpTable {
		for b := 0; b < 64; b++ {
			if j&(uint64(1)<<b) != 0 {
				s0 ^= x.s[0]
				s1 ^= x.s[1]
			}
			x.Uint64()
		}
	}
	x.s[0] = s0
	x.s[1] = s1
}
