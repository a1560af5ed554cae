// Package rng provides the small deterministic generators used to seed noise tables.
package rng

// SplitMix64 is a 64-bit generator with a single word of state.
// It is mainly used to expand one integer seed into the state of a larger generator.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 creates a SplitMix64 starting at seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Seed resets the generator state.
func (s *SplitMix64) Seed(seed uint64) {
	s.state = seed
}

// Uint64 returns the next value in the stream.
func (s *SplitMix64) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	return splitmixTransform(s.state)
}

func splitmixTransform(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
