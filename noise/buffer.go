package noise

// Buffer is a reusable output slice for the Into batch variants. The caller
// owns it; the generator never retains a reference.
type Buffer struct {
	data []float64
}

// Resize returns a slice of length n, reusing the backing array when it is
// large enough. Values from earlier calls are not cleared. Negative n is
// treated as zero.
func (b *Buffer) Resize(n int) []float64 {
	if n < 0 {
		n = 0
	}
	if cap(b.data) < n {
		b.data = make([]float64, n)
	}
	b.data = b.data[:n]
	return b.data
}

// Values returns the slice handed out by the last Resize.
func (b *Buffer) Values() []float64 { return b.data }

// Len returns the current length.
func (b *Buffer) Len() int { return len(b.data) }
