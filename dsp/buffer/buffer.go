package buffer

// Buffer is a resizable block of samples that keeps its backing array
// across uses.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	return &Buffer{samples: make([]float64, max(length, 0))}
}

// FromSlice wraps s without copying.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the current block.
func (b *Buffer) Samples() []float64 { return b.samples }

// Len returns the block length.
func (b *Buffer) Len() int { return len(b.samples) }

// Cap returns the capacity of the backing array.
func (b *Buffer) Cap() int { return cap(b.samples) }

// Resize sets the length to n, reusing capacity when possible. Newly
// exposed samples are zero.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)
	old := len(b.samples)
	if n > cap(b.samples) {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
		return
	}
	b.samples = b.samples[:n]
	if n > old {
		clear(b.samples[old:])
	}
}

// Load resizes the block to len(src) and copies src into it.
func (b *Buffer) Load(src []float64) {
	b.Resize(len(src))
	copy(b.samples, src)
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() { clear(b.samples) }
