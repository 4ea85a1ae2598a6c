package transform

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum is a bank of gonum complex FFTs for every power-of-two size up to a
// maximum. Each size owns a scratch buffer so dst and src may alias.
type Gonum struct {
	ffts    []*fourier.CmplxFFT
	scratch [][]complex128
	maxSize int
}

// NewGonum prepares FFTs for every power-of-two size in [2, maxSize].
func NewGonum(maxSize int) (*Gonum, error) {
	if err := validateMaxSize(maxSize); err != nil {
		return nil, err
	}

	levels := log2(maxSize) + 1
	g := &Gonum{
		ffts:    make([]*fourier.CmplxFFT, levels),
		scratch: make([][]complex128, levels),
		maxSize: maxSize,
	}
	for e := 1; e < levels; e++ {
		g.ffts[e] = fourier.NewCmplxFFT(1 << e)
		g.scratch[e] = make([]complex128, 1<<e)
	}

	return g, nil
}

// MaxSize returns the largest supported length.
func (g *Gonum) MaxSize() int { return g.maxSize }

// Forward computes the unnormalized forward transform of src into dst.
func (g *Gonum) Forward(dst, src []complex128) error {
	if err := checkBank(dst, src, g.maxSize); err != nil {
		return err
	}

	if len(src) == 1 {
		dst[0] = src[0]
		return nil
	}

	e := log2(len(src))
	copy(g.scratch[e], src)
	g.ffts[e].Coefficients(dst, g.scratch[e])

	return nil
}

// Inverse computes the normalized inverse transform of src into dst.
func (g *Gonum) Inverse(dst, src []complex128) error {
	if err := checkBank(dst, src, g.maxSize); err != nil {
		return err
	}

	if len(src) == 1 {
		dst[0] = src[0]
		return nil
	}

	e := log2(len(src))
	copy(g.scratch[e], src)
	// Sequence is unscaled.
	g.ffts[e].Sequence(dst, g.scratch[e])
	scale(dst, 1/float64(len(dst)))

	return nil
}
