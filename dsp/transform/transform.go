package transform

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// ErrSize is returned when a backend cannot transform the requested length.
var ErrSize = errors.New("transform: unsupported size")

// Transform is a complex forward/inverse transform of arbitrary (backend
// dependent) length.
type Transform interface {
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

func checkLen(dst, src []complex128) error {
	if len(src) == 0 || len(dst) != len(src) {
		return fmt.Errorf("%w: dst=%d src=%d", ErrSize, len(dst), len(src))
	}
	return nil
}

func checkBank(dst, src []complex128, maxSize int) error {
	if err := checkLen(dst, src); err != nil {
		return err
	}
	if n := len(src); !core.IsPowerOfTwo(n) || n > maxSize {
		return fmt.Errorf("%w: %d (power of two up to %d)", ErrSize, n, maxSize)
	}
	return nil
}

func validateMaxSize(maxSize int) error {
	if !core.IsPowerOfTwo(maxSize) {
		return fmt.Errorf("%w: max size %d is not a power of two", ErrSize, maxSize)
	}
	return nil
}

// log2 returns the exponent of a power of two.
func log2(n int) int { return bits.TrailingZeros(uint(n)) }

func scale(x []complex128, f float64) {
	c := complex(f, 0)
	for i := range x {
		x[i] *= c
	}
}

// DFT evaluates the transform directly. Any length is accepted.
// It allocates only when dst and src share storage.
type DFT struct{}

// Forward computes X[k] = Σ x[m]·e^{-i2πkm/N}.
func (DFT) Forward(dst, src []complex128) error {
	return direct(dst, src, -1)
}

// Inverse computes x[m] = (1/N)·Σ X[k]·e^{+i2πkm/N}.
func (DFT) Inverse(dst, src []complex128) error {
	if err := direct(dst, src, 1); err != nil {
		return err
	}
	scale(dst, 1/float64(len(dst)))
	return nil
}

func direct(dst, src []complex128, sign float64) error {
	if err := checkLen(dst, src); err != nil {
		return err
	}

	in := src
	if &dst[0] == &src[0] {
		in = append([]complex128(nil), src...)
	}

	n := len(in)
	for k := range n {
		var acc complex128
		for m, v := range in {
			s, c := math.Sincos(sign * 2 * math.Pi * float64(k*m%n) / float64(n))
			acc += v * complex(c, s)
		}
		dst[k] = acc
	}

	return nil
}
