package transform

import (
	"github.com/mjibson/go-dsp/fft"
)

// GoDSP wraps github.com/mjibson/go-dsp/fft. It accepts any length but
// allocates on every call, so it is meant for offline use.
type GoDSP struct{}

// Forward computes the unnormalized forward transform of src into dst.
func (GoDSP) Forward(dst, src []complex128) error {
	if err := checkLen(dst, src); err != nil {
		return err
	}
	copy(dst, fft.FFT(src))
	return nil
}

// Inverse computes the normalized inverse transform of src into dst.
func (GoDSP) Inverse(dst, src []complex128) error {
	if err := checkLen(dst, src); err != nil {
		return err
	}
	copy(dst, fft.IFFT(src))
	return nil
}
