package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// AlgoFFT holds one algo-fft plan per power-of-two size up to a maximum, so
// the size can change at runtime without planning on the hot path.
type AlgoFFT struct {
	plans   []*algofft.Plan[complex128]
	maxSize int
}

// NewAlgoFFT plans every power-of-two size in [2, maxSize].
func NewAlgoFFT(maxSize int) (*AlgoFFT, error) {
	if err := validateMaxSize(maxSize); err != nil {
		return nil, err
	}

	a := &AlgoFFT{
		plans:   make([]*algofft.Plan[complex128], log2(maxSize)+1),
		maxSize: maxSize,
	}

	for e := 1; e < len(a.plans); e++ {
		plan, err := algofft.NewPlan64(1 << e)
		if err != nil {
			return nil, fmt.Errorf("transform: plan size %d: %w", 1<<e, err)
		}
		a.plans[e] = plan
	}

	return a, nil
}

// MaxSize returns the largest supported length.
func (a *AlgoFFT) MaxSize() int { return a.maxSize }

// Forward computes the unnormalized forward transform of src into dst.
func (a *AlgoFFT) Forward(dst, src []complex128) error {
	if err := checkBank(dst, src, a.maxSize); err != nil {
		return err
	}
	if len(src) == 1 {
		dst[0] = src[0]
		return nil
	}

	if err := a.plans[log2(len(src))].Forward(dst, src); err != nil {
		return fmt.Errorf("transform: forward FFT failed: %w", err)
	}
	return nil
}

// Inverse computes the normalized inverse transform of src into dst.
func (a *AlgoFFT) Inverse(dst, src []complex128) error {
	if err := checkBank(dst, src, a.maxSize); err != nil {
		return err
	}
	if len(src) == 1 {
		dst[0] = src[0]
		return nil
	}

	if err := a.plans[log2(len(src))].Inverse(dst, src); err != nil {
		return fmt.Errorf("transform: inverse FFT failed: %w", err)
	}
	return nil
}
