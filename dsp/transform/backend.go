package transform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBackend is returned by ByName for unknown backend names.
var ErrBackend = errors.New("transform: unknown backend")

// Backends lists the names accepted by ByName.
func Backends() []string {
	return []string{"algofft", "gonum", "godsp", "dft"}
}

// ByName returns the named backend prepared for sizes up to maxSize.
func ByName(name string, maxSize int) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "algofft", "algo-fft":
		a, err := NewAlgoFFT(maxSize)
		if err != nil {
			return nil, err
		}
		return a, nil
	case "gonum":
		g, err := NewGonum(maxSize)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "godsp", "go-dsp":
		return GoDSP{}, nil
	case "dft":
		return DFT{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBackend, name)
	}
}
