package window

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownShape is returned by ParseShape for names it does not recognise.
	ErrUnknownShape = errors.New("window: unknown shape")

	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
)

func unknownShape(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownShape, name)
}
