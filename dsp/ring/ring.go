// Package ring provides a fixed-capacity circular sample history with O(1)
// push and O(1) lookup by age.
//
// Capacity must be a power of two so that cursor wrap-around is a bitwise
// mask instead of a modulo.
package ring

import (
	"errors"
	"fmt"
)

// ErrCapacity is returned when the requested capacity is not a positive power of two.
var ErrCapacity = errors.New("ring: capacity must be a positive power of two")

// Ring is a circular buffer of float64 samples.
//
// The write cursor always points at the slot that receives the next Push.
// Age 0 is the newest sample, age Len()-1 the oldest still resident.
// A new Ring reads as all zeros.
type Ring struct {
	data  []float64
	mask  int
	write int
}

// New returns a zero-filled ring with the given capacity.
func New(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}

	return &Ring{
		data: make([]float64, capacity),
		mask: capacity - 1,
	}, nil
}

// MustNew is like New but panics on an invalid capacity.
func MustNew(capacity int) *Ring {
	r, err := New(capacity)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the capacity.
func (r *Ring) Len() int { return len(r.data) }

// Push writes one sample and advances the cursor.
func (r *Ring) Push(x float64) {
	r.data[r.write] = x
	r.write = (r.write + 1) & r.mask
}

// At returns the sample written age pushes ago. It panics if age is outside
// [0, Len()).
func (r *Ring) At(age int) float64 {
	if age < 0 || age > r.mask {
		panic(fmt.Sprintf("ring: age %d out of range [0, %d)", age, len(r.data)))
	}
	return r.data[(r.write-1-age)&r.mask]
}

// Get is the checked form of At. It reports false if age is out of range.
func (r *Ring) Get(age int) (float64, bool) {
	if age < 0 || age > r.mask {
		return 0, false
	}
	return r.data[(r.write-1-age)&r.mask], true
}

// CopyTo fills dst with the last len(dst) samples, oldest first, so that
// dst[len(dst)-1] is the newest. It returns the number of samples copied,
// which is capped at Len().
func (r *Ring) CopyTo(dst []float64) int {
	n := min(len(dst), len(r.data))
	for i := range n {
		dst[i] = r.data[(r.write-n+i)&r.mask]
	}
	return n
}

// Reset zeroes the history and rewinds the cursor.
func (r *Ring) Reset() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.write = 0
}
