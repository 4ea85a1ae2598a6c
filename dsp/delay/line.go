// Package delay implements a multi-tap delay line over a power-of-two
// sample history.
package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/interp"
	"github.com/cwbudde/algo-spectral/dsp/ring"
)

// Interp selects how a fractional head position is read.
type Interp int

const (
	// InterpTruncate drops the fractional part. Fastest.
	InterpTruncate Interp = iota
	// InterpNearest rounds to the closest sample.
	InterpNearest
	// InterpLinear crossfades between neighbours. Needed for modulated delays.
	InterpLinear
	// InterpQuadratic uses 3-point Lagrange interpolation.
	InterpQuadratic
	// InterpHermite uses 4-point cubic Hermite interpolation.
	InterpHermite
)

// Mix selects how the sum of all heads is scaled.
type Mix int

const (
	// MixOff sums heads without scaling.
	MixOff Mix = iota
	// MixPerceptual divides by sqrt(heads), keeping RMS level roughly constant.
	MixPerceptual
	// MixUnity divides by the head count (arithmetic mean).
	MixUnity
)

var errHeadIndex = errors.New("delay: head index out of range")

// Line is a circular delay line with any number of read heads.
//
// ProcessSample reads every head first and then writes the input, so a head
// at delay d returns the sample pushed d calls ago (d >= 1 for a pure delay).
type Line struct {
	history *ring.Ring
	offsets []float64
	gains   []float64
	interp  Interp
	mix     Mix
}

// Option configures a Line.
type Option func(*Line)

// WithInterp sets the interpolation mode. Default is InterpLinear.
func WithInterp(m Interp) Option {
	return func(l *Line) { l.interp = m }
}

// WithMix sets the head mix scaling. Default is MixPerceptual.
func WithMix(m Mix) Option {
	return func(l *Line) { l.mix = m }
}

// New returns a delay line able to hold at least maxDelay samples.
// The backing history is rounded up to a power of two.
func New(maxDelay int, opts ...Option) (*Line, error) {
	if maxDelay <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", maxDelay)
	}

	// Interpolators read up to two samples past the integer position.
	history, err := ring.New(core.NextPowerOfTwo(maxDelay + 3))
	if err != nil {
		return nil, fmt.Errorf("delay: %w", err)
	}

	l := &Line{
		history: history,
		interp:  InterpLinear,
		mix:     MixPerceptual,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l, nil
}

// Len returns the internal history size.
func (l *Line) Len() int { return l.history.Len() }

// MaxDelay returns the longest delay a head can read without clamping.
func (l *Line) MaxDelay() float64 { return float64(l.history.Len() - 3) }

// Heads returns the number of read heads.
func (l *Line) Heads() int { return len(l.offsets) }

// SetInterp changes the interpolation mode.
func (l *Line) SetInterp(m Interp) { l.interp = m }

// SetMix changes the mix scaling.
func (l *Line) SetMix(m Mix) { l.mix = m }

// AddHead adds a read head at delay samples with the given gain and returns
// its index.
func (l *Line) AddHead(delay, gain float64) int {
	l.offsets = append(l.offsets, delay)
	l.gains = append(l.gains, gain)
	return len(l.offsets) - 1
}

// RemoveHead removes head i. Heads after i shift down by one.
func (l *Line) RemoveHead(i int) error {
	if i < 0 || i >= len(l.offsets) {
		return fmt.Errorf("%w: %d", errHeadIndex, i)
	}
	l.offsets = append(l.offsets[:i], l.offsets[i+1:]...)
	l.gains = append(l.gains[:i], l.gains[i+1:]...)
	return nil
}

// SetHead moves head i to a new delay.
func (l *Line) SetHead(i int, delay float64) error {
	if i < 0 || i >= len(l.offsets) {
		return fmt.Errorf("%w: %d", errHeadIndex, i)
	}
	l.offsets[i] = delay
	return nil
}

// Write pushes one sample without reading.
func (l *Line) Write(sample float64) { l.history.Push(sample) }

// Read returns the sample written delay writes ago, clamped to the history.
// Read(1) is the most recent write.
func (l *Line) Read(delay int) float64 {
	age := min(max(delay-1, 0), l.history.Len()-1)
	return l.history.At(age)
}

// ReadFractional reads at a fractional delay using the configured mode.
func (l *Line) ReadFractional(delay float64) float64 {
	delay = core.Clamp(delay, 1, l.MaxDelay())

	switch l.interp {
	case InterpTruncate:
		return l.Read(int(delay))
	case InterpNearest:
		return l.Read(int(math.Round(delay)))
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	switch l.interp {
	case InterpQuadratic:
		return interp.Quadratic(t, l.Read(p-1), l.Read(p), l.Read(p+1))
	case InterpHermite:
		return interp.Hermite4(t, l.Read(p-1), l.Read(p), l.Read(p+1), l.Read(p+2))
	default:
		return interp.Linear(t, l.Read(p), l.Read(p+1))
	}
}

// ProcessSample reads all heads, mixes them and then writes input.
func (l *Line) ProcessSample(input float64) float64 {
	sum := 0.0
	for i, d := range l.offsets {
		sum += l.ReadFractional(d) * l.gains[i]
	}

	if n := len(l.offsets); n > 0 {
		switch l.mix {
		case MixPerceptual:
			sum /= math.Sqrt(float64(n))
		case MixUnity:
			sum /= float64(n)
		}
	}

	l.history.Push(input)

	return sum
}

// Reset clears the history. Heads are kept.
func (l *Line) Reset() { l.history.Reset() }
