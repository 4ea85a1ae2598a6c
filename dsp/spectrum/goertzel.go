package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// Goertzel evaluates one DFT term incrementally. After feeding a block of
// length N, Power equals |X(f)|² of the DFT of that block at frequency f.
// It is a cheap cross-check for a single bin of a full frame.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates a detector for frequency. frequency must be in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// NewGoertzelBin creates a detector for bin k of an n-point transform.
func NewGoertzelBin(k, n int) (*Goertzel, error) {
	if n <= 0 {
		return nil, fmt.Errorf("goertzel: transform size must be > 0: %d", n)
	}
	return NewGoertzel(float64(k), float64(n))
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// Reset clears the internal state.
func (g *Goertzel) Reset() { g.s0, g.s1 = 0, 0 }

// ProcessSample feeds one sample.
func (g *Goertzel) ProcessSample(x float64) {
	g.s0, g.s1 = x+g.coeff*g.s0-g.s1, g.s0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1, c := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = x+c*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// Power returns |X(f)|² over everything fed since the last Reset.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X(f)|.
func (g *Goertzel) Magnitude() float64 {
	return mathSqrt(max(g.Power(), 0))
}

// PowerDB returns Power in dB, floored at -300 dB.
func (g *Goertzel) PowerDB() float64 {
	return max(core.LinearPowerToDB(max(g.Power(), 0)), -300)
}
