package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func split(frame []complex128, re, im []float64) {
	for i, c := range frame {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each bin of frame.
func Magnitude(frame []complex128) []float64 {
	if len(frame) == 0 {
		return nil
	}

	out := make([]float64, len(frame))
	MagnitudeInto(out, frame)
	return out
}

// MagnitudeInto writes |X[k]| for the first min(len(dst), len(frame)) bins
// into dst and returns that count. Scratch memory is pooled, so steady-state
// calls do not allocate.
func MagnitudeInto(dst []float64, frame []complex128) int {
	n := min(len(dst), len(frame))
	if n == 0 {
		return 0
	}

	re, im, buf := getScratch(n)
	split(frame[:n], re, im)
	vecmath.Magnitude(dst[:n], re, im)
	scratchPool.Put(buf)

	return n
}

// Power returns |X[k]|² for each bin of frame.
func Power(frame []complex128) []float64 {
	if len(frame) == 0 {
		return nil
	}

	out := make([]float64, len(frame))
	PowerInto(out, frame)
	return out
}

// PowerInto is the allocation-free form of Power.
func PowerInto(dst []float64, frame []complex128) int {
	n := min(len(dst), len(frame))
	if n == 0 {
		return 0
	}

	re, im, buf := getScratch(n)
	split(frame[:n], re, im)
	vecmath.Power(dst[:n], re, im)
	scratchPool.Put(buf)

	return n
}

// Phase returns arg(X[k]) in radians for each bin of frame.
func Phase(frame []complex128) []float64 {
	if len(frame) == 0 {
		return nil
	}
	out := make([]float64, len(frame))
	for i, c := range frame {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with ±2π discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// PeakBin returns the index and magnitude of the strongest bin in
// [0, N/2], the non-negative frequencies of a real signal's frame. It
// returns -1 for an empty frame.
func PeakBin(frame []complex128) (int, float64) {
	if len(frame) == 0 {
		return -1, 0
	}

	best, bestPow := 0, -1.0
	for k := 0; k <= len(frame)/2; k++ {
		c := frame[k]
		if p := real(c)*real(c) + imag(c)*imag(c); p > bestPow {
			best, bestPow = k, p
		}
	}

	return best, math.Sqrt(bestPow)
}

// BinFrequency returns the centre frequency in Hz of bin k of an n-point
// transform at sampleRate.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(n)
}
