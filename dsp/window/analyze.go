package window

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Analysis holds numerically computed spectral properties of a window.
// Frequencies are in bins of the window length.
type Analysis struct {
	CoherentGain      float64 // sum(w)/N
	ENBW              float64 // equivalent noise bandwidth
	Bandwidth3dB      float64 // two-sided half-power main lobe width
	HighestSidelobedB float64 // relative to DC
	FirstMinimumBins  float64 // first null of the main lobe
	ScallopLossdB     float64 // response half a bin off centre
}

// Analyze measures the spectral properties of coeffs from its
// continuous-frequency DFT. A window with zero DC response yields the zero
// Analysis.
func Analyze(coeffs []float64) Analysis {
	r, ok := newResponse(coeffs)
	if !ok {
		return Analysis{}
	}

	sum := floats.Sum(coeffs)
	null := r.firstNull()

	return Analysis{
		CoherentGain:      sum / r.n,
		ENBW:              r.n * floats.Dot(coeffs, coeffs) / (sum * sum),
		Bandwidth3dB:      2 * r.halfPowerBin(),
		HighestSidelobedB: powerDB(r.peakAbove(null)),
		FirstMinimumBins:  null,
		ScallopLossdB:     powerDB(r.at(0.5)),
	}
}

// AnalyzeShape generates an n-point window of shape s and analyzes it.
func AnalyzeShape(s Shape, n int, opts ...Option) Analysis {
	return Analyze(Generate(s, n, opts...))
}

// sweepStep is the coarse search resolution in bins.
const sweepStep = 1.0 / 8

// response is the window's power response normalised to its DC value.
type response struct {
	coeffs []float64
	n      float64
	dc     float64
}

func newResponse(coeffs []float64) (response, bool) {
	r := response{coeffs: coeffs, n: float64(len(coeffs)), dc: 1}
	if len(coeffs) == 0 {
		return r, false
	}
	r.dc = r.at(0)
	return r, r.dc > 0
}

// at returns |W(bin)|^2 / |W(0)|^2.
func (r response) at(bin float64) float64 {
	var re, im float64
	step := 2 * math.Pi * bin / r.n
	for k, c := range r.coeffs {
		s, co := math.Sincos(step * float64(k))
		re += c * co
		im -= c * s
	}
	return (re*re + im*im) / r.dc
}

func (r response) nyquist() float64 { return r.n / 2 }

// halfPowerBin bisects for the bin where the main lobe crosses -3 dB.
func (r response) halfPowerBin() float64 {
	lo, hi := 0.0, r.nyquist()
	for range 80 {
		mid := (lo + hi) / 2
		if r.at(mid) > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// firstNull locates the first local minimum past the main lobe. The
// response must fall below a tenth of DC before a rise counts, which
// keeps flat-top plateaus from being taken as nulls.
func (r response) firstNull() float64 {
	guess := sweepStep
	prev := 1.0
	for bin := sweepStep; bin < r.nyquist(); bin += sweepStep {
		v := r.at(bin)
		if prev < 0.1 && v > prev {
			guess = bin - sweepStep
			break
		}
		prev = v
	}

	lo := math.Max(guess-2*sweepStep, 0)
	hi := math.Min(guess+2*sweepStep, r.nyquist())
	return goldenMin(r.at, lo, hi)
}

// peakAbove returns the largest response between from and Nyquist,
// refined by a parabola through the best sweep point and its neighbours.
func (r response) peakAbove(from float64) float64 {
	best, bestBin := 0.0, from
	for bin := from; bin < r.nyquist(); bin += sweepStep {
		if v := r.at(bin); v > best {
			best, bestBin = v, bin
		}
	}
	if bestBin-sweepStep < 0 {
		return best
	}

	y0, y2 := r.at(bestBin-sweepStep), r.at(bestBin+sweepStep)
	denom := y0 - 2*best + y2
	if denom >= 0 {
		return best
	}
	p := 0.5 * (y0 - y2) / denom
	return math.Max(best, best-0.25*(y0-y2)*p)
}

// goldenMin minimises f on [lo, hi] by golden-section search.
func goldenMin(f func(float64) float64, lo, hi float64) float64 {
	const invPhi = 0.6180339887498949
	for range 80 {
		c := hi - invPhi*(hi-lo)
		d := lo + invPhi*(hi-lo)
		if f(c) < f(d) {
			hi = d
		} else {
			lo = c
		}
	}
	return (lo + hi) / 2
}

func powerDB(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(ratio)
}
