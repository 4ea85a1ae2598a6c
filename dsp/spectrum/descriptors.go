package spectrum

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RolloffFraction is the energy fraction used by Describe for Rolloff.
const RolloffFraction = 0.85

// Descriptors are shape measures of a one-sided magnitude spectrum.
type Descriptors struct {
	Centroid float64 // magnitude-weighted mean frequency in Hz
	Spread   float64 // magnitude-weighted deviation around Centroid in Hz
	Flatness float64 // geometric over arithmetic mean without DC, in [0, 1]
	Rolloff  float64 // frequency in Hz below which RolloffFraction of the energy lies
}

// Describe computes Descriptors for mag, the bins [0, n/2] of an n-point
// transform at sampleRate. Fewer than two bins yield the zero value.
func Describe(mag []float64, n int, sampleRate float64) Descriptors {
	if len(mag) < 2 || n <= 0 {
		return Descriptors{}
	}

	var d Descriptors

	if total := floats.Sum(mag); total > 0 {
		var weighted float64
		for k, m := range mag {
			weighted += BinFrequency(k, n, sampleRate) * m
		}
		d.Centroid = weighted / total

		var spread float64
		for k, m := range mag {
			diff := BinFrequency(k, n, sampleRate) - d.Centroid
			spread += diff * diff * m
		}
		d.Spread = math.Sqrt(spread / total)
	}

	d.Flatness = flatness(mag[1:])
	d.Rolloff = rolloff(mag, n, sampleRate, RolloffFraction)

	return d
}

func flatness(mag []float64) float64 {
	mean := stat.Mean(mag, nil)
	if mean <= 0 || floats.Min(mag) <= 0 {
		return 0
	}
	return stat.GeometricMean(mag, nil) / mean
}

func rolloff(mag []float64, n int, sampleRate, fraction float64) float64 {
	energy := floats.Dot(mag, mag)
	if energy == 0 {
		return 0
	}

	threshold := fraction * energy
	var cum float64
	for k, m := range mag {
		cum += m * m
		if cum >= threshold {
			return BinFrequency(k, n, sampleRate)
		}
	}
	return BinFrequency(len(mag)-1, n, sampleRate)
}
