// Package sdft implements a sliding discrete Fourier transform that updates
// every bin on every incoming sample, and a cheap single-sample resynthesis
// from the resulting frame.
//
// The accumulator for bin k holds the DFT of the last N samples ordered
// oldest first:
//
//	X[k] = Σ_{a=0}^{N-1} h[a]·e^{-i2πka/N}
//
// and is maintained with one complex add and multiply per bin per sample.
// Rounding errors accumulate without bound in pure recursion; see
// [WithResyncInterval].
package sdft
