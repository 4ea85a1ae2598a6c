// Package transform defines the complex transform primitive consumed by the
// spectral engines and provides interchangeable backends.
//
// All backends share one contract: the transform length is len(src), dst
// must have the same length, and Inverse is normalized by 1/N so that
// Inverse(Forward(x)) == x.
//
// Available backends:
//   - [AlgoFFT]: plan bank over github.com/MeKo-Christian/algo-fft (default)
//   - [Gonum]: plan bank over gonum.org/v1/gonum/dsp/fourier
//   - [GoDSP]: github.com/mjibson/go-dsp/fft (allocates per call)
//   - [DFT]: direct O(N²) evaluation, any length, for reference and tests
package transform
