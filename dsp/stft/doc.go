// Package stft implements a streaming short-time Fourier transform with
// overlap-add resynthesis.
//
// Incoming samples are striped across a small pool of staggered analysis
// buffers. A new buffer starts every hop H samples; when a buffer holds N
// samples it is windowed, transformed, optionally modified by a
// [SpectralProcessor], inverse transformed and overlap-added into the output.
// The hop is derived from N, the window shape and an [Overlap] policy via a
// fixed ratio table (see [OverlapRatio]).
//
// Without a processor the output reproduces the input delayed by N-1 samples.
package stft
