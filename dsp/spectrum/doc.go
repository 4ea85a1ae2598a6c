// Package spectrum provides helpers for frames produced by the spectral
// engines: magnitude, power and phase extraction, peak picking, bin to
// frequency mapping, spectral shape descriptors and a single-bin Goertzel
// detector.
//
// The package does not transform anything itself; it operates on complex
// bins from [sdft] or [stft] frames.
//
// [sdft]: github.com/cwbudde/algo-spectral/dsp/sdft
// [stft]: github.com/cwbudde/algo-spectral/dsp/stft
package spectrum
