// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear]:    2-point linear crossfade
//   - [Quadratic]: 3-point Lagrange
//   - [Hermite4]:  4-point cubic Hermite (good default)
//
// [delay.Line] selects one of these per read head.
package interp
