package interp

// Linear crossfades from x0 to x1. t is clamped to [0, 1].
func Linear(t, x0, x1 float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return x0 + t*(x1-x0)
}

// Quadratic is 3-point Lagrange interpolation through (-1, xm1), (0, x0),
// (1, x1), evaluated at t.
func Quadratic(t, xm1, x0, x1 float64) float64 {
	c1 := 0.5 * (x1 - xm1)
	c2 := 0.5*(x1+xm1) - x0
	return (c2*t+c1)*t + x0
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// LagrangeInterpolator selects a kernel by order.
type LagrangeInterpolator struct {
	order int
}

// NewLagrangeInterpolator creates an interpolator.
// order: 1 = linear, 2 = quadratic, 3 = cubic (Hermite-style 4-point).
// Unknown orders fall back to linear.
func NewLagrangeInterpolator(order int) *LagrangeInterpolator {
	return &LagrangeInterpolator{order: order}
}

// Order returns the configured order.
func (l *LagrangeInterpolator) Order() int { return l.order }

// Interpolate interpolates around frac in [0,1].
// Order 1 reads samples[0..1], order 2 reads samples[0..2] centered on
// samples[1], order 3 reads samples[0..3] between samples[1] and samples[2].
// Short inputs degrade to the highest order they can support.
func (l *LagrangeInterpolator) Interpolate(samples []float64, frac float64) float64 {
	switch {
	case len(samples) == 0:
		return 0
	case len(samples) == 1:
		return samples[0]
	case l.order == 3 && len(samples) >= 4:
		return Hermite4(frac, samples[0], samples[1], samples[2], samples[3])
	case l.order == 2 && len(samples) >= 3:
		return Quadratic(frac, samples[0], samples[1], samples[2])
	default:
		return samples[0] + frac*(samples[1]-samples[0])
	}
}
