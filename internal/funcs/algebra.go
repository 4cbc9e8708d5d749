package funcs

import (
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// combine applies op pointwise. When either operand is tabulated the result
// is tabulated on that operand's grid (the receiver's grid wins when both
// are); otherwise the result is analytic.
func (c *Curve) combine(o *Curve, op func(a, b float64) float64) *Curve {
	grid := c
	if !grid.Tabulated() {
		grid = o
	}
	if grid.Tabulated() {
		ys := make([]float64, len(grid.xs))
		for i, x := range grid.xs {
			ys[i] = op(c.At(x), o.At(x))
		}
		out, err := NewTabulated(grid.xs, ys, grid.interp, grid.extrap)
		if err != nil {
			// grid abscissae were already validated at construction
			panic(err)
		}
		return out
	}
	cc, oo := c, o
	return NewAnalytic(func(t float64) float64 { return op(cc.At(t), oo.At(t)) })
}

// Add returns c + o.
func (c *Curve) Add(o *Curve) *Curve {
	return c.combine(o, func(a, b float64) float64 { return a + b })
}

// Sub returns c - o.
func (c *Curve) Sub(o *Curve) *Curve {
	return c.combine(o, func(a, b float64) float64 { return a - b })
}

// Mul returns the pointwise product c * o.
func (c *Curve) Mul(o *Curve) *Curve {
	return c.combine(o, func(a, b float64) float64 { return a * b })
}

// Div returns the pointwise quotient c / o.
func (c *Curve) Div(o *Curve) *Curve {
	return c.combine(o, func(a, b float64) float64 { return a / b })
}

// AddScalar returns c + v.
func (c *Curve) AddScalar(v float64) *Curve { return c.Add(NewConstant(v)) }

// Scale returns c * v.
func (c *Curve) Scale(v float64) *Curve { return c.Mul(NewConstant(v)) }

// refinement per interval when integrating non-linear interpolants
const splineRefine = 8

// Integral computes the definite integral of the curve from a to b by
// trapezoid quadrature. Sample knots inside [a, b] are always included so
// the result is exact for linear interpolation; spline and shape-preserving
// curves are refined between knots. Outside a tabulated curve's domain the
// extrapolation policy applies, so a zero-extrapolated curve contributes
// nothing there.
func (c *Curve) Integral(a, b float64) float64 {
	if a == b {
		return 0
	}
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}

	knots := []float64{a}
	if c.Tabulated() {
		i := sort.SearchFloat64s(c.xs, a)
		for ; i < len(c.xs) && c.xs[i] < b; i++ {
			if c.xs[i] > a {
				knots = append(knots, c.xs[i])
			}
		}
	}
	knots = append(knots, b)

	refine := splineRefine
	if c.Tabulated() && c.interp == Linear {
		refine = 1
	} else if !c.Tabulated() {
		refine = 32
	}

	xs := make([]float64, 0, (len(knots)-1)*refine+1)
	for i := 0; i < len(knots)-1; i++ {
		lo, hi := knots[i], knots[i+1]
		for j := 0; j < refine; j++ {
			xs = append(xs, lo+(hi-lo)*float64(j)/float64(refine))
		}
	}
	xs = append(xs, knots[len(knots)-1])

	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = c.At(x)
	}
	return sign * integrate.Trapezoidal(xs, ys)
}

// Antiderivative returns the cumulative integral of a tabulated curve,
// anchored at zero on the first sample. The result holds its boundary
// values outside the domain, which is the behavior integrated physical
// quantities (consumed mass, delivered impulse) want.
func (c *Curve) Antiderivative() (*Curve, error) {
	if !c.Tabulated() {
		return nil, ErrTooFewSamples
	}
	ys := make([]float64, len(c.xs))
	for i := 1; i < len(c.xs); i++ {
		ys[i] = ys[i-1] + c.Integral(c.xs[i-1], c.xs[i])
	}
	return NewTabulated(c.xs, ys, c.interp, Hold)
}

// Derivative returns the first derivative of the curve. Tabulated curves
// are differentiated by central differences on their own grid (one-sided at
// the boundaries); analytic curves by a symmetric difference quotient.
func (c *Curve) Derivative() (*Curve, error) {
	if !c.Tabulated() {
		fn := c.fn
		const h = 1e-6
		return NewAnalytic(func(t float64) float64 {
			return (fn(t+h) - fn(t-h)) / (2 * h)
		}), nil
	}
	n := len(c.xs)
	ys := make([]float64, n)
	ys[0] = (c.ys[1] - c.ys[0]) / (c.xs[1] - c.xs[0])
	ys[n-1] = (c.ys[n-1] - c.ys[n-2]) / (c.xs[n-1] - c.xs[n-2])
	for i := 1; i < n-1; i++ {
		ys[i] = (c.ys[i+1] - c.ys[i-1]) / (c.xs[i+1] - c.xs[i-1])
	}
	return NewTabulated(c.xs, ys, c.interp, c.extrap)
}
