package funcs

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Errors returned by curve construction.
var (
	// ErrTooFewSamples indicates fewer than two sample points were supplied.
	ErrTooFewSamples = errors.New("funcs: at least two sample points required")

	// ErrUnsortedSamples indicates sample abscissae are not strictly increasing.
	ErrUnsortedSamples = errors.New("funcs: sample times must be strictly increasing")
)

// Interpolation selects how a tabulated curve is evaluated between samples.
type Interpolation int

const (
	Linear Interpolation = iota
	Spline
	ShapePreserving
)

func (ip Interpolation) String() string {
	switch ip {
	case Linear:
		return "linear"
	case Spline:
		return "spline"
	case ShapePreserving:
		return "shape_preserving"
	}
	return fmt.Sprintf("Interpolation(%d)", int(ip))
}

// ParseInterpolation maps a config string to an Interpolation.
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "", "linear":
		return Linear, nil
	case "spline":
		return Spline, nil
	case "shape_preserving", "akima":
		return ShapePreserving, nil
	}
	return Linear, fmt.Errorf("funcs: unknown interpolation method %q", s)
}

// Extrapolation selects the value of a tabulated curve outside its domain.
type Extrapolation int

const (
	// Zero clamps the curve to zero outside its sample domain.
	Zero Extrapolation = iota
	// Hold clamps the curve to its boundary sample values.
	Hold
)

// Curve is a scalar function of one real variable. It is backed either by
// discrete samples evaluated through an interpolation policy, or by an
// analytic callable. Curves are immutable: every operation returns a new
// Curve and never alters its receiver.
type Curve struct {
	xs, ys []float64
	fn     func(float64) float64

	interp Interpolation
	extrap Extrapolation
	pred   interp.Predictor

	xLabel, yLabel string
}

// NewConstant returns the curve f(t) = v for all t.
func NewConstant(v float64) *Curve {
	return &Curve{fn: func(float64) float64 { return v }}
}

// NewAnalytic returns a curve backed by fn. Analytic curves have no sample
// domain; extrapolation policies do not apply to them.
func NewAnalytic(fn func(float64) float64) *Curve {
	return &Curve{fn: fn}
}

// NewTabulated builds a curve from parallel time/value slices. The slices
// are copied. Times must be strictly increasing and hold at least two
// points.
func NewTabulated(xs, ys []float64, ip Interpolation, ex Extrapolation) (*Curve, error) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return nil, ErrTooFewSamples
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: x[%d]=%g, x[%d]=%g", ErrUnsortedSamples, i-1, xs[i-1], i, xs[i])
		}
	}
	cx := make([]float64, len(xs))
	cy := make([]float64, len(ys))
	copy(cx, xs)
	copy(cy, ys)
	pred, err := fitPredictor(cx, cy, ip)
	if err != nil {
		return nil, err
	}
	return &Curve{xs: cx, ys: cy, interp: ip, extrap: ex, pred: pred}, nil
}

// NewFromPairs builds a tabulated curve from (x, y) pairs.
func NewFromPairs(pairs [][2]float64, ip Interpolation, ex Extrapolation) (*Curve, error) {
	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i] = p[0]
		ys[i] = p[1]
	}
	return NewTabulated(xs, ys, ip, ex)
}

func fitPredictor(xs, ys []float64, ip Interpolation) (interp.Predictor, error) {
	var p interp.FittablePredictor
	switch ip {
	case Spline:
		p = &interp.NaturalCubic{}
	case ShapePreserving:
		p = &interp.FritschButland{}
	default:
		p = &interp.PiecewiseLinear{}
	}
	if err := p.Fit(xs, ys); err != nil {
		return nil, err
	}
	return p, nil
}

// WithLabels returns a copy of the curve carrying axis labels for display.
func (c *Curve) WithLabels(x, y string) *Curve {
	cc := *c
	cc.xLabel, cc.yLabel = x, y
	return &cc
}

// Labels reports the axis labels, which may be empty.
func (c *Curve) Labels() (x, y string) { return c.xLabel, c.yLabel }

// Tabulated reports whether the curve is backed by discrete samples.
func (c *Curve) Tabulated() bool { return c.xs != nil }

// Len returns the number of samples, zero for analytic curves.
func (c *Curve) Len() int { return len(c.xs) }

// Times returns a copy of the sample abscissae, nil for analytic curves.
func (c *Curve) Times() []float64 {
	if c.xs == nil {
		return nil
	}
	out := make([]float64, len(c.xs))
	copy(out, c.xs)
	return out
}

// Values returns a copy of the sample ordinates, nil for analytic curves.
func (c *Curve) Values() []float64 {
	if c.ys == nil {
		return nil
	}
	out := make([]float64, len(c.ys))
	copy(out, c.ys)
	return out
}

// Domain returns the first and last sample time. ok is false for analytic
// curves, which are defined everywhere.
func (c *Curve) Domain() (lo, hi float64, ok bool) {
	if c.xs == nil {
		return 0, 0, false
	}
	return c.xs[0], c.xs[len(c.xs)-1], true
}

// Interpolation reports the interpolation policy of a tabulated curve.
func (c *Curve) Interpolation() Interpolation { return c.interp }

// Extrapolation reports the extrapolation policy of a tabulated curve.
func (c *Curve) Extrapolation() Extrapolation { return c.extrap }

// At evaluates the curve at t. Inside the sample domain the configured
// interpolation applies; outside it the extrapolation policy does.
func (c *Curve) At(t float64) float64 {
	if c.fn != nil {
		return c.fn(t)
	}
	lo, hi := c.xs[0], c.xs[len(c.xs)-1]
	if t < lo || t > hi {
		switch c.extrap {
		case Hold:
			if t < lo {
				return c.ys[0]
			}
			return c.ys[len(c.ys)-1]
		default:
			return 0
		}
	}
	return c.pred.Predict(t)
}

// Discretize resamples the curve onto n evenly spaced points across
// [lo, hi], returning a tabulated curve with the given policies.
func (c *Curve) Discretize(lo, hi float64, n int, ip Interpolation, ex Extrapolation) (*Curve, error) {
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		xs[i] = x
		ys[i] = c.At(x)
	}
	return NewTabulated(xs, ys, ip, ex)
}

// DiscretizeLike resamples the curve onto the sample grid of model,
// inheriting the model's interpolation and extrapolation policies.
func (c *Curve) DiscretizeLike(model *Curve) (*Curve, error) {
	if !model.Tabulated() {
		return nil, ErrTooFewSamples
	}
	ys := make([]float64, len(model.xs))
	for i, x := range model.xs {
		ys[i] = c.At(x)
	}
	return NewTabulated(model.Times(), ys, model.interp, model.extrap)
}

// ArgMax returns the sample with the largest value of a tabulated curve.
func (c *Curve) ArgMax() (x, y float64) {
	if c.ys == nil {
		return math.NaN(), math.NaN()
	}
	best := 0
	for i, v := range c.ys {
		if v > c.ys[best] {
			best = i
		}
	}
	return c.xs[best], c.ys[best]
}
