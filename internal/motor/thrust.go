package motor

import (
	"fmt"

	"github.com/san-kum/motorsim/internal/eng"
	"github.com/san-kum/motorsim/internal/funcs"
)

// Sample count used when an analytic thrust source is discretized across
// the burn window.
const discretizePoints = 50

// loadThrust turns a raw thrust source into a curve. For .eng sources the
// file description is returned as well, so callers can derive masses and
// geometry from it.
func loadThrust(src ThrustSource, ip funcs.Interpolation) (*funcs.Curve, *eng.Description, error) {
	switch s := src.(type) {
	case ConstantThrust:
		return funcs.NewConstant(float64(s)), nil, nil
	case ThrustFunc:
		if s == nil {
			return nil, nil, configErr("thrust_source", ErrThrustSource)
		}
		return funcs.NewAnalytic(s), nil, nil
	case ThrustSamples:
		c, err := funcs.NewFromPairs(s, ip, funcs.Zero)
		if err != nil {
			return nil, nil, configErr("thrust_source", err)
		}
		return c, nil, nil
	case ThrustFile:
		parsed, err := eng.Parse(string(s))
		if err != nil {
			return nil, nil, err
		}
		c, err := funcs.NewFromPairs(parsed.Points, ip, funcs.Zero)
		if err != nil {
			return nil, nil, configErr("thrust_source", err)
		}
		return c, &parsed.Description, nil
	}
	return nil, nil, configErr("thrust_source", fmt.Errorf("%w: %T", ErrThrustSource, src))
}

// resolveWindow determines the burn window from an explicit request or,
// failing that, from the thrust curve's own sample domain.
func resolveWindow(thrust *funcs.Curve, explicit *Window) (Window, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if lo, hi, ok := thrust.Domain(); ok {
		return Window{lo, hi}, nil
	}
	return Window{}, configErr("burn_time", ErrBurnWindow)
}

// Reshape rescales a tabulated thrust curve to a new burn window and total
// impulse without altering its shape. The sample time axis is remapped
// affinely onto the window, then the thrust magnitudes are scaled uniformly
// so the integral over the new window equals totalImpulse. The input curve
// is not mutated.
func Reshape(thrust *funcs.Curve, window Window, totalImpulse float64) (*funcs.Curve, error) {
	if !thrust.Tabulated() {
		return nil, configErr("reshape", fmt.Errorf("%w: reshape needs a tabulated curve", ErrThrustSource))
	}
	if !window.valid() {
		return nil, configErr("reshape", fmt.Errorf("start %g must precede end %g", window.Start, window.End))
	}
	xs := thrust.Times()
	ys := thrust.Values()

	// Adjust scale, then origin.
	ratio := window.Duration() / (xs[len(xs)-1] - xs[0])
	for i := range xs {
		xs[i] *= ratio
	}
	shift := window.Start - xs[0]
	for i := range xs {
		xs[i] += shift
	}

	remapped, err := funcs.NewTabulated(xs, ys, thrust.Interpolation(), funcs.Zero)
	if err != nil {
		return nil, err
	}

	oldImpulse := remapped.Integral(window.Start, window.End)
	if oldImpulse == 0 {
		return nil, configErr("reshape", fmt.Errorf("thrust curve has zero impulse over (%g, %g)", window.Start, window.End))
	}
	scale := totalImpulse / oldImpulse
	for i := range ys {
		ys[i] *= scale
	}
	return funcs.NewTabulated(xs, ys, thrust.Interpolation(), funcs.Zero)
}

// RangeAdjustment records a burn window that had to be clamped to the
// thrust curve's sample domain. It is a recoverable correction, reported
// rather than failed on.
type RangeAdjustment struct {
	Requested Window
	Used      Window
}

func (ra *RangeAdjustment) String() string {
	return fmt.Sprintf(
		"burn window (%g, %g) is outside the thrust sample domain; using (%g, %g) instead",
		ra.Requested.Start, ra.Requested.End, ra.Used.Start, ra.Used.End)
}

// Clip truncates a tabulated thrust curve to the window. Window bounds
// beyond the curve's sample domain are clamped to it and reported through
// the returned RangeAdjustment (nil when no clamping occurred). Exact
// boundary samples are inserted by interpolation, so the clipped curve's
// domain equals the used window even when no original sample fell on it.
func Clip(thrust *funcs.Curve, window Window) (*funcs.Curve, *RangeAdjustment, error) {
	lo, hi, ok := thrust.Domain()
	if !ok {
		return nil, nil, configErr("burn_time", fmt.Errorf("%w: clip needs a tabulated curve", ErrThrustSource))
	}

	used := window
	if used.Start < lo {
		used.Start = lo
	}
	if used.End > hi {
		used.End = hi
	}
	var adj *RangeAdjustment
	if used != window {
		adj = &RangeAdjustment{Requested: window, Used: used}
	}

	xs := thrust.Times()
	ys := thrust.Values()
	cx := []float64{used.Start}
	cy := []float64{thrust.At(used.Start)}
	for i, x := range xs {
		if x > used.Start && x < used.End {
			cx = append(cx, x)
			cy = append(cy, ys[i])
		}
	}
	cx = append(cx, used.End)
	cy = append(cy, thrust.At(used.End))

	clipped, err := funcs.NewTabulated(cx, cy, thrust.Interpolation(), funcs.Zero)
	if err != nil {
		return nil, nil, err
	}
	return clipped, adj, nil
}
