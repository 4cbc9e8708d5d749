package motor

import (
	"fmt"
	"math"

	"github.com/san-kum/motorsim/internal/funcs"
)

// Orientation fixes the sign convention along the motor's symmetry axis.
// Its value is the sign applied whenever a spatial offset is interpreted as
// a signed displacement along the axis, resolved once at construction.
type Orientation int

const (
	// NozzleToChamber points the positive axis from the nozzle outlet
	// toward the combustion chamber.
	NozzleToChamber Orientation = 1
	// ChamberToNozzle points the positive axis from the combustion
	// chamber toward the nozzle outlet.
	ChamberToNozzle Orientation = -1
)

func (o Orientation) String() string {
	switch o {
	case NozzleToChamber:
		return "nozzle_to_combustion_chamber"
	case ChamberToNozzle:
		return "combustion_chamber_to_nozzle"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation maps a config string to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "nozzle_to_combustion_chamber":
		return NozzleToChamber, nil
	case "combustion_chamber_to_nozzle":
		return ChamberToNozzle, nil
	}
	return 0, configErr("coordinate_system_orientation", fmt.Errorf("%w: %q", ErrOrientation, s))
}

// Window is a (start, end) burn time interval in seconds.
type Window struct {
	Start float64
	End   float64
}

// Until is the scalar burn-time shorthand: a single value v means (0, v).
func Until(end float64) *Window { return &Window{0, end} }

// Span returns a pointer to the window (start, end).
func Span(start, end float64) *Window { return &Window{start, end} }

func (w Window) Duration() float64 { return w.End - w.Start }

func (w Window) valid() bool { return w.Start < w.End }

// InertiaTensor holds the six independent components of a symmetric inertia
// tensor about a stated reference point, in kg·m². The 1 and 2 axes are
// perpendicular to the motor's symmetry axis; 3 is the symmetry axis.
type InertiaTensor struct {
	I11, I22, I33 float64
	I12, I13, I23 float64
}

// DiagonalInertia builds a tensor from the three principal moments, with
// all products of inertia zero.
func DiagonalInertia(i11, i22, i33 float64) InertiaTensor {
	return InertiaTensor{I11: i11, I22: i22, I33: i33}
}

// ThrustSource is the raw thrust input accepted at construction: a constant
// force, an analytic callable, a sampled curve, or a path to a .eng file.
type ThrustSource interface {
	thrustSource()
}

// ConstantThrust is a constant force in Newtons.
type ConstantThrust float64

// ThrustFunc maps time in seconds to force in Newtons.
type ThrustFunc func(t float64) float64

// ThrustSamples is a tabulated (time, thrust) curve.
type ThrustSamples [][2]float64

// ThrustFile is a path to a RASP .eng motor file.
type ThrustFile string

func (ConstantThrust) thrustSource() {}
func (ThrustFunc) thrustSource()     {}
func (ThrustSamples) thrustSource()  {}
func (ThrustFile) thrustSource()     {}

// ReshapeSpec rescales a thrust curve to a new burn window and total
// impulse while preserving its shape.
type ReshapeSpec struct {
	Window       Window
	TotalImpulse float64 // N·s
}

// Spec is the immutable motor configuration. Motors never mutate their spec
// after construction; every derived quantity is a pure function of it.
//
// DryMass set to NaN means "derive from the .eng description", which is
// only possible when Thrust is a ThrustFile.
type Spec struct {
	Thrust ThrustSource

	DryMass         float64       // kg, structure only
	DryInertia      InertiaTensor // about CenterOfDryMass
	CenterOfDryMass float64       // m, along the symmetry axis

	NozzleRadius   float64 // m
	NozzlePosition float64 // m

	Orientation Orientation

	// BurnWindow is the explicit ignition/burnout window. Nil means
	// resolve from the thrust samples, which fails for analytic sources.
	BurnWindow *Window

	// Reshape, when non-nil, rescales the thrust curve before clipping.
	Reshape *ReshapeSpec

	Interpolation funcs.Interpolation
}

func (s *Spec) validate() error {
	if s.Thrust == nil {
		return configErr("thrust_source", ErrThrustSource)
	}
	if s.Orientation != NozzleToChamber && s.Orientation != ChamberToNozzle {
		return configErr("coordinate_system_orientation", fmt.Errorf("%w: %d", ErrOrientation, int(s.Orientation)))
	}
	if s.BurnWindow != nil && !s.BurnWindow.valid() {
		return configErr("burn_time", fmt.Errorf("start %g must precede end %g", s.BurnWindow.Start, s.BurnWindow.End))
	}
	if math.IsInf(s.DryMass, 0) || s.DryMass < 0 {
		return configErr("dry_mass", fmt.Errorf("%w: %g", ErrDryMass, s.DryMass))
	}
	return nil
}
