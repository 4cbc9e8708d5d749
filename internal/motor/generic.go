package motor

import (
	"fmt"
	"io"
	"math"

	"github.com/san-kum/motorsim/internal/eng"
	"github.com/san-kum/motorsim/internal/funcs"
)

// Fraction of the chamber radius used as the nozzle radius when a .eng file
// supplies no nozzle geometry.
const defaultNozzleRadiusRatio = 0.85

// GenericSpec configures a Generic motor: the shared Spec plus a rough
// cylindrical propellant chamber.
//
// CenterOfDryMass set to NaN defaults to the chamber position.
type GenericSpec struct {
	Spec

	ChamberRadius   float64 // m
	ChamberHeight   float64 // m
	ChamberPosition float64 // m, chamber centroid along the symmetry axis

	PropellantMass float64 // kg, at ignition
}

// Generic approximates the propellant as a fixed right circular cylinder
// with a constant effective exhaust velocity. The propellant center of mass
// does not move in this model; for grain regression or tank draining use a
// dedicated motor variant.
type Generic struct {
	*Motor

	chamberRadius   float64
	chamberHeight   float64
	chamberPosition float64
	initialMass     float64

	exhaust *funcs.Curve
}

// NewGeneric builds a Generic motor from the spec.
func NewGeneric(spec GenericSpec) (*Generic, error) {
	if math.IsNaN(spec.CenterOfDryMass) {
		spec.Spec.CenterOfDryMass = spec.ChamberPosition
	}
	m, err := newMotor(spec.Spec)
	if err != nil {
		return nil, err
	}
	g := &Generic{
		Motor:           m,
		chamberRadius:   spec.ChamberRadius,
		chamberHeight:   spec.ChamberHeight,
		chamberPosition: spec.ChamberPosition,
		initialMass:     spec.PropellantMass,
	}
	m.model = g
	return g, nil
}

func (g *Generic) ChamberRadius() float64   { return g.chamberRadius }
func (g *Generic) ChamberHeight() float64   { return g.chamberHeight }
func (g *Generic) ChamberPosition() float64 { return g.chamberPosition }

// InitialMass implements PropellantModel.
func (g *Generic) InitialMass() float64 { return g.initialMass }

// ExhaustVelocity implements PropellantModel. It is the constant total
// impulse over initial propellant mass, discretized onto the thrust curve's
// own sample grid.
func (g *Generic) ExhaustVelocity() *funcs.Curve {
	if g.exhaust == nil {
		ve := g.TotalImpulse() / g.initialMass
		c, err := funcs.NewConstant(ve).DiscretizeLike(g.Thrust())
		if err != nil {
			// the processed thrust curve is always tabulated
			panic(err)
		}
		g.exhaust = c.WithLabels("Time (s)", "Exhaust velocity (m/s)")
	}
	return g.exhaust
}

// PropellantCenterOfMass implements PropellantModel. The propellant center
// is fixed at the chamber centroid.
func (g *Generic) PropellantCenterOfMass() *funcs.Curve {
	return funcs.NewConstant(g.chamberPosition).WithLabels("Time (s)", "Propellant center of mass (m)")
}

// PropellantInertia implements PropellantModel with solid-cylinder moments
// about the chamber centroid. All products of inertia vanish by symmetry.
func (g *Generic) PropellantInertia() InertiaCurves {
	pm := g.PropellantMass()
	r, h := g.chamberRadius, g.chamberHeight
	zero := funcs.NewConstant(0)
	return InertiaCurves{
		I11: pm.Scale((3*r*r + h*h) / 12),
		I22: pm.Scale((3*r*r + h*h) / 12),
		I33: pm.Scale(r * r / 2),
		I12: zero,
		I13: zero,
		I23: zero,
	}
}

// ENGOptions overrides quantities a .eng file either lacks or estimates.
// Zero-valued geometry and mass fields are filled from the file
// description; DryMass NaN or zero derives total minus propellant.
type ENGOptions struct {
	NozzleRadius    float64 // 0 → 0.85 × chamber radius
	NozzlePosition  float64
	ChamberRadius   float64 // 0 → description diameter / 2
	ChamberHeight   float64 // 0 → description length
	ChamberPosition float64
	PropellantMass  float64 // 0 → description propellant mass
	DryMass         float64 // 0 or NaN → description total − propellant
	CenterOfDryMass float64 // NaN → chamber position
	DryInertia      InertiaTensor
	BurnWindow      *Window
	Reshape         *ReshapeSpec
	Orientation     Orientation // 0 → NozzleToChamber
	Interpolation   funcs.Interpolation
}

// LoadENG builds a Generic motor from a RASP .eng file, filling any option
// left at its zero value from the file's description line.
func LoadENG(path string, opts ENGOptions) (*Generic, error) {
	parsed, err := eng.Parse(path)
	if err != nil {
		return nil, err
	}
	d := parsed.Description

	chamberRadius := opts.ChamberRadius
	if chamberRadius == 0 {
		chamberRadius = d.DiameterMM / 2 / 1000
	}
	chamberHeight := opts.ChamberHeight
	if chamberHeight == 0 {
		chamberHeight = d.LengthMM / 1000
	}
	propellantMass := opts.PropellantMass
	if propellantMass == 0 {
		propellantMass = d.PropellantMass
	}
	dryMass := opts.DryMass
	if dryMass == 0 || math.IsNaN(dryMass) {
		dryMass = d.TotalMass - propellantMass
	}
	nozzleRadius := opts.NozzleRadius
	if nozzleRadius == 0 {
		nozzleRadius = defaultNozzleRadiusRatio * chamberRadius
	}
	orientation := opts.Orientation
	if orientation == 0 {
		orientation = NozzleToChamber
	}

	return NewGeneric(GenericSpec{
		Spec: Spec{
			Thrust:          ThrustSamples(parsed.Points),
			DryMass:         dryMass,
			DryInertia:      opts.DryInertia,
			CenterOfDryMass: opts.CenterOfDryMass,
			NozzleRadius:    nozzleRadius,
			NozzlePosition:  opts.NozzlePosition,
			Orientation:     orientation,
			BurnWindow:      opts.BurnWindow,
			Reshape:         opts.Reshape,
			Interpolation:   opts.Interpolation,
		},
		ChamberRadius:   chamberRadius,
		ChamberHeight:   chamberHeight,
		ChamberPosition: opts.ChamberPosition,
		PropellantMass:  propellantMass,
	})
}

// ExportENG writes the motor to w in .eng format. The description line is
// computed from the chamber geometry; missing reports true when geometry
// was unavailable and zeros were substituted, a recoverable condition the
// caller may want to surface.
func (g *Generic) ExportENG(w io.Writer, name string) (missing bool, err error) {
	missing = g.chamberRadius == 0 || g.chamberHeight == 0
	d := description(name, g.chamberRadius, g.chamberHeight, g.initialMass, g.spec.DryMass+g.initialMass)

	xs := g.thrust.Times()
	ys := g.thrust.Values()
	points := make([][2]float64, len(xs))
	for i := range xs {
		points[i] = [2]float64{xs[i], ys[i]}
	}
	if err := eng.Write(w, d, points); err != nil {
		return missing, fmt.Errorf("motor: exporting %s: %w", name, err)
	}
	return missing, nil
}
