// Package motor models the time-varying mass, center of mass, and inertia
// of a rocket motor burning propellant. The combined quantities are
// composed from a dry structural term and a propellant term supplied by a
// PropellantModel, summed about the instantaneous center of mass with the
// parallel-axis theorem.
package motor

import (
	"math"

	"github.com/san-kum/motorsim/internal/eng"
	"github.com/san-kum/motorsim/internal/funcs"
)

// PropellantModel supplies the propellant-side quantities a concrete motor
// variant knows about. Implementations are selected at construction; the
// Motor core derives everything else from these four hooks.
type PropellantModel interface {
	// ExhaustVelocity is the effective velocity of ejected mass in m/s.
	ExhaustVelocity() *funcs.Curve
	// InitialMass is the propellant mass at ignition in kg.
	InitialMass() float64
	// PropellantCenterOfMass is the propellant center of mass position in
	// m, in the motor's own coordinate frame.
	PropellantCenterOfMass() *funcs.Curve
	// PropellantInertia is the propellant inertia tensor about the
	// propellant's own instantaneous center of mass.
	PropellantInertia() InertiaCurves
}

// InertiaCurves holds the six time-varying components of an inertia tensor
// in kg·m².
type InertiaCurves struct {
	I11, I22, I33 *funcs.Curve
	I12, I13, I23 *funcs.Curve
}

// Motor is the abstract motor core. It owns the processed thrust curve, the
// resolved burn window, and every derived mass/inertia quantity. A Motor is
// immutable after construction; derived curves are computed once on first
// access and shared by reference thereafter.
type Motor struct {
	spec  Spec
	model PropellantModel

	thrust     *funcs.Curve
	burn       Window
	adjustment *RangeAdjustment

	totalImpulse  float64
	maxThrust     float64
	maxThrustTime float64
	averageThrust float64

	// lazily computed, single-threaded per the construction contract
	massFlow  *funcs.Curve
	propMass  *funcs.Curve
	totalMass *funcs.Curve
	com       *funcs.Curve
	inertia   *InertiaCurves
}

// newMotor validates the spec and runs the thrust pipeline: load, resolve
// the burn window, discretize analytic sources, reshape, clip, and derive
// the thrust metrics. The propellant model is bound afterwards by the
// concrete constructor.
func newMotor(spec Spec) (*Motor, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	thrust, desc, err := loadThrust(spec.Thrust, spec.Interpolation)
	if err != nil {
		return nil, err
	}

	if math.IsNaN(spec.DryMass) {
		if desc == nil {
			return nil, configErr("dry_mass", ErrDryMass)
		}
		spec.DryMass = desc.DryMass()
	}

	window, err := resolveWindow(thrust, spec.BurnWindow)
	if err != nil {
		return nil, err
	}
	if !thrust.Tabulated() {
		thrust, err = thrust.Discretize(window.Start, window.End, discretizePoints, spec.Interpolation, funcs.Zero)
		if err != nil {
			return nil, err
		}
	}

	if spec.Reshape != nil {
		thrust, err = Reshape(thrust, spec.Reshape.Window, spec.Reshape.TotalImpulse)
		if err != nil {
			return nil, err
		}
		lo, hi, _ := thrust.Domain()
		window = Window{lo, hi}
	}

	thrust, adjustment, err := Clip(thrust, window)
	if err != nil {
		return nil, err
	}
	if adjustment != nil {
		window = adjustment.Used
	}
	thrust = thrust.WithLabels("Time (s)", "Thrust (N)")

	m := &Motor{
		spec:       spec,
		thrust:     thrust,
		burn:       window,
		adjustment: adjustment,
	}
	m.totalImpulse = thrust.Integral(window.Start, window.End)
	m.maxThrustTime, m.maxThrust = thrust.ArgMax()
	m.averageThrust = m.totalImpulse / window.Duration()
	return m, nil
}

// Thrust returns the processed thrust curve, clipped to the burn window and
// extrapolated to zero outside it.
func (m *Motor) Thrust() *funcs.Curve { return m.thrust }

// Spec returns a copy of the resolved immutable configuration.
func (m *Motor) Spec() Spec { return m.spec }

// BurnWindow returns the resolved (start, end) burn interval.
func (m *Motor) BurnWindow() Window { return m.burn }

func (m *Motor) BurnStart() float64    { return m.burn.Start }
func (m *Motor) BurnOut() float64      { return m.burn.End }
func (m *Motor) BurnDuration() float64 { return m.burn.Duration() }

// Adjustment reports the burn-window clamp applied during clipping, nil if
// the requested window fit the thrust samples.
func (m *Motor) Adjustment() *RangeAdjustment { return m.adjustment }

// TotalImpulse is the integral of thrust over the burn window in N·s.
func (m *Motor) TotalImpulse() float64 { return m.totalImpulse }

// MaxThrust is the largest thrust sample in N.
func (m *Motor) MaxThrust() float64 { return m.maxThrust }

// MaxThrustTime is the time of the largest thrust sample in s.
func (m *Motor) MaxThrustTime() float64 { return m.maxThrustTime }

// AverageThrust is total impulse over burn duration, in N.
func (m *Motor) AverageThrust() float64 { return m.averageThrust }

// DryMass is the structural mass in kg, resolved at construction.
func (m *Motor) DryMass() float64 { return m.spec.DryMass }

// Orientation is the resolved axis sign convention.
func (m *Motor) Orientation() Orientation { return m.spec.Orientation }

// NozzleToCenterOfDryMass is the signed axial displacement from the nozzle
// outlet to the dry center of mass, positive in the orientation's
// direction.
func (m *Motor) NozzleToCenterOfDryMass() float64 {
	return (m.spec.CenterOfDryMass - m.spec.NozzlePosition) * float64(m.spec.Orientation)
}

// MassFlowRate is the time derivative of propellant mass in kg/s, the
// opposite of thrust over the average exhaust velocity. It is non-positive
// wherever thrust is non-negative.
func (m *Motor) MassFlowRate() *funcs.Curve {
	if m.massFlow == nil {
		ve := m.totalImpulse / m.model.InitialMass()
		m.massFlow = m.thrust.Scale(-1 / ve).WithLabels("Time (s)", "Mass flow rate (kg/s)")
	}
	return m.massFlow
}

// PropellantMass is the remaining propellant mass in kg, monotonically
// non-increasing, equal to the initial mass at burn start.
func (m *Motor) PropellantMass() *funcs.Curve {
	if m.propMass == nil {
		burnt, err := m.MassFlowRate().Antiderivative()
		if err != nil {
			// the mass flow curve is always tabulated here
			panic(err)
		}
		m.propMass = burnt.AddScalar(m.model.InitialMass()).WithLabels("Time (s)", "Propellant mass (kg)")
	}
	return m.propMass
}

// TotalMass is propellant mass plus dry mass, in kg.
func (m *Motor) TotalMass() *funcs.Curve {
	if m.totalMass == nil {
		m.totalMass = m.PropellantMass().AddScalar(m.spec.DryMass).WithLabels("Time (s)", "Total mass (kg)")
	}
	return m.totalMass
}

// CenterOfMass is the mass-weighted average of the propellant and dry
// center positions, in m. It lies between the two whenever both masses are
// non-negative.
func (m *Motor) CenterOfMass() *funcs.Curve {
	if m.com == nil {
		balance := m.model.PropellantCenterOfMass().Mul(m.PropellantMass()).
			Add(funcs.NewConstant(m.spec.DryMass * m.spec.CenterOfDryMass))
		m.com = balance.Div(m.TotalMass()).WithLabels("Time (s)", "Center of mass (m)")
	}
	return m.com
}

// StructuralMassRatio is dry mass over total initial mass. It fails when
// the motor has no mass at all.
func (m *Motor) StructuralMassRatio() (float64, error) {
	total := m.spec.DryMass + m.model.InitialMass()
	if total == 0 {
		return 0, configErr("dry_mass", ErrZeroMass)
	}
	return m.spec.DryMass / total, nil
}

// parallelAxis shifts a moment of inertia from a component's own center of
// mass to a parallel axis offset away: I' = I + m·d².
func parallelAxis(moment, mass, offset *funcs.Curve) *funcs.Curve {
	return moment.Add(offset.Mul(offset).Mul(mass))
}

// Inertia is the combined motor inertia tensor about the instantaneous
// center of mass. The propellant and dry terms are each shifted from their
// own centers to the common center of mass before summing. Both centers
// move only along the symmetry axis, so only the transverse components
// need the offset-squared correction: the axial and product components are
// plain sums, and I22 is identically I11.
func (m *Motor) Inertia() InertiaCurves {
	if m.inertia == nil {
		prop := m.model.PropellantInertia()
		com := m.CenterOfMass()
		propOffset := m.model.PropellantCenterOfMass().Sub(com)
		dryOffset := funcs.NewConstant(m.spec.CenterOfDryMass).Sub(com)
		dryMass := funcs.NewConstant(m.spec.DryMass)

		i11 := parallelAxis(prop.I11, m.PropellantMass(), propOffset).
			Add(parallelAxis(funcs.NewConstant(m.spec.DryInertia.I11), dryMass, dryOffset)).
			WithLabels("Time (s)", "Inertia I11 (kg m^2)")

		m.inertia = &InertiaCurves{
			I11: i11,
			I22: i11.WithLabels("Time (s)", "Inertia I22 (kg m^2)"),
			I33: prop.I33.AddScalar(m.spec.DryInertia.I33).WithLabels("Time (s)", "Inertia I33 (kg m^2)"),
			I12: prop.I12.AddScalar(m.spec.DryInertia.I12).WithLabels("Time (s)", "Inertia I12 (kg m^2)"),
			I13: prop.I13.AddScalar(m.spec.DryInertia.I13).WithLabels("Time (s)", "Inertia I13 (kg m^2)"),
			I23: prop.I23.AddScalar(m.spec.DryInertia.I23).WithLabels("Time (s)", "Inertia I23 (kg m^2)"),
		}
	}
	return *m.inertia
}

// description assembles a .eng description line from the given geometry.
func description(name string, chamberRadius, chamberHeight, propellantMass, totalMass float64) eng.Description {
	return eng.Description{
		Name:           name,
		DiameterMM:     2 * chamberRadius * 1000,
		LengthMM:       chamberHeight * 1000,
		Delay:          "0",
		PropellantMass: propellantMass,
		TotalMass:      totalMass,
		Manufacturer:   "motorsim",
	}
}
