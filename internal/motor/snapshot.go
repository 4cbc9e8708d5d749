package motor

import (
	"fmt"
	"math"

	"github.com/san-kum/motorsim/internal/funcs"
)

// Snapshot is the serialization boundary for the wider simulation: every
// spec field under its canonical name, plus optional derived outputs. It is
// the document persisted by the config package and exchanged with other
// tools.
type Snapshot struct {
	Model string `yaml:"model" json:"model"`

	ThrustSource    [][2]float64 `yaml:"thrust_source" json:"thrust_source"`
	DryMass         *float64     `yaml:"dry_mass" json:"dry_mass"`
	DryInertia      []float64    `yaml:"dry_inertia" json:"dry_inertia"`
	CenterOfDryMass *float64     `yaml:"center_of_dry_mass_position" json:"center_of_dry_mass_position"`
	NozzleRadius    float64      `yaml:"nozzle_radius" json:"nozzle_radius"`
	NozzlePosition  float64      `yaml:"nozzle_position" json:"nozzle_position"`
	Orientation     string       `yaml:"coordinate_system_orientation" json:"coordinate_system_orientation"`
	BurnTime        []float64    `yaml:"burn_time,omitempty" json:"burn_time,omitempty"`
	Interpolation   string       `yaml:"interpolation_method" json:"interpolation_method"`

	ChamberRadius   float64 `yaml:"chamber_radius" json:"chamber_radius"`
	ChamberHeight   float64 `yaml:"chamber_height" json:"chamber_height"`
	ChamberPosition float64 `yaml:"chamber_position" json:"chamber_position"`
	PropellantMass  float64 `yaml:"propellant_initial_mass" json:"propellant_initial_mass"`

	Reshape *ReshapeSnapshot `yaml:"reshape_thrust_curve,omitempty" json:"reshape_thrust_curve,omitempty"`

	Outputs *Outputs `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// ReshapeSnapshot asks for the thrust curve to be rescaled to a new burn
// window and total impulse before clipping. BurnTime follows the usual
// shorthand: one value means (0, value).
type ReshapeSnapshot struct {
	BurnTime     []float64 `yaml:"burn_time" json:"burn_time"`
	TotalImpulse float64   `yaml:"total_impulse" json:"total_impulse"`
}

// Outputs carries the scalar derived quantities of a constructed motor.
// Time-varying outputs are exported as sampled curves by the store package
// instead.
type Outputs struct {
	TotalImpulse        float64 `yaml:"total_impulse" json:"total_impulse"`
	MaxThrust           float64 `yaml:"max_thrust" json:"max_thrust"`
	MaxThrustTime       float64 `yaml:"max_thrust_time" json:"max_thrust_time"`
	AverageThrust       float64 `yaml:"average_thrust" json:"average_thrust"`
	BurnStartTime       float64 `yaml:"burn_start_time" json:"burn_start_time"`
	BurnOutTime         float64 `yaml:"burn_out_time" json:"burn_out_time"`
	BurnDuration        float64 `yaml:"burn_duration" json:"burn_duration"`
	ExhaustVelocity     float64 `yaml:"exhaust_velocity" json:"exhaust_velocity"`
	StructuralMassRatio float64 `yaml:"structural_mass_ratio" json:"structural_mass_ratio"`
}

// Snapshot captures the motor's resolved configuration. With outputs
// enabled the scalar derived quantities are included as well.
func (g *Generic) Snapshot(includeOutputs bool) (*Snapshot, error) {
	xs := g.thrust.Times()
	ys := g.thrust.Values()
	source := make([][2]float64, len(xs))
	for i := range xs {
		source[i] = [2]float64{xs[i], ys[i]}
	}

	dryMass := g.spec.DryMass
	cdm := g.spec.CenterOfDryMass
	ti := g.spec.DryInertia
	s := &Snapshot{
		Model:           "generic",
		ThrustSource:    source,
		DryMass:         &dryMass,
		DryInertia:      []float64{ti.I11, ti.I22, ti.I33, ti.I12, ti.I13, ti.I23},
		CenterOfDryMass: &cdm,
		NozzleRadius:    g.spec.NozzleRadius,
		NozzlePosition:  g.spec.NozzlePosition,
		Orientation:     g.spec.Orientation.String(),
		BurnTime:        []float64{g.burn.Start, g.burn.End},
		Interpolation:   g.spec.Interpolation.String(),
		ChamberRadius:   g.chamberRadius,
		ChamberHeight:   g.chamberHeight,
		ChamberPosition: g.chamberPosition,
		PropellantMass:  g.initialMass,
	}

	if includeOutputs {
		ratio, err := g.StructuralMassRatio()
		if err != nil {
			return nil, err
		}
		s.Outputs = &Outputs{
			TotalImpulse:        g.TotalImpulse(),
			MaxThrust:           g.MaxThrust(),
			MaxThrustTime:       g.MaxThrustTime(),
			AverageThrust:       g.AverageThrust(),
			BurnStartTime:       g.BurnStart(),
			BurnOutTime:         g.BurnOut(),
			BurnDuration:        g.BurnDuration(),
			ExhaustVelocity:     g.ExhaustVelocity().At(g.BurnStart()),
			StructuralMassRatio: ratio,
		}
	}
	return s, nil
}

// builders maps model names to snapshot constructors. Motor variants are
// tagged implementations selected here, not inheritance chains.
var builders = map[string]func(*Snapshot) (*Generic, error){
	"generic": buildGeneric,
}

// Models lists the registered propellant model names.
func Models() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	return names
}

// FromSnapshot reconstructs a motor from a snapshot through the model
// registry. An empty model name means "generic".
func FromSnapshot(s *Snapshot) (*Generic, error) {
	name := s.Model
	if name == "" {
		name = "generic"
	}
	build, ok := builders[name]
	if !ok {
		return nil, configErr("model", fmt.Errorf("%w: %q", ErrUnknownModel, name))
	}
	return build(s)
}

func buildGeneric(s *Snapshot) (*Generic, error) {
	orientation, err := ParseOrientation(s.Orientation)
	if err != nil {
		return nil, err
	}
	interpolation, err := funcs.ParseInterpolation(s.Interpolation)
	if err != nil {
		return nil, configErr("interpolation_method", err)
	}
	inertia, err := inertiaFromSlice(s.DryInertia)
	if err != nil {
		return nil, err
	}

	window, err := windowFromSlice(s.BurnTime)
	if err != nil {
		return nil, err
	}

	var reshape *ReshapeSpec
	if s.Reshape != nil {
		rw, err := windowFromSlice(s.Reshape.BurnTime)
		if err != nil {
			return nil, err
		}
		if rw == nil {
			return nil, configErr("reshape_thrust_curve", fmt.Errorf("burn_time required"))
		}
		reshape = &ReshapeSpec{Window: *rw, TotalImpulse: s.Reshape.TotalImpulse}
	}

	dryMass := math.NaN()
	if s.DryMass != nil {
		dryMass = *s.DryMass
	}
	cdm := math.NaN()
	if s.CenterOfDryMass != nil {
		cdm = *s.CenterOfDryMass
	}

	return NewGeneric(GenericSpec{
		Spec: Spec{
			Thrust:          ThrustSamples(s.ThrustSource),
			DryMass:         dryMass,
			DryInertia:      inertia,
			CenterOfDryMass: cdm,
			NozzleRadius:    s.NozzleRadius,
			NozzlePosition:  s.NozzlePosition,
			Orientation:     orientation,
			BurnWindow:      window,
			Reshape:         reshape,
			Interpolation:   interpolation,
		},
		ChamberRadius:   s.ChamberRadius,
		ChamberHeight:   s.ChamberHeight,
		ChamberPosition: s.ChamberPosition,
		PropellantMass:  s.PropellantMass,
	})
}

// windowFromSlice accepts the empty, scalar, and (start, end) burn-time
// shorthands.
func windowFromSlice(v []float64) (*Window, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case 1:
		return Until(v[0]), nil
	case 2:
		return Span(v[0], v[1]), nil
	}
	return nil, configErr("burn_time", fmt.Errorf("expected at most 2 values, got %d", len(v)))
}

// inertiaFromSlice accepts the 3-component diagonal shorthand or the full
// 6-component form.
func inertiaFromSlice(v []float64) (InertiaTensor, error) {
	switch len(v) {
	case 0:
		return InertiaTensor{}, nil
	case 3:
		return DiagonalInertia(v[0], v[1], v[2]), nil
	case 6:
		return InertiaTensor{v[0], v[1], v[2], v[3], v[4], v[5]}, nil
	}
	return InertiaTensor{}, configErr("dry_inertia", fmt.Errorf("expected 3 or 6 components, got %d", len(v)))
}
