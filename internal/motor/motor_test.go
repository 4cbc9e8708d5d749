package motor

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/motorsim/internal/funcs"
)

// testSpec is the constant-thrust reference motor: 1000 N for 2 s, 1 kg of
// structure, half a kilogram of propellant in a small cylindrical chamber.
func testSpec() GenericSpec {
	return GenericSpec{
		Spec: Spec{
			Thrust:          ConstantThrust(1000),
			DryMass:         1,
			DryInertia:      DiagonalInertia(1, 1, 0.1),
			CenterOfDryMass: 0,
			NozzleRadius:    0.05,
			Orientation:     NozzleToChamber,
			BurnWindow:      Span(0, 2),
		},
		ChamberRadius:   0.1,
		ChamberHeight:   0.5,
		ChamberPosition: 0.3,
		PropellantMass:  0.5,
	}
}

func TestConstantThrustScenario(t *testing.T) {
	gm := NewWithT(t)

	m, err := NewGeneric(testSpec())
	gm.Expect(err).NotTo(HaveOccurred())

	gm.Expect(m.TotalImpulse()).To(BeNumerically("~", 2000, 1e-9))
	gm.Expect(m.AverageThrust()).To(BeNumerically("~", 1000, 1e-9))
	gm.Expect(m.MaxThrust()).To(BeNumerically("~", 1000, 1e-9))
	gm.Expect(m.BurnDuration()).To(Equal(2.0))

	// Constant exhaust velocity: total impulse over propellant mass.
	gm.Expect(m.ExhaustVelocity().At(0)).To(BeNumerically("~", 4000, 1e-9))
	gm.Expect(m.ExhaustVelocity().At(1.7)).To(BeNumerically("~", 4000, 1e-9))

	// Propellant starts full and burns out completely.
	gm.Expect(m.PropellantMass().At(0)).To(BeNumerically("~", 0.5, 1e-12))
	gm.Expect(m.PropellantMass().At(2)).To(BeNumerically("~", 0, 1e-9))

	// Center of mass at ignition: (0.3*0.5 + 1*0) / 1.5.
	gm.Expect(m.CenterOfMass().At(0)).To(BeNumerically("~", 0.1, 1e-12))
	// At burnout only the dry structure is left.
	gm.Expect(m.CenterOfMass().At(2)).To(BeNumerically("~", 0, 1e-9))

	ratio, err := m.StructuralMassRatio()
	gm.Expect(err).NotTo(HaveOccurred())
	gm.Expect(ratio).To(BeNumerically("~", 1/1.5, 1e-12))
}

func TestTotalMassIdentity(t *testing.T) {
	m, err := NewGeneric(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	total := m.TotalMass()
	prop := m.PropellantMass()
	for _, x := range total.Times() {
		if diff := math.Abs(total.At(x) - (prop.At(x) + m.DryMass())); diff > 1e-12 {
			t.Errorf("total mass identity broken at t=%g by %g", x, diff)
		}
	}
}

func TestPropellantMassMonotone(t *testing.T) {
	m, err := NewGeneric(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	prop := m.PropellantMass()
	values := prop.Values()
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1]+1e-12 {
			t.Errorf("propellant mass increased between samples %d and %d", i-1, i)
		}
	}
}

func TestMassFlowRateSign(t *testing.T) {
	m, err := NewGeneric(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range m.MassFlowRate().Values() {
		if v > 0 {
			t.Errorf("mass flow rate positive while thrusting: %g", v)
		}
	}
}

func TestInertiaSymmetryAndComposition(t *testing.T) {
	gm := NewWithT(t)

	m, err := NewGeneric(testSpec())
	gm.Expect(err).NotTo(HaveOccurred())
	inertia := m.Inertia()

	for _, x := range []float64{0, 0.5, 1, 1.5, 2} {
		gm.Expect(inertia.I22.At(x)).To(BeNumerically("~", inertia.I11.At(x), 1e-12),
			"I22 must equal I11 at t=%g", x)
	}

	// At ignition: propellant term 0.5*(3*0.01+0.25)/12 shifted by
	// 0.5*(0.3-0.1)^2, dry term 1 shifted by 1*(0-0.1)^2.
	wantI11 := 0.5*(3*0.01+0.25)/12 + 0.5*0.04 + 1 + 0.01
	gm.Expect(inertia.I11.At(0)).To(BeNumerically("~", wantI11, 1e-9))

	// Axial component needs no offset correction.
	wantI33 := 0.5*0.01/2 + 0.1
	gm.Expect(inertia.I33.At(0)).To(BeNumerically("~", wantI33, 1e-9))

	// Products of inertia vanish for the symmetric cylinder plus a
	// diagonal dry tensor.
	for _, c := range []*funcs.Curve{inertia.I12, inertia.I13, inertia.I23} {
		gm.Expect(c.At(1)).To(BeNumerically("~", 0, 1e-12))
	}
}

func TestStructuralMassRatioZeroTotal(t *testing.T) {
	spec := testSpec()
	spec.DryMass = 0
	spec.PropellantMass = 0
	m, err := NewGeneric(spec)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.StructuralMassRatio(); !errors.Is(err, ErrZeroMass) {
		t.Errorf("got %v, want ErrZeroMass", err)
	}
}

func TestCallableSourceDiscretized(t *testing.T) {
	spec := testSpec()
	spec.Thrust = ThrustFunc(func(x float64) float64 { return 1000 * (1 - x/2) })
	m, err := NewGeneric(spec)
	if err != nil {
		t.Fatal(err)
	}
	if m.Thrust().Len() != discretizePoints {
		t.Errorf("Len() = %d, want %d", m.Thrust().Len(), discretizePoints)
	}
	if v := m.TotalImpulse(); math.Abs(v-1000) > 1e-9 {
		t.Errorf("TotalImpulse = %g, want 1000", v)
	}
}

func TestCallableSourceRequiresWindow(t *testing.T) {
	spec := testSpec()
	spec.BurnWindow = nil
	m, err := NewGeneric(spec)
	if m != nil || !errors.Is(err, ErrBurnWindow) {
		t.Errorf("got (%v, %v), want ErrBurnWindow", m, err)
	}
}

func TestInvalidOrientation(t *testing.T) {
	spec := testSpec()
	spec.Orientation = 0
	if _, err := NewGeneric(spec); !errors.Is(err, ErrOrientation) {
		t.Errorf("got %v, want ErrOrientation", err)
	}

	var ce *ConfigError
	_, err := NewGeneric(spec)
	if !errors.As(err, &ce) || ce.Field != "coordinate_system_orientation" {
		t.Errorf("error should identify the orientation field, got %v", err)
	}
}

func TestParseOrientation(t *testing.T) {
	o, err := ParseOrientation("combustion_chamber_to_nozzle")
	if err != nil || o != ChamberToNozzle {
		t.Errorf("got (%v, %v)", o, err)
	}
	if _, err := ParseOrientation("sideways"); !errors.Is(err, ErrOrientation) {
		t.Errorf("got %v, want ErrOrientation", err)
	}
}

func TestNozzleToCenterOfDryMassSign(t *testing.T) {
	spec := testSpec()
	spec.NozzlePosition = -0.2
	spec.CenterOfDryMass = 0.1

	m, err := NewGeneric(spec)
	if err != nil {
		t.Fatal(err)
	}
	if v := m.NozzleToCenterOfDryMass(); math.Abs(v-0.3) > 1e-12 {
		t.Errorf("nozzle-to-chamber offset = %g, want 0.3", v)
	}

	spec.Orientation = ChamberToNozzle
	m, err = NewGeneric(spec)
	if err != nil {
		t.Fatal(err)
	}
	if v := m.NozzleToCenterOfDryMass(); math.Abs(v+0.3) > 1e-12 {
		t.Errorf("chamber-to-nozzle offset = %g, want -0.3", v)
	}
}

func TestWindowClampReported(t *testing.T) {
	spec := testSpec()
	spec.Thrust = ThrustSamples{{0, 1000}, {1, 1000}, {2, 0}}
	spec.BurnWindow = Span(0, 5)

	m, err := NewGeneric(spec)
	if err != nil {
		t.Fatal(err)
	}
	adj := m.Adjustment()
	if adj == nil {
		t.Fatal("expected a range adjustment")
	}
	if adj.Used != (Window{0, 2}) {
		t.Errorf("used window = %+v, want (0, 2)", adj.Used)
	}
	if m.BurnOut() != 2 {
		t.Errorf("BurnOut() = %g, want 2", m.BurnOut())
	}
}

func TestReshapeThroughSpec(t *testing.T) {
	spec := testSpec()
	spec.Reshape = &ReshapeSpec{Window: Window{0, 4}, TotalImpulse: 4000}

	m, err := NewGeneric(spec)
	if err != nil {
		t.Fatal(err)
	}
	if m.BurnOut() != 4 {
		t.Errorf("BurnOut() = %g, want 4", m.BurnOut())
	}
	if v := m.TotalImpulse(); math.Abs(v-4000) > 1e-6 {
		t.Errorf("TotalImpulse = %g, want 4000", v)
	}
}
