package motor

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/motorsim/internal/funcs"
)

func triangle(t *testing.T) *funcs.Curve {
	t.Helper()
	c, err := funcs.NewFromPairs([][2]float64{{0, 0}, {1, 100}, {2, 0}}, funcs.Linear, funcs.Zero)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestResolveWindowFromSamples(t *testing.T) {
	w, err := resolveWindow(triangle(t), nil)
	if err != nil {
		t.Fatalf("resolveWindow: %v", err)
	}
	if w != (Window{0, 2}) {
		t.Errorf("window = %+v, want (0, 2)", w)
	}
}

func TestResolveWindowExplicitWins(t *testing.T) {
	w, err := resolveWindow(triangle(t), Span(0.5, 1.5))
	if err != nil {
		t.Fatalf("resolveWindow: %v", err)
	}
	if w != (Window{0.5, 1.5}) {
		t.Errorf("window = %+v, want (0.5, 1.5)", w)
	}
}

func TestResolveWindowRequiresSamples(t *testing.T) {
	if _, err := resolveWindow(funcs.NewConstant(100), nil); !errors.Is(err, ErrBurnWindow) {
		t.Errorf("got %v, want ErrBurnWindow", err)
	}
}

func TestUntilShorthand(t *testing.T) {
	if w := Until(3); *w != (Window{0, 3}) {
		t.Errorf("Until(3) = %+v, want (0, 3)", *w)
	}
}

func TestReshapeIdentity(t *testing.T) {
	thrust := triangle(t)
	orig := thrust.Integral(0, 2)

	reshaped, err := Reshape(thrust, Window{0, 2}, orig)
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	if v := reshaped.Integral(0, 2); math.Abs(v-orig) > 1e-9 {
		t.Errorf("identity reshape integral = %g, want %g", v, orig)
	}
	for i, x := range reshaped.Times() {
		if want := thrust.Times()[i]; math.Abs(x-want) > 1e-12 {
			t.Errorf("time %d = %g, want %g", i, x, want)
		}
	}
}

func TestReshapeScalesImpulseAndWindow(t *testing.T) {
	thrust := triangle(t)

	reshaped, err := Reshape(thrust, Window{1, 5}, 300)
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	lo, hi, _ := reshaped.Domain()
	if lo != 1 || hi != 5 {
		t.Errorf("domain = (%g, %g), want (1, 5)", lo, hi)
	}
	if v := reshaped.Integral(1, 5); math.Abs(v-300) > 1e-9 {
		t.Errorf("integral = %g, want 300", v)
	}
	// Shape is preserved: the peak stays in the middle of the window.
	if x, _ := reshaped.ArgMax(); math.Abs(x-3) > 1e-12 {
		t.Errorf("peak at %g, want 3", x)
	}
}

func TestReshapeDoesNotMutateInput(t *testing.T) {
	thrust := triangle(t)
	if _, err := Reshape(thrust, Window{0, 10}, 12345); err != nil {
		t.Fatal(err)
	}
	if lo, hi, _ := thrust.Domain(); lo != 0 || hi != 2 {
		t.Errorf("input domain changed to (%g, %g)", lo, hi)
	}
	if v := thrust.At(1); v != 100 {
		t.Errorf("input values changed: At(1) = %g", v)
	}
}

func TestClipExactBoundaries(t *testing.T) {
	thrust := triangle(t)

	clipped, adj, err := Clip(thrust, Window{0.5, 1.5})
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	if adj != nil {
		t.Errorf("unexpected adjustment: %v", adj)
	}
	lo, hi, _ := clipped.Domain()
	if lo != 0.5 || hi != 1.5 {
		t.Errorf("domain = (%g, %g), want exactly (0.5, 1.5)", lo, hi)
	}
	// Boundary samples come from interpolation.
	if v := clipped.At(0.5); math.Abs(v-50) > 1e-12 {
		t.Errorf("At(0.5) = %g, want 50", v)
	}
	if v := clipped.At(1.5); math.Abs(v-50) > 1e-12 {
		t.Errorf("At(1.5) = %g, want 50", v)
	}
}

func TestClipClampsToDomain(t *testing.T) {
	thrust := triangle(t)

	clipped, adj, err := Clip(thrust, Window{-1, 10})
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	if adj == nil {
		t.Fatal("expected a range adjustment")
	}
	if adj.Requested != (Window{-1, 10}) || adj.Used != (Window{0, 2}) {
		t.Errorf("adjustment = %+v", adj)
	}
	lo, hi, _ := clipped.Domain()
	if lo != 0 || hi != 2 {
		t.Errorf("domain = (%g, %g), want (0, 2)", lo, hi)
	}
}

func TestClipPreservesInteriorSamples(t *testing.T) {
	thrust := triangle(t)
	clipped, _, err := Clip(thrust, Window{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if clipped.Len() != thrust.Len() {
		t.Errorf("Len() = %d, want %d", clipped.Len(), thrust.Len())
	}
	if v := clipped.At(1); v != 100 {
		t.Errorf("At(1) = %g, want 100", v)
	}
}
