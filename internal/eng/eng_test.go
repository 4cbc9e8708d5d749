package eng

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `; AeroTech L850W
; converted from TMT test stand data
L850W 75 757 0 1.897 3.737 AT
   0.065 907.2
   0.5   932.1
   1.5   895.3
   2.5   863.7
   3.15  0.0
`

func TestParseReader(t *testing.T) {
	f, err := ParseReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}

	if len(f.Comments) != 2 {
		t.Errorf("got %d comments, want 2", len(f.Comments))
	}
	d := f.Description
	if d.Name != "L850W" || d.Manufacturer != "AT" {
		t.Errorf("description = %+v", d)
	}
	if d.DiameterMM != 75 || d.LengthMM != 757 {
		t.Errorf("geometry = %g x %g, want 75 x 757", d.DiameterMM, d.LengthMM)
	}
	if d.PropellantMass != 1.897 || d.TotalMass != 3.737 {
		t.Errorf("masses = %g / %g", d.PropellantMass, d.TotalMass)
	}
	if want := 3.737 - 1.897; math.Abs(d.DryMass()-want) > 1e-12 {
		t.Errorf("DryMass() = %g, want %g", d.DryMass(), want)
	}

	// 5 data lines plus the implicit ignition point.
	if len(f.Points) != 6 {
		t.Fatalf("got %d points, want 6", len(f.Points))
	}
	if f.Points[0] != [2]float64{0, 0} {
		t.Errorf("first point = %v, want (0, 0)", f.Points[0])
	}
	if f.Points[1] != [2]float64{0.065, 907.2} {
		t.Errorf("second point = %v", f.Points[1])
	}
	if f.Points[5] != [2]float64{3.15, 0} {
		t.Errorf("last point = %v", f.Points[5])
	}
}

func TestParseInlineComment(t *testing.T) {
	content := "M1 20 100 0 0.5 1.0 X ; trailing note\n1.0 50\n2.0 0\n"
	f, err := ParseReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if f.Description.Manufacturer != "X" {
		t.Errorf("manufacturer = %q, want X (comment not stripped?)", f.Description.Manufacturer)
	}
	if len(f.Comments) != 1 {
		t.Errorf("got %d comments, want 1", len(f.Comments))
	}
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"short description": "M1 20\n1.0 50\n",
		"bad sample line":   "M1 20 100 0 0.5 1.0 X\nno numbers here\n",
		"no samples":        "M1 20 100 0 0.5 1.0 X\n",
		"empty":             "",
	}
	for name, content := range cases {
		if _, err := ParseReader(strings.NewReader(content)); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: got %v, want ErrMalformed", name, err)
		}
	}
}

func TestParseExtensionCheck(t *testing.T) {
	if _, err := Parse("motor.txt"); !errors.Is(err, ErrExtension) {
		t.Errorf("got %v, want ErrExtension", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.eng")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Points) != 6 {
		t.Errorf("got %d points, want 6", len(f.Points))
	}
}

func TestWriteRoundTrip(t *testing.T) {
	orig, err := ParseReader(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, orig.Description, orig.Points); err != nil {
		t.Fatalf("Write: %v", err)
	}

	again, err := ParseReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(again.Points) != len(orig.Points) {
		t.Fatalf("point count changed: %d -> %d", len(orig.Points), len(again.Points))
	}
	last, origLast := again.Points[len(again.Points)-1], orig.Points[len(orig.Points)-1]
	if math.Abs(last[0]-origLast[0]) > 1e-4 {
		t.Errorf("burnout time changed: %g -> %g", origLast[0], last[0])
	}
	if last[1] != 0 {
		t.Errorf("final thrust = %g, want 0", last[1])
	}
	if again.Description.PropellantMass != orig.Description.PropellantMass {
		t.Errorf("propellant mass changed: %g -> %g",
			orig.Description.PropellantMass, again.Description.PropellantMass)
	}
}
