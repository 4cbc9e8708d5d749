// Package eng reads and writes RASP motor description files (.eng), the
// legacy interchange format for hobby rocket motor thrust curves.
//
// The format is line oriented. A ';' starts a comment that runs to the end
// of the line. The first non-empty, non-comment line describes the motor:
//
//	<name> <diameter_mm> <length_mm> <delay> <propellant_kg> <total_kg> <manufacturer>
//
// Every following non-empty line is a "<time_s> <thrust_N>" sample with
// strictly increasing times. The file omits the implicit (0, 0) ignition
// point and ends with a "<burnout_s> 0.0" line.
package eng

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Extension is the only file extension the parser accepts.
const Extension = ".eng"

var (
	// ErrExtension indicates a path that does not end in .eng.
	ErrExtension = errors.New("eng: file must have the .eng extension")

	// ErrMalformed indicates file content the parser cannot understand.
	ErrMalformed = errors.New("eng: malformed file content")
)

// FormatError describes where in a file parsing failed.
type FormatError struct {
	Path string
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("eng: %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("eng: %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Description is the parsed first line of a motor file.
type Description struct {
	Name           string
	DiameterMM     float64
	LengthMM       float64
	Delay          string
	PropellantMass float64 // kg
	TotalMass      float64 // kg
	Manufacturer   string

	// Fields holds the raw whitespace-split tokens. Mass fields are
	// resolved from the tail of this slice, so files with extra tokens
	// still parse.
	Fields []string
}

// File is the parsed content of a motor file.
type File struct {
	Comments    []string
	Description Description
	// Points holds (time, thrust) samples, with the implicit (0, 0)
	// ignition point prepended.
	Points [][2]float64
}

var numberRe = regexp.MustCompile(`[-+]?\d*\.\d+|[-+]?\d+`)

// Parse reads and parses the motor file at path. The path must carry the
// .eng extension.
func Parse(path string) (*File, error) {
	if filepath.Ext(path) != Extension {
		return nil, &FormatError{Path: path, Err: ErrExtension}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	parsed, err := ParseReader(f)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return parsed, nil
}

// ParseReader parses motor file content from r.
func ParseReader(r io.Reader) (*File, error) {
	out := &File{Points: [][2]float64{{0, 0}}}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, ";"); i >= 0 {
			out.Comments = append(out.Comments, line[i:])
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if out.Description.Fields == nil {
			desc, err := parseDescription(line)
			if err != nil {
				return nil, &FormatError{Line: lineNo, Err: err}
			}
			out.Description = desc
			continue
		}
		nums := numberRe.FindAllString(line, -1)
		if len(nums) < 2 {
			return nil, &FormatError{Line: lineNo, Err: fmt.Errorf("%w: expected a time/thrust pair, got %q", ErrMalformed, line)}
		}
		t, err1 := strconv.ParseFloat(nums[0], 64)
		y, err2 := strconv.ParseFloat(nums[1], 64)
		if err1 != nil || err2 != nil {
			return nil, &FormatError{Line: lineNo, Err: fmt.Errorf("%w: bad number in %q", ErrMalformed, line)}
		}
		out.Points = append(out.Points, [2]float64{t, y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if out.Description.Fields == nil {
		return nil, &FormatError{Err: fmt.Errorf("%w: missing description line", ErrMalformed)}
	}
	if len(out.Points) < 2 {
		return nil, &FormatError{Err: fmt.Errorf("%w: no thrust samples", ErrMalformed)}
	}
	return out, nil
}

func parseDescription(line string) (Description, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return Description{}, fmt.Errorf("%w: description line needs at least 6 fields, got %d", ErrMalformed, len(fields))
	}
	d := Description{Fields: fields, Name: fields[0]}
	var err error
	if d.DiameterMM, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return Description{}, fmt.Errorf("%w: bad diameter %q", ErrMalformed, fields[1])
	}
	if d.LengthMM, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return Description{}, fmt.Errorf("%w: bad length %q", ErrMalformed, fields[2])
	}
	d.Delay = fields[3]
	// Mass fields sit just before the trailing manufacturer token.
	if d.PropellantMass, err = strconv.ParseFloat(fields[len(fields)-3], 64); err != nil {
		return Description{}, fmt.Errorf("%w: bad propellant mass %q", ErrMalformed, fields[len(fields)-3])
	}
	if d.TotalMass, err = strconv.ParseFloat(fields[len(fields)-2], 64); err != nil {
		return Description{}, fmt.Errorf("%w: bad total mass %q", ErrMalformed, fields[len(fields)-2])
	}
	d.Manufacturer = fields[len(fields)-1]
	return d, nil
}

// DryMass returns the structural mass implied by the description, the
// difference between total and propellant mass.
func (d Description) DryMass() float64 { return d.TotalMass - d.PropellantMass }

// Write emits a motor file. Points must include the implicit leading (0, 0)
// sample, which is not written; the final line is always written with zero
// thrust, marking burnout.
func Write(w io.Writer, d Description, points [][2]float64) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: need at least two points to write", ErrMalformed)
	}
	name := d.Name
	if name == "" {
		name = "motor"
	}
	delay := d.Delay
	if delay == "" {
		delay = "0"
	}
	manufacturer := d.Manufacturer
	if manufacturer == "" {
		manufacturer = "motorsim"
	}
	if _, err := fmt.Fprintf(w, "%s %3.1f %3.1f %s %.4f %.4f %s\n",
		name, d.DiameterMM, d.LengthMM, delay, d.PropellantMass, d.TotalMass, manufacturer); err != nil {
		return err
	}
	for _, p := range points[1 : len(points)-1] {
		if _, err := fmt.Fprintf(w, "%.4f %.3f\n", p[0], p[1]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%.4f %.3f\n", points[len(points)-1][0], 0.0)
	return err
}
