// Package store exports a motor's derived time-varying quantities for
// downstream consumers: plotting tools, flight simulators, persistence.
package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/motorsim/internal/motor"
)

// ExportData is the JSON layout of a motor export. Every derived curve is
// sampled on the processed thrust curve's own time grid.
type ExportData struct {
	Name     string     `json:"name"`
	Model    string     `json:"model"`
	BurnTime [2]float64 `json:"burn_time"`

	TotalImpulse  float64 `json:"total_impulse"`
	MaxThrust     float64 `json:"max_thrust"`
	MaxThrustTime float64 `json:"max_thrust_time"`
	AverageThrust float64 `json:"average_thrust"`

	Times           []float64 `json:"times"`
	Thrust          []float64 `json:"thrust"`
	MassFlowRate    []float64 `json:"total_mass_flow_rate"`
	PropellantMass  []float64 `json:"propellant_mass"`
	TotalMass       []float64 `json:"total_mass"`
	CenterOfMass    []float64 `json:"center_of_mass"`
	ExhaustVelocity []float64 `json:"exhaust_velocity"`
	I11             []float64 `json:"I_11"`
	I22             []float64 `json:"I_22"`
	I33             []float64 `json:"I_33"`
	I12             []float64 `json:"I_12"`
	I13             []float64 `json:"I_13"`
	I23             []float64 `json:"I_23"`
}

// Collect samples every derived quantity of the motor on its thrust grid.
func Collect(name string, g *motor.Generic) *ExportData {
	times := g.Thrust().Times()
	sample := func(at func(float64) float64) []float64 {
		out := make([]float64, len(times))
		for i, t := range times {
			out[i] = at(t)
		}
		return out
	}
	inertia := g.Inertia()

	return &ExportData{
		Name:            name,
		Model:           "generic",
		BurnTime:        [2]float64{g.BurnStart(), g.BurnOut()},
		TotalImpulse:    g.TotalImpulse(),
		MaxThrust:       g.MaxThrust(),
		MaxThrustTime:   g.MaxThrustTime(),
		AverageThrust:   g.AverageThrust(),
		Times:           times,
		Thrust:          g.Thrust().Values(),
		MassFlowRate:    sample(g.MassFlowRate().At),
		PropellantMass:  sample(g.PropellantMass().At),
		TotalMass:       sample(g.TotalMass().At),
		CenterOfMass:    sample(g.CenterOfMass().At),
		ExhaustVelocity: sample(g.ExhaustVelocity().At),
		I11:             sample(inertia.I11.At),
		I22:             sample(inertia.I22.At),
		I33:             sample(inertia.I33.At),
		I12:             sample(inertia.I12.At),
		I13:             sample(inertia.I13.At),
		I23:             sample(inertia.I23.At),
	}
}

// WriteJSON writes the motor export to w as indented JSON.
func WriteJSON(w io.Writer, name string, g *motor.Generic) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Collect(name, g))
}

// ExportJSON writes the motor export to a file.
func ExportJSON(path, name string, g *motor.Generic) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, name, g)
}
