// Package config loads and saves motor snapshots as YAML documents.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/motorsim/internal/motor"
)

// Default returns a snapshot with the conventional defaults filled in:
// generic model, linear interpolation, axis pointing from the nozzle to
// the combustion chamber.
func Default() *motor.Snapshot {
	return &motor.Snapshot{
		Model:         "generic",
		Orientation:   "nozzle_to_combustion_chamber",
		Interpolation: "linear",
	}
}

// Load reads a YAML snapshot from path, on top of the defaults.
func Load(path string) (*motor.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the snapshot to path as YAML.
func Save(path string, s *motor.Snapshot) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build loads a snapshot and constructs the motor it describes through the
// model registry.
func Build(path string) (*motor.Generic, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return motor.FromSnapshot(s)
}
