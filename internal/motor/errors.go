package motor

import "errors"

// Fatal configuration errors. Construction either fully succeeds or fails
// with one of these before any derived quantity is cached.
var (
	// ErrOrientation indicates an unrecognized coordinate system orientation.
	ErrOrientation = errors.New("motor: unknown coordinate system orientation")

	// ErrDryMass indicates a dry mass that was neither specified nor
	// derivable from a motor file description.
	ErrDryMass = errors.New("motor: dry mass must be a finite number")

	// ErrBurnWindow indicates a missing burn window with a thrust source
	// that has no natural sample domain.
	ErrBurnWindow = errors.New("motor: burn window required when thrust source is not tabulated")

	// ErrZeroMass indicates a motor whose dry and propellant masses are
	// both zero.
	ErrZeroMass = errors.New("motor: total motor mass (dry + propellant) cannot be zero")

	// ErrThrustSource indicates a nil or otherwise unusable thrust source.
	ErrThrustSource = errors.New("motor: invalid thrust source")

	// ErrUnknownModel indicates a snapshot naming a propellant model that
	// is not registered.
	ErrUnknownModel = errors.New("motor: unknown propellant model")
)

// ConfigError wraps a configuration failure with the field it concerns.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(field string, err error) error {
	return &ConfigError{Field: field, Err: err}
}
