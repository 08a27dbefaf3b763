package config

import "errors"

var (
	// ErrMissingRequired indicates a field tagged `env:"NAME,required"` was
	// left empty by every source.
	ErrMissingRequired = errors.New("config: missing required value")

	// ErrInvalidValue indicates a value could not be parsed into its field type.
	ErrInvalidValue = errors.New("config: invalid value")

	// ErrNotStructPointer indicates the binding target is not a pointer to a struct.
	ErrNotStructPointer = errors.New("config: target must be a non-nil struct pointer")
)
