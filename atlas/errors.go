package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlas package.
var (
	// ErrFull is matched by every *FullError.
	ErrFull = errors.New("atlas: out of space")

	// ErrOutOfRange is returned when reading words outside the used region.
	ErrOutOfRange = errors.New("atlas: range outside stored data")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

// FullError is returned when an allocation does not fit the store.
type FullError struct {
	// Requested is the number of words asked for, including alignment.
	Requested int

	// Available is the number of free words left.
	Available int
}

func (e *FullError) Error() string {
	return fmt.Sprintf("atlas: %d words requested, %d available", e.Requested, e.Available)
}

// Is reports whether target is ErrFull.
func (e *FullError) Is(target error) bool {
	return target == ErrFull
}
