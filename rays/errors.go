package rays

import (
	"errors"
	"fmt"
)

// Sentinel errors for the rays package.
var (
	// ErrNoContour is returned when an edge is added before StartContour.
	ErrNoContour = errors.New("rays: edge added outside of a contour")

	// ErrContourNotClosed is returned when a contour is left open: its last
	// end point does not equal its start point.
	ErrContourNotClosed = errors.New("rays: contour is not closed")

	// ErrFinalized is returned when geometry is added to, or Finalize is
	// called on, a glyph that was already finalized.
	ErrFinalized = errors.New("rays: glyph already finalized")

	// ErrNotFinalized is returned when packed data is requested before Finalize.
	ErrNotFinalized = errors.New("rays: glyph not finalized")

	// ErrInvalidBounds is returned when the glyph box passed to Finalize has
	// its minimum above its maximum.
	ErrInvalidBounds = errors.New("rays: invalid glyph bounds")

	// ErrCapacity is matched by every *CapacityError.
	ErrCapacity = errors.New("rays: glyph exceeds packed data capacity")

	// ErrSinkRejected wraps any error returned by a Sink.
	ErrSinkRejected = errors.New("rays: sink rejected glyph data")

	// ErrCorruptData is returned by Decode for blocks that do not describe
	// a valid hierarchy.
	ErrCorruptData = errors.New("rays: corrupt glyph data")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "rays: invalid config." + e.Field + ": " + e.Reason
}

// CapacityError reports a value that does not fit its packed bit field.
type CapacityError struct {
	// Field names the packed field that overflowed.
	Field string

	// Value is the value that had to be stored.
	Value int

	// Limit is the largest value the field can hold.
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("rays: %s %d exceeds limit %d", e.Field, e.Value, e.Limit)
}

// Is reports whether target is ErrCapacity.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}
