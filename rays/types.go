package rays

import (
	"fmt"
	"math"
)

// Default build policy values.
const (
	// DefaultMaxRecursion is the default depth limit of the box hierarchy.
	DefaultMaxRecursion = 12

	// DefaultSplitThreshold is the default number of curves a box may hold
	// before it is split.
	DefaultSplitThreshold = 4

	// DefaultExpectedMinRenderSize is the default smallest pixel size at
	// which glyphs are expected to be drawn.
	DefaultExpectedMinRenderSize = 32.0

	// MaxRecursionLimit bounds Config.MaxRecursion.
	MaxRecursionLimit = 32

	// nearFraction is the fraction of one rendered pixel (at the expected
	// minimum render size) by which boxes are dilated when curves are
	// assigned to them.
	nearFraction = 0.5
)

// Config holds the hierarchy build policy. The zero value is not valid;
// start from DefaultConfig.
type Config struct {
	// MaxRecursion is the maximum depth of the box hierarchy.
	// Default: 12
	MaxRecursion int

	// SplitThreshold is the number of curves a box may hold without being
	// split further.
	// Default: 4
	SplitThreshold int

	// ExpectedMinRenderSize is the smallest size, in pixels per EM, at which
	// glyphs are expected to be drawn. Boxes smaller than one pixel at that
	// size are not split.
	// Default: 32.0
	ExpectedMinRenderSize float64
}

// DefaultConfig returns the default build policy.
func DefaultConfig() Config {
	return Config{
		MaxRecursion:          DefaultMaxRecursion,
		SplitThreshold:        DefaultSplitThreshold,
		ExpectedMinRenderSize: DefaultExpectedMinRenderSize,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.MaxRecursion < 0 {
		return &ConfigError{Field: "MaxRecursion", Reason: "must be non-negative"}
	}
	if c.MaxRecursion > MaxRecursionLimit {
		return &ConfigError{Field: "MaxRecursion", Reason: "must be at most 32"}
	}
	if c.SplitThreshold < 1 {
		return &ConfigError{Field: "SplitThreshold", Reason: "must be at least 1"}
	}
	if !(c.ExpectedMinRenderSize > 0) || math.IsInf(c.ExpectedMinRenderSize, 1) {
		return &ConfigError{Field: "ExpectedMinRenderSize", Reason: "must be positive and finite"}
	}
	return nil
}

// FillRule maps a winding number to inside or outside.
type FillRule int

const (
	// FillNonZero treats non-zero winding numbers as inside.
	FillNonZero FillRule = iota

	// FillOddEven treats odd winding numbers as inside.
	FillOddEven

	// FillComplementNonZero is the complement of FillNonZero.
	FillComplementNonZero

	// FillComplementOddEven is the complement of FillOddEven.
	FillComplementOddEven
)

// Inside reports whether a point with the given winding number is filled.
func (f FillRule) Inside(winding int) bool {
	switch f {
	case FillOddEven:
		return winding&1 != 0
	case FillComplementNonZero:
		return winding == 0
	case FillComplementOddEven:
		return winding&1 == 0
	default:
		return winding != 0
	}
}

// String returns a string representation of the fill rule.
func (f FillRule) String() string {
	switch f {
	case FillNonZero:
		return "NonZero"
	case FillOddEven:
		return "OddEven"
	case FillComplementNonZero:
		return "ComplementNonZero"
	case FillComplementOddEven:
		return "ComplementOddEven"
	default:
		return "Unknown"
	}
}

// Point is an integer point in glyph outline units.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Axis is the coordinate a box is split along.
type Axis uint8

const (
	// AxisX splits a box into a left and a right half.
	AxisX Axis = iota

	// AxisY splits a box into a bottom and a top half.
	AxisY
)

// String returns a string representation of the axis.
func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Box is an axis-aligned rectangle in glyph-local integer coordinates.
// Min and Max are both inclusive.
type Box struct {
	Min, Max Point
}

// Width returns the width of the box.
func (b Box) Width() int {
	return b.Max.X - b.Min.X
}

// Height returns the height of the box.
func (b Box) Height() int {
	return b.Max.Y - b.Min.Y
}

// SplitAxis returns the axis a box is split along: the longer side,
// with ties going to x.
func (b Box) SplitAxis() Axis {
	if b.Height() > b.Width() {
		return AxisY
	}
	return AxisX
}

// Split halves the box along axis. When the side is odd the second half
// receives the extra unit.
func (b Box) Split(axis Axis) (Box, Box) {
	c0, c1 := b, b
	if axis == AxisY {
		mid := b.Min.Y + b.Height()/2
		c0.Max.Y = mid
		c1.Min.Y = mid
	} else {
		mid := b.Min.X + b.Width()/2
		c0.Max.X = mid
		c1.Min.X = mid
	}
	return c0, c1
}

// Intersects reports whether b and o share at least one point.
func (b Box) Intersects(o Box) bool {
	return b.intersectsWithin(o, 0)
}

// intersectsWithin reports whether o intersects b dilated by margin.
func (b Box) intersectsWithin(o Box, margin float64) bool {
	return float64(o.Min.X) <= float64(b.Max.X)+margin &&
		float64(o.Max.X) >= float64(b.Min.X)-margin &&
		float64(o.Min.Y) <= float64(b.Max.Y)+margin &&
		float64(o.Max.Y) >= float64(b.Min.Y)-margin
}

// String returns a string representation of the box.
func (b Box) String() string {
	return fmt.Sprintf("[%v-%v]", b.Min, b.Max)
}
