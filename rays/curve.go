package rays

import "math"

// CurveKind classifies curves by degree.
type CurveKind uint8

const (
	// CurveLine is a straight segment between two points.
	CurveLine CurveKind = iota

	// CurveQuadratic is a quadratic Bezier curve with one control point.
	CurveQuadratic
)

// String returns a string representation of the curve kind.
func (k CurveKind) String() string {
	switch k {
	case CurveLine:
		return "Line"
	case CurveQuadratic:
		return "Quadratic"
	default:
		return "Unknown"
	}
}

// NumPoints returns the number of points stored for a curve of this kind.
func (k CurveKind) NumPoints() int {
	if k == CurveQuadratic {
		return 3
	}
	return 2
}

// Curve is a single edge of a contour.
type Curve struct {
	// Kind is the degree of the curve.
	Kind CurveKind

	// P0 is the start point.
	P0 Point

	// C is the control point; unused for lines.
	C Point

	// P1 is the end point.
	P1 Point

	// Contour is the index of the contour the curve belongs to.
	Contour int
}

// Line creates a line curve from p0 to p1.
func Line(p0, p1 Point) Curve {
	return Curve{Kind: CurveLine, P0: p0, P1: p1}
}

// Quadratic creates a quadratic curve from p0 to p1 with control point c.
func Quadratic(p0, c, p1 Point) Curve {
	return Curve{Kind: CurveQuadratic, P0: p0, C: c, P1: p1}
}

// Points returns the points of the curve in storage order.
func (c Curve) Points() []Point {
	if c.Kind == CurveQuadratic {
		return []Point{c.P0, c.C, c.P1}
	}
	return []Point{c.P0, c.P1}
}

// Bounds returns the bounding box of the curve's control polygon.
func (c Curve) Bounds() Box {
	b := Box{
		Min: Point{min(c.P0.X, c.P1.X), min(c.P0.Y, c.P1.Y)},
		Max: Point{max(c.P0.X, c.P1.X), max(c.P0.Y, c.P1.Y)},
	}
	if c.Kind == CurveQuadratic {
		b.Min = Point{min(b.Min.X, c.C.X), min(b.Min.Y, c.C.Y)}
		b.Max = Point{max(b.Max.X, c.C.X), max(b.Max.Y, c.C.Y)}
	}
	return b
}

// translate returns the curve moved by -origin.
func (c Curve) translate(origin Point) Curve {
	c.P0 = c.P0.Sub(origin)
	c.P1 = c.P1.Sub(origin)
	if c.Kind == CurveQuadratic {
		c.C = c.C.Sub(origin)
	}
	return c
}

// FixedPoint is a glyph-local point in 1/WindingDeltaDivFactor units.
// Every leaf sample position is exactly representable.
type FixedPoint struct {
	X, Y int64
}

// Fixed converts an integer point to fixed point.
func (p Point) Fixed() FixedPoint {
	return FixedPoint{int64(p.X) * WindingDeltaDivFactor, int64(p.Y) * WindingDeltaDivFactor}
}

// Float returns the point in glyph units.
func (p FixedPoint) Float() (x, y float64) {
	return float64(p.X) / WindingDeltaDivFactor, float64(p.Y) / WindingDeltaDivFactor
}

// SamplePosition returns the sample position encoded by delta (dx, dy)
// inside box b: b.Min + delta * size / WindingDeltaDivFactor.
func SamplePosition(b Box, dx, dy uint8) FixedPoint {
	return FixedPoint{
		X: int64(b.Min.X)*WindingDeltaDivFactor + int64(dx)*int64(b.Width()),
		Y: int64(b.Min.Y)*WindingDeltaDivFactor + int64(dy)*int64(b.Height()),
	}
}

// distanceTo returns the approximate Euclidean distance from (x, y) to
// the curve, in glyph units.
func (c Curve) distanceTo(x, y float64) float64 {
	if c.Kind == CurveLine {
		return segmentDistance(x, y, float64(c.P0.X), float64(c.P0.Y), float64(c.P1.X), float64(c.P1.Y))
	}

	const steps = 16
	best := math.MaxFloat64
	px, py := float64(c.P0.X), float64(c.P0.Y)
	for i := 1; i <= steps; i++ {
		qx, qy := c.evalFloat(float64(i) / steps)
		best = min(best, segmentDistance(x, y, px, py, qx, qy))
		px, py = qx, qy
	}
	return best
}

// evalFloat evaluates a quadratic curve at t.
func (c Curve) evalFloat(t float64) (x, y float64) {
	u := 1 - t
	// B(t) = (1-t)^2*P0 + 2*(1-t)*t*C + t^2*P1
	x = u*u*float64(c.P0.X) + 2*u*t*float64(c.C.X) + t*t*float64(c.P1.X)
	y = u*u*float64(c.P0.Y) + 2*u*t*float64(c.C.Y) + t*t*float64(c.P1.Y)
	return x, y
}

// segmentDistance returns the distance from (x, y) to segment (x0,y0)-(x1,y1).
func segmentDistance(x, y, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((x-x0)*dx + (y-y0)*dy) / lenSq
		t = max(0, min(1, t))
	}
	ex := x0 + t*dx - x
	ey := y0 + t*dy - y
	return math.Sqrt(ex*ex + ey*ey)
}
