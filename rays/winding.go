package rays

import "math"

// WindingAt returns the signed winding number of curves around p.
//
// A ray is cast from p toward +x. A curve crossing the ray while moving
// toward -y contributes +1 and one moving toward +y contributes -1, so
// clockwise contours (in a y-up frame, as TrueType outer contours are) have
// positive winding. The ray is treated as lying infinitesimally above p:
// a curve crosses it when one end is at or below p.Y and the other is above,
// which makes crossings at contour vertices count exactly once.
//
// The value is the raw winding number; apply a FillRule to classify it.
func WindingAt(p FixedPoint, curves []Curve) int {
	w := 0
	for i := range curves {
		w += crossings(&curves[i], p)
	}
	return w
}

// Covered reports whether p is inside the fill of curves under rule.
func Covered(p FixedPoint, rule FillRule, curves []Curve) bool {
	return rule.Inside(WindingAt(p, curves))
}

// crossings returns the signed contribution of one curve.
func crossings(c *Curve, p FixedPoint) int {
	a, b := c.P0.Fixed(), c.P1.Fixed()
	if c.Kind == CurveLine {
		return lineCrossing(a, b, p)
	}
	return quadraticCrossings(a, c.C.Fixed(), b, p)
}

// crossingSign returns the contribution of a crossing that starts on the
// lower side of the ray when startBelow is true.
func crossingSign(startBelow bool) int {
	if startBelow {
		return -1
	}
	return 1
}

func lineCrossing(a, b, p FixedPoint) int {
	below0 := a.Y <= p.Y
	below1 := b.Y <= p.Y
	if below0 == below1 {
		return 0
	}

	// num = (xc - p.X) * dy where xc is the x of the crossing.
	dy := b.Y - a.Y
	num := (a.X-p.X)*dy + (b.X-a.X)*(p.Y-a.Y)
	side := sign(num) * sign(dy)
	if num == 0 {
		// p is on the segment; the nudged ray meets it on the side the
		// segment leans toward.
		side = sign(b.X-a.X) * sign(dy)
	}
	if side <= 0 {
		return 0
	}
	return crossingSign(below0)
}

func quadraticCrossings(a, c, b, p FixedPoint) int {
	below0 := a.Y <= p.Y
	below1 := b.Y <= p.Y

	// y(t) has its extremum at t = n/d.
	n := a.Y - c.Y
	d := a.Y - 2*c.Y + b.Y
	if d != 0 {
		nn, dd := n, d
		if dd < 0 {
			nn, dd = -nn, -dd
		}
		if nn > 0 && nn < dd {
			ts := float64(n) / float64(d)
			belowExt := extremumBelow(a.Y, n, d, p.Y)
			return quadraticPiece(a, c, b, p, 0, ts, below0, belowExt) +
				quadraticPiece(a, c, b, p, ts, 1, belowExt, below1)
		}
	}
	return quadraticPiece(a, c, b, p, 0, 1, below0, below1)
}

// extremumBelow reports whether y(n/d) = y0 - n*n/d is at or below py,
// using exact integer arithmetic.
func extremumBelow(y0, n, d, py int64) bool {
	lhs := (y0 - py) * d
	if d > 0 {
		return lhs <= n*n
	}
	return lhs >= n*n
}

// quadraticPiece handles the y-monotone part of a quadratic on [t0, t1].
func quadraticPiece(a, c, b, p FixedPoint, t0, t1 float64, below0, below1 bool) int {
	if below0 == below1 {
		return 0
	}

	var x float64
	switch {
	case t0 == 0 && a.Y == p.Y:
		x = float64(a.X)
	case t1 == 1 && b.Y == p.Y:
		x = float64(b.X)
	default:
		ay, cy, by := float64(a.Y), float64(c.Y), float64(b.Y)
		t := solveQuadratic(ay-2*cy+by, 2*(cy-ay), ay-float64(p.Y), t0, t1)
		u := 1 - t
		x = u*u*float64(a.X) + 2*u*t*float64(c.X) + t*t*float64(b.X)
	}

	if x <= float64(p.X) {
		return 0
	}
	return crossingSign(below0)
}

// solveQuadratic returns the root of qa*t^2 + qb*t + qc in [t0, t1].
// The polynomial is monotone on the interval and changes sign across it.
func solveQuadratic(qa, qb, qc, t0, t1 float64) float64 {
	const eps = 1e-9

	var roots [2]float64
	n := 0
	switch {
	case qa == 0:
		if qb != 0 {
			roots[0] = -qc / qb
			n = 1
		}
	default:
		disc := max(qb*qb-4*qa*qc, 0)
		q := -0.5 * (qb + math.Copysign(math.Sqrt(disc), qb))
		if q != 0 {
			roots[0] = q / qa
			roots[1] = qc / q
			n = 2
		} else {
			roots[0] = -qb / (2 * qa)
			n = 1
		}
	}

	mid := (t0 + t1) / 2
	best, found := 0.0, false
	for _, r := range roots[:n] {
		if r < t0-eps || r > t1+eps {
			continue
		}
		if !found || math.Abs(r-mid) < math.Abs(best-mid) {
			best, found = r, true
		}
	}
	if !found {
		best = bisect(qa, qb, qc, t0, t1)
	}
	return max(t0, min(t1, best))
}

// bisect locates the sign change of qa*t^2 + qb*t + qc on [t0, t1].
func bisect(qa, qb, qc, t0, t1 float64) float64 {
	f := func(t float64) float64 { return (qa*t+qb)*t + qc }
	lo, hi := t0, t1
	flo := f(lo)
	for range 64 {
		mid := (lo + hi) / 2
		fm := f(mid)
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func sign(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
