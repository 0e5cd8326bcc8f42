package rays

import (
	"math"
	"slices"
)

// node is one record of the hierarchy arena. Nodes reference their
// children by index into the arena.
type node struct {
	box   Box
	depth int
	leaf  bool

	// Internal nodes.
	axis  Axis
	child [2]int

	// Leaves.
	curves  []int
	dx, dy  uint8
	winding int
}

// hierarchy is the arena of nodes in depth-first order; the root is
// nodes[0] and a node's children follow it (child 0 subtree first).
type hierarchy struct {
	nodes    []node
	maxDepth int
}

// builder recursively partitions a glyph box.
type builder struct {
	cfg    Config
	fill   FillRule
	curves []Curve

	// margin dilates boxes when curves are assigned to them.
	margin float64

	// minSize is the smallest box side that is still split; zero disables
	// the floor.
	minSize float64

	h hierarchy
}

// sampleCandidates is the ordered list of sample deltas tried for a leaf:
// a 7x7 grid in steps of 1/8 of the box, nearest to the center first.
var sampleCandidates = func() [][2]uint8 {
	const step = WindingDeltaDivFactor / 8
	var c [][2]uint8
	for y := 1; y < 8; y++ {
		for x := 1; x < 8; x++ {
			c = append(c, [2]uint8{uint8(x * step), uint8(y * step)}) //nolint:gosec // < 256
		}
	}
	dist := func(d [2]uint8) int {
		const center = WindingDeltaDivFactor / 2
		ex, ey := int(d[0])-center, int(d[1])-center
		return ex*ex + ey*ey
	}
	slices.SortStableFunc(c, func(a, b [2]uint8) int {
		return dist(a) - dist(b)
	})
	return c
}()

// buildHierarchy partitions root and computes the winding sample of every
// leaf against the complete curve list.
func buildHierarchy(curves []Curve, root Box, fill FillRule, unitsPerEM float64, cfg Config) *hierarchy {
	b := &builder{
		cfg:    cfg,
		fill:   fill,
		curves: curves,
	}
	if unitsPerEM > 0 {
		pixel := unitsPerEM / cfg.ExpectedMinRenderSize
		b.minSize = pixel
		b.margin = nearFraction * pixel
	}

	all := make([]int, len(curves))
	for i := range all {
		all[i] = i
	}
	b.build(root, b.assign(root, all), 0)
	return &b.h
}

// assign returns the curves of edges whose control polygon bounds
// intersect box. Curves straddling a split line go to both children.
func (b *builder) assign(box Box, edges []int) []int {
	out := make([]int, 0, len(edges))
	for _, e := range edges {
		if box.intersectsWithin(b.curves[e].Bounds(), b.margin) {
			out = append(out, e)
		}
	}
	return out
}

func (b *builder) build(box Box, edges []int, depth int) int {
	idx := len(b.h.nodes)
	b.h.nodes = append(b.h.nodes, node{box: box, depth: depth})
	b.h.maxDepth = max(b.h.maxDepth, depth)

	if b.isLeaf(box, len(edges), depth) {
		dx, dy, w := b.chooseSample(box, edges)
		n := &b.h.nodes[idx]
		n.leaf = true
		n.curves = edges
		n.dx, n.dy, n.winding = dx, dy, w
		return idx
	}

	axis := box.SplitAxis()
	c0, c1 := box.Split(axis)
	e0 := b.assign(c0, edges)
	e1 := b.assign(c1, edges)

	n0 := b.build(c0, e0, depth+1)
	n1 := b.build(c1, e1, depth+1)

	n := &b.h.nodes[idx]
	n.axis = axis
	n.child = [2]int{n0, n1}
	return idx
}

// isLeaf combines the termination conditions with a logical OR.
func (b *builder) isLeaf(box Box, numCurves, depth int) bool {
	w, h := box.Width(), box.Height()
	switch {
	case depth >= b.cfg.MaxRecursion:
		return true
	case numCurves <= b.cfg.SplitThreshold:
		return true
	case float64(min(w, h)) < b.minSize:
		return true
	case max(w, h) < 2:
		return true
	default:
		return false
	}
}

// chooseSample picks the sample point of a leaf. The first candidate that
// keeps clear of the leaf's curves and lies inside the fill wins; failing
// that the first clear candidate, failing that the clearest one.
func (b *builder) chooseSample(box Box, edges []int) (dx, dy uint8, winding int) {
	rows := rowWindings{curves: b.curves, edges: edges}
	if len(edges) == 0 {
		c := sampleCandidates[0]
		return c[0], c[1], rows.at(SamplePosition(box, c[0], c[1]))
	}

	minClearance := float64(max(box.Width(), box.Height())) / WindingDeltaDivFactor
	firstClear, firstWinding := -1, 0
	best, bestClearance := 0, -1.0

	for i, c := range sampleCandidates {
		p := SamplePosition(box, c[0], c[1])
		clr := b.clearance(p, edges)
		if clr > bestClearance {
			best, bestClearance = i, clr
		}
		if clr <= minClearance {
			continue
		}

		w := rows.at(p)
		if b.fill.Inside(w) {
			return c[0], c[1], w
		}
		if firstClear < 0 {
			firstClear, firstWinding = i, w
		}
	}

	if firstClear >= 0 {
		c := sampleCandidates[firstClear]
		return c[0], c[1], firstWinding
	}
	c := sampleCandidates[best]
	return c[0], c[1], rows.at(SamplePosition(box, c[0], c[1]))
}

// rowWindings evaluates winding numbers at points of one box.
//
// The full glyph is evaluated once per distinct y. Another point q on the
// same row as a reference point p differs from it only by crossings with
// x between p.X and q.X, and those lie inside the box, so only the box's
// own curves (edges) are consulted: curves not assigned to the box are
// strictly outside it and count the same for p and q.
type rowWindings struct {
	curves []Curve
	edges  []int
	refs   []rowRef

	// full counts whole-glyph evaluations.
	full int
}

type rowRef struct {
	p FixedPoint
	w int
}

func (r *rowWindings) at(q FixedPoint) int {
	for _, ref := range r.refs {
		if ref.p.Y != q.Y {
			continue
		}
		w := ref.w
		for _, e := range r.edges {
			c := &r.curves[e]
			w += crossings(c, q) - crossings(c, ref.p)
		}
		return w
	}

	w := WindingAt(q, r.curves)
	r.full++
	r.refs = append(r.refs, rowRef{p: q, w: w})
	return w
}

// clearance returns the distance from p to the nearest of edges.
func (b *builder) clearance(p FixedPoint, edges []int) float64 {
	x, y := p.Float()
	d := math.MaxFloat64
	for _, e := range edges {
		d = min(d, b.curves[e].distanceTo(x, y))
	}
	return d
}
