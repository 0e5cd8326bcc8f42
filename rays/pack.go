package rays

// Packed is the bit-exact encoding of a finalized glyph. The three
// sections are uploaded as one block in the order Hierarchy, Points,
// CurveLists; every offset stored in the block is a word index relative
// to the start of the block.
type Packed struct {
	// Hierarchy holds the box hierarchy in depth-first order starting with
	// the root. Nodes take one word; leaves take a leaf word followed by a
	// winding sample word.
	Hierarchy []uint32

	// Points holds the points of every curve referenced by a leaf, in curve
	// order. Lines store two points and quadratics store three.
	Points []uint32

	// CurveLists holds the curve lists of the leaves, two entries per word.
	CurveLists []uint32

	// Width and Height are the glyph box size in glyph units.
	Width, Height int
}

// Len returns the total number of words in the block.
func (p *Packed) Len() int {
	return len(p.Hierarchy) + len(p.Points) + len(p.CurveLists)
}

// Block returns the sections concatenated in upload order.
func (p *Packed) Block() []uint32 {
	out := make([]uint32, 0, p.Len())
	out = append(out, p.Hierarchy...)
	out = append(out, p.Points...)
	out = append(out, p.CurveLists...)
	return out
}

// Stats describes the shape of a packed glyph.
type Stats struct {
	// Curves is the number of curves in the glyph.
	Curves int

	// ReferencedCurves is the number of curves at least one leaf lists.
	ReferencedCurves int

	// Nodes and Leaves count the hierarchy records.
	Nodes  int
	Leaves int

	// MaxDepth is the depth of the deepest leaf; the root has depth 0.
	MaxDepth int

	// MaxLeafCurves is the longest leaf curve list.
	MaxLeafCurves int

	// CurveRefs is the total length of all leaf curve lists.
	CurveRefs int

	// Word counts per section.
	HierarchyWords int
	PointWords     int
	CurveListWords int
}

// TotalWords returns the size of the uploaded block.
func (s Stats) TotalWords() int {
	return s.HierarchyWords + s.PointWords + s.CurveListWords
}

// packer lays out a hierarchy into the three sections.
type packer struct {
	h      *hierarchy
	curves []Curve
	box    Box

	// wordAt maps a node index to its word offset in the hierarchy section.
	wordAt []int

	// location maps a curve index to the offset of its first point, or -1
	// when no leaf references it.
	location []int

	stats Stats
}

// pack encodes h. Every field is range checked; the first value that
// does not fit is reported as a *CapacityError. Checks run in block
// order: coordinates, hierarchy (child offsets, curve list sizes), point
// locations, curve list offsets, windings.
func pack(h *hierarchy, curves []Curve, box Box) (*Packed, Stats, error) {
	p := &packer{h: h, curves: curves, box: box}
	p.stats.Curves = len(curves)
	p.stats.MaxDepth = h.maxDepth

	if err := p.checkCoordinates(); err != nil {
		return nil, p.stats, err
	}

	hierarchyWords := p.layoutHierarchy()
	if err := p.checkHierarchy(); err != nil {
		return nil, p.stats, err
	}
	pointWords := p.layoutPoints(hierarchyWords)
	if err := p.checkLocations(); err != nil {
		return nil, p.stats, err
	}

	out := &Packed{
		Hierarchy: make([]uint32, 0, hierarchyWords),
		Points:    make([]uint32, 0, pointWords),
		Width:     box.Width(),
		Height:    box.Height(),
	}

	for i, c := range curves {
		if p.location[i] < 0 {
			continue
		}
		for _, pt := range c.Points() {
			out.Points = append(out.Points, PackPoint(pt))
		}
	}

	listBase := hierarchyWords + pointWords
	for i := range h.nodes {
		n := &h.nodes[i]
		if !n.leaf {
			c0, c1 := p.wordAt[n.child[0]], p.wordAt[n.child[1]]
			out.Hierarchy = append(out.Hierarchy, PackNode(n.axis, c0, c1))
			continue
		}

		offset := listBase + len(out.CurveLists)
		if len(n.curves) > 0 {
			if err := checkLimit("curve list offset", offset, MaxCurveListOffset); err != nil {
				return nil, p.stats, err
			}
		} else {
			offset = 0
		}
		if n.winding < MinWinding || n.winding > MaxWinding {
			return nil, p.stats, &CapacityError{Field: "winding", Value: n.winding, Limit: MaxWinding}
		}

		out.Hierarchy = append(out.Hierarchy,
			PackLeaf(offset, len(n.curves)),
			PackWindingSample(n.winding, n.dx, n.dy))
		out.CurveLists = p.appendCurveList(out.CurveLists, n.curves)
	}

	p.stats.HierarchyWords = len(out.Hierarchy)
	p.stats.PointWords = len(out.Points)
	p.stats.CurveListWords = len(out.CurveLists)
	return out, p.stats, nil
}

// checkCoordinates verifies every glyph-local coordinate fits a point word.
func (p *packer) checkCoordinates() error {
	check := func(v int) error {
		if v < 0 || v > MaxCoordinate {
			return &CapacityError{Field: "coordinate", Value: v, Limit: MaxCoordinate}
		}
		return nil
	}
	if err := check(p.box.Width()); err != nil {
		return err
	}
	if err := check(p.box.Height()); err != nil {
		return err
	}
	for i := range p.curves {
		for _, pt := range p.curves[i].Points() {
			if err := check(pt.X); err != nil {
				return err
			}
			if err := check(pt.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

// layoutHierarchy assigns word offsets to nodes and returns the size of
// the hierarchy section.
func (p *packer) layoutHierarchy() int {
	p.wordAt = make([]int, len(p.h.nodes))
	words := 0
	for i := range p.h.nodes {
		n := &p.h.nodes[i]
		p.wordAt[i] = words
		if n.leaf {
			words += 2
			p.stats.Leaves++
			p.stats.CurveRefs += len(n.curves)
			p.stats.MaxLeafCurves = max(p.stats.MaxLeafCurves, len(n.curves))
		} else {
			words++
			p.stats.Nodes++
		}
	}
	return words
}

// checkHierarchy verifies child offsets and curve list sizes. Both only
// depend on the hierarchy section, so they are reported before any
// limit of the sections that follow it.
func (p *packer) checkHierarchy() error {
	for i := range p.h.nodes {
		n := &p.h.nodes[i]
		if n.leaf {
			if err := checkLimit("curve list size", len(n.curves), MaxCurveListSize); err != nil {
				return err
			}
			continue
		}
		// Children follow their parent, so child 1 has the larger offset.
		if err := checkLimit("child offset", p.wordAt[n.child[1]], MaxChildOffset); err != nil {
			return err
		}
	}
	return nil
}

// layoutPoints assigns point locations to referenced curves and returns
// the size of the point section.
func (p *packer) layoutPoints(base int) int {
	p.location = make([]int, len(p.curves))
	for i := range p.location {
		p.location[i] = -1
	}
	for i := range p.h.nodes {
		for _, c := range p.h.nodes[i].curves {
			p.location[c] = 0
		}
	}

	words := 0
	for i := range p.curves {
		if p.location[i] < 0 {
			continue
		}
		p.location[i] = base + words
		words += p.curves[i].Kind.NumPoints()
		p.stats.ReferencedCurves++
	}
	return words
}

func (p *packer) appendCurveList(dst []uint32, list []int) []uint32 {
	entry := func(c int) uint32 {
		return PackCurveEntry(p.curves[c].Kind, p.location[c])
	}
	for i := 0; i < len(list); i += 2 {
		e0 := entry(list[i])
		var e1 uint32
		if i+1 < len(list) {
			e1 = entry(list[i+1])
		}
		dst = append(dst, PackCurvePair(e0, e1))
	}
	return dst
}

// checkLocations verifies every referenced curve's point location fits
// a curve entry.
func (p *packer) checkLocations() error {
	for _, loc := range p.location {
		if err := checkLimit("curve location", loc, MaxCurveLocation); err != nil {
			return err
		}
	}
	return nil
}

func checkLimit(field string, value, limit int) error {
	if value > limit {
		return &CapacityError{Field: field, Value: value, Limit: limit}
	}
	return nil
}
