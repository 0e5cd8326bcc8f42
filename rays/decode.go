package rays

import "fmt"

// Leaf is a decoded hierarchy leaf.
type Leaf struct {
	// Box is the leaf box in glyph-local coordinates.
	Box Box

	// Curves are the curves of the leaf's curve list, in list order.
	// Contour indices are not stored and read as zero.
	Curves []Curve

	// Winding is the winding number at the sample position.
	Winding int

	// DX and DY are the sample delta.
	DX, DY uint8
}

// SamplePosition returns the position the leaf's winding was computed at.
func (l *Leaf) SamplePosition() FixedPoint {
	return SamplePosition(l.Box, l.DX, l.DY)
}

// Decode walks a packed block, as produced by Packed.Block, for a glyph of
// the given size and returns its leaves in depth-first order.
// Malformed blocks yield an error wrapping ErrCorruptData.
func Decode(block []uint32, width, height int) ([]Leaf, error) {
	if len(block) == 0 {
		return nil, fmt.Errorf("%w: empty block", ErrCorruptData)
	}

	type item struct {
		offset int
		box    Box
	}
	stack := []item{{0, Box{Max: Point{width, height}}}}
	var leaves []Leaf

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		w := block[it.offset]

		if IsNode(w) {
			axis, c0, c1 := UnpackNode(w)
			for _, c := range [2]int{c0, c1} {
				if c <= it.offset || c >= len(block) {
					return nil, fmt.Errorf("%w: node at %d has child offset %d", ErrCorruptData, it.offset, c)
				}
			}
			b0, b1 := it.box.Split(axis)
			stack = append(stack, item{c1, b1}, item{c0, b0})
			continue
		}

		if it.offset+1 >= len(block) {
			return nil, fmt.Errorf("%w: leaf at %d has no winding sample", ErrCorruptData, it.offset)
		}
		leaf := Leaf{Box: it.box}
		leaf.Winding, leaf.DX, leaf.DY = UnpackWindingSample(block[it.offset+1])

		listOffset, size := UnpackLeaf(w)
		if size > 0 && listOffset+(size+1)/2 > len(block) {
			return nil, fmt.Errorf("%w: leaf at %d has curve list [%d,+%d) outside block",
				ErrCorruptData, it.offset, listOffset, size)
		}
		leaf.Curves = make([]Curve, 0, size)
		for i := range size {
			e0, e1 := UnpackCurvePair(block[listOffset+i/2])
			e := e0
			if i%2 == 1 {
				e = e1
			}
			c, err := decodeCurve(block, e)
			if err != nil {
				return nil, err
			}
			leaf.Curves = append(leaf.Curves, c)
		}
		leaves = append(leaves, leaf)
	}
	return leaves, nil
}

func decodeCurve(block []uint32, entry uint32) (Curve, error) {
	kind, loc := UnpackCurveEntry(entry)
	if loc+kind.NumPoints() > len(block) {
		return Curve{}, fmt.Errorf("%w: curve points at %d outside block", ErrCorruptData, loc)
	}
	if kind == CurveQuadratic {
		return Quadratic(UnpackPoint(block[loc]), UnpackPoint(block[loc+1]), UnpackPoint(block[loc+2])), nil
	}
	return Line(UnpackPoint(block[loc]), UnpackPoint(block[loc+1])), nil
}

// LeafAt returns the word offset, within block, of the leaf whose box
// contains the glyph-local point p. Points on a split line belong to the
// second child. It performs the same walk as the lookup shader.
func LeafAt(block []uint32, width, height int, p FixedPoint) (int, error) {
	box := Box{Max: Point{width, height}}
	offset := 0
	for range MaxRecursionLimit + 1 {
		if offset >= len(block) {
			return 0, fmt.Errorf("%w: offset %d outside block", ErrCorruptData, offset)
		}
		w := block[offset]
		if !IsNode(w) {
			return offset, nil
		}

		axis, c0, c1 := UnpackNode(w)
		b0, b1 := box.Split(axis)
		mid := b1.Min.Fixed()
		coord, split := p.X, mid.X
		if axis == AxisY {
			coord, split = p.Y, mid.Y
		}
		if coord < split {
			box, offset = b0, c0
		} else {
			box, offset = b1, c1
		}
	}
	return 0, fmt.Errorf("%w: hierarchy deeper than %d", ErrCorruptData, MaxRecursionLimit)
}
