package rays

// Hierarchy word layout. A node is a single word; a leaf is a single word
// followed by one winding sample word.
const (
	// HierarchyIsNodeBit is up for nodes and down for leaves.
	HierarchyIsNodeBit = 31

	// HierarchySplitCoordinateBit selects the split axis of a node:
	// 0 splits in x (children share min-y and max-y), 1 splits in y.
	HierarchySplitCoordinateBit = 30

	// HierarchyChild0OffsetBit0 is the first bit of the offset of the child
	// before the split (left or bottom).
	HierarchyChild0OffsetBit0 = 0

	// HierarchyChild1OffsetBit0 is the first bit of the offset of the child
	// after the split (right or top).
	HierarchyChild1OffsetBit0 = 15

	// HierarchyChildOffsetNumBits is the width of a child offset.
	HierarchyChildOffsetNumBits = 15

	// HierarchyLeafCurveListBit0 is the first bit of a leaf's curve list offset.
	HierarchyLeafCurveListBit0 = 0

	// HierarchyLeafCurveListNumBits is the width of a leaf's curve list offset.
	HierarchyLeafCurveListNumBits = 16

	// HierarchyLeafCurveListSizeBit0 is the first bit of a leaf's curve count.
	HierarchyLeafCurveListSizeBit0 = 16

	// HierarchyLeafCurveListSizeNumBits is the width of a leaf's curve count.
	HierarchyLeafCurveListSizeNumBits = 15
)

// Winding sample word layout. The sample position is the leaf box minimum
// offset by delta * boxSize / WindingDeltaDivFactor.
const (
	// WindingBias is added to the winding number before it is stored.
	WindingBias = 32768

	WindingValueBit0    = 0
	WindingValueNumBits = 16

	// WindingDeltaDivFactor divides the packed deltas.
	WindingDeltaDivFactor = 256

	WindingDeltaXBit0   = 16
	WindingDeltaYBit0   = 24
	WindingDeltaNumBits = 8
)

// Curve list layout. Each word holds two 16-bit curve entries.
const (
	CurveNumBits    = 16
	CurveEntry0Bit0 = 0
	CurveEntry1Bit0 = 16

	// CurveIsQuadraticBit is up in an entry that references a quadratic
	// curve (three points) and down for a line segment (two points).
	CurveIsQuadraticBit = 15

	CurveLocationBit0    = 0
	CurveLocationNumBits = 15
)

// Point layout. Each point is one word of two unsigned glyph coordinates.
const (
	PointCoordinateNumBits = 16
	PointXCoordinateBit0   = 0
	PointYCoordinateBit0   = 16
)

// Attribute indices of the record written by Upload.
const (
	AttrGlyphCoordinateX = 0
	AttrGlyphCoordinateY = 1
	AttrGlyphWidth       = 2
	AttrGlyphHeight      = 3
	AttrGlyphOffset      = 4

	// NumAttributes is the number of attribute values per glyph.
	NumAttributes = 5
)

// Field limits derived from the layout.
const (
	MaxChildOffset     = 1<<HierarchyChildOffsetNumBits - 1
	MaxCurveListOffset = 1<<HierarchyLeafCurveListNumBits - 1
	MaxCurveListSize   = 1<<HierarchyLeafCurveListSizeNumBits - 1
	MaxCurveLocation   = 1<<CurveLocationNumBits - 1
	MaxCoordinate      = 1<<PointCoordinateNumBits - 1
	MinWinding         = -WindingBias
	MaxWinding         = 1<<WindingValueNumBits - 1 - WindingBias
)

// packBits places value in a field of numBits starting at bit0.
// The value is masked; callers check ranges before packing.
func packBits(bit0, numBits uint, value uint32) uint32 {
	return (value & fieldMask(numBits)) << bit0
}

// unpackBits extracts a field of numBits starting at bit0.
func unpackBits(bit0, numBits uint, word uint32) uint32 {
	return (word >> bit0) & fieldMask(numBits)
}

func fieldMask(numBits uint) uint32 {
	if numBits >= 32 {
		return ^uint32(0)
	}
	return 1<<numBits - 1
}

// PackNode packs a hierarchy node word.
func PackNode(axis Axis, child0, child1 int) uint32 {
	w := uint32(1) << HierarchyIsNodeBit
	if axis == AxisY {
		w |= 1 << HierarchySplitCoordinateBit
	}
	w |= packBits(HierarchyChild0OffsetBit0, HierarchyChildOffsetNumBits, uint32(child0)) //nolint:gosec // range checked by packer
	w |= packBits(HierarchyChild1OffsetBit0, HierarchyChildOffsetNumBits, uint32(child1)) //nolint:gosec // range checked by packer
	return w
}

// PackLeaf packs a hierarchy leaf word.
func PackLeaf(curveListOffset, curveListSize int) uint32 {
	return packBits(HierarchyLeafCurveListBit0, HierarchyLeafCurveListNumBits, uint32(curveListOffset)) | //nolint:gosec // range checked by packer
		packBits(HierarchyLeafCurveListSizeBit0, HierarchyLeafCurveListSizeNumBits, uint32(curveListSize)) //nolint:gosec // range checked by packer
}

// IsNode reports whether a hierarchy word holds a node.
func IsNode(w uint32) bool {
	return unpackBits(HierarchyIsNodeBit, 1, w) != 0
}

// UnpackNode extracts the fields of a node word.
func UnpackNode(w uint32) (axis Axis, child0, child1 int) {
	if unpackBits(HierarchySplitCoordinateBit, 1, w) != 0 {
		axis = AxisY
	}
	child0 = int(unpackBits(HierarchyChild0OffsetBit0, HierarchyChildOffsetNumBits, w))
	child1 = int(unpackBits(HierarchyChild1OffsetBit0, HierarchyChildOffsetNumBits, w))
	return axis, child0, child1
}

// UnpackLeaf extracts the fields of a leaf word.
func UnpackLeaf(w uint32) (curveListOffset, curveListSize int) {
	curveListOffset = int(unpackBits(HierarchyLeafCurveListBit0, HierarchyLeafCurveListNumBits, w))
	curveListSize = int(unpackBits(HierarchyLeafCurveListSizeBit0, HierarchyLeafCurveListSizeNumBits, w))
	return curveListOffset, curveListSize
}

// PackWindingSample packs a winding number and a sample delta.
func PackWindingSample(winding int, dx, dy uint8) uint32 {
	return packBits(WindingValueBit0, WindingValueNumBits, uint32(winding+WindingBias)) | //nolint:gosec // range checked by packer
		packBits(WindingDeltaXBit0, WindingDeltaNumBits, uint32(dx)) |
		packBits(WindingDeltaYBit0, WindingDeltaNumBits, uint32(dy))
}

// UnpackWindingSample extracts the winding number and sample delta.
func UnpackWindingSample(w uint32) (winding int, dx, dy uint8) {
	winding = int(unpackBits(WindingValueBit0, WindingValueNumBits, w)) - WindingBias
	dx = uint8(unpackBits(WindingDeltaXBit0, WindingDeltaNumBits, w)) //nolint:gosec // 8-bit field
	dy = uint8(unpackBits(WindingDeltaYBit0, WindingDeltaNumBits, w)) //nolint:gosec // 8-bit field
	return winding, dx, dy
}

// PackCurveEntry packs a 16-bit curve entry.
func PackCurveEntry(kind CurveKind, location int) uint32 {
	e := packBits(CurveLocationBit0, CurveLocationNumBits, uint32(location)) //nolint:gosec // range checked by packer
	if kind == CurveQuadratic {
		e |= 1 << CurveIsQuadraticBit
	}
	return e
}

// UnpackCurveEntry extracts the kind and point location of a curve entry.
func UnpackCurveEntry(e uint32) (kind CurveKind, location int) {
	if unpackBits(CurveIsQuadraticBit, 1, e) != 0 {
		kind = CurveQuadratic
	}
	return kind, int(unpackBits(CurveLocationBit0, CurveLocationNumBits, e))
}

// PackCurvePair packs two curve entries into a curve list word.
func PackCurvePair(entry0, entry1 uint32) uint32 {
	return packBits(CurveEntry0Bit0, CurveNumBits, entry0) |
		packBits(CurveEntry1Bit0, CurveNumBits, entry1)
}

// UnpackCurvePair splits a curve list word into its two entries.
func UnpackCurvePair(w uint32) (entry0, entry1 uint32) {
	return unpackBits(CurveEntry0Bit0, CurveNumBits, w), unpackBits(CurveEntry1Bit0, CurveNumBits, w)
}

// PackPoint packs a glyph-local point.
func PackPoint(p Point) uint32 {
	return packBits(PointXCoordinateBit0, PointCoordinateNumBits, uint32(p.X)) | //nolint:gosec // range checked by packer
		packBits(PointYCoordinateBit0, PointCoordinateNumBits, uint32(p.Y)) //nolint:gosec // range checked by packer
}

// UnpackPoint extracts a glyph-local point.
func UnpackPoint(w uint32) Point {
	return Point{
		X: int(unpackBits(PointXCoordinateBit0, PointCoordinateNumBits, w)),
		Y: int(unpackBits(PointYCoordinateBit0, PointCoordinateNumBits, w)),
	}
}
