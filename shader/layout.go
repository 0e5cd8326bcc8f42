// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/glyphrays/rays"
)

// constant is one WGSL const declaration.
type constant struct {
	name  string
	typ   string
	value int
}

// layoutConstants mirrors the packed layout of package rays.
func layoutConstants() []constant {
	u := func(name string, v int) constant { return constant{name, "u32", v} }
	i := func(name string, v int) constant { return constant{name, "i32", v} }
	return []constant{
		u("RR_HIERARCHY_IS_NODE_BIT", rays.HierarchyIsNodeBit),
		u("RR_HIERARCHY_SPLIT_COORDINATE_BIT", rays.HierarchySplitCoordinateBit),
		u("RR_HIERARCHY_CHILD0_OFFSET_BIT0", rays.HierarchyChild0OffsetBit0),
		u("RR_HIERARCHY_CHILD1_OFFSET_BIT0", rays.HierarchyChild1OffsetBit0),
		u("RR_HIERARCHY_CHILD_OFFSET_NUM_BITS", rays.HierarchyChildOffsetNumBits),
		u("RR_HIERARCHY_LEAF_CURVE_LIST_BIT0", rays.HierarchyLeafCurveListBit0),
		u("RR_HIERARCHY_LEAF_CURVE_LIST_NUM_BITS", rays.HierarchyLeafCurveListNumBits),
		u("RR_HIERARCHY_LEAF_CURVE_LIST_SIZE_BIT0", rays.HierarchyLeafCurveListSizeBit0),
		u("RR_HIERARCHY_LEAF_CURVE_LIST_SIZE_NUM_BITS", rays.HierarchyLeafCurveListSizeNumBits),
		u("RR_WINDING_VALUE_BIT0", rays.WindingValueBit0),
		u("RR_WINDING_VALUE_NUM_BITS", rays.WindingValueNumBits),
		i("RR_WINDING_BIAS", rays.WindingBias),
		u("RR_WINDING_DELTA_X_BIT0", rays.WindingDeltaXBit0),
		u("RR_WINDING_DELTA_Y_BIT0", rays.WindingDeltaYBit0),
		u("RR_WINDING_DELTA_NUM_BITS", rays.WindingDeltaNumBits),
		u("RR_WINDING_DELTA_DIV_FACTOR", rays.WindingDeltaDivFactor),
		u("RR_CURVE_NUM_BITS", rays.CurveNumBits),
		u("RR_CURVE_ENTRY0_BIT0", rays.CurveEntry0Bit0),
		u("RR_CURVE_ENTRY1_BIT0", rays.CurveEntry1Bit0),
		u("RR_CURVE_IS_QUADRATIC_BIT", rays.CurveIsQuadraticBit),
		u("RR_CURVE_LOCATION_BIT0", rays.CurveLocationBit0),
		u("RR_CURVE_LOCATION_NUM_BITS", rays.CurveLocationNumBits),
		u("RR_POINT_COORDINATE_NUM_BITS", rays.PointCoordinateNumBits),
		u("RR_POINT_X_COORDINATE_BIT0", rays.PointXCoordinateBit0),
		u("RR_POINT_Y_COORDINATE_BIT0", rays.PointYCoordinateBit0),
		u("RR_MAX_DEPTH", rays.MaxRecursionLimit),
	}
}

// Constants returns WGSL const declarations for the packed glyph layout.
func Constants() string {
	var b strings.Builder
	b.WriteString("// Restricted-rays packed glyph layout.\n")
	for _, c := range layoutConstants() {
		suffix := "u"
		if c.typ == "i32" {
			suffix = ""
		}
		fmt.Fprintf(&b, "const %s: %s = %d%s;\n", c.name, c.typ, c.value, suffix)
	}
	return b.String()
}
