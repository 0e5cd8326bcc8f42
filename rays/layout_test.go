package rays

import "testing"

func TestLayoutLimits(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"MaxChildOffset", MaxChildOffset, 32767},
		{"MaxCurveListOffset", MaxCurveListOffset, 65535},
		{"MaxCurveListSize", MaxCurveListSize, 32767},
		{"MaxCurveLocation", MaxCurveLocation, 32767},
		{"MaxCoordinate", MaxCoordinate, 65535},
		{"MinWinding", MinWinding, -32768},
		{"MaxWinding", MaxWinding, 32767},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestPackExactBits(t *testing.T) {
	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"node x", PackNode(AxisX, 1, 2), 1<<31 | 1 | 2<<15},
		{"node y", PackNode(AxisY, 3, 5), 1<<31 | 1<<30 | 3 | 5<<15},
		{"node max", PackNode(AxisX, MaxChildOffset, MaxChildOffset), 0xBFFFFFFF},
		{"leaf", PackLeaf(10, 3), 10 | 3<<16},
		{"leaf max", PackLeaf(MaxCurveListOffset, MaxCurveListSize), 0x7FFFFFFF},
		{"winding zero", PackWindingSample(0, 0, 0), 32768},
		{"winding negative", PackWindingSample(-1, 128, 64), 32767 | 128<<16 | 64<<24},
		{"winding min", PackWindingSample(MinWinding, 255, 255), 0xFFFF0000},
		{"line entry", PackCurveEntry(CurveLine, 7), 7},
		{"quadratic entry", PackCurveEntry(CurveQuadratic, 7), 0x8007},
		{"curve pair", PackCurvePair(0x8001, 0x0002), 0x00028001},
		{"point", PackPoint(Pt(1, 2)), 1 | 2<<16},
		{"point max", PackPoint(Pt(MaxCoordinate, MaxCoordinate)), 0xFFFFFFFF},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %#08x, want %#08x", tt.name, tt.got, tt.want)
		}
	}
}

func TestNodeRoundTrip(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY} {
		for c0 := 0; c0 <= MaxChildOffset; c0 += 1021 {
			for _, c1 := range []int{0, 1, c0, MaxChildOffset} {
				w := PackNode(axis, c0, c1)
				if !IsNode(w) {
					t.Fatalf("IsNode(PackNode(%v, %d, %d)) = false", axis, c0, c1)
				}
				a, g0, g1 := UnpackNode(w)
				if a != axis || g0 != c0 || g1 != c1 {
					t.Fatalf("UnpackNode(PackNode(%v, %d, %d)) = %v, %d, %d", axis, c0, c1, a, g0, g1)
				}
			}
		}
	}
}

func TestLeafRoundTrip(t *testing.T) {
	for off := 0; off <= MaxCurveListOffset; off += 4099 {
		for _, size := range []int{0, 1, 2, 4097, MaxCurveListSize} {
			w := PackLeaf(off, size)
			if IsNode(w) {
				t.Fatalf("IsNode(PackLeaf(%d, %d)) = true", off, size)
			}
			gotOff, gotSize := UnpackLeaf(w)
			if gotOff != off || gotSize != size {
				t.Fatalf("UnpackLeaf(PackLeaf(%d, %d)) = %d, %d", off, size, gotOff, gotSize)
			}
		}
	}
}

func TestWindingSampleRoundTrip(t *testing.T) {
	windings := []int{MinWinding, -1000, -2, -1, 0, 1, 2, 1000, MaxWinding}
	for _, w := range windings {
		for d := 0; d < 256; d += 17 {
			dx, dy := uint8(d), uint8(255-d)
			gotW, gotDX, gotDY := UnpackWindingSample(PackWindingSample(w, dx, dy))
			if gotW != w || gotDX != dx || gotDY != dy {
				t.Fatalf("UnpackWindingSample(PackWindingSample(%d, %d, %d)) = %d, %d, %d",
					w, dx, dy, gotW, gotDX, gotDY)
			}
		}
	}
}

func TestCurveEntryRoundTrip(t *testing.T) {
	for _, kind := range []CurveKind{CurveLine, CurveQuadratic} {
		for loc := 0; loc <= MaxCurveLocation; loc += 509 {
			e := PackCurveEntry(kind, loc)
			if e > 0xFFFF {
				t.Fatalf("PackCurveEntry(%v, %d) = %#x, exceeds 16 bits", kind, loc, e)
			}
			k, l := UnpackCurveEntry(e)
			if k != kind || l != loc {
				t.Fatalf("UnpackCurveEntry(PackCurveEntry(%v, %d)) = %v, %d", kind, loc, k, l)
			}

			e0, e1 := UnpackCurvePair(PackCurvePair(e, PackCurveEntry(CurveLine, MaxCurveLocation-loc)))
			if e0 != e {
				t.Fatalf("first entry = %#x, want %#x", e0, e)
			}
			if _, l1 := UnpackCurveEntry(e1); l1 != MaxCurveLocation-loc {
				t.Fatalf("second entry location = %d, want %d", l1, MaxCurveLocation-loc)
			}
		}
	}
}

func TestPointRoundTrip(t *testing.T) {
	for x := 0; x <= MaxCoordinate; x += 4369 {
		for _, y := range []int{0, 1, x, MaxCoordinate} {
			p := Pt(x, y)
			if got := UnpackPoint(PackPoint(p)); got != p {
				t.Fatalf("UnpackPoint(PackPoint(%v)) = %v", p, got)
			}
		}
	}
}
