package rays

import (
	"errors"
	"testing"
)

func TestSampleCandidates(t *testing.T) {
	if len(sampleCandidates) != 49 {
		t.Fatalf("len(sampleCandidates) = %d, want 49", len(sampleCandidates))
	}
	if c := sampleCandidates[0]; c != [2]uint8{128, 128} {
		t.Errorf("first candidate = %v, want box center", c)
	}

	seen := make(map[[2]uint8]bool)
	prev := 0
	for i, c := range sampleCandidates {
		if c[0] == 0 || c[1] == 0 {
			t.Errorf("candidate %d = %v lies on the box minimum", i, c)
		}
		if seen[c] {
			t.Errorf("candidate %v repeated", c)
		}
		seen[c] = true

		ex, ey := int(c[0])-128, int(c[1])-128
		d := ex*ex + ey*ey
		if d < prev {
			t.Errorf("candidate %d = %v is closer to the center than its predecessor", i, c)
		}
		prev = d
	}
}

func TestBoxSplit(t *testing.T) {
	tests := []struct {
		box    Box
		axis   Axis
		c0, c1 Box
	}{
		{
			Box{Max: Pt(10, 4)}, AxisX,
			Box{Max: Pt(5, 4)}, Box{Min: Pt(5, 0), Max: Pt(10, 4)},
		},
		{
			Box{Max: Pt(5, 2)}, AxisX,
			Box{Max: Pt(2, 2)}, Box{Min: Pt(2, 0), Max: Pt(5, 2)},
		},
		{
			Box{Min: Pt(1, 1), Max: Pt(4, 8)}, AxisY,
			Box{Min: Pt(1, 1), Max: Pt(4, 4)}, Box{Min: Pt(1, 4), Max: Pt(4, 8)},
		},
	}

	for _, tt := range tests {
		if got := tt.box.SplitAxis(); got != tt.axis {
			t.Errorf("%v.SplitAxis() = %v, want %v", tt.box, got, tt.axis)
		}
		c0, c1 := tt.box.Split(tt.axis)
		if c0 != tt.c0 || c1 != tt.c1 {
			t.Errorf("%v.Split(%v) = %v, %v, want %v, %v", tt.box, tt.axis, c0, c1, tt.c0, tt.c1)
		}
	}

	if got := (Box{Max: Pt(6, 6)}).SplitAxis(); got != AxisX {
		t.Errorf("square SplitAxis() = %v, want X", got)
	}
}

func TestIsLeaf(t *testing.T) {
	b := &builder{cfg: DefaultConfig(), minSize: 8}

	tests := []struct {
		name      string
		box       Box
		numCurves int
		depth     int
		want      bool
	}{
		{"splittable", Box{Max: Pt(100, 100)}, 10, 0, false},
		{"depth cap", Box{Max: Pt(100, 100)}, 10, DefaultMaxRecursion, true},
		{"below depth cap", Box{Max: Pt(100, 100)}, 10, DefaultMaxRecursion - 1, false},
		{"threshold", Box{Max: Pt(100, 100)}, DefaultSplitThreshold, 0, true},
		{"above threshold", Box{Max: Pt(100, 100)}, DefaultSplitThreshold + 1, 0, false},
		{"thin box", Box{Max: Pt(100, 7)}, 10, 0, true},
		{"at size floor", Box{Max: Pt(100, 8)}, 10, 0, false},
	}

	for _, tt := range tests {
		if got := b.isLeaf(tt.box, tt.numCurves, tt.depth); got != tt.want {
			t.Errorf("%s: isLeaf = %v, want %v", tt.name, got, tt.want)
		}
	}

	unit := &builder{cfg: DefaultConfig()}
	if !unit.isLeaf(Box{Max: Pt(1, 1)}, 10, 0) {
		t.Error("isLeaf(1x1 box) = false, want true")
	}
	if unit.isLeaf(Box{Max: Pt(2, 1)}, 10, 0) {
		t.Error("isLeaf(2x1 box) = true, want false with the size floor disabled")
	}
}

func TestAssignMargin(t *testing.T) {
	curves := []Curve{
		Line(Pt(0, 0), Pt(10, 0)),
		Line(Pt(12, 0), Pt(12, 10)),
		Quadratic(Pt(20, 0), Pt(11, 5), Pt(20, 10)),
	}
	b := &builder{curves: curves, margin: 1.5}
	box := Box{Max: Pt(10, 10)}

	got := b.assign(box, []int{0, 1, 2})
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("assign with margin = %v, want [0 2]", got)
	}

	b.margin = 2
	if got := b.assign(box, []int{0, 1, 2}); len(got) != 3 {
		t.Errorf("assign with wider margin = %v, want all curves", got)
	}
}

func TestDepthCap(t *testing.T) {
	cfg := Config{MaxRecursion: 3, SplitThreshold: 1, ExpectedMinRenderSize: DefaultExpectedMinRenderSize}
	g := ringGlyph(t, cfg)
	if d := g.Stats().MaxDepth; d > 3 {
		t.Errorf("MaxDepth = %d, want at most 3", d)
	}
	for i, l := range mustDecode(t, g) {
		if l.Box.Width() < 100 || l.Box.Height() < 100 {
			t.Errorf("leaf %d %v is smaller than three splits allow", i, l.Box)
		}
	}
}

func TestRowWindings(t *testing.T) {
	fine := Config{MaxRecursion: 10, SplitThreshold: 1, ExpectedMinRenderSize: DefaultExpectedMinRenderSize}

	zig := zigzag(t, 200)
	if err := zig.Finalize(FillOddEven, Pt(0, 0), Pt(200, 10), 0, fine); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	glyphs := map[string]*Glyph{
		"ring":        ringGlyph(t, DefaultConfig()),
		"ring fine":   ringGlyph(t, fine),
		"zigzag fine": zig,
	}

	for name, g := range glyphs {
		for _, n := range g.hierarchy.nodes {
			if !n.leaf {
				continue
			}
			rows := rowWindings{curves: g.curves, edges: n.curves}
			for _, c := range sampleCandidates {
				p := SamplePosition(n.box, c[0], c[1])
				if got, want := rows.at(p), WindingAt(p, g.curves); got != want {
					t.Errorf("%s: leaf %v candidate %v: winding %d, want %d", name, n.box, c, got, want)
				}
			}
			if rows.full > 7 {
				t.Errorf("%s: leaf %v evaluated the whole glyph %d times, want at most one per row", name, n.box, rows.full)
			}
		}
	}
}

// zigzag returns a single contour of n lines along the x axis.
func zigzag(t *testing.T, n int) *Glyph {
	t.Helper()
	g := NewGlyph()
	if err := g.StartContour(Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < n; i++ {
		if err := g.AddLine(Pt(i, (i%2)*10)); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddLine(Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCapacityFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		build func(t *testing.T) *Glyph
	}{
		{
			// The glyph box is smaller than the outline.
			name:  "coordinate",
			field: "coordinate",
			build: func(t *testing.T) *Glyph {
				g := NewGlyph()
				addPolygon(t, g, Pt(0, 0), Pt(0, 10), Pt(20, 10))
				if err := g.Finalize(FillNonZero, Pt(5, 0), Pt(10, 10), 0, DefaultConfig()); err != nil {
					t.Fatalf("Finalize: %v", err)
				}
				return g
			},
		},
		{
			// A full tree of depth 14: every box holds both diagonals.
			name:  "child offset",
			field: "child offset",
			build: func(t *testing.T) *Glyph {
				g := NewGlyph()
				addPolygon(t, g, Pt(0, 0), Pt(1024, 1024))
				cfg := Config{MaxRecursion: 14, SplitThreshold: 1, ExpectedMinRenderSize: DefaultExpectedMinRenderSize}
				if err := g.Finalize(FillNonZero, Pt(0, 0), Pt(1024, 1024), 0, cfg); err != nil {
					t.Fatalf("Finalize: %v", err)
				}
				return g
			},
		},
		{
			name:  "curve list size",
			field: "curve list size",
			build: func(t *testing.T) *Glyph {
				g := zigzag(t, 40000)
				cfg := Config{MaxRecursion: 0, SplitThreshold: 1, ExpectedMinRenderSize: DefaultExpectedMinRenderSize}
				if err := g.Finalize(FillNonZero, Pt(0, 0), Pt(40000, 10), 0, cfg); err != nil {
					t.Fatalf("Finalize: %v", err)
				}
				return g
			},
		},
		{
			// 20000 lines fit one list but need 40000 point words.
			name:  "curve location",
			field: "curve location",
			build: func(t *testing.T) *Glyph {
				g := zigzag(t, 20000)
				cfg := Config{MaxRecursion: 0, SplitThreshold: 1, ExpectedMinRenderSize: DefaultExpectedMinRenderSize}
				if err := g.Finalize(FillNonZero, Pt(0, 0), Pt(20000, 10), 0, cfg); err != nil {
					t.Fatalf("Finalize: %v", err)
				}
				return g
			},
		},
		{
			// Few points, but every leaf lists hundreds of fan lines.
			name:  "curve list offset",
			field: "curve list offset",
			build: func(t *testing.T) *Glyph {
				g := NewGlyph()
				for i := range 500 {
					addPolygon(t, g, Pt(0, i), Pt(1000, 1000-i))
				}
				cfg := Config{MaxRecursion: 8, SplitThreshold: 1, ExpectedMinRenderSize: DefaultExpectedMinRenderSize}
				if err := g.Finalize(FillNonZero, Pt(0, 0), Pt(1000, 1000), 0, cfg); err != nil {
					t.Fatalf("Finalize: %v", err)
				}
				return g
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build(t)
			if !g.Finalized() {
				t.Fatal("glyph not finalized")
			}

			_, err := g.Packed()
			var capErr *CapacityError
			if !errors.As(err, &capErr) || !errors.Is(err, ErrCapacity) {
				t.Fatalf("Packed() = %v, want *CapacityError", err)
			}
			if capErr.Field != tt.field {
				t.Errorf("Field = %q, want %q (%v)", capErr.Field, tt.field, err)
			}
			if capErr.Value <= capErr.Limit {
				t.Errorf("Value %d within Limit %d", capErr.Value, capErr.Limit)
			}

			sink := &recordingSink{}
			if _, err := g.Upload(sink); !errors.Is(err, ErrCapacity) {
				t.Errorf("Upload() = %v, want ErrCapacity", err)
			}
			if sink.calls != 0 || len(sink.words) != 0 {
				t.Errorf("sink received %d calls, %d words; want none", sink.calls, len(sink.words))
			}
		})
	}
}
