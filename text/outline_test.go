package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphrays/rays"
)

// recordingSink records the calls made by Outline.Feed.
type recordingSink struct {
	calls []string
	err   error
}

func (s *recordingSink) StartContour(p rays.Point) error {
	s.calls = append(s.calls, "M"+p.String())
	return s.err
}

func (s *recordingSink) AddLine(p rays.Point) error {
	s.calls = append(s.calls, "L"+p.String())
	return s.err
}

func (s *recordingSink) AddQuadratic(c, p rays.Point) error {
	s.calls = append(s.calls, "Q"+c.String()+p.String())
	return s.err
}

func TestOutlineFeedClosesContours(t *testing.T) {
	b := newOutlineBuilder(1, 1000, 0)
	b.add(SegmentMoveTo, rays.Pt(0, 0))
	b.add(SegmentLineTo, rays.Pt(0, 10))
	b.add(SegmentQuadTo, rays.Pt(5, 15), rays.Pt(10, 10))
	b.add(SegmentMoveTo, rays.Pt(20, 0))
	b.add(SegmentLineTo, rays.Pt(20, 10))
	b.add(SegmentLineTo, rays.Pt(20, 0))
	o := b.out

	sink := &recordingSink{}
	if err := o.Feed(sink); err != nil {
		t.Fatalf("Feed: %v", err)
	}

	want := []string{
		"M(0,0)", "L(0,10)", "Q(5,15)(10,10)", "L(0,0)",
		"M(20,0)", "L(20,10)", "L(20,0)",
	}
	if len(sink.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", sink.calls, want)
	}
	for i := range want {
		if sink.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, sink.calls[i], want[i])
		}
	}

	if wantBounds := (rays.Box{Max: rays.Pt(20, 15)}); o.Bounds != wantBounds {
		t.Errorf("Bounds = %v, want %v", o.Bounds, wantBounds)
	}
	if o.ContourCount() != 2 {
		t.Errorf("ContourCount() = %d, want 2", o.ContourCount())
	}
}

func TestOutlineFeedError(t *testing.T) {
	b := newOutlineBuilder(3, 1000, 0)
	b.add(SegmentMoveTo, rays.Pt(0, 0))
	b.add(SegmentLineTo, rays.Pt(1, 1))

	boom := errors.New("boom")
	if err := b.out.Feed(&recordingSink{err: boom}); !errors.Is(err, boom) {
		t.Errorf("Feed() = %v, want sink error", err)
	}

	orphan := &Outline{Segments: []Segment{{Op: SegmentLineTo, Points: [2]rays.Point{rays.Pt(1, 1)}}}}
	if err := orphan.Feed(rays.NewGlyph()); !errors.Is(err, rays.ErrNoContour) {
		t.Errorf("Feed(line before move) = %v, want rays.ErrNoContour", err)
	}
}

func TestSegmentOpString(t *testing.T) {
	tests := []struct {
		op   SegmentOp
		want string
	}{
		{SegmentMoveTo, "MoveTo"},
		{SegmentLineTo, "LineTo"},
		{SegmentQuadTo, "QuadTo"},
		{SegmentOp(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("SegmentOp(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func sources(t *testing.T) map[string]Source {
	t.Helper()
	sf, err := NewSFNTSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewSFNTSource: %v", err)
	}
	gt, err := NewGoTextSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewGoTextSource: %v", err)
	}
	return map[string]Source{"sfnt": sf, "gotext": gt}
}

func TestSourcesEncodeGoRegular(t *testing.T) {
	for name, src := range sources(t) {
		t.Run(name, func(t *testing.T) {
			if src.UnitsPerEm() != 2048 {
				t.Errorf("UnitsPerEm() = %d, want 2048", src.UnitsPerEm())
			}

			for _, r := range "AoB8@g" {
				gid, ok := src.GlyphIndex(r)
				if !ok {
					t.Fatalf("GlyphIndex(%q) not found", r)
				}
				o, err := src.Outline(gid)
				if err != nil {
					t.Fatalf("Outline(%q): %v", r, err)
				}
				if o.IsEmpty() {
					t.Fatalf("Outline(%q) is empty", r)
				}
				if o.Bounds.Width() <= 0 || o.Bounds.Height() <= 0 {
					t.Errorf("Outline(%q) bounds %v", r, o.Bounds)
				}

				g, err := o.Encode(rays.FillNonZero, rays.DefaultConfig())
				if err != nil {
					t.Fatalf("Encode(%q): %v", r, err)
				}
				p, err := g.Packed()
				if err != nil {
					t.Fatalf("Packed(%q): %v", r, err)
				}
				leaves, err := rays.Decode(p.Block(), p.Width, p.Height)
				if err != nil {
					t.Fatalf("Decode(%q): %v", r, err)
				}

				inside := 0
				curves := g.Curves()
				for _, l := range leaves {
					if got := rays.WindingAt(l.SamplePosition(), curves); got != l.Winding {
						t.Errorf("%q leaf %v: winding %d, recomputed %d", r, l.Box, l.Winding, got)
					}
					if l.Winding != 0 {
						inside++
					}
				}
				if inside == 0 {
					t.Errorf("%q: no leaf sample lies inside the glyph", r)
				}
			}
		})
	}
}

func TestSourcesContours(t *testing.T) {
	tests := []struct {
		r        rune
		contours int
	}{
		{'l', 1},
		{'o', 2},
		{'B', 3},
		{'8', 3},
	}

	for name, src := range sources(t) {
		for _, tt := range tests {
			gid, ok := src.GlyphIndex(tt.r)
			if !ok {
				t.Fatalf("%s: GlyphIndex(%q) not found", name, tt.r)
			}
			o, err := src.Outline(gid)
			if err != nil {
				t.Fatalf("%s: Outline(%q): %v", name, tt.r, err)
			}
			if got := o.ContourCount(); got != tt.contours {
				t.Errorf("%s: %q has %d contours, want %d", name, tt.r, got, tt.contours)
			}
		}
	}
}

func TestSourcesAgree(t *testing.T) {
	srcs := sources(t)
	a, b := srcs["sfnt"], srcs["gotext"]

	for _, r := range "Hxy" {
		ga, _ := a.GlyphIndex(r)
		gb, _ := b.GlyphIndex(r)
		if ga != gb {
			t.Errorf("GlyphIndex(%q) = %d (sfnt), %d (gotext)", r, ga, gb)
			continue
		}
		oa, err := a.Outline(ga)
		if err != nil {
			t.Fatal(err)
		}
		ob, err := b.Outline(gb)
		if err != nil {
			t.Fatal(err)
		}

		near := func(p, q rays.Point) bool {
			dx, dy := p.X-q.X, p.Y-q.Y
			return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
		}
		if !near(oa.Bounds.Min, ob.Bounds.Min) || !near(oa.Bounds.Max, ob.Bounds.Max) {
			t.Errorf("%q bounds differ: %v (sfnt), %v (gotext)", r, oa.Bounds, ob.Bounds)
		}
	}
}

func TestSourceMissingGlyph(t *testing.T) {
	for name, src := range sources(t) {
		if _, ok := src.GlyphIndex('\U0010FFFD'); ok {
			t.Errorf("%s: GlyphIndex(private use) found", name)
		}
		_, err := EncodeRune(src, '\U0010FFFD', rays.FillNonZero, rays.DefaultConfig())
		var nf *GlyphNotFoundError
		if !errors.As(err, &nf) || !errors.Is(err, ErrGlyphNotFound) {
			t.Errorf("%s: EncodeRune(missing) = %v, want GlyphNotFoundError", name, err)
		}
	}
}

func TestSourceSpace(t *testing.T) {
	for name, src := range sources(t) {
		g, err := EncodeRune(src, ' ', rays.FillNonZero, rays.DefaultConfig())
		if err != nil {
			t.Fatalf("%s: EncodeRune(space): %v", name, err)
		}
		if s := g.Stats(); s.Leaves != 1 || s.Curves != 0 {
			t.Errorf("%s: space stats = %+v, want one empty leaf", name, s)
		}
	}
}

func TestNewSourceErrors(t *testing.T) {
	if _, err := NewSFNTSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewSFNTSource(nil) = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewGoTextSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewGoTextSource(nil) = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewSFNTSource([]byte("not a font")); err == nil {
		t.Error("NewSFNTSource(garbage) succeeded")
	}
	if _, err := NewGoTextSource([]byte("not a font")); err == nil {
		t.Error("NewGoTextSource(garbage) succeeded")
	}
}
