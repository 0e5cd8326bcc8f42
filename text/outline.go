package text

import (
	"fmt"

	"github.com/gogpu/glyphrays/rays"
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

// SegmentOp is the operation of an outline segment.
type SegmentOp uint8

const (
	// SegmentMoveTo starts a new contour.
	SegmentMoveTo SegmentOp = iota

	// SegmentLineTo draws a line to Points[0].
	SegmentLineTo

	// SegmentQuadTo draws a quadratic curve through control Points[0]
	// to Points[1].
	SegmentQuadTo
)

// String returns a string representation of the segment op.
func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "MoveTo"
	case SegmentLineTo:
		return "LineTo"
	case SegmentQuadTo:
		return "QuadTo"
	default:
		return "Unknown"
	}
}

// Segment is one outline segment in font design units, Y up.
type Segment struct {
	Op     SegmentOp
	Points [2]rays.Point
}

// Outline is a glyph outline in font design units, Y up.
type Outline struct {
	// GID is the glyph the outline belongs to.
	GID GlyphID

	// Segments holds the contours. Each contour starts with SegmentMoveTo
	// and is closed implicitly.
	Segments []Segment

	// Bounds is the bounding box of all segment points. It is the zero
	// Box for empty outlines.
	Bounds rays.Box

	// UnitsPerEm is the design grid size of the font.
	UnitsPerEm int
}

// IsEmpty returns true if the outline has no segments.
func (o *Outline) IsEmpty() bool {
	return len(o.Segments) == 0
}

// ContourCount returns the number of contours.
func (o *Outline) ContourCount() int {
	n := 0
	for _, s := range o.Segments {
		if s.Op == SegmentMoveTo {
			n++
		}
	}
	return n
}

// Feed writes the outline into sink, closing every contour whose last
// point differs from its first with a line.
func (o *Outline) Feed(sink rays.PathSink) error {
	var start, pen rays.Point
	open := false

	closeContour := func() error {
		if open && pen != start {
			return sink.AddLine(start)
		}
		return nil
	}

	for i, s := range o.Segments {
		var err error
		switch s.Op {
		case SegmentMoveTo:
			if err = closeContour(); err == nil {
				err = sink.StartContour(s.Points[0])
			}
			start, pen, open = s.Points[0], s.Points[0], true
		case SegmentLineTo:
			err = sink.AddLine(s.Points[0])
			pen = s.Points[0]
		case SegmentQuadTo:
			err = sink.AddQuadratic(s.Points[0], s.Points[1])
			pen = s.Points[1]
		default:
			err = fmt.Errorf("text: unknown segment op %d", s.Op)
		}
		if err != nil {
			return fmt.Errorf("text: glyph %d segment %d: %w", o.GID, i, err)
		}
	}
	return closeContour()
}

// Encode builds a finalized glyph from the outline. The glyph box is the
// outline bounds.
func (o *Outline) Encode(fill rays.FillRule, cfg rays.Config) (*rays.Glyph, error) {
	g := rays.NewGlyph()
	if err := o.Feed(g); err != nil {
		return nil, err
	}
	if err := g.Finalize(fill, o.Bounds.Min, o.Bounds.Max, float64(o.UnitsPerEm), cfg); err != nil {
		return nil, fmt.Errorf("text: glyph %d: %w", o.GID, err)
	}
	return g, nil
}

// outlineBuilder accumulates segments and their bounds.
type outlineBuilder struct {
	out   *Outline
	first bool
}

func newOutlineBuilder(gid GlyphID, unitsPerEm, capacity int) *outlineBuilder {
	return &outlineBuilder{
		out: &Outline{
			GID:        gid,
			Segments:   make([]Segment, 0, capacity),
			UnitsPerEm: unitsPerEm,
		},
		first: true,
	}
}

func (b *outlineBuilder) add(op SegmentOp, pts ...rays.Point) {
	s := Segment{Op: op}
	copy(s.Points[:], pts)
	b.out.Segments = append(b.out.Segments, s)

	for _, p := range pts {
		if b.first {
			b.out.Bounds = rays.Box{Min: p, Max: p}
			b.first = false
			continue
		}
		bb := &b.out.Bounds
		bb.Min = rays.Pt(min(bb.Min.X, p.X), min(bb.Min.Y, p.Y))
		bb.Max = rays.Pt(max(bb.Max.X, p.X), max(bb.Max.Y, p.Y))
	}
}

// Source provides glyph outlines from a parsed font.
type Source interface {
	// GlyphIndex maps a rune to a glyph. ok is false if the font has no
	// glyph for r.
	GlyphIndex(r rune) (gid GlyphID, ok bool)

	// Outline loads the outline of a glyph.
	Outline(gid GlyphID) (*Outline, error)

	// UnitsPerEm returns the design grid size of the font.
	UnitsPerEm() int
}

// EncodeRune loads the glyph for r from src and encodes it.
func EncodeRune(src Source, r rune, fill rays.FillRule, cfg rays.Config) (*rays.Glyph, error) {
	gid, ok := src.GlyphIndex(r)
	if !ok {
		return nil, &GlyphNotFoundError{Rune: r}
	}
	o, err := src.Outline(gid)
	if err != nil {
		return nil, err
	}
	return o.Encode(fill, cfg)
}
