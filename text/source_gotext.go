package text

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/glyphrays/rays"
)

// GoTextSource loads outlines with github.com/go-text/typesetting.
type GoTextSource struct {
	face *font.Face
	upem int
}

// NewGoTextSource parses TrueType or OpenType font data.
func NewGoTextSource(data []byte) (*GoTextSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &GoTextSource{face: face, upem: int(face.Upem())}, nil
}

// UnitsPerEm returns the design grid size of the font.
func (s *GoTextSource) UnitsPerEm() int {
	return s.upem
}

// GlyphIndex maps a rune to a glyph.
func (s *GoTextSource) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := s.face.Cmap.Lookup(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Outline loads a glyph outline in design units.
func (s *GoTextSource) Outline(gid GlyphID) (*Outline, error) {
	outline, ok := s.face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	b := newOutlineBuilder(gid, s.upem, len(outline.Segments))
	for _, seg := range outline.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			b.add(SegmentMoveTo, goTextPoint(seg.Args[0]))
		case opentype.SegmentOpLineTo:
			b.add(SegmentLineTo, goTextPoint(seg.Args[0]))
		case opentype.SegmentOpQuadTo:
			b.add(SegmentQuadTo, goTextPoint(seg.Args[0]), goTextPoint(seg.Args[1]))
		case opentype.SegmentOpCubeTo:
			return nil, fmt.Errorf("%w: glyph %d", ErrCubicOutline, gid)
		}
	}
	return b.out, nil
}

func goTextPoint(p opentype.SegmentPoint) rays.Point {
	return rays.Pt(int(math.Round(float64(p.X))), int(math.Round(float64(p.Y))))
}
