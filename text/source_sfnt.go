package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphrays/rays"
)

// SFNTSource loads outlines with golang.org/x/image/font/sfnt.
// It is safe for concurrent use.
type SFNTSource struct {
	mu   sync.Mutex
	font *sfnt.Font
	buf  sfnt.Buffer
	upem int
}

// NewSFNTSource parses TrueType or OpenType font data.
func NewSFNTSource(data []byte) (*SFNTSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &SFNTSource{font: f, upem: int(f.UnitsPerEm())}, nil
}

// UnitsPerEm returns the design grid size of the font.
func (s *SFNTSource) UnitsPerEm() int {
	return s.upem
}

// GlyphIndex maps a rune to a glyph.
func (s *SFNTSource) GlyphIndex(r rune) (GlyphID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gid, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Outline loads a glyph outline in design units.
func (s *SFNTSource) Outline(gid GlyphID) (*Outline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// At ppem == unitsPerEm one design unit is one 26.6 pixel.
	ppem := fixed.Int26_6(s.upem << 6)
	segments, err := s.font.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	b := newOutlineBuilder(gid, s.upem, len(segments))
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.add(SegmentMoveTo, sfntPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.add(SegmentLineTo, sfntPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.add(SegmentQuadTo, sfntPoint(seg.Args[0]), sfntPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			return nil, fmt.Errorf("%w: glyph %d", ErrCubicOutline, gid)
		}
	}
	return b.out, nil
}

// sfntPoint converts a y-down 26.6 point to design units, Y up.
func sfntPoint(p fixed.Point26_6) rays.Point {
	return rays.Pt(p.X.Round(), -p.Y.Round())
}
