package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrCubicOutline is returned for glyphs drawn with cubic curves, as in
	// CFF-flavored fonts. Only lines and quadratics can be encoded.
	ErrCubicOutline = errors.New("text: cubic outlines are not supported")

	// ErrNoOutline is returned for glyphs without vector outline data,
	// such as bitmap or SVG glyphs.
	ErrNoOutline = errors.New("text: glyph has no outline")

	// ErrGlyphNotFound is matched by every *GlyphNotFoundError.
	ErrGlyphNotFound = errors.New("text: glyph not found")
)

// GlyphNotFoundError is returned when a font has no glyph for a rune.
type GlyphNotFoundError struct {
	Rune rune
}

func (e *GlyphNotFoundError) Error() string {
	return fmt.Sprintf("text: no glyph for %q (U+%04X)", e.Rune, e.Rune)
}

// Is reports whether target is ErrGlyphNotFound.
func (e *GlyphNotFoundError) Is(target error) bool {
	return target == ErrGlyphNotFound
}
