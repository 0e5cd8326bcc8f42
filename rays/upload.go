package rays

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/glyphrays"
)

// Sink receives packed glyph data. It is typically a glyph atlas backed by
// CPU or GPU memory.
type Sink interface {
	// AllocateData stores words contiguously and returns the word offset of
	// the first one. An error means nothing was stored.
	AllocateData(words []uint32) (int, error)
}

// Attributes holds the per-vertex values of the quad that draws a glyph,
// indexed by attribute and then by corner. Corners are ordered
// min-min, max-min, min-max, max-max.
type Attributes [NumAttributes][4]uint32

// Upload stores the packed glyph in sink as one block and returns the
// shader attributes locating it.
//
// Upload returns ErrNotFinalized before Finalize, the *CapacityError of a
// glyph that could not be packed, or an error wrapping ErrSinkRejected when
// the sink refuses the data. On failure nothing has been written to the
// sink by Upload.
func (g *Glyph) Upload(sink Sink) (Attributes, error) {
	var attrs Attributes

	p, err := g.Packed()
	if err != nil {
		if errors.Is(err, ErrCapacity) {
			glyphrays.Logger().Warn("rays: glyph not uploaded",
				slog.String("err", err.Error()))
		}
		return attrs, err
	}

	offset, err := sink.AllocateData(p.Block())
	if err != nil {
		glyphrays.Logger().Warn("rays: sink rejected glyph",
			slog.Int("words", p.Len()),
			slog.String("err", err.Error()))
		return attrs, fmt.Errorf("%w: %w", ErrSinkRejected, err)
	}
	if offset < 0 {
		return attrs, fmt.Errorf("%w: negative offset %d", ErrSinkRejected, offset)
	}

	w, h := uint32(p.Width), uint32(p.Height) //nolint:gosec // checked by pack
	attrs[AttrGlyphCoordinateX] = [4]uint32{0, w, 0, w}
	attrs[AttrGlyphCoordinateY] = [4]uint32{0, 0, h, h}
	attrs[AttrGlyphWidth] = [4]uint32{w, w, w, w}
	attrs[AttrGlyphHeight] = [4]uint32{h, h, h, h}
	o := uint32(offset) //nolint:gosec // non-negative
	attrs[AttrGlyphOffset] = [4]uint32{o, o, o, o}

	glyphrays.Logger().Debug("rays: glyph uploaded",
		slog.Int("offset", offset),
		slog.Int("words", p.Len()))
	return attrs, nil
}
