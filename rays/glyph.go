package rays

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/glyphrays"
)

// PathSink receives outline geometry one contour at a time.
type PathSink interface {
	StartContour(p Point) error
	AddLine(p Point) error
	AddQuadratic(c, p Point) error
}

var _ PathSink = (*Glyph)(nil)

// Glyph accumulates the outline of one glyph and, once finalized, holds
// its restricted-rays encoding.
//
// Geometry is added with StartContour, AddLine and AddQuadratic. Every
// contour must end where it started. Finalize builds the box hierarchy and
// packs it; after that the glyph is immutable and may be uploaded to any
// number of sinks.
//
// A Glyph is not safe for concurrent use. Independent glyphs share no
// state and may be built on separate goroutines.
type Glyph struct {
	curves   []Curve
	contours int

	open       bool
	start, pen Point

	finalized bool
	fill      FillRule
	box       Box
	cfg       Config
	hierarchy *hierarchy
	packed    *Packed
	stats     Stats
	packErr   error
}

// NewGlyph creates an empty glyph ready to accept contours.
func NewGlyph() *Glyph {
	return &Glyph{}
}

// StartContour opens a new contour at p. The previous contour, if any,
// must be closed.
func (g *Glyph) StartContour(p Point) error {
	if g.finalized {
		return ErrFinalized
	}
	if err := g.checkClosed(); err != nil {
		return err
	}
	if g.open {
		g.contours++
	}
	g.open = true
	g.start, g.pen = p, p
	return nil
}

// AddLine appends a line from the current point to p.
func (g *Glyph) AddLine(p Point) error {
	if err := g.checkEdge(); err != nil {
		return err
	}
	c := Line(g.pen, p)
	c.Contour = g.contours
	g.curves = append(g.curves, c)
	g.pen = p
	return nil
}

// AddQuadratic appends a quadratic curve from the current point to p with
// control point c.
func (g *Glyph) AddQuadratic(c, p Point) error {
	if err := g.checkEdge(); err != nil {
		return err
	}
	q := Quadratic(g.pen, c, p)
	q.Contour = g.contours
	g.curves = append(g.curves, q)
	g.pen = p
	return nil
}

func (g *Glyph) checkEdge() error {
	if g.finalized {
		return ErrFinalized
	}
	if !g.open {
		return ErrNoContour
	}
	return nil
}

func (g *Glyph) checkClosed() error {
	if g.open && g.pen != g.start {
		return fmt.Errorf("%w: contour %d ends at %v, started at %v",
			ErrContourNotClosed, g.contours, g.pen, g.start)
	}
	return nil
}

// Finalize builds and packs the glyph. minPt and maxPt give the glyph box
// in outline units; curves are translated so that minPt becomes the
// origin. unitsPerEM relates outline units to rendered pixels for the
// minimum box size; a value <= 0 disables that termination condition.
//
// cfg is copied: later changes to it do not affect this glyph.
//
// Finalize fails, leaving the glyph accumulating, on an invalid cfg, an
// open contour or inverted bounds. A glyph too complex to pack is still
// finalized; the capacity error is reported by Packed and Upload.
func (g *Glyph) Finalize(fill FillRule, minPt, maxPt Point, unitsPerEM float64, cfg Config) error {
	if g.finalized {
		return ErrFinalized
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := g.checkClosed(); err != nil {
		return err
	}
	if minPt.X > maxPt.X || minPt.Y > maxPt.Y {
		return fmt.Errorf("%w: min %v, max %v", ErrInvalidBounds, minPt, maxPt)
	}

	for i := range g.curves {
		g.curves[i] = g.curves[i].translate(minPt)
	}
	g.box = Box{Max: maxPt.Sub(minPt)}
	g.fill = fill
	g.cfg = cfg
	g.open = false
	g.finalized = true

	g.hierarchy = buildHierarchy(g.curves, g.box, fill, unitsPerEM, cfg)
	g.packed, g.stats, g.packErr = pack(g.hierarchy, g.curves, g.box)

	log := glyphrays.Logger()
	if g.packErr != nil {
		log.Debug("rays: glyph exceeds packed capacity",
			slog.Int("curves", len(g.curves)),
			slog.Int("leaves", g.stats.Leaves),
			slog.String("err", g.packErr.Error()))
		return nil
	}
	log.Debug("rays: glyph finalized",
		slog.Int("curves", g.stats.Curves),
		slog.Int("nodes", g.stats.Nodes),
		slog.Int("leaves", g.stats.Leaves),
		slog.Int("max_depth", g.stats.MaxDepth),
		slog.Int("words", g.stats.TotalWords()))
	return nil
}

// Finalized reports whether Finalize has succeeded.
func (g *Glyph) Finalized() bool {
	return g.finalized
}

// Curves returns a copy of the glyph's curves. After Finalize they are in
// glyph-local coordinates.
func (g *Glyph) Curves() []Curve {
	return slices.Clone(g.curves)
}

// Box returns the glyph-local root box. It is the zero Box before Finalize.
func (g *Glyph) Box() Box {
	return g.box
}

// FillRule returns the fill rule passed to Finalize.
func (g *Glyph) FillRule() FillRule {
	return g.fill
}

// Config returns the build policy the glyph was finalized with.
func (g *Glyph) Config() Config {
	return g.cfg
}

// Stats returns the shape of the packed glyph. Counts are partial when
// packing failed.
func (g *Glyph) Stats() Stats {
	return g.stats
}

// Packed returns the packed encoding of the glyph. The result is shared
// with the glyph and must not be modified.
func (g *Glyph) Packed() (*Packed, error) {
	if !g.finalized {
		return nil, ErrNotFinalized
	}
	if g.packErr != nil {
		return nil, g.packErr
	}
	return g.packed, nil
}
