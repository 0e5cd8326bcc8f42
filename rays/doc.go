// Package rays encodes glyph outlines for restricted-rays rendering.
//
// A glyph is described by closed contours of lines and quadratic curves.
// Finalize partitions the glyph box into a hierarchy of boxes. Each leaf
// box lists every curve that touches it and stores the winding number at
// one sample point inside it, so a fragment shader can find the winding
// at any fragment by casting a short ray from the sample point against the
// leaf's curves only.
//
// # Packed Layout
//
// The glyph is uploaded as a single block of 32-bit words:
//
//	[hierarchy][points][curve lists]
//
// Offsets stored in the block are word indices from its start.
//
// Hierarchy words carry a node flag in bit 31. A node holds the split
// axis in bit 30 and the offsets of its two children in two 15-bit
// fields. A leaf holds a 16-bit curve list offset and a 15-bit curve count
// and is followed by a winding sample word: the winding number biased by
// 32768 in the low 16 bits, then 8-bit x and y sample deltas in units of
// 1/256 of the box size.
//
// Curve lists hold two 16-bit entries per word: a quadratic flag and a
// 15-bit location of the curve's first point. Points hold two 16-bit
// glyph-local coordinates.
//
// # Usage
//
//	g := rays.NewGlyph()
//	g.StartContour(rays.Pt(0, 0))
//	g.AddLine(rays.Pt(0, 10))
//	g.AddLine(rays.Pt(10, 10))
//	g.AddLine(rays.Pt(0, 0))
//	if err := g.Finalize(rays.FillNonZero, rays.Pt(0, 0), rays.Pt(10, 10), 2048, rays.DefaultConfig()); err != nil {
//	    return err
//	}
//	attrs, err := g.Upload(sink)
//
// Capacity failures are reported by Upload as errors matching ErrCapacity;
// callers can fall back to another glyph representation.
package rays
