// Package glyphrays encodes glyph outlines into compact word arrays that a
// fragment shader can use to compute antialiased coverage by casting rays
// against a small, spatially local set of curves.
//
// # Overview
//
// A glyph's outline (closed contours of lines and quadratic curves) is
// partitioned into a hierarchy of axis-aligned boxes. Every leaf box carries
// the curves that intersect it together with the winding number at one sample
// point inside the box. A shader recovers the winding number at a fragment by
// starting from the leaf's sample winding and correcting for the curves crossed
// between the sample and the fragment.
//
// # Quick Start
//
//	g := rays.NewGlyph()
//	g.StartContour(rays.Pt(0, 0))
//	g.AddLine(rays.Pt(0, 10))
//	g.AddLine(rays.Pt(10, 10))
//	g.AddLine(rays.Pt(0, 0))
//
//	err := g.Finalize(rays.FillNonZero, rays.Pt(0, 0), rays.Pt(10, 10), 2048, rays.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := atlas.NewStoreDefault()
//	attrs, err := g.Upload(store)
//
// # Architecture
//
// The module is organized into:
//   - rays: accumulator, winding evaluator, hierarchy builder, packer (the core)
//   - atlas: CPU word store accepting packed glyph data
//   - gpu: storage-buffer backed store on a gogpu/wgpu HAL device
//   - shader: WGSL layout library matching the packed format
//   - text: font outline sources (x/image sfnt, go-text/typesetting)
//
// # Logging
//
// Logging is silent by default. Call [SetLogger] to enable it.
package glyphrays
