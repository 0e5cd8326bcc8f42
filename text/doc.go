// Package text loads glyph outlines from TrueType and OpenType fonts and
// feeds them into the rays encoder.
//
// Two outline sources are provided:
//
//   - SFNTSource: golang.org/x/image/font/sfnt (default)
//   - GoTextSource: github.com/go-text/typesetting
//
// Both return outlines in font design units with Y pointing up, which is
// the coordinate space rays.Glyph expects. Fonts with cubic outlines (CFF)
// are rejected with ErrCubicOutline.
//
// # Example usage
//
//	src, err := text.NewSFNTSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	g, err := text.EncodeRune(src, 'g', rays.FillNonZero, rays.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	attrs, err := g.Upload(store)
package text
