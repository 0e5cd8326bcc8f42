// Command glyphrays encodes the glyphs of a string into restricted-rays
// glyph data and reports what was packed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphrays"
	"github.com/gogpu/glyphrays/atlas"
	"github.com/gogpu/glyphrays/internal/config"
	"github.com/gogpu/glyphrays/rays"
	"github.com/gogpu/glyphrays/text"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file")
		fontPath   = flag.String("font", "", "TrueType font file (default: built-in Go Regular)")
		loader     = flag.String("loader", "", "font loader: sfnt or gotext")
		input      = flag.String("text", "Hello, world", "text to encode")
		fill       = flag.String("fill", "", "fill rule: nonzero, oddeven, complement-nonzero, complement-oddeven")
		threshold  = flag.Int("split", 0, "curve count split threshold")
		dump       = flag.Bool("dump", false, "print the leaves of every encoded glyph")
		verbose    = flag.Bool("v", false, "enable debug logging")
		saveConfig = flag.String("save-config", "", "write the effective config to this path and exit")
		save       = flag.Bool("save", false, "write the effective config to the user config directory and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the file.
	if *fontPath != "" {
		cfg.Font.Path = *fontPath
	}
	if *loader != "" {
		cfg.Font.Loader = *loader
	}
	if *fill != "" {
		cfg.Build.FillRule = *fill
	}
	if *threshold > 0 {
		cfg.Build.SplitThreshold = *threshold
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if *saveConfig != "" || *save {
		write := cfg.Save
		if *saveConfig != "" {
			write = func() error { return cfg.SaveTo(*saveConfig) }
		}
		if err := write(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		return
	}

	level, _ := cfg.LogLevel()
	glyphrays.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := run(os.Stdout, cfg, norm.NFC.String(*input), *dump); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, cfg *config.Config, s string, dump bool) error {
	data := goregular.TTF
	if cfg.Font.Path != "" {
		var err error
		if data, err = os.ReadFile(cfg.Font.Path); err != nil {
			return fmt.Errorf("read font: %w", err)
		}
	}

	src, err := openSource(cfg.Font.Loader, data)
	if err != nil {
		return err
	}
	return encode(w, src, fontHash(data), cfg, s, dump)
}

// encode uploads the glyph of every rune of s once. Glyphs the font lacks
// and glyphs too complex to pack are skipped with a warning.
func encode(w io.Writer, src text.Source, fontID uint64, cfg *config.Config, s string, dump bool) error {
	fillRule, _ := cfg.Fill()
	buildCfg := cfg.RaysConfig()

	store, err := atlas.NewStore(cfg.AtlasConfig())
	if err != nil {
		return err
	}
	cache := atlas.NewCache(store)
	skipped := 0

	for _, r := range s {
		gid, ok := src.GlyphIndex(r)
		if !ok {
			glyphrays.Logger().Warn("glyphrays: no glyph", "rune", string(r))
			skipped++
			continue
		}

		var built *rays.Glyph
		key := atlas.GlyphKey{FontID: fontID, GlyphID: uint16(gid), Fill: fillRule, Config: buildCfg}
		attrs, err := cache.Get(key, func() (*rays.Glyph, error) {
			o, err := src.Outline(gid)
			if err != nil {
				return nil, err
			}
			built, err = o.Encode(fillRule, buildCfg)
			return built, err
		})
		if errors.Is(err, rays.ErrCapacity) {
			glyphrays.Logger().Warn("glyphrays: glyph skipped", "rune", string(r), "err", err)
			skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("glyph %q: %w", r, err)
		}
		if built == nil {
			continue // already uploaded
		}

		st := built.Stats()
		fmt.Fprintf(w, "%q gid=%d offset=%d size=%dx%d curves=%d nodes=%d leaves=%d depth=%d words=%d\n",
			r, gid, attrs[rays.AttrGlyphOffset][0],
			attrs[rays.AttrGlyphWidth][0], attrs[rays.AttrGlyphHeight][0],
			st.Curves, st.Nodes, st.Leaves, st.MaxDepth, st.TotalWords())

		if dump {
			if err := dumpLeaves(w, built); err != nil {
				return fmt.Errorf("glyph %q: %w", r, err)
			}
		}
	}

	allocations, rejections, used := store.Stats()
	hits, misses := cache.Stats()
	fmt.Fprintf(w, "glyphs=%d skipped=%d words=%d (%.2f%%) allocations=%d rejections=%d cache hits=%d misses=%d\n",
		cache.GlyphCount(), skipped, used, store.Utilization()*100, allocations, rejections, hits, misses)
	return nil
}

func openSource(loader string, data []byte) (text.Source, error) {
	if loader == config.LoaderGoText {
		return text.NewGoTextSource(data)
	}
	return text.NewSFNTSource(data)
}

func dumpLeaves(w io.Writer, g *rays.Glyph) error {
	p, err := g.Packed()
	if err != nil {
		return err
	}
	leaves, err := rays.Decode(p.Block(), p.Width, p.Height)
	if err != nil {
		return err
	}
	for i, l := range leaves {
		fmt.Fprintf(w, "  leaf %d %v curves=%d winding=%d sample=(%d,%d)\n",
			i, l.Box, len(l.Curves), l.Winding, l.DX, l.DY)
	}
	return nil
}

func fontHash(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}
