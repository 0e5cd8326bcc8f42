package atlas

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glyphrays/rays"
)

// GlyphKey identifies an encoded glyph: the glyph, its font and the
// build policy it was encoded with.
type GlyphKey struct {
	// FontID identifies the font (hash of font data or path). The font
	// fixes the units per EM passed to Finalize.
	FontID uint64

	// GlyphID is the glyph index within the font.
	GlyphID uint16

	// Fill is the fill rule the glyph was built with.
	Fill rays.FillRule

	// Config is the build policy the glyph was built with.
	Config rays.Config
}

// BuildFunc produces a finalized glyph on a cache miss.
type BuildFunc func() (*rays.Glyph, error)

// Cache uploads each glyph once and remembers its attributes.
type Cache struct {
	mu     sync.RWMutex
	sink   rays.Sink
	lookup map[GlyphKey]rays.Attributes

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates a cache that uploads into sink.
func NewCache(sink rays.Sink) *Cache {
	return &Cache{
		sink:   sink,
		lookup: make(map[GlyphKey]rays.Attributes),
	}
}

// Get returns the attributes of a glyph, building and uploading it with
// build if it is not cached yet. Failed builds and uploads are not cached.
func (c *Cache) Get(key GlyphKey, build BuildFunc) (rays.Attributes, error) {
	// Fast path: check if already cached (read lock)
	c.mu.RLock()
	if attrs, ok := c.lookup[key]; ok {
		c.mu.RUnlock()
		c.hits.Add(1)
		return attrs, nil
	}
	c.mu.RUnlock()

	c.misses.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if attrs, ok := c.lookup[key]; ok {
		return attrs, nil
	}

	g, err := build()
	if err != nil {
		return rays.Attributes{}, fmt.Errorf("atlas: build glyph %d: %w", key.GlyphID, err)
	}
	attrs, err := g.Upload(c.sink)
	if err != nil {
		return rays.Attributes{}, err
	}

	c.lookup[key] = attrs
	return attrs, nil
}

// HasGlyph returns true if the glyph is already cached.
func (c *Cache) HasGlyph(key GlyphKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.lookup[key]
	return ok
}

// GlyphCount returns the number of cached glyphs.
func (c *Cache) GlyphCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lookup)
}

// Clear forgets all cached glyphs. The sink is not touched.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lookup = make(map[GlyphKey]rays.Attributes)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
