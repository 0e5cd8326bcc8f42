package atlas

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glyphrays"
)

// Config holds store configuration.
type Config struct {
	// Capacity is the store size in 32-bit words.
	// Default: 1 << 20
	Capacity int

	// Alignment is the word alignment of every allocation. Must be a power
	// of 2.
	// Default: 1
	Alignment int
}

// Capacity limits.
const (
	DefaultCapacity = 1 << 20
	MaxCapacity     = 1 << 28
	MaxAlignment    = 256
)

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:  DefaultCapacity,
		Alignment: 1,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return &ConfigError{Field: "Capacity", Reason: "must be at least 1"}
	}
	if c.Capacity > MaxCapacity {
		return &ConfigError{Field: "Capacity", Reason: fmt.Sprintf("must be at most %d", MaxCapacity)}
	}
	if c.Alignment < 1 || c.Alignment > MaxAlignment {
		return &ConfigError{Field: "Alignment", Reason: fmt.Sprintf("must be between 1 and %d", MaxAlignment)}
	}
	if c.Alignment&(c.Alignment-1) != 0 {
		return &ConfigError{Field: "Alignment", Reason: "must be power of 2"}
	}
	return nil
}

// Store is a CPU-side glyph data store. Allocations are appended and
// never freed individually; Reset discards everything.
//
// Store implements rays.Sink and is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	config Config
	data   []uint32

	// dirtyLo and dirtyHi bound the words written since the last
	// MarkClean; dirtyLo == dirtyHi means clean.
	dirtyLo, dirtyHi int

	// Statistics (atomic for lock-free reads)
	allocations atomic.Uint64
	rejections  atomic.Uint64
}

// NewStore creates a new store.
func NewStore(config Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		config: config,
		data:   make([]uint32, 0, min(config.Capacity, 4096)),
	}, nil
}

// NewStoreDefault creates a new store with default configuration.
func NewStoreDefault() *Store {
	s, _ := NewStore(DefaultConfig())
	return s
}

// AllocateData appends words and returns the offset of the first one.
// The allocation either fits entirely or fails with a *FullError and
// leaves the store unchanged.
func (s *Store) AllocateData(words []uint32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := alignUp(len(s.data), s.config.Alignment)
	end := start + len(words)
	if end > s.config.Capacity {
		s.rejections.Add(1)
		err := &FullError{Requested: end - len(s.data), Available: s.config.Capacity - len(s.data)}
		glyphrays.Logger().Warn("atlas: allocation rejected",
			slog.Int("requested", err.Requested),
			slog.Int("available", err.Available))
		return 0, err
	}

	for len(s.data) < start {
		s.data = append(s.data, 0)
	}
	s.data = append(s.data, words...)
	s.markDirty(start, end)
	s.allocations.Add(1)
	return start, nil
}

func (s *Store) markDirty(lo, hi int) {
	if s.dirtyLo == s.dirtyHi {
		s.dirtyLo, s.dirtyHi = lo, hi
		return
	}
	s.dirtyLo = min(s.dirtyLo, lo)
	s.dirtyHi = max(s.dirtyHi, hi)
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// Words returns a copy of n words starting at offset.
func (s *Store) Words(offset, n int) ([]uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 || n < 0 || offset+n > len(s.data) {
		return nil, fmt.Errorf("%w: [%d,+%d) of %d words", ErrOutOfRange, offset, n, len(s.data))
	}
	out := make([]uint32, n)
	copy(out, s.data[offset:offset+n])
	return out, nil
}

// Data returns a copy of all stored words.
func (s *Store) Data() []uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uint32, len(s.data))
	copy(out, s.data)
	return out
}

// Len returns the number of words in use, including alignment padding.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Available returns the number of free words.
func (s *Store) Available() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Capacity - len(s.data)
}

// Utilization returns the fraction of the capacity in use.
func (s *Store) Utilization() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return float64(len(s.data)) / float64(s.config.Capacity)
}

// DirtyRange returns the words written since the last MarkClean.
// ok is false when nothing was written.
func (s *Store) DirtyRange() (lo, hi int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirtyLo, s.dirtyHi, s.dirtyLo != s.dirtyHi
}

// TakeDirty returns a copy of the dirty words with their offset and marks
// the store clean in one step.
func (s *Store) TakeDirty() (offset int, words []uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirtyLo == s.dirtyHi {
		return 0, nil
	}
	offset = s.dirtyLo
	words = make([]uint32, s.dirtyHi-s.dirtyLo)
	copy(words, s.data[s.dirtyLo:s.dirtyHi])
	s.dirtyLo, s.dirtyHi = 0, 0
	return offset, words
}

// MarkClean marks all words as synchronized.
func (s *Store) MarkClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirtyLo, s.dirtyHi = 0, 0
}

// Reset discards all stored words and statistics.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = s.data[:0]
	s.dirtyLo, s.dirtyHi = 0, 0
	s.allocations.Store(0)
	s.rejections.Store(0)
}

// Stats returns allocation statistics.
func (s *Store) Stats() (allocations, rejections uint64, used int) {
	s.mu.RLock()
	used = len(s.data)
	s.mu.RUnlock()

	return s.allocations.Load(), s.rejections.Load(), used
}

// Config returns the store configuration.
func (s *Store) Config() Config {
	return s.config
}
