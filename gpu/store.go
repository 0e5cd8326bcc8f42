// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glyphrays"
	"github.com/gogpu/glyphrays/atlas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHAL is returned when a device provider does not expose HAL types.
var ErrNoHAL = errors.New("gpu: provider does not expose HAL types")

// ErrDestroyed is returned when a destroyed store is used.
var ErrDestroyed = errors.New("gpu: store destroyed")

// Store is a glyph data store backed by a GPU storage buffer.
//
// Allocation bookkeeping and a CPU copy live in an atlas.Store; every
// successful allocation is written through to the buffer, which shaders
// bind as array<u32>. Store implements rays.Sink and is safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	buffer hal.Buffer
	cpu    *atlas.Store

	// Statistics (atomic for lock-free reads)
	writes       atomic.Uint64
	bytesWritten atomic.Uint64
}

// NewStore creates a storage buffer of config.Capacity words on device.
func NewStore(device hal.Device, queue hal.Queue, config atlas.Config) (*Store, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu: nil device or queue")
	}
	cpu, err := atlas.NewStore(config)
	if err != nil {
		return nil, err
	}

	size := uint64(config.Capacity) * 4 //nolint:gosec // capacity validated positive
	buffer, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyphrays_data",
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create glyph data buffer: %w", err)
	}

	glyphrays.Logger().Debug("gpu: glyph data buffer created",
		slog.Uint64("bytes", size))

	return &Store{
		device: device,
		queue:  queue,
		buffer: buffer,
		cpu:    cpu,
	}, nil
}

// NewStoreFromProvider creates a store on the device of a shared
// provider (e.g., gogpu). The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewStoreFromProvider(provider gpucontext.DeviceProvider, config atlas.Config) (*Store, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewStore(device, queue, config)
}

// AllocateData stores words in the buffer and returns their word offset.
func (s *Store) AllocateData(words []uint32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer == nil {
		return 0, ErrDestroyed
	}
	offset, err := s.cpu.AllocateData(words)
	if err != nil {
		return 0, err
	}
	s.flushLocked()
	return offset, nil
}

// Flush writes any words the CPU copy holds that the buffer does not.
// It is only needed after writing to CPU() directly.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer == nil {
		return ErrDestroyed
	}
	s.flushLocked()
	return nil
}

func (s *Store) flushLocked() {
	offset, words := s.cpu.TakeDirty()
	if len(words) == 0 {
		return
	}
	data := encodeWords(words)
	s.queue.WriteBuffer(s.buffer, uint64(offset)*4, data) //nolint:gosec // offset is non-negative
	s.writes.Add(1)
	s.bytesWritten.Add(uint64(len(data)))
}

// encodeWords converts words to the little-endian bytes of an
// array<u32> binding.
func encodeWords(words []uint32) []byte {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	return data
}

// Buffer returns the storage buffer. It is nil after Destroy.
func (s *Store) Buffer() hal.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// CPU returns the CPU copy of the buffer contents.
func (s *Store) CPU() *atlas.Store {
	return s.cpu
}

// Stats returns the number of buffer writes and bytes written.
func (s *Store) Stats() (writes, bytes uint64) {
	return s.writes.Load(), s.bytesWritten.Load()
}

// Reset discards all glyph data. The buffer keeps its size; stale
// contents are overwritten by later allocations.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cpu.Reset()
}

// Destroy releases the buffer. The device and queue are not owned by the
// store.
func (s *Store) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer != nil {
		s.device.DestroyBuffer(s.buffer)
		s.buffer = nil
	}
}
