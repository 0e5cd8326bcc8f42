// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu keeps packed glyph data in a GPU storage buffer.
//
// Store implements rays.Sink on top of a wgpu HAL device, so glyphs can be
// uploaded straight into the buffer a fragment shader reads:
//
//	store, err := gpu.NewStore(device, queue, atlas.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer store.Destroy()
//	attrs, err := glyph.Upload(store)
//
// A device shared with gogpu can be used through NewStoreFromProvider.
package gpu
