// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader provides WGSL for reading restricted-rays glyph data.
//
// The layout constants are generated from package rays, so shaders and
// the packer cannot drift apart. Library returns the access functions for
// inclusion in a fragment shader; LookupSource returns a compute kernel
// that resolves query points to leaves, compiled with naga by Compile.
package shader
