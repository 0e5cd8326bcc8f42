// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL shader sources.

//go:embed restricted_rays.wgsl
var libraryShaderSource string

//go:embed leaf_lookup.wgsl
var lookupShaderSource string

// LookupWorkgroupSize is the workgroup size of the lookup kernel.
const LookupWorkgroupSize = 64

// LookupParamsSize is the size in bytes of the lookup kernel's uniform
// block: glyph offset, width, height and query count.
const LookupParamsSize = 16

// Library returns WGSL for reading restricted-rays glyph data: the layout
// constants followed by the access functions. The including shader must
// declare glyph_data as array<u32>.
func Library() string {
	return Constants() + "\n" + libraryShaderSource
}

// LookupSource returns the complete WGSL source of the leaf lookup kernel.
func LookupSource() string {
	return Library() + "\n" + lookupShaderSource
}

// Compile compiles WGSL source to SPIR-V uint32 slice.
func Compile(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// NewLookupModule compiles the lookup kernel and creates a shader module
// on device. The caller destroys the module.
func NewLookupModule(device hal.Device) (hal.ShaderModule, error) {
	spirv, err := Compile(LookupSource())
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "glyphrays_leaf_lookup",
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
}

// LookupParams builds the uniform block of the lookup kernel.
func LookupParams(glyphOffset, width, height, count uint32) []byte {
	b := make([]byte, 0, LookupParamsSize)
	for _, v := range [4]uint32{glyphOffset, width, height, count} {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return b
}
