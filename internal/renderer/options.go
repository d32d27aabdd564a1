// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderer

import (
	"fmt"

	"github.com/gogpu/gg"
)

// AaConfig selects the antialiasing method for a render.
type AaConfig int

const (
	// AaArea computes analytic area coverage in the compute pipeline.
	AaArea AaConfig = iota
	// AaMsaa8 renders with 8 samples per pixel.
	AaMsaa8
	// AaMsaa16 renders with 16 samples per pixel.
	AaMsaa16
)

// String returns the method name.
func (c AaConfig) String() string {
	switch c {
	case AaArea:
		return "area"
	case AaMsaa8:
		return "msaa8"
	case AaMsaa16:
		return "msaa16"
	default:
		return fmt.Sprintf("AaConfig(%d)", int(c))
	}
}

// PipelineMode returns the gg pipeline that implements the method.
// Area coverage is only produced by the compute pipeline; multisampling
// goes through render passes.
func (c AaConfig) PipelineMode() gg.PipelineMode {
	if c == AaArea {
		return gg.PipelineModeCompute
	}
	return gg.PipelineModeRenderPass
}

// AaSupport lists the antialiasing methods a renderer prepares pipelines for.
type AaSupport struct {
	Area   bool
	Msaa8  bool
	Msaa16 bool
}

// AreaOnly enables area antialiasing only.
func AreaOnly() AaSupport {
	return AaSupport{Area: true}
}

// AllAa enables every method.
func AllAa() AaSupport {
	return AaSupport{Area: true, Msaa8: true, Msaa16: true}
}

// Supports reports whether c is enabled.
func (s AaSupport) Supports(c AaConfig) bool {
	switch c {
	case AaArea:
		return s.Area
	case AaMsaa8:
		return s.Msaa8
	case AaMsaa16:
		return s.Msaa16
	}
	return false
}

func (s AaSupport) any() bool { return s.Area || s.Msaa8 || s.Msaa16 }

// Options configures a Renderer.
type Options struct {
	// UseCPU renders with gg's software rasterizer instead of the GPU
	// accelerator.
	UseCPU bool

	Antialiasing AaSupport

	// QueryCapacity is the number of timestamps per profiler frame.
	// Zero selects DefaultQueryCapacity.
	QueryCapacity uint32
}

// DefaultQueryCapacity holds the render scope and its three stages with
// room to spare.
const DefaultQueryCapacity = 64
