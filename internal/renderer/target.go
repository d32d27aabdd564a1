// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderer

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/vellobench/internal/device"
)

// RenderParams describes one render.
type RenderParams struct {
	// BaseColor fills the target before the scene is drawn.
	BaseColor gg.RGBA

	Width  uint32
	Height uint32

	Antialiasing AaConfig

	// Transform is applied to the whole scene.
	Transform scene.Affine
}

// Target is the surface a render lands in: a GPU texture when a device is
// present, the renderer's own pixmap otherwise.
type Target struct {
	Width  uint32
	Height uint32

	tex *device.Target
}

// NewTarget allocates a width×height target on dev. With a nil dev the
// target is host-only and renders stay in CPU memory.
func NewTarget(dev *device.Device, width, height uint32) (*Target, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("renderer: invalid target size %dx%d", width, height)
	}
	t := &Target{Width: width, Height: height}
	if dev == nil {
		return t, nil
	}
	tex, err := dev.CreateTarget(width, height)
	if err != nil {
		return nil, err
	}
	t.tex = tex
	return t, nil
}

// OnGPU reports whether the target is backed by a texture.
func (t *Target) OnGPU() bool { return t.tex != nil && t.tex.View != nil }

// view returns the texture view as gg's opaque handle, or a nil handle for
// host-only targets.
func (t *Target) view() gpucontext.TextureView {
	if !t.OnGPU() {
		return gpucontext.TextureView{}
	}
	return gpucontext.NewTextureView(unsafe.Pointer(t.tex.View)) //nolint:gosec // handle wraps a live *wgpu.TextureView
}

// Release frees the texture. Safe to call more than once.
func (t *Target) Release() {
	if t == nil || t.tex == nil {
		return
	}
	t.tex.Release()
	t.tex = nil
}
