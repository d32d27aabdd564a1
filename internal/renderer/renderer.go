// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package renderer draws gg scenes into a benchmark target and brackets
// every stage of the draw with profiler scopes.
//
// A render is recorded as one profiler frame:
//
//	render
//	├── clear   fill the target with the base color
//	├── encode  decode the scene into gg draw calls
//	└── raster  flush gg's pending GPU work into the target
//
// On the GPU the renderer shares the benchmark's device with gg's
// accelerator, so the timestamp passes and gg's own submissions land on
// the same queue.
package renderer

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/gpu"
	"github.com/gogpu/gg/scene"

	"github.com/gogpu/vellobench/internal/device"
	"github.com/gogpu/vellobench/internal/logging"
	"github.com/gogpu/vellobench/internal/profiler"
)

// Profiler scope labels.
const (
	ScopeRender = "render"
	ScopeClear  = "clear"
	ScopeEncode = "encode"
	ScopeRaster = "raster"
)

var (
	// ErrUnsupportedAa is returned for an antialiasing method the renderer
	// was not created with.
	ErrUnsupportedAa = errors.New("renderer: antialiasing method not enabled")

	// ErrSizeMismatch is returned when render params and target disagree
	// on the size.
	ErrSizeMismatch = errors.New("renderer: render size does not match target")

	// ErrNoDevice is returned by New when GPU rendering is requested
	// without a device.
	ErrNoDevice = errors.New("renderer: GPU rendering requires a device")

	// ErrNoAccelerator is returned by New for GPU rendering when gg has no
	// accelerator registered, either because GPU initialization failed or
	// because a CPU renderer detached it earlier in the process.
	ErrNoAccelerator = errors.New("renderer: gg GPU accelerator not registered")
)

// Renderer renders scenes through gg.
type Renderer struct {
	opts     Options
	dev      *device.Device
	profiler *profiler.Profiler

	// dc is reused across renders of the same size.
	dc     *gg.Context
	scenes *scene.GPUSceneRenderer
	width  uint32
	height uint32
}

// New creates a renderer on dev. dev may be nil when opts.UseCPU is set.
func New(dev *device.Device, opts Options) (*Renderer, error) {
	if !opts.Antialiasing.any() {
		return nil, fmt.Errorf("%w: no method enabled", ErrUnsupportedAa)
	}
	if !opts.UseCPU && dev == nil {
		return nil, ErrNoDevice
	}
	if opts.QueryCapacity == 0 {
		opts.QueryCapacity = DefaultQueryCapacity
	}

	if opts.UseCPU {
		// Without an accelerator every gg call rasterizes in software. gg
		// cannot re-register its accelerator, so GPU renderers created
		// later in the process fail with ErrNoAccelerator.
		gg.CloseAccelerator()
	} else {
		if gg.Accelerator() == nil {
			return nil, ErrNoAccelerator
		}
		// Rebinds the accelerator from any device a previous renderer used.
		if err := gpu.SetDeviceProvider(dev); err != nil {
			return nil, fmt.Errorf("renderer: share device with accelerator: %w", err)
		}
	}

	p, err := profiler.New(newBackend(dev, opts), profiler.DefaultSettings())
	if err != nil {
		return nil, fmt.Errorf("renderer: create profiler: %w", err)
	}
	return &Renderer{opts: opts, dev: dev, profiler: p}, nil
}

func newBackend(dev *device.Device, opts Options) profiler.Backend {
	if opts.UseCPU || !dev.SupportsTimestamps() {
		return profiler.NewHostBackend(opts.QueryCapacity)
	}
	b, err := profiler.NewTimestampBackend(dev.HalDevice(), dev.HalQueue(), opts.QueryCapacity)
	if err != nil {
		logging.L().Warn("renderer: GPU timestamps unavailable, timing on the host clock", "err", err)
		return profiler.NewHostBackend(opts.QueryCapacity)
	}
	return b
}

// Profiler returns the profiler the renderer records into.
func (r *Renderer) Profiler() *profiler.Profiler { return r.profiler }

// RenderToTexture draws s into target and ends a profiler frame.
func (r *Renderer) RenderToTexture(s *scene.Scene, target *Target, params RenderParams) error {
	if !r.opts.Antialiasing.Supports(params.Antialiasing) {
		return fmt.Errorf("%w: %s", ErrUnsupportedAa, params.Antialiasing)
	}
	if params.Width != target.Width || params.Height != target.Height {
		return fmt.Errorf("%w: params %dx%d, target %dx%d",
			ErrSizeMismatch, params.Width, params.Height, target.Width, target.Height)
	}

	dc := r.context(params.Width, params.Height)
	dc.SetPipelineMode(params.Antialiasing.PipelineMode())

	err := r.profiler.Scoped(ScopeRender, func() error {
		if err := r.profiler.Scoped(ScopeClear, func() error {
			dc.BeginGPUFrame()
			dc.ClearWithColor(params.BaseColor)
			return nil
		}); err != nil {
			return err
		}
		if err := r.profiler.Scoped(ScopeEncode, func() error {
			dc.SetTransform(matrix(params.Transform))
			defer dc.Identity()
			if err := r.scenes.RenderScene(s); err != nil {
				return fmt.Errorf("renderer: encode scene: %w", err)
			}
			return nil
		}); err != nil {
			return err
		}
		return r.profiler.Scoped(ScopeRaster, func() error {
			return flush(dc, target)
		})
	})
	if err != nil {
		return err
	}

	if err := r.profiler.EndFrame(); err != nil {
		if !errors.Is(err, profiler.ErrPendingFramesOverflow) {
			return fmt.Errorf("renderer: end frame: %w", err)
		}
		logging.L().Debug("renderer: profiler dropped a frame", "err", err)
	}
	return nil
}

// Pixmap returns the CPU-side image of the last render, or nil before the
// first one.
func (r *Renderer) Pixmap() *gg.Pixmap {
	if r.dc == nil {
		return nil
	}
	return r.dc.ResizeTarget()
}

// Close releases the drawing context and the profiler. gg's accelerator
// stays registered for the next renderer.
func (r *Renderer) Close() {
	if r.dc != nil {
		_ = r.dc.Close()
		r.dc = nil
	}
	r.profiler.Close()
}

func (r *Renderer) context(width, height uint32) *gg.Context {
	if r.dc != nil && r.width == width && r.height == height {
		return r.dc
	}
	if r.dc != nil {
		_ = r.dc.Close()
	}
	r.dc = gg.NewContext(int(width), int(height))
	r.scenes = scene.NewGPUSceneRenderer(r.dc)
	r.width, r.height = width, height
	return r.dc
}

func flush(dc *gg.Context, target *Target) error {
	var err error
	if target.OnGPU() {
		err = dc.FlushGPUWithView(target.view(), target.Width, target.Height)
	} else {
		err = dc.FlushGPU()
	}
	if errors.Is(err, gg.ErrFallbackToCPU) {
		// The software rasterizer already drew into the pixmap.
		return nil
	}
	if err != nil {
		return fmt.Errorf("renderer: flush: %w", err)
	}
	return nil
}

func matrix(a scene.Affine) gg.Matrix {
	return gg.Matrix{
		A: float64(a.A), B: float64(a.B), C: float64(a.C),
		D: float64(a.D), E: float64(a.E), F: float64(a.F),
	}
}
