// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderer

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/gogpu/vellobench/internal/device"
	"github.com/gogpu/vellobench/internal/profiler"
)

// stubAccelerator accepts nothing, so gg draws in software while it is
// registered.
type stubAccelerator struct {
	closed int
}

func (a *stubAccelerator) Name() string                        { return "stub" }
func (a *stubAccelerator) Init() error                         { return nil }
func (a *stubAccelerator) Close()                              { a.closed++ }
func (a *stubAccelerator) CanAccelerate(gg.AcceleratedOp) bool { return false }
func (a *stubAccelerator) FillPath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *stubAccelerator) StrokePath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *stubAccelerator) FillShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *stubAccelerator) StrokeShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *stubAccelerator) Flush(gg.GPURenderTarget) error { return nil }

func registerStub(t *testing.T) *stubAccelerator {
	t.Helper()
	stub := &stubAccelerator{}
	if err := gg.RegisterAccelerator(stub); err != nil {
		t.Fatalf("RegisterAccelerator: %v", err)
	}
	t.Cleanup(gg.CloseAccelerator)
	return stub
}

// gpuRenderer builds a GPU-mode renderer without a real device, the state
// New leaves behind after sharing the device with the accelerator.
func gpuRenderer(t *testing.T) *Renderer {
	t.Helper()
	p, err := profiler.New(profiler.NewHostBackend(DefaultQueryCapacity), profiler.DefaultSettings())
	if err != nil {
		t.Fatalf("profiler.New: %v", err)
	}
	return &Renderer{opts: Options{Antialiasing: AreaOnly()}, profiler: p}
}

func TestCloseKeepsAccelerator(t *testing.T) {
	stub := registerStub(t)

	for run := range 2 {
		r := gpuRenderer(t)
		target := newHostTarget(t, 8, 8)
		params := RenderParams{Width: 8, Height: 8, Antialiasing: AaArea, Transform: scene.IdentityAffine()}
		if err := r.RenderToTexture(redSquare(0, 0, 4), target, params); err != nil {
			t.Fatalf("run %d: RenderToTexture: %v", run, err)
		}
		r.Close()

		if got := gg.Accelerator(); got != stub {
			t.Fatalf("run %d: accelerator after Close = %v, want the registered one", run, got)
		}
	}
	if stub.closed != 0 {
		t.Errorf("accelerator closed %d times by renderers", stub.closed)
	}
}

func TestNewWithoutAccelerator(t *testing.T) {
	gg.CloseAccelerator()
	_, err := New(&device.Device{}, Options{Antialiasing: AreaOnly()})
	if !errors.Is(err, ErrNoAccelerator) {
		t.Errorf("err = %v, want ErrNoAccelerator", err)
	}
}

func TestCPURendererDetachesAccelerator(t *testing.T) {
	stub := registerStub(t)
	newCPURenderer(t)
	if gg.Accelerator() != nil {
		t.Error("accelerator still registered for CPU rendering")
	}
	if stub.closed != 1 {
		t.Errorf("accelerator closed %d times, want 1", stub.closed)
	}
}
