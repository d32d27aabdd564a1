// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device opens the GPU the benchmark runs on and shares it with
// gg's accelerator.
package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vellobench/internal/logging"
)

// ErrNoAdapter is returned when no adapter matches the requested backends.
var ErrNoAdapter = errors.New("device: no suitable GPU adapter")

// Backend names accepted by ParseBackend.
const (
	BackendAuto   = "auto"
	BackendVulkan = "vulkan"
	BackendMetal  = "metal"
	BackendDX12   = "dx12"
	BackendGL     = "gl"
)

// ParseBackend maps a backend name to the wgpu backend mask. "auto" selects
// the backends of the active host profile.
func ParseBackend(name string) (wgpu.Backends, error) {
	switch strings.ToLower(name) {
	case "", BackendAuto:
		return DefaultBackends, nil
	case BackendVulkan:
		return wgpu.BackendsVulkan, nil
	case BackendMetal:
		return wgpu.BackendsMetal, nil
	case BackendDX12:
		return wgpu.BackendsDX12, nil
	case BackendGL:
		return wgpu.BackendsGL, nil
	default:
		return 0, fmt.Errorf("device: unknown backend %q", name)
	}
}

// Options selects the adapter.
type Options struct {
	Backends        wgpu.Backends
	PowerPreference wgpu.PowerPreference
	// DisableTimestamps skips requesting the timestamp query feature.
	DisableTimestamps bool
}

// DefaultOptions prefers a high performance adapter on the host's
// primary backends.
func DefaultOptions() Options {
	return Options{
		Backends:        DefaultBackends,
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	}
}

// Device is an open GPU device. It implements gpucontext.DeviceProvider.
type Device struct {
	instance   *wgpu.Instance
	adapter    *wgpu.Adapter
	device     *wgpu.Device
	info       wgpu.AdapterInfo
	timestamps bool
}

var _ gpucontext.DeviceProvider = (*Device)(nil)

// Open creates an instance, picks an adapter and requests a device. The
// timestamp query feature is requested when the adapter offers it.
func Open(ctx context.Context, opts Options) (*Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	backends := opts.Backends
	if backends == 0 {
		backends = DefaultBackends
	}
	instance, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: backends})
	if err != nil {
		return nil, fmt.Errorf("device: create instance: %w", err)
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: opts.PowerPreference,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	if adapter == nil {
		instance.Release()
		return nil, ErrNoAdapter
	}

	var features wgpu.Features
	timestamps := !opts.DisableTimestamps && adapter.Features().Contains(gputypes.FeatureTimestampQuery)
	if timestamps {
		features.Insert(gputypes.FeatureTimestampQuery)
	}
	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            "vellobench",
		RequiredFeatures: features,
	})
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("device: request device: %w", err)
	}

	d := &Device{
		instance:   instance,
		adapter:    adapter,
		device:     dev,
		info:       adapter.Info(),
		timestamps: timestamps,
	}
	logging.L().Info("device: adapter selected",
		"name", d.info.Name,
		"backend", d.info.Backend.String(),
		"timestamps", timestamps)
	return d, nil
}

// Info returns the adapter description.
func (d *Device) Info() wgpu.AdapterInfo { return d.info }

// SupportsTimestamps reports whether the device was created with the
// timestamp query feature.
func (d *Device) SupportsTimestamps() bool { return d.timestamps }

// WGPU returns the wgpu device.
func (d *Device) WGPU() *wgpu.Device { return d.device }

// HalDevice returns the hal device behind the wgpu device.
func (d *Device) HalDevice() hal.Device { return d.device.HalDevice() }

// HalQueue returns the hal queue behind the wgpu queue.
func (d *Device) HalQueue() hal.Queue { return d.device.HalQueue() }

// WaitIdle blocks until every submission has completed.
func (d *Device) WaitIdle() error {
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("device: wait idle: %w", err)
	}
	return nil
}

// Close releases the device, the adapter and the instance.
func (d *Device) Close() {
	if d.device != nil {
		if err := d.device.WaitIdle(); err != nil {
			logging.L().Warn("device: wait idle before release failed", "err", err)
		}
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// Device returns the *wgpu.Device. gg's accelerator type-asserts it.
func (d *Device) Device() gpucontext.Device { return d.device }

// Queue returns the *wgpu.Queue.
func (d *Device) Queue() gpucontext.Queue { return d.device.Queue() }

// SurfaceFormat is undefined: the benchmark renders off-screen.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }

// Adapter returns the *wgpu.Adapter.
func (d *Device) Adapter() gpucontext.Adapter { return d.adapter }

// AdapterInfo describes the adapter for gg's render mode selection.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: d.info.Name, Type: AdapterType(d.info.DeviceType)}
}

// AdapterType maps a wgpu device type to its gpucontext counterpart.
func AdapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// Target is an RGBA8 texture the renderer draws into.
type Target struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   uint32
	Height  uint32
}

// CreateTarget allocates a width×height RGBA8 unorm texture usable as a
// storage binding and render attachment, plus a view of it.
func (d *Device) CreateTarget(width, height uint32) (*Target, error) {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Target texture",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage: wgpu.TextureUsageStorageBinding |
			wgpu.TextureUsageRenderAttachment |
			wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("device: create target texture: %w", err)
	}
	view, err := d.device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("device: create target view: %w", err)
	}
	return &Target{Texture: tex, View: view, Width: width, Height: height}, nil
}

// Release frees the view and the texture.
func (t *Target) Release() {
	if t.View != nil {
		t.View.Release()
		t.View = nil
	}
	if t.Texture != nil {
		t.Texture.Release()
		t.Texture = nil
	}
}
