// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bench measures how long the renderer takes to draw each scene.
//
// Every sample renders the scene Passes times into an off-screen target,
// waits for the device to go idle, and records the averaged wall time
// together with the GPU timer scopes the renderer's profiler captured.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/gogpu/vellobench/internal/device"
	"github.com/gogpu/vellobench/internal/logging"
	"github.com/gogpu/vellobench/internal/profiler"
	"github.com/gogpu/vellobench/internal/renderer"
	"github.com/gogpu/vellobench/internal/scenes"
)

// Defaults for a benchmark run.
const (
	SampleCount = 1000
	Width       = 2088
	Height      = 1600
	// MinPasses renders are submitted per sample; a single render per
	// sample under-reports on most drivers.
	MinPasses  = 3
	Complexity = 15
)

// ErrNoTimerQuery is returned when a sample finished without any profiler
// frame to read.
var ErrNoTimerQuery = errors.New("no timer query was recorded")

// Options configures a Bench.
type Options struct {
	Samples    int
	Width      int
	Height     int
	Passes     int
	Complexity int

	// UseCPU renders without a GPU device. Stage timings then come from
	// the host clock.
	UseCPU bool

	Device   device.Options
	Profiler profiler.Settings
}

// DefaultOptions returns the standard benchmark configuration.
func DefaultOptions() Options {
	return Options{
		Samples:    SampleCount,
		Width:      Width,
		Height:     Height,
		Passes:     MinPasses,
		Complexity: Complexity,
		Device:     device.DefaultOptions(),
		Profiler:   profiler.DefaultSettings(),
	}
}

// Validate reports options that cannot produce a measurement.
func (o Options) Validate() error {
	switch {
	case o.Samples < 1:
		return fmt.Errorf("bench: samples must be positive, got %d", o.Samples)
	case o.Width < 1 || o.Height < 1:
		return fmt.Errorf("bench: invalid target size %dx%d", o.Width, o.Height)
	case o.Passes < 1:
		return fmt.Errorf("bench: passes must be positive, got %d", o.Passes)
	}
	return nil
}

// Renderer draws scenes into the benchmark target.
type Renderer interface {
	RenderToTexture(s *scene.Scene, target *renderer.Target, params renderer.RenderParams) error
	Profiler() *profiler.Profiler
	Close()
}

// Device is the GPU the renderer submits to.
type Device interface {
	WaitIdle() error
	Close()
}

// Bench owns the device, renderer and render target of a run.
type Bench struct {
	opts     Options
	dev      Device
	renderer Renderer
	target   *renderer.Target
	now      func() time.Time
}

// New opens the device, creates the renderer and the render target, and
// turns on timer queries.
func New(ctx context.Context, opts Options) (*Bench, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var (
		dev    *device.Device
		benchD Device = hostDevice{}
	)
	if !opts.UseCPU {
		d, err := device.Open(ctx, opts.Device)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize device: %w", err)
		}
		dev, benchD = d, d
	}

	r, err := renderer.New(dev, renderer.Options{
		UseCPU:       opts.UseCPU,
		Antialiasing: renderer.AreaOnly(),
	})
	if err != nil {
		benchD.Close()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	settings := opts.Profiler
	settings.EnableTimerQueries = true
	// Every pass of a sample ends a frame; all of them must stay pending
	// until the sample is read back.
	settings.MaxNumPendingFrames = max(settings.MaxNumPendingFrames, opts.Passes)
	if err := r.Profiler().ChangeSettings(settings); err != nil {
		r.Close()
		benchD.Close()
		return nil, fmt.Errorf("failed to enable timer queries: %w", err)
	}

	target, err := renderer.NewTarget(dev, uint32(opts.Width), uint32(opts.Height))
	if err != nil {
		r.Close()
		benchD.Close()
		return nil, fmt.Errorf("bench: create render target: %w", err)
	}

	return &Bench{
		opts:     opts,
		dev:      benchD,
		renderer: r,
		target:   target,
		now:      time.Now,
	}, nil
}

// Options returns the options the bench runs with.
func (b *Bench) Options() Options { return b.opts }

// Close releases the target, the renderer and the device.
func (b *Bench) Close() {
	b.target.Release()
	b.renderer.Close()
	b.dev.Close()
}

// Sample builds ex once, timing the CPU encoding, and then renders it
// count times.
func (b *Bench) Sample(ctx context.Context, ex scenes.ExampleScene, count int) (SceneQueryResults, error) {
	text := scenes.NewSimpleText()
	params := &scenes.SceneParams{
		Time:        0,
		Text:        text,
		Resolution:  nil,
		BaseColor:   nil,
		Interactive: false,
		Complexity:  b.opts.Complexity,
	}

	prepStart := b.now()
	fragment := scene.NewScene()
	ex.Function.Render(fragment, params)

	transform := scene.IdentityAffine()
	if res := params.Resolution; res != nil {
		factor := math.Min(float64(b.opts.Width)/res.X, float64(b.opts.Height)/res.Y)
		transform = scene.ScaleAffine(float32(factor), float32(factor))
	}

	s := scene.NewScene()
	s.Append(fragment)

	base := gg.Black
	if params.BaseColor != nil {
		base = *params.BaseColor
	}
	rp := renderer.RenderParams{
		BaseColor:    base,
		Width:        uint32(b.opts.Width),
		Height:       uint32(b.opts.Height),
		Antialiasing: renderer.AaArea,
		Transform:    transform,
	}
	prepEnd := b.now()

	e2e, gpu, err := b.sampleScene(ctx, s, rp, count)
	if err != nil {
		return SceneQueryResults{}, err
	}
	return SceneQueryResults{
		PrepTime:   prepEnd.Sub(prepStart),
		E2ESamples: e2e,
		GPUSamples: gpu,
	}, nil
}

func (b *Bench) sampleScene(ctx context.Context, s *scene.Scene, rp renderer.RenderParams, count int) ([]time.Duration, GPUSamples, error) {
	e2e := make([]time.Duration, 0, count)
	gpu := make(GPUSamples, 0, count)
	passes := b.opts.Passes

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		start := b.now()
		for range passes {
			if err := b.renderer.RenderToTexture(s, b.target, rp); err != nil {
				return nil, nil, fmt.Errorf("failed to render scene: %w", err)
			}
		}
		if err := b.dev.WaitIdle(); err != nil {
			return nil, nil, fmt.Errorf("bench: wait for device: %w", err)
		}
		end := b.now()

		queries, err := b.finishedQueries()
		if err != nil {
			return nil, nil, err
		}
		e2e = append(e2e, end.Sub(start)/time.Duration(passes))
		gpu = append(gpu, queries)
	}
	return e2e, gpu, nil
}

// finishedQueries returns the oldest finished profiler frame of a sample,
// one frame per sample like the end-to-end time. The frames of the other
// passes are read back and dropped so their slots are free for the next
// sample.
func (b *Bench) finishedQueries() ([]profiler.TimerQueryResult, error) {
	p := b.renderer.Profiler()
	var (
		out    []profiler.TimerQueryResult
		frames int
	)
	for {
		res, err := p.ProcessFinishedFrame(p.TimestampPeriod())
		if errors.Is(err, profiler.ErrNoFinishedFrame) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bench: read timer queries: %w", err)
		}
		if frames == 0 {
			out = res
		}
		frames++
	}
	if frames == 0 {
		return nil, ErrNoTimerQuery
	}
	logging.L().Debug("bench: sample read back", "frames", frames, "kept_scopes", len(out))
	return out, nil
}

// hostDevice stands in for the GPU when rendering on the CPU.
type hostDevice struct{}

func (hostDevice) WaitIdle() error { return nil }
func (hostDevice) Close()          {}
