// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package profiler

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vellobench/internal/logging"
)

// ErrTimestampsNotSupported is returned by NewTimestampBackend when the
// device cannot create timestamp query sets.
var ErrTimestampsNotSupported = errors.New("profiler: GPU timestamps not supported")

const timestampSize = 8

// TimestampBackend writes GPU timestamps into hal query sets. Every
// timestamp is an empty compute pass submitted on the shared queue, so it
// lands between the renderer's own submissions in queue order.
type TimestampBackend struct {
	mu       sync.Mutex
	device   hal.Device
	queue    hal.Queue
	capacity uint32
	slots    map[int]*timestampSlot
}

type timestampSlot struct {
	querySet hal.QuerySet
	resolve  hal.Buffer
	readback hal.Buffer
	inflight []submission
}

type submission struct {
	encoder hal.CommandEncoder
	cmd     hal.CommandBuffer
}

// NewTimestampBackend creates a backend with capacity timestamps per slot.
// The first slot is allocated eagerly so unsupported devices fail here.
func NewTimestampBackend(device hal.Device, queue hal.Queue, capacity uint32) (*TimestampBackend, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("profiler: timestamp backend needs a hal device and queue")
	}
	if capacity == 0 {
		return nil, fmt.Errorf("%w: zero timestamp capacity", ErrInvalidSettings)
	}
	b := &TimestampBackend{
		device:   device,
		queue:    queue,
		capacity: capacity,
		slots:    make(map[int]*timestampSlot),
	}
	b.mu.Lock()
	_, err := b.slot(0)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (b *TimestampBackend) Capacity() uint32 { return b.capacity }

// TimestampPeriod returns the queue's nanoseconds per tick.
func (b *TimestampBackend) TimestampPeriod() float32 {
	return b.queue.GetTimestampPeriod()
}

func (b *TimestampBackend) WriteTimestamp(slot int, index uint32, label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.slot(slot)
	if err != nil {
		return err
	}
	idx := index
	return b.submit(s, "timestamp", func(enc hal.CommandEncoder) {
		pass := enc.BeginComputePass(&hal.ComputePassDescriptor{
			Label: label,
			TimestampWrites: &hal.ComputePassTimestampWrites{
				QuerySet:                  s.querySet,
				BeginningOfPassWriteIndex: &idx,
			},
		})
		pass.End()
	})
}

func (b *TimestampBackend) Resolve(slot int, count uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.slot(slot)
	if err != nil {
		return err
	}
	size := uint64(count) * timestampSize
	return b.submit(s, "timestamp resolve", func(enc hal.CommandEncoder) {
		enc.ResolveQuerySet(s.querySet, 0, count, s.resolve, 0)
		enc.CopyBufferToBuffer(s.resolve, s.readback, []hal.BufferCopy{{Size: size}})
	})
}

func (b *TimestampBackend) Read(slot int, count uint32) ([]uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.slots[slot]
	if !ok {
		return nil, fmt.Errorf("timestamps: slot %d never written", slot)
	}
	// The queue is FIFO, so idle means every submission of this slot is done.
	if err := b.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("timestamps: wait idle: %w", err)
	}
	b.release(s)

	size := uint64(count) * timestampSize
	mapping, err := b.device.MapBuffer(s.readback, 0, size)
	if err != nil {
		return nil, fmt.Errorf("timestamps: map readback: %w", err)
	}
	raw := unsafe.Slice((*byte)(mapping.Ptr), size)
	ticks := make([]uint64, count)
	for i := range ticks {
		ticks[i] = binary.LittleEndian.Uint64(raw[i*timestampSize:])
	}
	if err := b.device.UnmapBuffer(s.readback); err != nil {
		logging.L().Warn("timestamps: unmap readback failed", "err", err)
	}
	return ticks, nil
}

// Close waits for outstanding work and destroys every slot.
func (b *TimestampBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.device.WaitIdle(); err != nil {
		logging.L().Warn("timestamps: wait idle during close failed", "err", err)
	}
	for id, s := range b.slots {
		b.release(s)
		b.device.DestroyBuffer(s.readback)
		b.device.DestroyBuffer(s.resolve)
		b.device.DestroyQuerySet(s.querySet)
		delete(b.slots, id)
	}
}

// slot returns the resources for id, creating them on first use.
// Caller holds b.mu.
func (b *TimestampBackend) slot(id int) (*timestampSlot, error) {
	if s, ok := b.slots[id]; ok {
		return s, nil
	}
	qs, err := b.device.CreateQuerySet(&hal.QuerySetDescriptor{
		Label: fmt.Sprintf("vellobench timestamps %d", id),
		Type:  hal.QueryTypeTimestamp,
		Count: b.capacity,
	})
	if err != nil {
		if errors.Is(err, hal.ErrTimestampsNotSupported) {
			return nil, fmt.Errorf("%w: %w", ErrTimestampsNotSupported, err)
		}
		return nil, fmt.Errorf("timestamps: create query set: %w", err)
	}
	size := uint64(b.capacity) * timestampSize
	resolve, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "vellobench timestamp resolve",
		Size:  size,
		Usage: gputypes.BufferUsageQueryResolve | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		b.device.DestroyQuerySet(qs)
		return nil, fmt.Errorf("timestamps: create resolve buffer: %w", err)
	}
	readback, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "vellobench timestamp readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		b.device.DestroyBuffer(resolve)
		b.device.DestroyQuerySet(qs)
		return nil, fmt.Errorf("timestamps: create readback buffer: %w", err)
	}
	s := &timestampSlot{querySet: qs, resolve: resolve, readback: readback}
	b.slots[id] = s
	return s, nil
}

// submit records one command buffer with record and submits it.
// Caller holds b.mu.
func (b *TimestampBackend) submit(s *timestampSlot, label string, record func(hal.CommandEncoder)) error {
	enc, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("timestamps: create encoder: %w", err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		enc.Destroy()
		return fmt.Errorf("timestamps: begin encoding: %w", err)
	}
	record(enc)
	cmd, err := enc.EndEncoding()
	if err != nil {
		enc.Destroy()
		return fmt.Errorf("timestamps: end encoding: %w", err)
	}
	if _, err := b.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		b.device.FreeCommandBuffer(cmd)
		enc.Destroy()
		return fmt.Errorf("timestamps: submit: %w", err)
	}
	s.inflight = append(s.inflight, submission{encoder: enc, cmd: cmd})
	return nil
}

// release frees command buffers of completed submissions.
// Caller holds b.mu and has waited for the queue.
func (b *TimestampBackend) release(s *timestampSlot) {
	for _, sub := range s.inflight {
		b.device.FreeCommandBuffer(sub.cmd)
		sub.encoder.Destroy()
	}
	s.inflight = s.inflight[:0]
}
