// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package profiler

import (
	"fmt"
	"sync"
	"time"
)

// HostBackend timestamps scopes with the monotonic host clock. It is used
// when the device cannot write GPU timestamps and for CPU rendering.
type HostBackend struct {
	mu       sync.Mutex
	epoch    time.Time
	capacity uint32
	slots    map[int][]uint64
	now      func() time.Time
}

// NewHostBackend returns a host clock backend with capacity timestamps
// per frame.
func NewHostBackend(capacity uint32) *HostBackend {
	return &HostBackend{
		epoch:    time.Now(),
		capacity: capacity,
		slots:    make(map[int][]uint64),
		now:      time.Now,
	}
}

func (b *HostBackend) Capacity() uint32 { return b.capacity }

func (b *HostBackend) WriteTimestamp(slot int, index uint32, _ string) error {
	if index >= b.capacity {
		return fmt.Errorf("host timestamp %d out of range (capacity %d)", index, b.capacity)
	}
	ts := b.now().Sub(b.epoch)
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.slots[slot]
	if !ok {
		s = make([]uint64, b.capacity)
		b.slots[slot] = s
	}
	s[index] = uint64(ts.Nanoseconds())
	return nil
}

func (b *HostBackend) Resolve(int, uint32) error { return nil }

func (b *HostBackend) Read(slot int, count uint32) ([]uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.slots[slot]
	if !ok {
		return nil, fmt.Errorf("host timestamps: slot %d never written", slot)
	}
	if count > uint32(len(s)) {
		return nil, fmt.Errorf("host timestamps: read %d of %d", count, len(s))
	}
	out := make([]uint64, count)
	copy(out, s[:count])
	return out, nil
}

// TimestampPeriod is one nanosecond per tick.
func (b *HostBackend) TimestampPeriod() float32 { return 1 }

func (b *HostBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.slots)
}
