// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package profiler records nested GPU timer scopes per frame and turns the
// raw timestamps into a tree of labelled durations.
//
// A frame is the set of scopes opened between two EndFrame calls. Each
// scope writes a begin and an end timestamp through a Backend; ended frames
// wait in a bounded queue until ProcessFinishedFrame reads them back.
//
//	p, _ := profiler.New(profiler.NewHostBackend(64), profiler.DefaultSettings())
//	_ = p.Scoped("render", func() error { return draw() })
//	_ = p.EndFrame()
//	results, err := p.ProcessFinishedFrame(p.TimestampPeriod())
package profiler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/vellobench/internal/logging"
)

var (
	// ErrInvalidSettings is returned by ChangeSettings and New for settings
	// that cannot be applied.
	ErrInvalidSettings = errors.New("profiler: invalid settings")

	// ErrUnbalancedScope is returned when a scope is ended while a scope
	// opened after it is still open, or ended twice.
	ErrUnbalancedScope = errors.New("profiler: scope ended out of order")

	// ErrOpenScopes is returned by EndFrame while scopes are still open.
	ErrOpenScopes = errors.New("profiler: frame ended with open scopes")

	// ErrPendingFramesOverflow reports that the oldest pending frame was
	// dropped because MaxNumPendingFrames was exceeded.
	ErrPendingFramesOverflow = errors.New("profiler: too many pending frames")

	// ErrQueryCapacity is returned when a frame opens more scopes than the
	// backend has timestamp slots for.
	ErrQueryCapacity = errors.New("profiler: frame query capacity exceeded")

	// ErrNoFinishedFrame is returned by ProcessFinishedFrame when no ended
	// frame is waiting.
	ErrNoFinishedFrame = errors.New("profiler: no finished frame")
)

// Settings controls what the profiler records.
type Settings struct {
	// EnableTimerQueries writes timestamps for every scope. When false,
	// scopes still build the result tree but carry zero time ranges.
	EnableTimerQueries bool

	// EnableDebugGroups labels the timestamp passes with the scope name so
	// they show up in GPU captures.
	EnableDebugGroups bool

	// MaxNumPendingFrames bounds the number of ended frames that have not
	// been processed yet.
	MaxNumPendingFrames int
}

// DefaultSettings returns settings with timer queries and debug groups
// enabled and three pending frames.
func DefaultSettings() Settings {
	return Settings{
		EnableTimerQueries:  true,
		EnableDebugGroups:   true,
		MaxNumPendingFrames: 3,
	}
}

// Validate reports whether the settings can be applied.
func (s Settings) Validate() error {
	if s.MaxNumPendingFrames < 1 {
		return fmt.Errorf("%w: max pending frames must be at least 1, got %d",
			ErrInvalidSettings, s.MaxNumPendingFrames)
	}
	return nil
}

// Backend writes and reads raw timestamps. Timestamps are grouped in slots,
// one per in-flight frame; indices within a slot start at zero.
type Backend interface {
	// Capacity is the number of timestamps a single slot holds.
	Capacity() uint32

	// WriteTimestamp records the current time at index of slot. label is
	// empty unless debug groups are enabled.
	WriteTimestamp(slot int, index uint32, label string) error

	// Resolve makes the first count timestamps of slot readable.
	Resolve(slot int, count uint32) error

	// Read blocks until the resolved timestamps of slot are available and
	// returns them in ticks.
	Read(slot int, count uint32) ([]uint64, error)

	// TimestampPeriod is the number of nanoseconds per tick.
	TimestampPeriod() float32

	// Close releases backend resources.
	Close()
}

// Profiler collects scoped timer queries. It is safe for concurrent use,
// but scopes of one frame must be opened and closed in stack order.
type Profiler struct {
	mu       sync.Mutex
	settings Settings
	backend  Backend

	frameIndex uint64
	current    *frame
	pending    []*frame
}

type frame struct {
	slot    int
	queries uint32
	roots   []*node
	stack   []*node
}

type node struct {
	label    string
	begin    uint32
	end      uint32
	timed    bool
	children []*node
}

// New creates a profiler writing timestamps through backend.
func New(backend Backend, settings Settings) (*Profiler, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrInvalidSettings)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Profiler{settings: settings, backend: backend}, nil
}

// Settings returns the active settings.
func (p *Profiler) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// ChangeSettings applies new settings. Changing MaxNumPendingFrames
// discards pending frames, since their timestamp slots are remapped.
// It fails while a frame is being recorded.
func (p *Profiler) ChangeSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && len(p.current.stack) > 0 {
		return fmt.Errorf("%w: cannot change settings inside a frame", ErrOpenScopes)
	}
	if settings.MaxNumPendingFrames != p.settings.MaxNumPendingFrames && len(p.pending) > 0 {
		logging.L().Debug("profiler: discarding pending frames on settings change", "count", len(p.pending))
		p.pending = nil
	}
	p.settings = settings
	return nil
}

// TimestampPeriod returns the backend's nanoseconds per tick.
func (p *Profiler) TimestampPeriod() float32 {
	return p.backend.TimestampPeriod()
}

// PendingFrames returns the number of ended frames not yet processed.
func (p *Profiler) PendingFrames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// BeginScope opens a scope nested in the innermost open scope of the
// current frame.
func (p *Profiler) BeginScope(label string) (*Scope, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f := p.frame()
	n := &node{label: label}
	if p.settings.EnableTimerQueries {
		if f.queries+2 > p.backend.Capacity() {
			return nil, fmt.Errorf("%w: scope %q needs queries %d..%d, capacity %d",
				ErrQueryCapacity, label, f.queries, f.queries+1, p.backend.Capacity())
		}
		n.begin = f.queries
		if err := p.backend.WriteTimestamp(f.slot, n.begin, p.groupLabel(label)); err != nil {
			return nil, fmt.Errorf("profiler: begin scope %q: %w", label, err)
		}
		n.timed = true
		f.queries += 2
		n.end = n.begin + 1
	}

	if len(f.stack) == 0 {
		f.roots = append(f.roots, n)
	} else {
		parent := f.stack[len(f.stack)-1]
		parent.children = append(parent.children, n)
	}
	f.stack = append(f.stack, n)
	return &Scope{p: p, n: n}, nil
}

// Scoped runs fn inside a scope named label. The scope is ended even when
// fn fails; fn's error takes precedence.
func (p *Profiler) Scoped(label string, fn func() error) error {
	s, err := p.BeginScope(label)
	if err != nil {
		return err
	}
	fnErr := fn()
	endErr := s.End()
	if fnErr != nil {
		return fnErr
	}
	return endErr
}

// EndFrame closes the current frame and queues it for processing.
func (p *Profiler) EndFrame() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f := p.frame()
	if len(f.stack) > 0 {
		return fmt.Errorf("%w: %d open, innermost %q", ErrOpenScopes, len(f.stack), f.stack[len(f.stack)-1].label)
	}
	if f.queries > 0 {
		if err := p.backend.Resolve(f.slot, f.queries); err != nil {
			return fmt.Errorf("profiler: resolve frame %d: %w", p.frameIndex, err)
		}
	}
	p.pending = append(p.pending, f)
	p.current = nil
	p.frameIndex++

	if n := len(p.pending) - p.settings.MaxNumPendingFrames; n > 0 {
		p.pending = p.pending[n:]
		logging.L().Debug("profiler: dropped pending frames", "count", n)
		return fmt.Errorf("%w: dropped %d", ErrPendingFramesOverflow, n)
	}
	return nil
}

// ProcessFinishedFrame reads back the oldest ended frame and returns its
// scopes as a tree. period converts ticks to nanoseconds; pass
// TimestampPeriod() unless the caller knows better.
func (p *Profiler) ProcessFinishedFrame(period float32) ([]TimerQueryResult, error) {
	p.mu.Lock()
	if len(p.pending) == 0 {
		p.mu.Unlock()
		return nil, ErrNoFinishedFrame
	}
	f := p.pending[0]
	p.pending = p.pending[1:]
	p.mu.Unlock()

	var ticks []uint64
	if f.queries > 0 {
		var err error
		ticks, err = p.backend.Read(f.slot, f.queries)
		if err != nil {
			return nil, fmt.Errorf("profiler: read frame timestamps: %w", err)
		}
		if uint32(len(ticks)) < f.queries {
			return nil, fmt.Errorf("profiler: read %d timestamps, want %d", len(ticks), f.queries)
		}
	}
	return buildResults(f.roots, ticks, float64(period)), nil
}

// Close releases the backend. Pending frames are discarded.
func (p *Profiler) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
	p.current = nil
	p.backend.Close()
}

// frame returns the frame being recorded, starting one if needed.
// Caller holds p.mu.
func (p *Profiler) frame() *frame {
	if p.current == nil {
		slots := uint64(p.settings.MaxNumPendingFrames) + 1
		p.current = &frame{slot: int(p.frameIndex % slots)}
	}
	return p.current
}

func (p *Profiler) groupLabel(label string) string {
	if p.settings.EnableDebugGroups {
		return label
	}
	return ""
}

// Scope is an open timer scope.
type Scope struct {
	p     *Profiler
	n     *node
	ended bool
}

// Label returns the scope's label.
func (s *Scope) Label() string { return s.n.label }

// End closes the scope. It must be the innermost open scope.
func (s *Scope) End() error {
	p := s.p
	p.mu.Lock()
	defer p.mu.Unlock()

	f := p.current
	if s.ended || f == nil || len(f.stack) == 0 || f.stack[len(f.stack)-1] != s.n {
		return fmt.Errorf("%w: %q", ErrUnbalancedScope, s.n.label)
	}
	if s.n.timed {
		if err := p.backend.WriteTimestamp(f.slot, s.n.end, p.groupLabel(s.n.label)); err != nil {
			return fmt.Errorf("profiler: end scope %q: %w", s.n.label, err)
		}
	}
	f.stack = f.stack[:len(f.stack)-1]
	s.ended = true
	return nil
}
