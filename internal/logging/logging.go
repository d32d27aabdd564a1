// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package logging holds the process-wide logger shared by vellobench
// packages. The root package exposes it through SetLogger and Logger;
// internal packages read it here to avoid an import cycle.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NewNop returns a logger that drops all output.
func NewNop() *slog.Logger { return slog.New(nopHandler{}) }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(NewNop())
}

// Set stores l as the shared logger. A nil logger restores the silent default.
func Set(l *slog.Logger) *slog.Logger {
	if l == nil {
		l = NewNop()
	}
	current.Store(l)
	return l
}

// L returns the shared logger.
func L() *slog.Logger {
	return current.Load()
}
