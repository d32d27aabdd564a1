// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package buildinfo carries version metadata injected with -ldflags.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("vellobench %s (commit=%s, date=%s)", Version, Commit, Date)
}
