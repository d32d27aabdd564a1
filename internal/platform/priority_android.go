// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build android

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// RaisePriority moves the process to BenchmarkNice so the measuring thread
// is scheduled ahead of background work.
func RaisePriority() error {
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, BenchmarkNice); err != nil {
		return fmt.Errorf("platform: setpriority %d: %w", BenchmarkNice, err)
	}
	return nil
}
