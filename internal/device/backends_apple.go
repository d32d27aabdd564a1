// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && arm64

package device

import "github.com/gogpu/wgpu"

// DefaultBackends on Apple silicon is Metal only.
const DefaultBackends = wgpu.BackendsMetal
