// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(darwin && arm64)

package device

import "github.com/gogpu/wgpu"

// DefaultBackends lets wgpu pick among the host's primary backends.
const DefaultBackends = wgpu.BackendsPrimary
