// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(darwin && arm64)

package manifest

const activeProfile = ProfileGeneric
