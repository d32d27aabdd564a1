// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package platform holds OS glue needed by individual targets.
package platform

// BenchmarkNice is the scheduling priority requested for the benchmark
// process. Lower is more favourable.
const BenchmarkNice = -10
