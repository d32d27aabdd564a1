// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bench

import (
	"time"

	"github.com/gogpu/vellobench/internal/profiler"
)

// GPUSamples holds the processed timer queries of each sample, one slice of
// top-level scopes per sample.
type GPUSamples [][]profiler.TimerQueryResult

// SceneQueryResults are the raw measurements for one scene.
type SceneQueryResults struct {
	PrepTime   time.Duration
	E2ESamples []time.Duration
	GPUSamples GPUSamples
}

// Result is the analyzed outcome of one scene.
type Result struct {
	PrepTime      float64 `json:"prep_time" yaml:"prep_time"`
	EndToEnd      Stats   `json:"end_to_end" yaml:"end_to_end"`
	PipelineStage *Stats  `json:"pipeline_stage,omitempty" yaml:"pipeline_stage,omitempty"`
}

// Analyze converts the samples to stats. When stage is non-empty, the GPU
// duration of that stage is collected from every sample: a top-level scope
// with nested scopes contributes its last nested scope labelled stage, a
// leaf scope contributes itself when its label matches.
func (r SceneQueryResults) Analyze(stage string) Result {
	e2e := make([]float64, len(r.E2ESamples))
	for i, d := range r.E2ESamples {
		e2e[i] = d.Seconds()
	}
	res := Result{
		PrepTime: r.PrepTime.Seconds(),
		EndToEnd: StatsFromDeltas(e2e),
	}
	if stage == "" {
		return res
	}

	deltas := []float64{}
	for _, sample := range r.GPUSamples {
		for _, query := range sample {
			q, ok := selectStage(query, stage)
			if !ok {
				continue
			}
			deltas = append(deltas, q.Time.End-q.Time.Start)
		}
	}
	st := StatsFromDeltas(deltas)
	res.PipelineStage = &st
	return res
}

func selectStage(q profiler.TimerQueryResult, stage string) (profiler.TimerQueryResult, bool) {
	if len(q.NestedQueries) == 0 {
		return q, q.Label == stage
	}
	var (
		found profiler.TimerQueryResult
		ok    bool
	)
	for _, nq := range q.NestedQueries {
		if nq.Label == stage {
			found, ok = nq, true
		}
	}
	return found, ok
}
