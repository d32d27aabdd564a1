// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bench

import (
	"slices"
	"testing"
	"time"

	"github.com/gogpu/vellobench/internal/profiler"
)

func query(label string, start, end float64, nested ...profiler.TimerQueryResult) profiler.TimerQueryResult {
	return profiler.TimerQueryResult{
		Label:         label,
		Time:          profiler.Range{Start: start, End: end},
		NestedQueries: nested,
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	r := SceneQueryResults{
		PrepTime:   1500 * time.Microsecond,
		E2ESamples: []time.Duration{time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond},
	}
	res := r.Analyze("")
	if res.PrepTime != 0.0015 {
		t.Errorf("PrepTime = %v, want 0.0015", res.PrepTime)
	}
	if res.EndToEnd.Median != 0.002 || res.EndToEnd.Min != 0.001 || res.EndToEnd.Max != 0.003 {
		t.Errorf("EndToEnd = %+v", res.EndToEnd)
	}
	if res.PipelineStage != nil {
		t.Errorf("PipelineStage = %+v, want nil without a stage", res.PipelineStage)
	}
}

func TestAnalyzeStage(t *testing.T) {
	nested := []profiler.TimerQueryResult{
		query("render", 0, 10,
			query("clear", 0, 1),
			query("raster", 1, 3),
			query("raster", 3, 7),
		),
	}
	tests := []struct {
		name    string
		samples GPUSamples
		stage   string
		want    []float64
	}{
		{"last nested match", GPUSamples{nested}, "raster", []float64{4}},
		{"nested single", GPUSamples{nested}, "clear", []float64{1}},
		{"top level scope with children is not a leaf", GPUSamples{nested}, "render", []float64{}},
		{"leaf match", GPUSamples{{query("raster", 2, 4)}}, "raster", []float64{2}},
		{"leaf mismatch", GPUSamples{{query("encode", 2, 4)}}, "raster", []float64{}},
		{
			"every sample and pass",
			GPUSamples{
				{query("raster", 0, 1), query("raster", 1, 3)},
				{query("raster", 0, 5)},
			},
			"raster",
			[]float64{1, 2, 5},
		},
		{"no samples", nil, "raster", []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SceneQueryResults{GPUSamples: tt.samples}.Analyze(tt.stage)
			if res.PipelineStage == nil {
				t.Fatal("PipelineStage is nil")
			}
			if !slices.Equal(res.PipelineStage.Deltas, tt.want) {
				t.Errorf("deltas = %v, want %v", res.PipelineStage.Deltas, tt.want)
			}
		})
	}
}
