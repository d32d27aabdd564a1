// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package profiler

// Range is a time span in seconds on the backend's clock.
type Range struct {
	Start float64
	End   float64
}

// Duration returns End - Start.
func (r Range) Duration() float64 { return r.End - r.Start }

// TimerQueryResult is one processed scope.
type TimerQueryResult struct {
	Label         string
	Time          Range
	NestedQueries []TimerQueryResult
}

// Find returns the first result labelled label in depth-first order.
func Find(results []TimerQueryResult, label string) (TimerQueryResult, bool) {
	for _, r := range results {
		if r.Label == label {
			return r, true
		}
		if nested, ok := Find(r.NestedQueries, label); ok {
			return nested, true
		}
	}
	return TimerQueryResult{}, false
}

func buildResults(nodes []*node, ticks []uint64, periodNanos float64) []TimerQueryResult {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]TimerQueryResult, 0, len(nodes))
	for _, n := range nodes {
		r := TimerQueryResult{Label: n.label}
		if n.timed {
			r.Time = Range{
				Start: float64(ticks[n.begin]) * periodNanos / 1e9,
				End:   float64(ticks[n.end]) * periodNanos / 1e9,
			}
		}
		r.NestedQueries = buildResults(n.children, ticks, periodNanos)
		out = append(out, r)
	}
	return out
}
