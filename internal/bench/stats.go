// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bench

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// bars are the sparkline glyphs, lowest first.
var bars = [...]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Stats summarizes a series of durations in seconds.
type Stats struct {
	Deltas []float64 `json:"deltas" yaml:"deltas"`
	Min    float64   `json:"min" yaml:"min"`
	Max    float64   `json:"max" yaml:"max"`
	Median float64   `json:"median" yaml:"median"`
	Mean   float64   `json:"mean" yaml:"mean"`
}

// StatsFromDeltas computes min, max, mean and median of deltas. The median
// is the upper middle element for even counts. An empty series yields
// all-zero stats.
func StatsFromDeltas(deltas []float64) Stats {
	if len(deltas) == 0 {
		return Stats{Deltas: deltas}
	}
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	var mean float64
	n := float64(len(deltas))
	for _, d := range deltas {
		lo = min(lo, d)
		hi = max(hi, d)
		mean += d / n
	}
	sorted := slices.Clone(deltas)
	slices.Sort(sorted)
	return Stats{
		Deltas: deltas,
		Min:    lo,
		Max:    hi,
		Median: sorted[len(sorted)/2],
		Mean:   mean,
	}
}

// Plot renders one bar per delta, scaled between Min and Max.
func (s Stats) Plot() string {
	var b strings.Builder
	for _, d := range s.Deltas {
		if s.Min == s.Max {
			b.WriteString(bars[0])
			continue
		}
		v := (d - s.Min) / (s.Max - s.Min) * float64(len(bars)-1)
		b.WriteString(bars[int(v+0.5)])
	}
	return b.String()
}

// String formats the stats as "mean,median,min,max,plot".
func (s Stats) String() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s",
		FormatSeconds(s.Mean),
		FormatSeconds(s.Median),
		FormatSeconds(s.Min),
		FormatSeconds(s.Max),
		s.Plot())
}

// FormatSeconds prints a duration given in seconds with two decimals in
// the largest unit that keeps the integer part non-zero: 1.50s, 2.25ms,
// 980.00µs, 12.00ns.
func FormatSeconds(sec float64) string {
	return FormatDuration(time.Duration(math.Round(sec * float64(time.Second))))
}

// FormatDuration is FormatSeconds for a time.Duration.
func FormatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	var s string
	switch {
	case d >= time.Second:
		s = fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		s = fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		s = fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	default:
		s = fmt.Sprintf("%.2fns", float64(d))
	}
	if neg {
		return "-" + s
	}
	return s
}
