// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bench

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestParseMatches(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"mmark", []string{"mmark"}},
		{"mmark,longpathdash", []string{"mmark", "longpathdash"}},
	}
	for _, tt := range tests {
		if got := ParseMatches(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseMatches(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTestScenes(t *testing.T) {
	tests := []struct {
		matches string
		want    []string
	}{
		{"mmark,longpathdash", []string{"longpathdash_butt", "longpathdash_round", "mmark"}},
		{"stroke_styles", []string{"stroke_styles", "stroke_styles_non_uniform"}},
		{"nothing-matches", nil},
	}
	for _, tt := range tests {
		t.Run(tt.matches, func(t *testing.T) {
			if got := TestScenes(tt.matches).Names(); !slices.Equal(got, tt.want) {
				t.Errorf("TestScenes(%q) = %q, want %q", tt.matches, got, tt.want)
			}
		})
	}

	if got, want := len(TestScenes("").Scenes), 12; got != want {
		t.Errorf("unfiltered scene count = %d, want %d", got, want)
	}
}

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
<rect width="5" height="5" fill="red"/>
</svg>`

func TestSVGScenes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tiger.svg", "paris.svg", "notes.txt", "tiger.svg.bak"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(tinySVG), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		matches string
		want    []string
	}{
		{"", []string{"paris", "tiger"}},
		{"tig", []string{"tiger"}},
		{"par,tig", []string{"paris", "tiger"}},
		{"zebra", nil},
	}
	for _, tt := range tests {
		t.Run(tt.matches, func(t *testing.T) {
			set, err := SVGScenes(dir, tt.matches)
			if err != nil {
				t.Fatalf("SVGScenes: %v", err)
			}
			if got := set.Names(); !slices.Equal(got, tt.want) {
				t.Errorf("names = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSVGScenesMissingDirectory(t *testing.T) {
	_, err := SVGScenes(filepath.Join(t.TempDir(), "missing"), "")
	if err == nil || !strings.Contains(err.Error(), "read svg directory") {
		t.Errorf("err = %v, want read svg directory error", err)
	}
}
