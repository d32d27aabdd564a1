// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/vellobench/internal/scenes"
)

// ParseMatches splits a comma separated filter list. An empty list means
// no filtering.
func ParseMatches(matches string) []string {
	if matches == "" {
		return nil
	}
	return strings.Split(matches, ",")
}

// matchesAny reports whether name contains any of filters, or whether
// there are no filters at all.
func matchesAny(name string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// TestScenes returns the built-in scenes whose names match the comma
// separated filter list.
func TestScenes(matches string) scenes.SceneSet {
	filters := ParseMatches(matches)
	all := scenes.TestScenes()
	out := scenes.SceneSet{}
	for _, s := range all.Scenes {
		if matchesAny(s.Config.Name, filters) {
			out.Scenes = append(out.Scenes, s)
		}
	}
	return out
}

// SVGScenes loads every .svg file in directory whose file name matches the
// comma separated filter list.
func SVGScenes(directory, matches string) (scenes.SceneSet, error) {
	filters := ParseMatches(matches)
	entries, err := os.ReadDir(directory)
	if err != nil {
		return scenes.SceneSet{}, fmt.Errorf("bench: read svg directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) != ".svg" {
			continue
		}
		if matchesAny(name, filters) {
			paths = append(paths, filepath.Join(directory, name))
		}
	}
	return scenes.SceneFromFiles(paths)
}
