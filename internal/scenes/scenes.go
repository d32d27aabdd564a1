// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scenes provides the workloads the benchmark renders: a fixed set
// of synthetic test scenes and scenes loaded from SVG files.
//
// A scene is a function that appends draw commands to a gg scene. It may
// report the size it was authored for through SceneParams.Resolution so
// the caller can fit it to the render target.
package scenes

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
)

// Vec2 is a 2D size or position.
type Vec2 struct {
	X, Y float64
}

// SceneParams is passed to every scene function. Scenes read Time,
// Complexity and Text, and may set Resolution and BaseColor.
type SceneParams struct {
	// Time in seconds since the start of an animation.
	Time float64

	Text *SimpleText

	// Resolution is the natural size of the scene, or nil when the scene
	// is drawn in target coordinates.
	Resolution *Vec2

	// BaseColor overrides the background, nil keeps the default.
	BaseColor *gg.RGBA

	Interactive bool

	// Complexity scales the amount of geometry of stress scenes.
	Complexity int
}

// TestScene draws itself into a scene.
type TestScene interface {
	Render(s *scene.Scene, params *SceneParams)
}

// SceneFunc adapts a function to TestScene.
type SceneFunc func(s *scene.Scene, params *SceneParams)

// Render calls f.
func (f SceneFunc) Render(s *scene.Scene, params *SceneParams) { f(s, params) }

// SceneConfig names a scene.
type SceneConfig struct {
	Name     string
	Animated bool
}

// ExampleScene is a named scene.
type ExampleScene struct {
	Function TestScene
	Config   SceneConfig
}

// SceneSet is an ordered list of scenes.
type SceneSet struct {
	Scenes []ExampleScene
}

// Names lists the scene names in order.
func (s SceneSet) Names() []string {
	names := make([]string, len(s.Scenes))
	for i, ex := range s.Scenes {
		names[i] = ex.Config.Name
	}
	return names
}

// Find returns the scene called name.
func (s SceneSet) Find(name string) (ExampleScene, bool) {
	for _, ex := range s.Scenes {
		if ex.Config.Name == name {
			return ex, true
		}
	}
	return ExampleScene{}, false
}
