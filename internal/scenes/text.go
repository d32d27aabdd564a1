// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenes

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// goRegular is parsed once per process; faces are cheap views over it.
var goRegular = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// goRegularMetrics is the same font parsed for shaping. *font.Font is
// read-only and shared; faces over it are not.
var goRegularMetrics = sync.OnceValues(func() (*font.Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return face.Font, nil
})

// SimpleText draws single lines of text in the Go Regular font.
type SimpleText struct {
	source *text.FontSource
	err    error
}

// NewSimpleText loads the default font.
func NewSimpleText() *SimpleText {
	src, err := goRegular()
	return &SimpleText{source: src, err: err}
}

// Add draws str at size with its baseline origin mapped through transform.
// A nil brush draws white.
func (t *SimpleText) Add(s *scene.Scene, size float32, brush *gg.RGBA, transform scene.Affine, str string) error {
	if t.err != nil {
		return fmt.Errorf("scenes: load font: %w", t.err)
	}
	c := gg.White
	if brush != nil {
		c = *brush
	}
	s.PushTransform(transform)
	defer s.PopTransform()
	return s.DrawText(str, t.source.Face(float64(size)), 0, 0, scene.SolidBrush(c))
}

// Advance returns the horizontal advance of str shaped at size.
func (t *SimpleText) Advance(str string, size float32) (float32, error) {
	f, err := goRegularMetrics()
	if err != nil {
		return 0, fmt.Errorf("scenes: parse font: %w", err)
	}
	runes := []rune(str)
	if len(runes) == 0 {
		return 0, nil
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})
	return float32(out.Advance) / 64, nil
}
