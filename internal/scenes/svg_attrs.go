// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"golang.org/x/image/colornames"
)

// parseColor parses an SVG paint: #rgb, #rrggbb, #rrggbbaa, rgb(), rgba()
// or a CSS color keyword.
func parseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return gg.RGBA{}, fmt.Errorf("scenes: empty color")
	case s[0] == '#':
		c, err := gg.ParseHex(s)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("scenes: %w", err)
		}
		return c, nil
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return gg.RGBA{}, fmt.Errorf("scenes: unknown color %q", s)
	}
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255), nil
}

func parseRGBFunc(s string) (gg.RGBA, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return gg.RGBA{}, fmt.Errorf("scenes: bad color function %q", s)
	}
	args := splitArgs(s[open+1 : end])
	if len(args) != 3 && len(args) != 4 {
		return gg.RGBA{}, fmt.Errorf("scenes: %q needs 3 or 4 components", s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, a := range args {
		pct := strings.HasSuffix(a, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("scenes: color component %q: %w", a, err)
		}
		switch {
		case pct:
			v /= 100
		case i < 3:
			v /= 255
		}
		ch[i] = math.Min(math.Max(v, 0), 1)
	}
	return gg.RGBA2(ch[0], ch[1], ch[2], ch[3]), nil
}

// parseTransform parses an SVG transform list into a single affine.
// Functions compose left to right.
func parseTransform(s string) (scene.Affine, error) {
	t := scene.IdentityAffine()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return t, fmt.Errorf("scenes: malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		var args []float64
		for _, a := range splitArgs(rest[open+1 : end]) {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return t, fmt.Errorf("scenes: transform %s: %w", name, err)
			}
			args = append(args, v)
		}
		m, err := transformFunc(name, args)
		if err != nil {
			return t, err
		}
		t = t.Multiply(m)
		rest = strings.TrimLeft(rest[end+1:], " \t\n\r,")
	}
	return t, nil
}

func transformFunc(name string, a []float64) (scene.Affine, error) {
	f := func(v float64) float32 { return float32(v) }
	switch {
	case name == "matrix" && len(a) == 6:
		// SVG orders the matrix column-major.
		return scene.NewAffine(f(a[0]), f(a[2]), f(a[4]), f(a[1]), f(a[3]), f(a[5])), nil
	case name == "translate" && len(a) == 1:
		return scene.TranslateAffine(f(a[0]), 0), nil
	case name == "translate" && len(a) == 2:
		return scene.TranslateAffine(f(a[0]), f(a[1])), nil
	case name == "scale" && len(a) == 1:
		return scene.ScaleAffine(f(a[0]), f(a[0])), nil
	case name == "scale" && len(a) == 2:
		return scene.ScaleAffine(f(a[0]), f(a[1])), nil
	case name == "rotate" && len(a) == 1:
		return scene.RotateAffine(f(a[0] * math.Pi / 180)), nil
	case name == "rotate" && len(a) == 3:
		return scene.TranslateAffine(f(a[1]), f(a[2])).
			Multiply(scene.RotateAffine(f(a[0] * math.Pi / 180))).
			Multiply(scene.TranslateAffine(f(-a[1]), f(-a[2]))), nil
	case name == "skewX" && len(a) == 1:
		return scene.NewAffine(1, f(math.Tan(a[0]*math.Pi/180)), 0, 0, 1, 0), nil
	case name == "skewY" && len(a) == 1:
		return scene.NewAffine(1, 0, 0, f(math.Tan(a[0]*math.Pi/180)), 1, 0), nil
	}
	return scene.IdentityAffine(), fmt.Errorf("scenes: unsupported transform %s with %d args", name, len(a))
}

func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
