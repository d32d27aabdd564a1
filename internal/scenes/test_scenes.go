// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenes

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/gogpu/vellobench/internal/logging"
)

// TestScenes returns the built-in scenes in their canonical order.
func TestScenes() SceneSet {
	return SceneSet{Scenes: []ExampleScene{
		example("funky_paths", false, funkyPaths),
		example("stroke_styles", false, strokeStyles(scene.IdentityAffine())),
		example("stroke_styles_non_uniform", false, strokeStyles(scene.ScaleAffine(1.2, 0.7))),
		example("fill_types", false, fillTypes),
		example("cardioid_and_friends", false, cardioidAndFriends),
		example("animated_text", true, animatedText),
		example("longpathdash_butt", false, longPathDash(scene.LineCapButt)),
		example("longpathdash_round", false, longPathDash(scene.LineCapRound)),
		example("mmark", false, mmark),
		example("many_draw_objects", false, manyDrawObjects),
		example("blend_grid", false, blendGrid),
		example("conflation", false, conflation),
	}}
}

func example(name string, animated bool, f SceneFunc) ExampleScene {
	return ExampleScene{Function: f, Config: SceneConfig{Name: name, Animated: animated}}
}

var (
	red    = gg.RGB(1, 0, 0)
	green  = gg.RGB(0, 0.5, 0)
	blue   = gg.RGB(0, 0, 1)
	yellow = gg.RGB(1, 1, 0)
	white  = gg.White
	purple = gg.RGB(0.5, 0, 0.5)
)

func solid(c gg.RGBA) scene.Brush { return scene.SolidBrush(c) }

func funkyPaths(s *scene.Scene, _ *SceneParams) {
	// Subpaths without an explicit MoveTo start where the previous one
	// closed.
	missingMoveTo := scene.NewPath().
		MoveTo(0, 0).LineTo(100, 100).LineTo(100, 200).Close().
		LineTo(0, 400).LineTo(100, 400)
	onlyMoveTo := scene.NewPath().MoveTo(0, 0)
	emptyClose := scene.NewPath().Close()
	curves := scene.NewPath().
		MoveTo(200, 50).
		CubicTo(400, 0, 400, 300, 200, 250).
		QuadTo(100, 150, 200, 50).Close()

	s.Fill(scene.FillNonZero, scene.TranslateAffine(100, 100), solid(blue), scene.NewPathShape(missingMoveTo))
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(blue), scene.NewPathShape(emptyClose))
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(blue), scene.NewPathShape(onlyMoveTo))
	s.Fill(scene.FillEvenOdd, scene.TranslateAffine(400, 100), solid(purple), scene.NewPathShape(curves))
	s.Stroke(&scene.StrokeStyle{Width: 8, MiterLimit: 4, Cap: scene.LineCapRound, Join: scene.LineJoinRound},
		scene.TranslateAffine(500, 100), solid(green), scene.NewPathShape(missingMoveTo))
}

func strokeStyles(transform scene.Affine) SceneFunc {
	return func(s *scene.Scene, _ *SceneParams) {
		shapes := []*scene.Path{
			scene.NewPath().MoveTo(0, 0).LineTo(60, 0),
			scene.NewPath().MoveTo(0, 0).LineTo(20, 40).LineTo(40, 0).LineTo(60, 40),
			scene.NewPath().MoveTo(0, 0).CubicTo(20, 60, 40, -20, 60, 40),
			scene.NewPath().MoveTo(0, 0).QuadTo(30, 60, 60, 0).Close(),
		}
		caps := []scene.LineCap{scene.LineCapButt, scene.LineCapSquare, scene.LineCapRound}
		joins := []scene.LineJoin{scene.LineJoinBevel, scene.LineJoinMiter, scene.LineJoinRound}
		colors := []gg.RGBA{red, green, blue}

		s.PushTransform(transform)
		defer s.PopTransform()
		y := float32(60)
		for _, c := range caps {
			x := float32(60)
			for i, j := range joins {
				for _, shape := range shapes {
					style := &scene.StrokeStyle{Width: 10, MiterLimit: 4, Cap: c, Join: j}
					s.Stroke(style, scene.TranslateAffine(x, y), solid(colors[i]), scene.NewPathShape(shape))
					x += 100
				}
			}
			y += 100
		}
		// Hairlines and very wide strokes.
		for i, w := range []float32{0, 0.5, 1, 40} {
			style := &scene.StrokeStyle{Width: w, MiterLimit: 4, Cap: scene.LineCapButt, Join: scene.LineJoinMiter}
			s.Stroke(style, scene.TranslateAffine(60+float32(i)*160, y+20), solid(white), scene.NewPathShape(shapes[1]))
		}
	}
}

func fillTypes(s *scene.Scene, _ *SceneParams) {
	star := []float32{50, 0, 21, 90, 98, 35, 2, 35, 79, 90}
	arcs := scene.NewPath().
		MoveTo(0, 0).Arc(50, 50, 50, 50, 0, math.Pi*1.5, false).Close().
		Circle(50, 50, 30)

	rules := []scene.FillStyle{scene.FillNonZero, scene.FillEvenOdd}
	for i, rule := range rules {
		y := 60 + float32(i)*200
		s.Fill(rule, scene.TranslateAffine(60, y), solid(yellow), scene.NewPolygonShape(star...))
		s.Fill(rule, scene.TranslateAffine(260, y), solid(yellow), scene.NewPathShape(arcs))
		// Overdraw with a translucent copy to show coverage accumulation.
		s.Fill(rule, scene.TranslateAffine(460, y), solid(gg.RGBA2(0, 1, 0.7, 0.6)), scene.NewPolygonShape(star...))
		s.Fill(rule, scene.TranslateAffine(480, y+20), solid(gg.RGBA2(0.9, 0.7, 0.5, 0.6)), scene.NewPolygonShape(star...))
	}
}

func cardioidAndFriends(s *scene.Scene, _ *SceneParams) {
	renderCardioid(s)
	renderClipTest(s)
	renderAlphaTest(s)
}

func renderCardioid(s *scene.Scene) {
	const n = 601
	dth := math.Pi * 2 / n
	c := [2]float64{480, 480}
	r := 400.0
	p := scene.NewPath()
	for i := 1; i < n; i++ {
		a0 := float64(i) * dth
		a1 := float64((i*2)%n) * dth
		p.MoveTo(float32(c[0]+r*math.Cos(a0)), float32(c[1]+r*math.Sin(a0)))
		p.LineTo(float32(c[0]+r*math.Cos(a1)), float32(c[1]+r*math.Sin(a1)))
	}
	style := &scene.StrokeStyle{Width: 2, MiterLimit: 4, Cap: scene.LineCapButt, Join: scene.LineJoinMiter}
	s.Stroke(style, scene.IdentityAffine(), solid(gg.RGB(0, 0, 0.4)), scene.NewPathShape(p))
	s.Stroke(style, scene.IdentityAffine(), solid(white), scene.NewCircleShape(float32(c[0]), float32(c[1]), float32(r)))
}

func renderClipTest(s *scene.Scene) {
	const n = 16
	const x0, y0, x1, y1 = 50.0, 450.0, 550.0, 950.0
	for i := 0; i < n; i++ {
		t := float64(i) / n
		tt := 1 - t
		clip := scene.NewPolygonShape(
			float32(x0*tt+x1*t), float32(y0),
			float32(x1), float32(y0*tt+y1*t),
			float32(x1*tt+x0*t), float32(y1),
			float32(x0), float32(y1*tt+y0*t),
		)
		s.PushClip(clip)
	}
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(gg.RGB(0, 1, 0)),
		scene.NewRectShape(x0, y0, x1-x0, y1-y0))
	for i := 0; i < n; i++ {
		s.PopClip()
	}
}

func renderAlphaTest(s *scene.Scene) {
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(red), scene.NewRectShape(700, 50, 200, 200))
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(gg.RGBA2(0, 1, 0, 0.5)), scene.NewRectShape(750, 100, 200, 200))
	s.PushLayer(scene.BlendNormal, 0.5, scene.NewRectShape(0, 0, 10000, 10000))
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(blue), scene.NewRectShape(800, 150, 200, 200))
	s.PopLayer()
}

func animatedText(s *scene.Scene, params *SceneParams) {
	const body = "Fascinating vector text, rendered through the benchmark's scene pipeline."
	size := float32(40 + 20*math.Sin(params.Time))
	if params.Text == nil {
		params.Text = NewSimpleText()
	}
	add := func(size float32, c *gg.RGBA, t scene.Affine, str string) {
		if err := params.Text.Add(s, size, c, t, str); err != nil {
			logging.L().Warn("scenes: draw text", "err", err)
		}
	}
	add(size, nil, scene.TranslateAffine(110, 600), body)
	add(72, &yellow, scene.TranslateAffine(110, 700).Multiply(scene.RotateAffine(float32(params.Time*0.5))), "rotating")
	squash := scene.TranslateAffine(110, 200).Multiply(scene.ScaleAffine(2, 0.6))
	add(48, &green, squash, "squashed")
	if w, err := params.Text.Advance("squashed", 48); err == nil {
		s.Fill(scene.FillNonZero, squash, solid(green), scene.NewRectShape(0, 10, w, 4))
	}
	for i := 0; i < 8; i++ {
		add(12+float32(i)*6, &white, scene.TranslateAffine(110, 800+float32(i)*60), fmt.Sprintf("%d pt line %d", 12+i*6, i))
	}
}

type point struct{ x, y float32 }

func longPathDash(c scene.LineCap) SceneFunc {
	return func(s *scene.Scene, _ *SceneParams) {
		// A single polyline zig-zagging across the target.
		var pts []point
		for y := float32(0); y < 1600; y += 8 {
			row := int(y / 8)
			x0, x1 := float32(0), float32(2000)
			if row%2 == 1 {
				x0, x1 = x1, x0
			}
			for i := 0; i <= 100; i++ {
				t := float32(i) / 100
				pts = append(pts, point{x0 + (x1-x0)*t, y + 4*float32(math.Sin(float64(i)))})
			}
		}
		style := &scene.StrokeStyle{Width: 1, MiterLimit: 4, Cap: c, Join: scene.LineJoinRound}
		s.Stroke(style, scene.IdentityAffine(), solid(yellow), scene.NewPathShape(dashPolyline(pts, []float32{1, 1})))
	}
}

// dashPolyline splits pts into dashes following an on/off pattern that
// starts with an "on" run.
func dashPolyline(pts []point, pattern []float32) *scene.Path {
	p := scene.NewPath()
	if len(pts) < 2 {
		return p
	}
	var total float32
	for _, d := range pattern {
		total += d
	}
	p.MoveTo(pts[0].x, pts[0].y)
	if total <= 0 {
		for _, q := range pts[1:] {
			p.LineTo(q.x, q.y)
		}
		return p
	}

	idx, on := 0, true
	remain := pattern[0]
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		length := float32(math.Hypot(float64(b.x-a.x), float64(b.y-a.y)))
		var pos float32
		for length-pos > remain {
			pos += remain
			t := pos / length
			x, y := a.x+(b.x-a.x)*t, a.y+(b.y-a.y)*t
			if on {
				p.LineTo(x, y)
			} else {
				p.MoveTo(x, y)
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
		}
		remain -= length - pos
		if on {
			p.LineTo(b.x, b.y)
		}
	}
	return p
}

const (
	mmarkGridWidth  = 64
	mmarkGridHeight = 44
)

// mmarkCount is the number of paths drawn at complexity c.
func mmarkCount(c int) int {
	c = max(c, 0)
	if c < 10 {
		return (c + 1) * 1000
	}
	return min((c-8)*10000, 120_000)
}

func mmark(s *scene.Scene, params *SceneParams) {
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // fixed seed keeps the workload identical across runs
	params.Resolution = &Vec2{X: 1600, Y: 900}
	palette := []gg.RGBA{
		gg.RGB(0.063, 0.082, 0.118),
		gg.RGB(0.482, 0.165, 0.471),
		gg.RGB(0.945, 0.404, 0.318),
		gg.RGB(0.988, 0.769, 0.357),
		gg.RGB(0.271, 0.663, 0.812),
	}

	n := mmarkCount(params.Complexity)
	cellW := float32(1600) / mmarkGridWidth
	cellH := float32(900) / mmarkGridHeight
	for i := 0; i < n; i++ {
		gx, gy := rng.IntN(mmarkGridWidth), rng.IntN(mmarkGridHeight)
		p := scene.NewPath().MoveTo(float32(gx)*cellW, float32(gy)*cellH)
		for seg := 0; seg < 5; seg++ {
			gx = clampInt(gx+rng.IntN(3)-1, 0, mmarkGridWidth-1)
			gy = clampInt(gy+rng.IntN(3)-1, 0, mmarkGridHeight-1)
			x, y := float32(gx)*cellW, float32(gy)*cellH
			switch rng.IntN(3) {
			case 0:
				p.LineTo(x, y)
			case 1:
				p.QuadTo(x+cellW/2, y-cellH/2, x, y)
			default:
				p.CubicTo(x-cellW/2, y+cellH, x+cellW, y-cellH/2, x, y)
			}
		}
		width := float32(1 + rng.IntN(3)*2)
		style := &scene.StrokeStyle{Width: width, MiterLimit: 4, Cap: scene.LineCapButt, Join: scene.LineJoinMiter}
		s.Stroke(style, scene.IdentityAffine(), solid(palette[rng.IntN(len(palette))]), scene.NewPathShape(p))
	}
}

func clampInt(v, lo, hi int) int { return min(max(v, lo), hi) }

func manyDrawObjects(s *scene.Scene, _ *SceneParams) {
	const n = 1000
	const cx, cy = 1000.0, 800.0
	for i := 0; i < n; i++ {
		th := float64(i) * 0.1
		r := 10 + float64(i)*0.7
		x := cx + r*math.Cos(th)
		y := cy + r*math.Sin(th)
		c := gg.HSL(float64(i%360), 0.8, 0.5)
		s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(c), scene.NewCircleShape(float32(x), float32(y), 6))
	}
}

func blendGrid(s *scene.Scene, _ *SceneParams) {
	modes := []scene.BlendMode{
		scene.BlendNormal, scene.BlendMultiply, scene.BlendScreen, scene.BlendOverlay,
		scene.BlendDarken, scene.BlendLighten, scene.BlendColorDodge, scene.BlendColorBurn,
		scene.BlendHardLight, scene.BlendSoftLight, scene.BlendDifference, scene.BlendExclusion,
		scene.BlendHue, scene.BlendSaturation, scene.BlendColor, scene.BlendLuminosity,
	}
	for i, mode := range modes {
		x := float32(i%4)*225 + 25
		y := float32(i/4)*225 + 25
		s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(gg.RGB(0.2, 0.6, 0.9)), scene.NewRectShape(x, y, 200, 200))
		s.PushLayer(mode, 1, scene.NewRectShape(x, y, 200, 200))
		s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(red), scene.NewCircleShape(x+80, y+80, 60))
		s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(yellow), scene.NewCircleShape(x+120, y+120, 60))
		s.PopLayer()
	}
}

// conflation draws shapes that share edges, where coverage-based
// antialiasing leaks background along the seams.
func conflation(s *scene.Scene, _ *SceneParams) {
	const scale = 8
	bg := gg.RGB(0.9, 0.9, 0.9)
	s.PushTransform(scene.ScaleAffine(scale, scale))
	defer s.PopTransform()

	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(bg), scene.NewRectShape(0, 0, 100, 60))
	for i := 0; i < 10; i++ {
		x := float32(i)*8.5 + 5
		s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(gg.Black), scene.NewRectShape(x, 5, 4.25, 20))
		s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(gg.Black), scene.NewRectShape(x+4.25, 5, 4.25, 20))
	}
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(gg.Black), scene.NewPolygonShape(5, 30, 45, 30, 5, 55))
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), solid(gg.Black), scene.NewPolygonShape(45, 30, 45, 55, 5, 55))
}
