// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenes

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"github.com/gogpu/gg/svg"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vellobench/internal/logging"
)

// SceneFromFiles loads every SVG in paths as a scene named after the file
// stem. Files are parsed concurrently; the set keeps the order of paths.
func SceneFromFiles(paths []string) (SceneSet, error) {
	out := make([]ExampleScene, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			ex, err := loadSVG(path)
			if err != nil {
				return err
			}
			out[i] = ex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SceneSet{}, err
	}
	return SceneSet{Scenes: out}, nil
}

func loadSVG(path string) (ExampleScene, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return ExampleScene{}, fmt.Errorf("scenes: read %s: %w", path, err)
	}
	doc, err := svg.Parse(data)
	if err != nil {
		return ExampleScene{}, fmt.Errorf("scenes: parse %s: %w", path, err)
	}
	fragment, resolution := renderSVG(doc)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	logging.L().Debug("scenes: loaded svg", "name", name, "elapsed", time.Since(start))

	return ExampleScene{
		Function: SceneFunc(func(s *scene.Scene, params *SceneParams) {
			s.Append(fragment)
			res := resolution
			params.Resolution = &res
		}),
		Config: SceneConfig{Name: name},
	}, nil
}

// svgState carries inherited presentation attributes down the tree.
type svgState struct {
	transform scene.Affine
	fill      string
	stroke    string
}

// renderSVG converts doc into a scene in document units and returns the
// document size.
func renderSVG(doc *svg.Document) (*scene.Scene, Vec2) {
	vb := doc.ViewBox
	w, h := doc.Width, doc.Height
	if w == 0 || h == 0 {
		w, h = vb.Width, vb.Height
	}

	root := scene.IdentityAffine()
	if vb.Width > 0 && vb.Height > 0 {
		root = scene.ScaleAffine(float32(w/vb.Width), float32(h/vb.Height)).
			Multiply(scene.TranslateAffine(float32(-vb.MinX), float32(-vb.MinY)))
	}

	s := scene.NewScene()
	state := svgState{transform: root, fill: doc.RootFill}
	for _, el := range doc.Elements {
		renderSVGElement(s, el, state)
	}
	return s, Vec2{X: w, Y: h}
}

func renderSVGElement(s *scene.Scene, el svg.Element, state svgState) {
	switch e := el.(type) {
	case *svg.GroupElement:
		child, ok := childState(&e.Attrs, state)
		if !ok {
			return
		}
		if e.Attrs.Fill != "" {
			child.fill = e.Attrs.Fill
		}
		if e.Attrs.Stroke != "" {
			child.stroke = e.Attrs.Stroke
		}
		layered := e.Attrs.Opacity < 1
		if layered {
			s.PushLayer(scene.BlendNormal, float32(e.Attrs.Opacity), nil)
		}
		for _, c := range e.Children {
			renderSVGElement(s, c, child)
		}
		if layered {
			s.PopLayer()
		}
	case *svg.PathElement:
		p, err := gg.ParseSVGPath(e.D)
		if err != nil {
			logging.L().Debug("scenes: skipping svg path", "err", err)
			return
		}
		drawSVGShape(s, &e.Attrs, state, scene.NewGGPathShape(p))
	case *svg.RectElement:
		var shape scene.Shape = scene.NewRectShape(float32(e.X), float32(e.Y), float32(e.W), float32(e.H))
		if r := max(e.RX, e.RY); r > 0 {
			shape = scene.NewRoundedRectShape(float32(e.X), float32(e.Y), float32(e.W), float32(e.H), float32(r))
		}
		drawSVGShape(s, &e.Attrs, state, shape)
	case *svg.CircleElement:
		drawSVGShape(s, &e.Attrs, state, scene.NewCircleShape(float32(e.CX), float32(e.CY), float32(e.R)))
	case *svg.EllipseElement:
		drawSVGShape(s, &e.Attrs, state, scene.NewEllipseShape(float32(e.CX), float32(e.CY), float32(e.RX), float32(e.RY)))
	case *svg.LineElement:
		p := scene.NewPath().MoveTo(float32(e.X1), float32(e.Y1)).LineTo(float32(e.X2), float32(e.Y2))
		a := e.Attrs
		a.Fill = "none"
		drawSVGShape(s, &a, state, scene.NewPathShape(p))
	case *svg.PolygonElement:
		drawSVGShape(s, &e.Attrs, state, scene.NewPathShape(polyPath(e.Points, true)))
	case *svg.PolylineElement:
		drawSVGShape(s, &e.Attrs, state, scene.NewPathShape(polyPath(e.Points, false)))
	}
}

// childState applies the element's own transform.
func childState(a *svg.Attrs, state svgState) (svgState, bool) {
	t, err := parseTransform(a.Transform)
	if err != nil {
		logging.L().Debug("scenes: skipping svg element", "err", err)
		return state, false
	}
	state.transform = state.transform.Multiply(t)
	return state, true
}

func drawSVGShape(s *scene.Scene, a *svg.Attrs, state svgState, shape scene.Shape) {
	state, ok := childState(a, state)
	if !ok {
		return
	}

	fill := a.Fill
	if fill == "" {
		fill = state.fill
	}
	stroke := a.Stroke
	if stroke == "" {
		stroke = state.stroke
	}

	if fill != "none" {
		c := gg.Black
		if fill != "" {
			var err error
			if c, err = parseColor(fill); err != nil {
				logging.L().Debug("scenes: svg fill", "err", err)
				c = gg.Black
			}
		}
		c.A *= a.FillOpacity * a.Opacity
		style := scene.FillNonZero
		if a.FillRule == "evenodd" || (a.FillRule == "" && a.ClipRule == "evenodd") {
			style = scene.FillEvenOdd
		}
		s.Fill(style, state.transform, scene.SolidBrush(c), shape)
	}

	if stroke != "" && stroke != "none" {
		c, err := parseColor(stroke)
		if err != nil {
			logging.L().Debug("scenes: svg stroke", "err", err)
			return
		}
		c.A *= a.StrokeOpacity * a.Opacity
		s.Stroke(svgStrokeStyle(a), state.transform, scene.SolidBrush(c), shape)
	}
}

func svgStrokeStyle(a *svg.Attrs) *scene.StrokeStyle {
	style := &scene.StrokeStyle{Width: float32(a.StrokeWidth), MiterLimit: 4}
	switch a.StrokeCap {
	case "round":
		style.Cap = scene.LineCapRound
	case "square":
		style.Cap = scene.LineCapSquare
	}
	switch a.StrokeJoin {
	case "round":
		style.Join = scene.LineJoinRound
	case "bevel":
		style.Join = scene.LineJoinBevel
	}
	return style
}

func polyPath(points []float64, closed bool) *scene.Path {
	p := scene.NewPath()
	for i := 0; i+1 < len(points); i += 2 {
		x, y := float32(points[i]), float32(points[i+1])
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	if closed && len(points) >= 2 {
		p.Close()
	}
	return p
}
