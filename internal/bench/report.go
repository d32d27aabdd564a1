// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.yaml.in/yaml/v3"

	"github.com/gogpu/vellobench/internal/logging"
	"github.com/gogpu/vellobench/internal/scenes"
)

// Format selects how BenchmarkScenes prints results.
type Format string

const (
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
)

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatPretty, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("bench: unknown output format %q (want text, pretty, yaml or json)", s)
	}
}

// Report is the structured form of a run, written for yaml and json output.
type Report struct {
	Samples int           `json:"samples" yaml:"samples"`
	Stage   string        `json:"stage,omitempty" yaml:"stage,omitempty"`
	Scenes  []SceneReport `json:"scenes" yaml:"scenes"`
}

// SceneReport is one scene of a Report.
type SceneReport struct {
	Name   string `json:"name" yaml:"name"`
	Result `yaml:",inline"`
}

// Sampler produces the raw measurements of one scene. *Bench implements it.
type Sampler interface {
	Sample(ctx context.Context, ex scenes.ExampleScene, count int) (SceneQueryResults, error)
}

// BenchmarkScenes samples every scene of set and writes the results to w.
// Scene names are printed with suffix appended. Text output is written as
// each scene finishes; structured formats are written at the end.
func BenchmarkScenes(ctx context.Context, w io.Writer, s Sampler, set scenes.SceneSet, samples int, stage, suffix string, format Format) error {
	p := newPrinter(w, format)
	if err := p.header(samples); err != nil {
		return err
	}
	report := Report{Samples: samples, Stage: stage}
	for _, ex := range set.Scenes {
		logging.L().Info("bench: sampling scene", "scene", ex.Config.Name, "samples", samples)
		raw, err := s.Sample(ctx, ex, samples)
		if err != nil {
			return fmt.Errorf("scene %s%s: %w", ex.Config.Name, suffix, err)
		}
		sr := SceneReport{Name: ex.Config.Name + suffix, Result: raw.Analyze(stage)}
		report.Scenes = append(report.Scenes, sr)
		if err := p.scene(sr, stage); err != nil {
			return err
		}
	}
	return p.finish(report)
}

type printer struct {
	w      io.Writer
	format Format

	rule  lipgloss.Style
	title lipgloss.Style
	label lipgloss.Style
}

func newPrinter(w io.Writer, format Format) *printer {
	p := &printer{w: w, format: format}
	if format == FormatPretty {
		p.rule = lipgloss.NewStyle().Faint(true)
		p.title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		p.label = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	}
	return p
}

func (p *printer) textual() bool {
	return p.format == FormatText || p.format == FormatPretty || p.format == ""
}

func (p *printer) header(samples int) error {
	if !p.textual() {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "samples: %d\n", samples)
	return err
}

func (p *printer) scene(sr SceneReport, stage string) error {
	if !p.textual() {
		return nil
	}
	style := func(s lipgloss.Style, v string) string {
		if p.format != FormatPretty {
			return v
		}
		return s.Render(v)
	}

	var b strings.Builder
	fmt.Fprintln(&b, style(p.rule, "------"))
	fmt.Fprintln(&b, style(p.rule, "mean,median,min,max,plot"))
	fmt.Fprintf(&b, "%s %s, CPU encode time: %s\n",
		style(p.label, "scene:"), style(p.title, sr.Name), FormatSeconds(sr.PrepTime))
	fmt.Fprintf(&b, "%s %s\n", style(p.label, "render:"), sr.EndToEnd)
	if stage != "" && sr.PipelineStage != nil {
		fmt.Fprintf(&b, "%s %s\n", style(p.label, "stage ("+stage+"):"), *sr.PipelineStage)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *printer) finish(r Report) error {
	switch p.format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("bench: encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("bench: encode json report: %w", err)
		}
	}
	return nil
}
