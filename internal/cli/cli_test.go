// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/vellobench"
	"github.com/gogpu/vellobench/internal/buildinfo"
)

// execute runs the command line with args and returns what the fake
// runner received.
func execute(t *testing.T, args ...string) (*vellobench.Cli, string, error) {
	t.Helper()
	orig := vellobench.Logger()
	t.Cleanup(func() { vellobench.SetLogger(orig) })

	var got *vellobench.Cli
	cmd := newRootCmd(func(_ context.Context, c vellobench.Cli) error {
		got = &c
		return nil
	})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return got, out.String(), err
}

func TestTestScenesCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stage   string
		matches string
	}{
		{"no flags", []string{"vello-test-scenes"}, "", ""},
		{"stage short", []string{"-s", "raster", "vello-test-scenes"}, "raster", ""},
		{"matches", []string{"vello-test-scenes", "-m", "mmark,longpathdash"}, "", "mmark,longpathdash"},
		{"long flags", []string{"vello-test-scenes", "--stage", "encode", "--matches", "blend"}, "encode", "blend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got == nil {
				t.Fatal("runner was not called")
			}
			if got.Stage != tt.stage {
				t.Errorf("Stage = %q, want %q", got.Stage, tt.stage)
			}
			want := vellobench.TestScenesArgs{Matches: tt.matches}
			if got.Command != want {
				t.Errorf("Command = %#v, want %#v", got.Command, want)
			}
			if got.Options.Samples != 1000 || got.Format != vellobench.FormatText {
				t.Errorf("defaults not applied: samples=%d format=%q", got.Options.Samples, got.Format)
			}
		})
	}
}

func TestSvgCommand(t *testing.T) {
	got, _, err := execute(t, "svg", "/data/svgs", "-m", "timing")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := vellobench.SvgArgs{Directory: "/data/svgs", Matches: "timing"}
	if got == nil || got.Command != want {
		t.Fatalf("Command = %+v, want %+v", got, want)
	}

	if _, _, err := execute(t, "svg"); err == nil {
		t.Error("svg without a directory succeeded")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte("samples: 7\nformat: yaml\nuse_cpu: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, _, err := execute(t, "--config", path, "vello-test-scenes")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Options.Samples != 7 || got.Format != vellobench.FormatYAML || !got.Options.UseCPU {
		t.Errorf("config not applied: %+v", got)
	}

	got, _, err = execute(t, "--config", path, "--samples", "3", "--format", "json", "vello-test-scenes")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Options.Samples != 3 || got.Format != vellobench.FormatJSON {
		t.Errorf("flags did not override config: samples=%d format=%q", got.Options.Samples, got.Format)
	}
}

func TestInvalidSettings(t *testing.T) {
	for _, args := range [][]string{
		{"--format", "xml", "vello-test-scenes"},
		{"--backend", "glide", "vello-test-scenes"},
		{"--samples", "0", "vello-test-scenes"},
		{"--config", "/nonexistent/vellobench.yaml", "vello-test-scenes"},
	} {
		got, _, err := execute(t, args...)
		if err == nil {
			t.Errorf("%v: succeeded", args)
		}
		if got != nil {
			t.Errorf("%v: runner called with %+v", args, got)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	orig := buildinfo.Version
	t.Cleanup(func() { buildinfo.Version = orig })
	buildinfo.Version = "v1.2.3"

	_, out, err := execute(t, "version", "--short")
	if err != nil || strings.TrimSpace(out) != "v1.2.3" {
		t.Errorf("version --short = %q, %v", out, err)
	}

	_, out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("version --json output %q: %v", out, err)
	}
	if info["version"] != "v1.2.3" || info["profile"] == "" {
		t.Errorf("version info = %v", info)
	}

	_, out, err = execute(t, "version")
	if err != nil || !strings.HasPrefix(out, "vellobench v1.2.3") {
		t.Errorf("version = %q, %v", out, err)
	}
}

func TestManifestCommand(t *testing.T) {
	_, out, err := execute(t, "manifest")
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	for _, want := range []string{"name: vellobench", "kind: bin", "target: 34", "# dependency check"} {
		if !strings.Contains(out, want) {
			t.Errorf("manifest output missing %q:\n%s", want, out)
		}
	}
}
