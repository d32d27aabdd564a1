// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/vellobench/internal/bench"
	"github.com/gogpu/vellobench/internal/device"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vellobench.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Defaults() {
		t.Errorf("Load() = %+v, want %+v", c, Defaults())
	}
	opts, err := c.BenchOptions()
	if err != nil {
		t.Fatalf("BenchOptions: %v", err)
	}
	if opts.Samples != bench.SampleCount || opts.Width != bench.Width || opts.Height != bench.Height ||
		opts.Passes != bench.MinPasses || opts.Complexity != bench.Complexity {
		t.Errorf("BenchOptions() = %+v", opts)
	}
	if opts.Device.Backends != device.DefaultBackends {
		t.Errorf("Backends = %v, want %v", opts.Device.Backends, device.DefaultBackends)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
samples: 10
width: 640
height: 480
backend: vulkan
format: json
log_level: debug
max_pending_frames: 5
`)
	c, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Samples != 10 || c.Width != 640 || c.Height != 480 || c.MaxPendingFrames != 5 {
		t.Errorf("Load() = %+v", c)
	}
	if f, _ := c.OutputFormat(); f != bench.FormatJSON {
		t.Errorf("OutputFormat() = %q, want json", f)
	}
	if l, _ := c.SlogLevel(); l != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", l)
	}
	// Unset keys keep their defaults.
	if c.Passes != bench.MinPasses {
		t.Errorf("Passes = %d, want %d", c.Passes, bench.MinPasses)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "samples: 10\n")
	t.Setenv("VELLOBENCH_SAMPLES", "25")
	t.Setenv("VELLOBENCH_USE_CPU", "true")
	c, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Samples != 25 || !c.UseCPU {
		t.Errorf("Load() = %+v, want samples=25 use_cpu=true", c)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		pointers []string
	}{
		{"unknown key", "sampels: 3\n", []string{""}},
		{"wrong type", "samples: many\n", []string{"/samples"}},
		{"bad enum and range", "backend: directx\nwidth: 0\n", []string{"/backend", "/width"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(), writeConfig(t, tt.body))
			var invalid *InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("Load() = %v, want *InvalidError", err)
			}
			got := map[string]bool{}
			for _, is := range invalid.Issues {
				got[is.Pointer] = true
			}
			for _, p := range tt.pointers {
				if !got[p] {
					t.Errorf("issues %v missing pointer %q", invalid.Issues, p)
				}
			}
		})
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("VELLOBENCH_FORMAT", "xml")
	if _, err := Load(New(), ""); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Load() = %v, want format error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load(missing) succeeded")
	}
}

func TestValidateYAMLEmpty(t *testing.T) {
	issues, err := ValidateYAML(nil)
	if err != nil || issues != nil {
		t.Errorf("ValidateYAML(nil) = %v, %v", issues, err)
	}
}
