package vellobench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func cpuOptions() Options {
	opts := DefaultOptions()
	opts.UseCPU = true
	opts.Samples = 2
	opts.Width = 64
	opts.Height = 48
	opts.Complexity = 0
	return opts
}

func TestRunTestScenes(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), Cli{
		Stage:   "raster",
		Command: TestScenesArgs{Matches: "funky"},
		Options: cpuOptions(),
		Output:  &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out.String())
	}
	want := []string{"samples: 2", "------", "mean,median,min,max,plot", "scene: funky_paths, CPU encode time: ", "render: ", "stage (raster): "}
	for i, prefix := range want {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestRunSVG(t *testing.T) {
	dir := t.TempDir()
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32"><rect width="16" height="16" fill="red"/></svg>`
	for _, name := range []string{"a_timing.svg", "b_other.svg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(svg), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	err := Run(context.Background(), Cli{
		Command: SvgArgs{Directory: dir, Matches: "timing"},
		Options: cpuOptions(),
		Format:  FormatJSON,
		Output:  &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var report struct {
		Samples int `json:"samples"`
		Scenes  []struct {
			Name string `json:"name"`
		} `json:"scenes"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if report.Samples != 2 || len(report.Scenes) != 1 || report.Scenes[0].Name != "a_timing.svg" {
		t.Errorf("report = %+v", report)
	}
}

func TestRunErrors(t *testing.T) {
	noSamples := cpuOptions()
	noSamples.Samples = 0
	tests := []struct {
		name string
		cli  Cli
	}{
		{"no command", Cli{Options: cpuOptions()}},
		{"bad format", Cli{Command: TestScenesArgs{}, Options: cpuOptions(), Format: "xml"}},
		{"missing svg dir", Cli{Command: SvgArgs{Directory: filepath.Join(t.TempDir(), "nope")}, Options: cpuOptions()}},
		{"invalid options", Cli{Command: TestScenesArgs{}, Options: noSamples}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Run(context.Background(), tt.cli); err == nil {
				t.Error("Run succeeded")
			}
		})
	}
	if err := Run(context.Background(), Cli{}); !errors.Is(err, ErrNoCommand) {
		t.Errorf("Run(empty) = %v, want ErrNoCommand", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, Cli{Command: TestScenesArgs{Matches: "conflation"}, Options: cpuOptions(), Output: &bytes.Buffer{}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run(canceled) = %v, want context.Canceled", err)
	}
}

func TestRunNoSceneMatched(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	var out bytes.Buffer
	err := Run(context.Background(), Cli{
		Stage:   StageRaster,
		Command: TestScenesArgs{Matches: "zzz"},
		Options: cpuOptions(),
		Output:  &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "samples: 2\n" {
		t.Errorf("output = %q, want the header only", got)
	}
	if !strings.Contains(logs.String(), "level=WARN") || !strings.Contains(logs.String(), "no scene matched") {
		t.Errorf("missing warning in logs:\n%s", logs.String())
	}
}

func TestCliOptions(t *testing.T) {
	if got := (Cli{}).options(); got != DefaultOptions() {
		t.Errorf("zero Options = %+v, want DefaultOptions", got)
	}
	custom := cpuOptions()
	if got := (Cli{Options: custom}).options(); got != custom {
		t.Errorf("Options = %+v, want %+v", got, custom)
	}
}
