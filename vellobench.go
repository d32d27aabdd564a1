package vellobench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/vellobench/internal/bench"
	"github.com/gogpu/vellobench/internal/renderer"
	"github.com/gogpu/vellobench/internal/scenes"
)

// Stage names accepted by Cli.Stage.
const (
	StageRender = renderer.ScopeRender
	StageClear  = renderer.ScopeClear
	StageEncode = renderer.ScopeEncode
	StageRaster = renderer.ScopeRaster
)

// Options configures device, renderer and sampling.
type Options = bench.Options

// Format selects the report layout.
type Format = bench.Format

// Report formats.
const (
	FormatText   = bench.FormatText
	FormatPretty = bench.FormatPretty
	FormatYAML   = bench.FormatYAML
	FormatJSON   = bench.FormatJSON
)

// DefaultOptions returns 1000 samples of 3 passes at 2088x1600.
func DefaultOptions() Options { return bench.DefaultOptions() }

// ParseFormat validates a format name; "" selects text.
func ParseFormat(s string) (Format, error) { return bench.ParseFormat(s) }

// ErrNoCommand is returned by Run when Cli.Command is nil.
var ErrNoCommand = errors.New("vellobench: no command given")

// Command selects which scenes to benchmark: TestScenesArgs or SvgArgs.
type Command interface {
	scenes() (scenes.SceneSet, string, error)
}

// TestScenesArgs benchmarks the built-in test scenes.
type TestScenesArgs struct {
	// Matches is a comma-separated list of name fragments. A scene runs
	// when its name contains any of them; empty runs every scene.
	Matches string
}

func (a TestScenesArgs) scenes() (scenes.SceneSet, string, error) {
	return bench.TestScenes(a.Matches), "", nil
}

// SvgArgs benchmarks every .svg file of a directory.
type SvgArgs struct {
	Directory string
	// Matches filters file names like TestScenesArgs.Matches.
	Matches string
}

func (a SvgArgs) scenes() (scenes.SceneSet, string, error) {
	set, err := bench.SVGScenes(a.Directory, a.Matches)
	return set, ".svg", err
}

// Cli is one benchmark invocation.
type Cli struct {
	// Stage names a profiler scope whose GPU time is reported next to the
	// end-to-end time. Empty reports end-to-end only.
	Stage string

	Command Command

	// Options configures the run. The zero value selects DefaultOptions.
	Options Options
	Format  Format

	// Output receives the report. Nil writes to stdout.
	Output io.Writer
}

// Run loads the selected scenes, opens the device and writes the report.
func Run(ctx context.Context, cli Cli) error {
	if cli.Command == nil {
		return ErrNoCommand
	}
	w := cli.Output
	if w == nil {
		w = os.Stdout
	}
	format, err := bench.ParseFormat(string(cli.Format))
	if err != nil {
		return err
	}

	set, suffix, err := cli.Command.scenes()
	if err != nil {
		return err
	}
	if len(set.Scenes) == 0 {
		Logger().Warn("vellobench: no scene matched", "command", fmt.Sprintf("%+v", cli.Command))
	}

	opts := cli.options()
	b, err := bench.New(ctx, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	return bench.BenchmarkScenes(ctx, w, b, set, opts.Samples, cli.Stage, suffix, format)
}

func (c Cli) options() Options {
	if c.Options == (Options{}) {
		return DefaultOptions()
	}
	return c.Options
}
