// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cli implements the vellobench command line.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/vellobench"
	"github.com/gogpu/vellobench/internal/buildinfo"
	"github.com/gogpu/vellobench/internal/config"
)

// runFunc runs one benchmark; vellobench.Run outside of tests.
type runFunc func(ctx context.Context, cli vellobench.Cli) error

// Execute runs the command line with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	if version != "" {
		buildinfo.Version = version
	}
	if commit != "" {
		buildinfo.Commit = commit
	}
	if date != "" {
		buildinfo.Date = date
	}
	return newRootCmd(vellobench.Run).ExecuteContext(ctx)
}

// state is shared by the root command and its subcommands.
type state struct {
	run runFunc
	v   *viper.Viper

	stage      string
	configPath string
	verbose    bool

	cfg config.Config
}

func newRootCmd(run runFunc) *cobra.Command {
	st := &state{run: run, v: config.New()}
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:   "vellobench",
		Short: "Benchmark the gg GPU vector graphics renderer",
		Long: `vellobench renders test scenes or SVG files into an off-screen target,
measures end-to-end and per-stage GPU times, and prints summary statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&st.stage, "stage", "s", "", "pipeline stage to report GPU time for (render, clear, encode, raster)")
	flags.StringVar(&st.configPath, "config", "", "YAML config file")
	flags.BoolVarP(&st.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.String("format", defaults.Format, "output format: text, pretty, yaml or json")
	flags.Int("samples", defaults.Samples, "samples per scene")
	flags.String("backend", defaults.Backend, "GPU backend: auto, vulkan, metal, dx12 or gl")
	flags.Bool("cpu", defaults.UseCPU, "render on the CPU")

	for key, name := range map[string]string{
		config.KeyFormat:  "format",
		config.KeySamples: "samples",
		config.KeyBackend: "backend",
		config.KeyUseCPU:  "cpu",
	} {
		_ = st.v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(
		newTestScenesCmd(st),
		newSvgCmd(st),
		newManifestCmd(),
		newVersionCmd(),
	)
	return cmd
}

// load merges config file, environment and flags, and installs the logger.
func (st *state) load(cmd *cobra.Command) error {
	cfg, err := config.Load(st.v, st.configPath)
	if err != nil {
		return err
	}
	st.cfg = cfg

	level, _ := cfg.SlogLevel()
	if st.verbose {
		level = slog.LevelDebug
	}
	vellobench.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

func (st *state) benchmark(cmd *cobra.Command, command vellobench.Command) error {
	opts, err := st.cfg.BenchOptions()
	if err != nil {
		return err
	}
	format, err := st.cfg.OutputFormat()
	if err != nil {
		return err
	}
	return st.run(cmd.Context(), vellobench.Cli{
		Stage:   st.stage,
		Command: command,
		Options: opts,
		Format:  format,
		Output:  cmd.OutOrStdout(),
	})
}
