// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/vellobench"
)

func newTestScenesCmd(st *state) *cobra.Command {
	var matches string
	cmd := &cobra.Command{
		Use:   "vello-test-scenes",
		Short: "Benchmark the built-in test scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return st.benchmark(cmd, vellobench.TestScenesArgs{Matches: matches})
		},
	}
	cmd.Flags().StringVarP(&matches, "matches", "m", "", "comma-separated scene name fragments to run")
	return cmd
}

func newSvgCmd(st *state) *cobra.Command {
	var matches string
	cmd := &cobra.Command{
		Use:   "svg DIRECTORY",
		Short: "Benchmark every SVG file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.benchmark(cmd, vellobench.SvgArgs{Directory: args[0], Matches: matches})
		},
	}
	cmd.Flags().StringVarP(&matches, "matches", "m", "", "comma-separated file name fragments to run")
	return cmd
}
