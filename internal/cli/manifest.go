// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/vellobench/internal/manifest"
)

// errDependencyCheck is returned by "manifest --check" when a dependency is
// below its minimum.
var errDependencyCheck = errors.New("dependency check failed")

func newManifestCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the package manifest and check dependency versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := manifest.Default()
			if err := m.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := m.WriteYAML(out); err != nil {
				return err
			}

			issues, err := manifest.CheckRunning(m.Dependencies)
			if errors.Is(err, manifest.ErrNoBuildInfo) {
				fmt.Fprintln(out, "# dependency check skipped: no build info")
				return nil
			}
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				fmt.Fprintln(out, "# dependency check: ok")
				return nil
			}
			for _, is := range issues {
				fmt.Fprintf(out, "# dependency check: %s\n", is)
			}
			if check {
				return fmt.Errorf("%w: %d module(s) below minimum", errDependencyCheck, len(issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "exit with an error when a dependency is below its minimum")
	return cmd
}
