// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/vellobench/internal/buildinfo"
	"github.com/gogpu/vellobench/internal/manifest"
)

func newVersionCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case short:
				fmt.Fprintln(out, buildinfo.Version)
			case asJSON:
				info := map[string]string{
					"version": buildinfo.Version,
					"commit":  buildinfo.Commit,
					"date":    buildinfo.Date,
					"profile": manifest.Active().Name,
				}
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
			default:
				fmt.Fprintf(out, "%s, profile %s\n", buildinfo.String(), manifest.Active().Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print the version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version info as JSON")
	return cmd
}
