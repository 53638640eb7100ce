package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hassan/minicc/internal/cmdutil"
	"github.com/hassan/minicc/internal/version"
)

// newVersionCmd prints the version stamped into the binary.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the minicc version",
		Args:  cobra.NoArgs,
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			v, err := version.Semver()
			if err != nil {
				return errors.Wrapf(err, "malformed build version %q", version.Version)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "minicc %s\n", v)
			return nil
		}),
	}
}
