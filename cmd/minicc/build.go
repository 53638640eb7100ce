package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hassan/minicc/internal/cmdutil"
	"github.com/hassan/minicc/internal/codegen"
	"github.com/hassan/minicc/internal/compiler"
)

// newBuildCmd compiles one source file to assembly text.
//
// Functions that fail to compile are dropped: the command still
// writes the assembly for the survivors, reports every failure, and
// exits nonzero.
func newBuildCmd() *cobra.Command {
	var output string
	var jobs int
	cmd := &cobra.Command{
		Use:   "build <file.mc>",
		Short: "Compile a MiniC source file to assembly",
		Args:  cobra.ExactArgs(1),
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading source")
			}

			program, cerr := compiler.New(compiler.Options{Jobs: jobs}).Compile(string(source), args[0])
			if program != nil {
				if err := emit(cmd, program, output); err != nil {
					return err
				}
			}
			return cerr
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Write assembly to this file instead of stdout")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Compile up to this many functions concurrently")
	return cmd
}

// emit writes the assembly to the output file, or to stdout for "-".
func emit(cmd *cobra.Command, program *codegen.Program, output string) error {
	if output == "-" {
		_, err := program.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(output, []byte(program.String()), 0644); err != nil {
		return errors.Wrap(err, "writing assembly")
	}
	return nil
}
