package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hassan/minicc/internal/cmdutil"
	"github.com/hassan/minicc/internal/compiler"
)

// newIRCmd prints the IR for a source file, stopping the pipeline
// before register allocation and code generation.
func newIRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ir <file.mc>",
		Short: "Print the IR for a MiniC source file",
		Args:  cobra.ExactArgs(1),
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading source")
			}

			module, merr := compiler.New(compiler.Options{}).IR(string(source), args[0])
			if module != nil {
				fmt.Fprint(cmd.OutOrStdout(), module.String())
			}
			return merr
		}),
	}
}
