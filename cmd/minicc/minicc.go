package main

import (
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hassan/minicc/internal/cmdutil"
)

// newRootCmd builds the minicc command tree.
func newRootCmd() *cobra.Command {
	var logToStderr bool
	var verbose int
	cmd := &cobra.Command{
		Use:   "minicc",
		Short: "minicc compiles MiniC source files to assembly",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdutil.InitLogging(logToStderr, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
	}

	addLogFlags(cmd.PersistentFlags(), &logToStderr, &verbose)

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newIRCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addLogFlags declares the glog passthrough flags. InitLogging copies
// their values into the flag package, the only configuration surface
// glog has.
func addLogFlags(flags *pflag.FlagSet, logToStderr *bool, verbose *int) {
	flags.BoolVar(logToStderr, "logtostderr", false, "Log to stderr instead of to files")
	flags.IntVarP(verbose, "verbose", "v", 0, "Enable verbose logging (e.g. -v=2); higher is noisier")
}
