package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra already printed the problem (an unknown flag or
		// subcommand); run errors exit through cmdutil.RunFunc.
		os.Exit(1)
	}
}
