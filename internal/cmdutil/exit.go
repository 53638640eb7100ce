package cmdutil

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RunFunc wraps an error-returning run function with the standard
// minicc error behavior: render the message, flush the logs, exit
// nonzero. Wrapping also avoids cobra's default handling, which
// prints usage text after every error as if the command line itself
// were wrong.
func RunFunc(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := run(cmd, args); err != nil {
			var msg string
			if LogToStderr {
				msg = DetailedError(err)
			} else {
				msg = ErrorMessage(err)
				glog.V(3).Info(DetailedError(err))
			}
			ExitError(msg)
		}
	}
}

// ExitError prints msg to stderr and exits with a failing status.
func ExitError(msg string) {
	fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	glog.Flush()
	os.Exit(1)
}

// ErrorMessage renders err for people. A multierror with several
// entries becomes a numbered list, one line per failed function.
func ErrorMessage(err error) string {
	if multi, ok := err.(*multierror.Error); ok {
		wrapped := multi.WrappedErrors()
		if len(wrapped) == 1 {
			return ErrorMessage(wrapped[0])
		}
		msg := fmt.Sprintf("%d errors occurred:", len(wrapped))
		for i, w := range wrapped {
			msg += fmt.Sprintf("\n    %d) %s", i+1, ErrorMessage(w))
		}
		return msg
	}
	return err.Error()
}

// DetailedError renders err together with any stack traces attached
// by errors.Wrap, walking down the cause chain.
func DetailedError(err error) string {
	msg := ErrorMessage(err)
	hasstack := false
	for {
		stackerr, ok := err.(interface {
			StackTrace() errors.StackTrace
		})
		if !ok {
			break
		}

		msg += "\n"
		if hasstack {
			msg += "CAUSED BY...\n"
		}
		hasstack = true
		for _, f := range stackerr.StackTrace() {
			msg += fmt.Sprintf("%+v\n", f)
		}

		cause := errors.Cause(err)
		if cause == err || cause == nil {
			break
		}
		err = cause
	}
	return msg
}
