// Package cmdutil holds the plumbing every minicc command shares:
// glog initialization and uniform error handling on the way out.
package cmdutil

import (
	"flag"
	"strconv"
)

// LogToStderr records whether glog output goes to stderr, so RunFunc
// knows the user already sees log detail and can include stack traces
// in the final error message.
var LogToStderr bool

// InitLogging points glog at the settings from our cobra flags.
//
// glog reads its configuration from the standard flag package only,
// so this calls flag.Parse and then pokes the values in. Cobra owns
// the real command line; flag.Parse stops at the first non-flag
// argument (the subcommand) and just marks the flag set as parsed,
// which keeps glog from complaining about unparsed flags.
func InitLogging(logToStderr bool, verbose int) {
	flag.Parse()
	if logToStderr {
		flag.Lookup("logtostderr").Value.Set("true")
		LogToStderr = true
	}
	if verbose > 0 {
		flag.Lookup("v").Value.Set(strconv.Itoa(verbose))
	}
}
