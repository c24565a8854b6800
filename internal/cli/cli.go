// Package cli formats diagnostics for the command line. Everything goes to
// stderr: stdout is reserved for rendered generator output.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Verbose allows printing info messages.
var Verbose bool

// Verboseln formats an info message.
func Verboseln(content ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Fprintln(os.Stderr, "["+color.BlueString("•")+"] "+fmt.Sprint(content...))
}

// Verbosef formats an info message.
func Verbosef(format string, values ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Fprint(os.Stderr, "["+color.BlueString("•")+"] "+fmt.Sprintf(format, values...))
}

// Failureln formats a failure message.
func Failureln(content ...interface{}) {
	fmt.Fprintln(os.Stderr, "["+color.RedString("x")+"] "+fmt.Sprint(content...))
}

// Failuref formats a failure message.
func Failuref(format string, values ...interface{}) {
	fmt.Fprint(os.Stderr, "["+color.RedString("x")+"] "+fmt.Sprintf(format, values...))
}
