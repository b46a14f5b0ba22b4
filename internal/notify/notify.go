// Package notify renders the transient confirmation and error messages
// shown after container operations.
package notify

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Success prints a confirmation notification.
func Success(format string, a ...any) {
	fmt.Fprintln(os.Stdout, text.FgGreen.Sprintf("✔ "+format, a...))
}

// Error prints a failure notification.
func Error(format string, a ...any) {
	fmt.Fprintln(os.Stderr, text.FgRed.Sprintf("✘ "+format, a...))
}

// Info prints a neutral notification.
func Info(format string, a ...any) {
	fmt.Fprintln(os.Stdout, text.FgCyan.Sprintf("ℹ "+format, a...))
}
