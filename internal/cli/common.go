package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
)

// FormatError formats an error message for CLI output
func FormatError(err error) string {
	return text.FgRed.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return text.FgGreen.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return text.FgYellow.Sprintf("⚠ %s", msg)
}

// StatusText renders the install status of a tool.
func StatusText(installed bool) string {
	if installed {
		return text.FgGreen.Sprint("installed")
	}
	return text.FgYellow.Sprint("missing")
}

// ValueOrDash returns "-" for empty table cells.
func ValueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Plural returns "1 tool" or "n tools".
func Plural(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
