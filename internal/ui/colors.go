package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Color scheme for vlaunch
var (
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow)
	Info    = color.New(color.FgCyan)
	Muted   = color.New(color.Faint)
	Bold    = color.New(color.Bold)

	CrossMark = color.RedString("✗")
	Arrow     = color.CyanString("→")
)

// InitColors applies the configured color mode on top of the environment.
// NO_COLOR and TERM=dumb always win; "always" and "never" override the
// terminal detection fatih/color did at startup.
func InitColors(mode string) {
	switch mode {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	}

	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	if os.Getenv("TERM") == "dumb" {
		color.NoColor = true
	}
}

// PrintError prints an error message to w
func PrintError(w io.Writer, format string, args ...interface{}) {
	Error.Fprintf(w, "%s Error: %s\n", CrossMark, fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message to w
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	Warning.Fprintf(w, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// PrintInfo prints an info message to w
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	Info.Fprintf(w, "%s %s\n", Arrow, fmt.Sprintf(format, args...))
}

// PrintHeader prints a section header
func PrintHeader(w io.Writer, text string) {
	fmt.Fprintln(w)
	Bold.Fprintln(w, text)
	Muted.Fprintln(w, "────────────────────────────────────────")
}

// ColorizeStatus returns a colored scan status
func ColorizeStatus(status string) string {
	switch status {
	case "candidate":
		return Success.Sprint(status)
	case "not-executable", "not-regular":
		return Warning.Sprint(status)
	case "unreadable":
		return Error.Sprint(status)
	default:
		return Muted.Sprint(status)
	}
}

// SelectedMark returns the marker for the entry that would be launched
func SelectedMark(selected bool) string {
	if selected {
		return Arrow
	}
	return ""
}
