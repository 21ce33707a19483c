// Package output renders records to terminals and files in the supported
// presentations. This package is designed to have minimal dependencies on
// other internal packages to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DefaultTerminalWidth is used when the width cannot be determined.
const DefaultTerminalWidth = 80

// GetTerminalWidth returns the width of the terminal behind w, defaulting
// to 80 if unavailable.
func GetTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultTerminalWidth
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintSeparator prints a dim labelled rule across the terminal width.
func PrintSeparator(out io.Writer, label string, colorize bool) {
	width := GetTerminalWidth(out)
	label = " " + label + " "
	lineLen := (width - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}
	line := strings.Repeat("─", lineLen)
	if !colorize {
		fmt.Fprintf(out, "%s%s%s\n", line, label, line)
		return
	}
	magenta := color.New(color.FgMagenta, color.Faint)
	magenta.EnableColor()
	fmt.Fprintf(out, "%s\n", magenta.Sprint(line+label+line))
}
