// Package term detects properties of the terminal a command writes to.
package term

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Output is a command output with its terminal properties.
type Output struct {
	io.Writer

	TTY   bool
	Width int
}

// Detect inspects w. Only an *os.File attached to a terminal is a TTY.
func Detect(w io.Writer) Output {
	out := Output{Writer: w, Width: DefaultWidth}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return out
	}

	out.TTY = true
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		out.Width = width
	}
	return out
}
