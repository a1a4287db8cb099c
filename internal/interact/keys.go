// Package interact provides the single-key console capability used by the
// interactive search pause. Headless embedders never block: interactivity
// is forced off when stdin is not a terminal.
package interact

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// KeyFunc blocks until a single key press and returns it.
type KeyFunc func() (byte, error)

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WaitForKey reads one raw byte from stdin without echo, restoring the
// terminal state before returning.
func WaitForKey() (byte, error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return 0, err
	}
	defer term.Restore(fd, old)

	var buf [1]byte
	if _, err := os.Stdin.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
