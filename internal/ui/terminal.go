package ui

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the width of the terminal on stdout, or 0
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// SaveState snapshots the terminal mode of f and returns a function that
// restores it. Prompts may switch the terminal to raw mode; calling the
// restore function on every exit path leaves the user's terminal usable.
func SaveState(f *os.File) func() {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.GetState(fd)
	if err != nil {
		return func() {}
	}
	return func() {
		_ = term.Restore(fd, state)
	}
}
