package input

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is attached to a terminal. Without one
// the dashboard runs in its degraded, input-less mode.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// RawMode is the scoped raw-terminal acquisition. Restore must run on every
// exit path so the shell gets its terminal back.
type RawMode struct {
	fd    int
	state *term.State
}

// MakeRaw switches stdin into raw mode and remembers the previous state.
func MakeRaw() (*RawMode, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawMode{fd: fd, state: state}, nil
}

// Restore puts the terminal back into its original mode. Safe to call more
// than once.
func (r *RawMode) Restore() {
	if r == nil || r.state == nil {
		return
	}
	term.Restore(r.fd, r.state)
	r.state = nil
}

// TerminalSize returns the stdout dimensions, with a classic fallback when
// the size cannot be read.
func TerminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
