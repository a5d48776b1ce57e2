// Package input decodes raw terminal bytes into logical key events.
//
// The decoder tolerates escape sequences arriving split across reads: bytes
// are buffered until a sequence completes, and a short timeout flushes a
// dangling prefix so a stray ESC can never absorb subsequent input.
package input

import "fmt"

// Key identifies a decoded logical key.
type Key int

const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyCtrlC
)

// Event is one decoded key press. Rune is set only for KeyRune.
type Event struct {
	Key  Key
	Rune rune
}

func (e Event) String() string {
	switch e.Key {
	case KeyRune:
		return string(e.Rune)
	case KeyUp:
		return "UP"
	case KeyDown:
		return "DOWN"
	case KeyLeft:
		return "LEFT"
	case KeyRight:
		return "RIGHT"
	case KeyEnter:
		return "ENTER"
	case KeyEscape:
		return "ESC"
	case KeyCtrlC:
		return "CTRL-C"
	default:
		return fmt.Sprintf("Key(%d)", int(e.Key))
	}
}
