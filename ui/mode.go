package ui

import "esstat/input"

// Mode is the current interaction mode. Exactly one is active at a time;
// the toggles are mutually exclusive, never independently combinable flags.
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
	ModePaused
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeHelp:
		return "help"
	case ModePaused:
		return "paused"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// StateMachine owns the interaction mode and the edit-mode row selection.
// It is mutated only from the dashboard loop goroutine.
type StateMachine struct {
	mode     Mode
	selected int
}

// Mode returns the active mode.
func (s *StateMachine) Mode() Mode {
	return s.mode
}

// Selected returns the edit-mode row index. Meaningful only while in Edit.
func (s *StateMachine) Selected() int {
	return s.selected
}

// Apply feeds one key event through the state machine. rows is the number of
// currently selectable rows for Edit mode. It reports whether the event
// requests application shutdown.
func (s *StateMachine) Apply(ev input.Event, rows int) (quit bool) {
	// Ctrl-C always quits, regardless of mode.
	if ev.Key == input.KeyCtrlC {
		return true
	}

	switch s.mode {
	case ModeEdit:
		switch ev.Key {
		case input.KeyUp:
			if s.selected > 0 {
				s.selected--
			}
		case input.KeyDown:
			if s.selected < rows-1 {
				s.selected++
			}
		case input.KeyLeft, input.KeyRight:
			// Horizontal arrows have no meaning in the settings list.
		default:
			// Any non-arrow key leaves Edit and clears the selection.
			s.mode = ModeNormal
			s.selected = 0
		}
		return false

	case ModeHelp:
		switch keyRune(ev) {
		case 'h':
			s.mode = ModeNormal
		case 'q':
			return true
		}
		return false

	case ModePaused:
		switch keyRune(ev) {
		case 'p':
			s.mode = ModeNormal
		case 'q':
			return true
		}
		return false

	default: // ModeNormal
		switch keyRune(ev) {
		case 'q':
			return true
		case 'h':
			s.mode = ModeHelp
		case 'p':
			s.mode = ModePaused
		case 'e':
			// Entering Edit without selectable rows is a no-op.
			if rows > 0 {
				s.mode = ModeEdit
				s.selected = 0
			}
		}
		return false
	}
}

// ClampSelection keeps the selection valid when the underlying row count
// shrinks between polls. An empty table forces Edit mode off.
func (s *StateMachine) ClampSelection(rows int) {
	if s.mode != ModeEdit {
		return
	}
	if rows <= 0 {
		s.mode = ModeNormal
		s.selected = 0
		return
	}
	if s.selected > rows-1 {
		s.selected = rows - 1
	}
}

func keyRune(ev input.Event) rune {
	if ev.Key != input.KeyRune {
		return 0
	}
	return ev.Rune
}
