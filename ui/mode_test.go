package ui

import (
	"testing"

	"esstat/input"
)

func runeEvent(r rune) input.Event {
	return input.Event{Key: input.KeyRune, Rune: r}
}

func TestModeToggles(t *testing.T) {
	var sm StateMachine

	if sm.Mode() != ModeNormal {
		t.Fatalf("initial mode = %v, want normal", sm.Mode())
	}

	sm.Apply(runeEvent('h'), 0)
	if sm.Mode() != ModeHelp {
		t.Fatalf("after h: mode = %v, want help", sm.Mode())
	}
	sm.Apply(runeEvent('h'), 0)
	if sm.Mode() != ModeNormal {
		t.Fatalf("after second h: mode = %v, want normal", sm.Mode())
	}

	sm.Apply(runeEvent('p'), 0)
	if sm.Mode() != ModePaused {
		t.Fatalf("after p: mode = %v, want paused", sm.Mode())
	}
	// Keys other than the paused toggle and quit are ignored while paused.
	sm.Apply(runeEvent('h'), 0)
	sm.Apply(runeEvent('e'), 5)
	if sm.Mode() != ModePaused {
		t.Fatalf("paused mode reacted to unrelated keys: %v", sm.Mode())
	}
	sm.Apply(runeEvent('p'), 0)
	if sm.Mode() != ModeNormal {
		t.Fatalf("after unpause: mode = %v, want normal", sm.Mode())
	}
}

func TestQuitKeys(t *testing.T) {
	cases := []struct {
		name string
		prep func(sm *StateMachine)
		ev   input.Event
		quit bool
	}{
		{"q in normal", func(*StateMachine) {}, runeEvent('q'), true},
		{"q in help", func(sm *StateMachine) { sm.Apply(runeEvent('h'), 0) }, runeEvent('q'), true},
		{"q in paused", func(sm *StateMachine) { sm.Apply(runeEvent('p'), 0) }, runeEvent('q'), true},
		// In edit mode q is just another non-arrow key: it exits edit.
		{"q in edit", func(sm *StateMachine) { sm.Apply(runeEvent('e'), 3) }, runeEvent('q'), false},
		{"ctrl-c in normal", func(*StateMachine) {}, input.Event{Key: input.KeyCtrlC}, true},
		{"ctrl-c in edit", func(sm *StateMachine) { sm.Apply(runeEvent('e'), 3) }, input.Event{Key: input.KeyCtrlC}, true},
	}
	for _, tc := range cases {
		var sm StateMachine
		tc.prep(&sm)
		if got := sm.Apply(tc.ev, 3); got != tc.quit {
			t.Errorf("%s: quit = %v, want %v", tc.name, got, tc.quit)
		}
	}
}

func TestEditSelectionClamps(t *testing.T) {
	var sm StateMachine
	sm.Apply(runeEvent('e'), 3)
	if sm.Mode() != ModeEdit || sm.Selected() != 0 {
		t.Fatalf("enter edit: mode=%v selected=%d", sm.Mode(), sm.Selected())
	}

	// Up at the first row stays put, never wraps to the bottom.
	sm.Apply(input.Event{Key: input.KeyUp}, 3)
	if sm.Selected() != 0 {
		t.Fatalf("up at top moved selection to %d", sm.Selected())
	}

	sm.Apply(input.Event{Key: input.KeyDown}, 3)
	sm.Apply(input.Event{Key: input.KeyDown}, 3)
	if sm.Selected() != 2 {
		t.Fatalf("selection = %d, want 2", sm.Selected())
	}
	// Down at the last row stays put, never wraps to the top.
	sm.Apply(input.Event{Key: input.KeyDown}, 3)
	if sm.Selected() != 2 {
		t.Fatalf("down at bottom moved selection to %d", sm.Selected())
	}

	sm.Apply(input.Event{Key: input.KeyLeft}, 3)
	sm.Apply(input.Event{Key: input.KeyRight}, 3)
	if sm.Mode() != ModeEdit || sm.Selected() != 2 {
		t.Fatalf("horizontal arrows changed state: mode=%v selected=%d", sm.Mode(), sm.Selected())
	}

	// Any other key exits edit and clears the selection.
	sm.Apply(runeEvent('x'), 3)
	if sm.Mode() != ModeNormal || sm.Selected() != 0 {
		t.Fatalf("exit edit: mode=%v selected=%d", sm.Mode(), sm.Selected())
	}
}

func TestEditRequiresRows(t *testing.T) {
	var sm StateMachine
	sm.Apply(runeEvent('e'), 0)
	if sm.Mode() != ModeNormal {
		t.Fatalf("edit entered with no rows: %v", sm.Mode())
	}
}

func TestClampSelectionAfterShrink(t *testing.T) {
	var sm StateMachine
	sm.Apply(runeEvent('e'), 5)
	for i := 0; i < 4; i++ {
		sm.Apply(input.Event{Key: input.KeyDown}, 5)
	}
	if sm.Selected() != 4 {
		t.Fatalf("selection = %d, want 4", sm.Selected())
	}

	sm.ClampSelection(2)
	if sm.Mode() != ModeEdit || sm.Selected() != 1 {
		t.Fatalf("after shrink to 2: mode=%v selected=%d", sm.Mode(), sm.Selected())
	}

	sm.ClampSelection(0)
	if sm.Mode() != ModeNormal || sm.Selected() != 0 {
		t.Fatalf("after shrink to 0: mode=%v selected=%d", sm.Mode(), sm.Selected())
	}
}
