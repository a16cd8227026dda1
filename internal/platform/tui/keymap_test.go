package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/makeup-rain/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name       string
		msg        tea.KeyMsg
		coop       bool
		wantPlayer core.PlayerID
		wantAction core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, false, core.Player1, core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, true, core.Player1, core.ActionRight},
		{"a in coop", runeKey('a'), true, core.Player2, core.ActionLeft},
		{"d in coop", runeKey('d'), true, core.Player2, core.ActionRight},
		{"A in coop", runeKey('A'), true, core.Player2, core.ActionLeft},
		{"a in single", runeKey('a'), false, core.Player1, core.ActionNone},
		{"pause", runeKey('p'), false, core.Player1, core.ActionPause},
		{"restart", runeKey('r'), true, core.Player1, core.ActionRestart},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false, core.Player1, core.ActionBack},
		{"q", runeKey('q'), false, core.Player1, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, true, core.Player1, core.ActionQuit},
		{"unbound", runeKey('x'), true, core.Player1, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, action := km.MapKey(tt.msg, tt.coop)
			if id != tt.wantPlayer || action != tt.wantAction {
				t.Errorf("MapKey() = %v/%v, want %v/%v", id, action, tt.wantPlayer, tt.wantAction)
			}
		})
	}
}

func TestHeldKeysFirstPress(t *testing.T) {
	h := NewHeldKeys(60)
	h.Press(core.Player1, core.ActionLeft)

	// 550 ms at 60 tps
	for i := 0; i < 32; i++ {
		h.Tick()
		if !h.Held(core.Player1, core.ActionLeft) {
			t.Fatalf("key released after %d ticks, want 33", i+1)
		}
	}
	h.Tick()
	if h.Held(core.Player1, core.ActionLeft) {
		t.Error("key should be released after the first hold window")
	}
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := NewHeldKeys(60)
	h.Press(core.Player1, core.ActionRight)
	for range 30 {
		h.Tick()
	}

	// Repeats arrive every few ticks while the key is down.
	for range 20 {
		h.Press(core.Player1, core.ActionRight)
		for range 4 {
			h.Tick()
		}
	}
	if !h.Held(core.Player1, core.ActionRight) {
		t.Fatal("repeats should keep the key held")
	}

	// 120 ms after the last repeat the key is up.
	for range 7 {
		h.Tick()
	}
	if h.Held(core.Player1, core.ActionRight) {
		t.Error("key should be released once repeats stop")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := NewHeldKeys(60)
	h.Press(core.Player1, core.ActionLeft)
	h.Press(core.Player2, core.ActionLeft)
	h.Press(core.Player1, core.ActionRight)

	if h.Held(core.Player1, core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !h.Held(core.Player2, core.ActionLeft) {
		t.Error("players are tracked separately")
	}

	frame := core.NewMultiInputFrame()
	h.Apply(&frame)
	if !frame.Player1().Has(core.ActionRight) || frame.Player1().Has(core.ActionLeft) {
		t.Error("player 1 frame should hold only right")
	}
	if !frame.Player2().Has(core.ActionLeft) {
		t.Error("player 2 frame should hold left")
	}

	h.Release()
	if h.Held(core.Player1, core.ActionRight) || h.Held(core.Player2, core.ActionLeft) {
		t.Error("Release should drop every key")
	}
}

func TestHeldKeysScaleWithTickRate(t *testing.T) {
	h := NewHeldKeys(30)
	h.Press(core.Player1, core.ActionLeft)
	for range 16 {
		h.Tick()
	}
	if !h.Held(core.Player1, core.ActionLeft) {
		t.Error("550 ms is 17 ticks at 30 tps")
	}
	h.Tick()
	if h.Held(core.Player1, core.ActionLeft) {
		t.Error("key should be released after 17 ticks")
	}
}
