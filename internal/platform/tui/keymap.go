package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/makeup-rain/internal/core"
)

// GameKeyMap defines the in-game key bindings.
// Player 1 steers with the arrows, player 2 with A/D.
type GameKeyMap struct {
	P1Left  key.Binding
	P1Right key.Binding
	P2Left  key.Binding
	P2Right key.Binding
	Pause   key.Binding
	Menu    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Left, k.P1Right, k.Pause, k.Menu, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Left, k.P1Right, k.P2Left, k.P2Right},
		{k.Pause, k.Restart, k.Menu, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		P1Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		P1Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		P2Left: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "P2 left"),
		),
		P2Right: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "P2 right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "pause"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuKeyMap defines the key bindings shared by menu screens.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Back, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a player's action.
// Shared keys (pause, restart, menu, quit) are reported for Player1.
// In single player mode player 2's keys are ignored.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, coop bool) (core.PlayerID, core.Action) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, km.keys.P1Left):
		return core.Player1, core.ActionLeft
	case key.Matches(msg, km.keys.P1Right):
		return core.Player1, core.ActionRight
	case coop && key.Matches(msg, km.keys.P2Left):
		return core.Player2, core.ActionLeft
	case coop && key.Matches(msg, km.keys.P2Right):
		return core.Player2, core.ActionRight
	case key.Matches(msg, km.keys.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, km.keys.Restart):
		return core.Player1, core.ActionRestart
	case key.Matches(msg, km.keys.Menu):
		return core.Player1, core.ActionBack
	}
	return core.Player1, core.ActionNone
}

// heldKey identifies one player's movement key.
type heldKey struct {
	player core.PlayerID
	action core.Action
}

// Hold windows. Terminals only report presses, repeating them while a key is
// down after an initial delay, so a press counts as held until the repeats
// would have arrived.
const (
	holdFirstMs  = 550
	holdRepeatMs = 120
)

// HeldKeys turns discrete key presses into held movement keys.
type HeldKeys struct {
	first  int
	repeat int
	now    int
	until  map[heldKey]int
}

// NewHeldKeys creates a tracker for the given tick rate.
func NewHeldKeys(tickRate int) *HeldKeys {
	return &HeldKeys{
		first:  core.MillisToTicks(holdFirstMs, tickRate),
		repeat: core.MillisToTicks(holdRepeatMs, tickRate),
		until:  make(map[heldKey]int),
	}
}

// Press records a key press. Pressing one direction releases the other.
func (h *HeldKeys) Press(id core.PlayerID, a core.Action) {
	k := heldKey{player: id, action: a}
	if deadline, ok := h.until[k]; ok {
		h.until[k] = max(deadline, h.now+h.repeat)
	} else {
		h.until[k] = h.now + h.first
	}
	if opp := opposite(a); opp != core.ActionNone {
		delete(h.until, heldKey{player: id, action: opp})
	}
}

// Apply sets every held key on frame.
func (h *HeldKeys) Apply(frame *core.MultiInputFrame) {
	for k := range h.until {
		f := frame.Player(k.player)
		f.Set(k.action)
		frame.SetPlayer(k.player, f)
	}
}

// Held reports whether the key is currently held.
func (h *HeldKeys) Held(id core.PlayerID, a core.Action) bool {
	_, ok := h.until[heldKey{player: id, action: a}]
	return ok
}

// Tick advances one simulation tick and releases expired keys.
func (h *HeldKeys) Tick() {
	h.now++
	for k, deadline := range h.until {
		if deadline <= h.now {
			delete(h.until, k)
		}
	}
}

// Release drops every held key.
func (h *HeldKeys) Release() {
	clear(h.until)
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}
