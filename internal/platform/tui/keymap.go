package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-paddle/internal/core"
)

// GameKeyMap defines the in-game key bindings.
// Player 1 uses w/s; Player 2 uses the arrow keys. With a single player
// the arrows also drive Player 1.
type GameKeyMap struct {
	P1Up       key.Binding
	P1Down     key.Binding
	P2Up       key.Binding
	P2Down     key.Binding
	Serve      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Up, k.P1Down, k.Serve, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Up, k.P1Down, k.P2Up, k.P2Down},
		{k.Serve, k.Pause, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		P1Up: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "P1 up"),
		),
		P1Down: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "P1 down"),
		),
		P2Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "P2 up"),
		),
		P2Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "P2 down"),
		),
		Serve: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "serve"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
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
	Keys    GameKeyMap
	Players int
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper(players int) *KeyMapper {
	return &KeyMapper{Keys: DefaultGameKeyMap(), Players: players}
}

// MapKey translates a key message to a player and action.
// Returns ActionNone for keys that are not game actions.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	k := km.Keys

	p2 := core.Player2
	if km.Players < 2 {
		p2 = core.Player1
	}

	switch {
	case key.Matches(msg, k.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, k.P1Up):
		return core.Player1, core.ActionUp
	case key.Matches(msg, k.P1Down):
		return core.Player1, core.ActionDown
	case key.Matches(msg, k.P2Up):
		return p2, core.ActionUp
	case key.Matches(msg, k.P2Down):
		return p2, core.ActionDown
	case key.Matches(msg, k.Serve):
		return core.Player1, core.ActionServe
	case key.Matches(msg, k.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.Player1, core.ActionRestart
	}

	return core.Player1, core.ActionNone
}

// MapKeyToFrame updates a multi-input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	id, action := km.MapKey(msg)
	switch action {
	case core.ActionQuit:
		return true
	case core.ActionNone:
		return false
	}

	f := frame.Player(id)
	f.Set(action)
	frame.SetPlayer(id, f)
	return false
}
