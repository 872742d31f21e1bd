package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap holds the key bindings of the terminal frontend.
// It satisfies help.KeyMap so the footer stays in sync with the bindings.
type KeyMap struct {
	Flap key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k", "enter"),
			key.WithHelp("space", "flap / start"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap. Every column holds one binding so the
// expanded footer stays a single row, the height the model reserves.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap},
		{k.Help},
		{k.Quit},
	}
}

// SignalForKey translates a key press to a game signal.
func (k KeyMap) SignalForKey(msg tea.KeyMsg) core.Signal {
	if key.Matches(msg, k.Flap) {
		return core.SignalFlap
	}
	return core.SignalNone
}

// SignalForMouse translates a mouse event to a game signal. Only a left
// button press counts as a tap.
func SignalForMouse(msg tea.MouseMsg) core.Signal {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.SignalTap
	}
	return core.SignalNone
}
