package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for the dashboard and the command prompt.
type KeyMap struct {
	// Common
	Quit       key.Binding
	ToggleHelp key.Binding

	// Dashboard
	Prompt      key.Binding
	ToggleStats key.Binding
	Report      key.Binding

	// Prompt
	Back   key.Binding
	Submit key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
		Prompt: key.NewBinding(
			key.WithKeys(":", "/"),
			key.WithHelp(":", "command prompt"),
		),
		ToggleStats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle stats"),
		),
		Report: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "perf report"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run command"),
		),
	}
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	return help.New()
}

// stateKeyMap adapts bindings to the current UI state for contextual help.
type stateKeyMap struct {
	keys  KeyMap
	state State
}

// ForState returns a contextual key map implementing help.KeyMap for the given state.
func (k KeyMap) ForState(s State) help.KeyMap {
	return stateKeyMap{keys: k, state: s}
}

// ShortHelp implements help.KeyMap for contextual help (compact).
func (s stateKeyMap) ShortHelp() []key.Binding {
	switch s.state {
	case StatePrompt:
		return []key.Binding{s.keys.Submit, s.keys.Back}
	case StateHelp:
		return []key.Binding{s.keys.ToggleHelp, s.keys.Quit}
	default:
		return []key.Binding{s.keys.Prompt, s.keys.ToggleStats, s.keys.Report, s.keys.ToggleHelp, s.keys.Quit}
	}
}

// FullHelp implements help.KeyMap for contextual help (expanded).
func (s stateKeyMap) FullHelp() [][]key.Binding {
	switch s.state {
	case StatePrompt:
		return [][]key.Binding{{s.keys.Submit, s.keys.Back}}
	default:
		return [][]key.Binding{
			{s.keys.Prompt, s.keys.ToggleStats, s.keys.Report},
			{s.keys.ToggleHelp, s.keys.Quit},
		}
	}
}
