package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the widget's key bindings. The fact actions are disabled
// while a fetch is outstanding.
type keyMap struct {
	NewFact key.Binding
	Copy    key.Binding
	Share   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NewFact: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "new fact"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "C"),
			key.WithHelp("c", "copy"),
		),
		Share: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "share"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// setActionsEnabled toggles the controls that trigger fact actions.
func (k *keyMap) setActionsEnabled(enabled bool) {
	k.NewFact.SetEnabled(enabled)
	k.Copy.SetEnabled(enabled)
	k.Share.SetEnabled(enabled)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewFact, k.Copy, k.Share, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewFact, k.Copy, k.Share},
		{k.Help, k.Quit},
	}
}
