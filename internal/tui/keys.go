package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the TUI handles itself or shows in the footer.
// Everything else is forwarded to the active screen by key name.
type KeyMap struct {
	ForceQuit key.Binding
	Pause     key.Binding
	Save      key.Binding
	Load      key.Binding
	Speed     key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Load: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "load"),
	),
	Speed: key.NewBinding(
		key.WithKeys("+", "-"),
		key.WithHelp("+/-", "speed"),
	),
}

// ShortHelp lists the bindings shown while playing.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Speed, k.Save, k.Load, k.ForceQuit}
}
