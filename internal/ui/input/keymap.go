package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the handler reacts to. Everything else goes to
// the text area.
type KeyMap struct {
	Apply      key.Binding
	Next       key.Binding
	Prev       key.Binding
	ApplyNth   key.Binding
	AnalyzeNow key.Binding
	Overlay    key.Binding
	Help       key.Binding
	HelpPager  key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Apply: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "apply suggestion"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next suggestion"),
		),
		Prev: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "previous suggestion"),
		),
		ApplyNth: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1…9", "apply nth suggestion"),
		),
		AnalyzeNow: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "check now"),
		),
		Overlay: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "toggle highlight pane"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "more keys"),
		),
		HelpPager: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.ApplyNth, k.AnalyzeNow, k.HelpPager, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Apply, k.ApplyNth, k.Next, k.Prev},
		{k.AnalyzeNow, k.Overlay},
		{k.Help, k.HelpPager, k.Quit},
	}
}
