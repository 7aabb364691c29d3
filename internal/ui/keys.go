package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Like    key.Binding
	Nope    key.Binding
	Dismiss key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Like: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "like"),
		),
		Nope: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "nope"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("any key", "close"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// bindings is the help.KeyMap for one screen.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k keyMap) forScreen(s screen, tutorial bool) bindings {
	switch {
	case s == screenIntro:
		return bindings{k.Start, k.Quit}
	case s == screenDeck && tutorial:
		return bindings{k.Dismiss, k.Quit}
	case s == screenDeck:
		return bindings{k.Nope, k.Like, k.Quit}
	case s == screenSummary:
		return bindings{k.Restart, k.Quit}
	default:
		return bindings{k.Quit}
	}
}
