package ui

import (
	"charm.land/bubbles/v2/key"

	"surveydeck/internal/input"
)

type deckKeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Focus      key.Binding
	Activate   key.Binding
	Adjust     key.Binding
	Clear      key.Binding
	Overview   key.Binding
	Fullscreen key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newDeckKeyMap() deckKeyMap {
	return deckKeyMap{
		Prev:       key.NewBinding(key.WithKeys(input.KeyLeft), key.WithHelp("←", "prev")),
		Next:       key.NewBinding(key.WithKeys(input.KeyRight, input.KeySpace), key.WithHelp("→/space", "next")),
		Focus:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Activate:   key.NewBinding(key.WithKeys(input.KeyEnter), key.WithHelp("enter", "press")),
		Adjust:     key.NewBinding(key.WithKeys("up", "down", "+", "-", "pgup", "pgdown"), key.WithHelp("↑/↓", "adjust/scroll")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unfocus")),
		Overview:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "overview")),
		Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k deckKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Overview, k.Fullscreen, k.Help, k.Quit}
}

func (k deckKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Focus, k.Activate},
		{k.Adjust, k.Clear, k.Overview},
		{k.Fullscreen, k.Help, k.Quit},
	}
}

// sliderStep maps a key to a slider adjustment.
func sliderStep(name string) (int, bool) {
	switch name {
	case "up", "+", "=":
		return 1, true
	case "down", "-":
		return -1, true
	case "pgup":
		return 5, true
	case "pgdown":
		return -5, true
	}
	return 0, false
}
