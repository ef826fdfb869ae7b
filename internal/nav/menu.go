package nav

import "surveydeck/internal/deck"

// Menu is the slide overview modal. Its open state is independent of the
// controller; only SelectSlide touches both.
type Menu struct {
	ctrl   *Controller
	deck   *deck.Deck
	isOpen bool
}

type MenuEntry struct {
	Index   int
	Title   string
	Teaser  string
	Current bool
}

func NewMenu(ctrl *Controller, d *deck.Deck) *Menu {
	return &Menu{ctrl: ctrl, deck: d}
}

func (m *Menu) Open()        { m.isOpen = true }
func (m *Menu) Close()       { m.isOpen = false }
func (m *Menu) IsOpen() bool { return m.isOpen }

// SelectSlide jumps to index and closes the menu. The menu closes even when
// the jump is rejected.
func (m *Menu) SelectSlide(index int) {
	m.ctrl.Jump(index)
	m.Close()
}

// Entries lists every slide of the deck on each call.
func (m *Menu) Entries() []MenuEntry {
	slides := m.deck.Slides()
	out := make([]MenuEntry, len(slides))
	for i, s := range slides {
		out[i] = MenuEntry{
			Index:   i,
			Title:   s.Title,
			Teaser:  s.Teaser(),
			Current: i == m.ctrl.Index(),
		}
	}
	return out
}
