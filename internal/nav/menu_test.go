package nav

import (
	"testing"

	"surveydeck/internal/deck"
)

func testDeck(t *testing.T) *deck.Deck {
	t.Helper()
	doc := `
slides:
  - {id: 0, kind: title, title: Start, subtitle: Welcome}
  - {id: 1, kind: introduction, title: Intro, description: Context}
  - {id: 2, kind: final, title: End}
`
	d, err := deck.Parse([]byte(doc), "test")
	if err != nil {
		t.Fatalf("parse deck: %v", err)
	}
	return d
}

func TestSelectSlideAlwaysCloses(t *testing.T) {
	d := testDeck(t)
	c, _ := NewController(d.Len())
	m := NewMenu(c, d)

	m.Open()
	m.SelectSlide(2)
	if m.IsOpen() || c.Index() != 2 {
		t.Fatalf("expected closed menu on slide 2, open=%v index=%d", m.IsOpen(), c.Index())
	}

	m.Open()
	m.SelectSlide(99)
	if m.IsOpen() {
		t.Fatalf("expected menu to close after rejected jump")
	}
	if c.Index() != 2 {
		t.Fatalf("expected index unchanged after rejected jump, got %d", c.Index())
	}

	m.SelectSlide(-1)
	if m.IsOpen() {
		t.Fatalf("expected menu to stay closed")
	}
}

func TestOpenCloseDoesNotMove(t *testing.T) {
	d := testDeck(t)
	c, _ := NewController(d.Len())
	c.Jump(1)
	m := NewMenu(c, d)
	m.Open()
	m.Close()
	m.Open()
	if !m.IsOpen() || c.Index() != 1 {
		t.Fatalf("unexpected state open=%v index=%d", m.IsOpen(), c.Index())
	}
}

func TestEntriesListWholeDeck(t *testing.T) {
	d := testDeck(t)
	c, _ := NewController(d.Len())
	c.Jump(1)
	m := NewMenu(c, d)

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Teaser != "Welcome" || entries[1].Teaser != "Context" || entries[2].Teaser != "Presentation Slide" {
		t.Fatalf("unexpected teasers %#v", entries)
	}
	for i, e := range entries {
		if e.Current != (i == 1) {
			t.Fatalf("entry %d current=%v", i, e.Current)
		}
	}
}
