package app

import (
	"context"

	"surveydeck/internal/deck"
)

// Fullscreen is the platform capability behind the Full button. Changes
// reports every mode the terminal actually adopted; callers mirror state
// from it rather than from their own requests.
type Fullscreen interface {
	Request() error
	Exit() error
	Changes() <-chan bool
}

type DeckLoader interface {
	Load(ctx context.Context, path string) (*deck.Deck, error)
}
