package deck

import "context"

type Loader interface {
	Load(ctx context.Context, path string) (*Deck, error)
}
