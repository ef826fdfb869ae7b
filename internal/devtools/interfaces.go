package devtools

import "context"

type Demo interface {
	Resolve(name string) Scenario
	Names() []string
	SetState(ctx context.Context, cacheDir string, st State) error
}

var _ Demo = (*Manager)(nil)
