package app

import "errors"

var ErrNotRunning = errors.New("fullscreen: program is not running")

type altScreenTarget interface {
	Running() bool
	SetAltScreen(on bool, applied func(bool))
}

// AltScreen treats the terminal alternate screen as fullscreen.
type AltScreen struct {
	target  altScreenTarget
	changes chan bool
}

func NewAltScreen(target altScreenTarget) *AltScreen {
	return &AltScreen{target: target, changes: make(chan bool, 4)}
}

func (f *AltScreen) Request() error { return f.set(true) }

func (f *AltScreen) Exit() error { return f.set(false) }

func (f *AltScreen) Changes() <-chan bool { return f.changes }

func (f *AltScreen) set(on bool) error {
	if f.target == nil || !f.target.Running() {
		return ErrNotRunning
	}
	f.target.SetAltScreen(on, f.notify)
	return nil
}

// notify never blocks the update loop; a full buffer drops the oldest
// pending change so the latest mode always gets through.
func (f *AltScreen) notify(on bool) {
	for {
		select {
		case f.changes <- on:
			return
		default:
		}
		select {
		case <-f.changes:
		default:
		}
	}
}

var _ Fullscreen = (*AltScreen)(nil)
