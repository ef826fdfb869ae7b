package input

const (
	KeyRight = "right"
	KeyLeft  = "left"
	KeySpace = "space"
	KeyEnter = "enter"
)

// KeyEvent is one key press travelling through the dispatcher. Listeners
// may cancel the default action (the body scroll bound to space) without
// stopping other listeners.
type KeyEvent struct {
	Key       string
	prevented bool
}

func NewKeyEvent(key string) *KeyEvent {
	return &KeyEvent{Key: key}
}

func (e *KeyEvent) PreventDefault() { e.prevented = true }

func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }
