package input

// Navigator is the part of the navigation controller the router drives.
type Navigator interface {
	Next()
	Previous()
}

// FocusSource reports what kind of control currently has focus.
type FocusSource interface {
	Focused() FocusKind
}

// Router turns global key presses into navigation. Right and space advance
// unless a button has focus, since the focused button already activates
// itself on space; left always goes back.
type Router struct {
	nav        Navigator
	focus      FocusSource
	unregister func()
}

func NewRouter(nav Navigator, focus FocusSource) *Router {
	return &Router{nav: nav, focus: focus}
}

// Mount registers the router with d. A mounted router ignores further
// Mount calls until Unmount.
func (r *Router) Mount(d *Dispatcher) {
	if r.unregister != nil || d == nil {
		return
	}
	r.unregister = d.Register(r.HandleKey)
}

func (r *Router) Unmount() {
	if r.unregister == nil {
		return
	}
	r.unregister()
	r.unregister = nil
}

func (r *Router) Mounted() bool { return r.unregister != nil }

func (r *Router) HandleKey(ev *KeyEvent) {
	if ev == nil {
		return
	}
	switch ev.Key {
	case KeyRight, KeySpace:
		if ev.Key == KeySpace {
			ev.PreventDefault()
		}
		if r.focus != nil && r.focus.Focused() == FocusButton {
			return
		}
		r.nav.Next()
	case KeyLeft:
		r.nav.Previous()
	}
}
