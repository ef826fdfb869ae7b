package input

import "testing"

type countingNav struct {
	next int
	prev int
}

func (n *countingNav) Next()     { n.next++ }
func (n *countingNav) Previous() { n.prev++ }

type fixedFocus FocusKind

func (f fixedFocus) Focused() FocusKind { return FocusKind(f) }

func TestSpaceOnButtonDoesNotAdvance(t *testing.T) {
	nav := &countingNav{}
	r := NewRouter(nav, fixedFocus(FocusButton))
	ev := NewKeyEvent(KeySpace)
	r.HandleKey(ev)
	if nav.next != 0 {
		t.Fatalf("expected no next with button focus, got %d", nav.next)
	}
	if !ev.DefaultPrevented() {
		t.Fatalf("expected space default to be prevented")
	}
}

func TestSpaceWithoutButtonAdvancesOnce(t *testing.T) {
	for _, focus := range []FocusKind{FocusNone, FocusSlider} {
		nav := &countingNav{}
		r := NewRouter(nav, fixedFocus(focus))
		r.HandleKey(NewKeyEvent(KeySpace))
		if nav.next != 1 {
			t.Fatalf("focus %v: expected exactly one next, got %d", focus, nav.next)
		}
	}
}

func TestRightArrowFollowsSuppressionButLeftDoesNot(t *testing.T) {
	nav := &countingNav{}
	r := NewRouter(nav, fixedFocus(FocusButton))
	right := NewKeyEvent(KeyRight)
	r.HandleKey(right)
	r.HandleKey(NewKeyEvent(KeyLeft))
	if nav.next != 0 {
		t.Fatalf("expected right arrow to be suppressed on a button")
	}
	if nav.prev != 1 {
		t.Fatalf("expected left arrow to go back even on a button")
	}
	if right.DefaultPrevented() {
		t.Fatalf("right arrow should not touch the default action")
	}
}

func TestUnrelatedKeysAreIgnored(t *testing.T) {
	nav := &countingNav{}
	r := NewRouter(nav, nil)
	for _, k := range []string{"enter", "up", "q", ""} {
		r.HandleKey(NewKeyEvent(k))
	}
	r.HandleKey(nil)
	if nav.next != 0 || nav.prev != 0 {
		t.Fatalf("unexpected navigation %+v", nav)
	}
}

func TestMountIsIdempotentAndSymmetric(t *testing.T) {
	d := NewDispatcher()
	nav := &countingNav{}
	r := NewRouter(nav, nil)

	r.Mount(d)
	r.Mount(d)
	if d.Listeners() != 1 {
		t.Fatalf("expected exactly one listener, got %d", d.Listeners())
	}
	d.Dispatch(NewKeyEvent(KeyRight))
	if nav.next != 1 {
		t.Fatalf("expected one next per key press, got %d", nav.next)
	}

	r.Unmount()
	r.Unmount()
	if d.Listeners() != 0 || r.Mounted() {
		t.Fatalf("expected listener to be released")
	}
	d.Dispatch(NewKeyEvent(KeyRight))
	if nav.next != 1 {
		t.Fatalf("expected no dispatch after unmount")
	}

	for i := 0; i < 3; i++ {
		r.Mount(d)
		r.Unmount()
	}
	r.Mount(d)
	if d.Listeners() != 1 {
		t.Fatalf("expected one listener after remounts, got %d", d.Listeners())
	}
}

func TestDispatcherUnregisterOnce(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	un := d.Register(func(*KeyEvent) { calls++ })
	other := d.Register(func(*KeyEvent) { calls += 10 })
	un()
	un()
	d.Dispatch(NewKeyEvent("x"))
	if calls != 10 || d.Listeners() != 1 {
		t.Fatalf("unexpected calls=%d listeners=%d", calls, d.Listeners())
	}
	other()
}
