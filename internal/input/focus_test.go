package input

import "testing"

func TestFocusRingCyclesAndWraps(t *testing.T) {
	f := NewFocusRing()
	f.SetControls([]Control{{ID: "prev", Kind: FocusButton}, {ID: "power", Kind: FocusSlider}, {ID: "next", Kind: FocusButton}})
	if f.Focused() != FocusNone {
		t.Fatalf("expected no initial focus")
	}
	f.Next()
	if f.FocusedID() != "prev" {
		t.Fatalf("expected prev, got %q", f.FocusedID())
	}
	f.Next()
	if f.Focused() != FocusSlider {
		t.Fatalf("expected slider focus")
	}
	f.Next()
	f.Next()
	if f.FocusedID() != "prev" {
		t.Fatalf("expected wrap to prev, got %q", f.FocusedID())
	}
	f.Prev()
	if f.FocusedID() != "next" {
		t.Fatalf("expected wrap back to next, got %q", f.FocusedID())
	}
}

func TestFocusRingKeepsFocusAcrossControlChanges(t *testing.T) {
	f := NewFocusRing()
	f.SetControls([]Control{{ID: "a", Kind: FocusButton}, {ID: "b", Kind: FocusButton}})
	f.Focus("b")
	f.SetControls([]Control{{ID: "b", Kind: FocusButton}, {ID: "c", Kind: FocusButton}})
	if f.FocusedID() != "b" {
		t.Fatalf("expected b to keep focus, got %q", f.FocusedID())
	}
	f.SetControls([]Control{{ID: "c", Kind: FocusButton}})
	if f.FocusedID() != "" || f.Focused() != FocusNone {
		t.Fatalf("expected focus to clear when control disappears")
	}
	f.Prev()
	if f.FocusedID() != "c" {
		t.Fatalf("expected shift-tab from none to focus last control")
	}
	f.Clear()
	if f.Focused() != FocusNone {
		t.Fatalf("expected cleared focus")
	}
}
