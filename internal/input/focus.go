package input

// FocusKind classifies the focused on-screen control.
type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusButton
	FocusSlider
)

type Control struct {
	ID   string
	Kind FocusKind
}

// FocusRing tracks which visible control has keyboard focus. Tab order is
// the order of the controls passed to SetControls.
type FocusRing struct {
	controls []Control
	index    int
}

func NewFocusRing() *FocusRing {
	return &FocusRing{index: -1}
}

// SetControls replaces the visible controls. Focus follows the previously
// focused ID when it is still visible and is cleared otherwise.
func (f *FocusRing) SetControls(controls []Control) {
	prev := f.FocusedID()
	f.controls = append(f.controls[:0], controls...)
	f.index = -1
	if prev != "" {
		f.Focus(prev)
	}
}

func (f *FocusRing) Controls() []Control {
	return append([]Control(nil), f.controls...)
}

func (f *FocusRing) Focus(id string) bool {
	for i, c := range f.controls {
		if c.ID == id {
			f.index = i
			return true
		}
	}
	return false
}

func (f *FocusRing) Clear() { f.index = -1 }

func (f *FocusRing) Next() { f.step(1) }
func (f *FocusRing) Prev() { f.step(-1) }

func (f *FocusRing) step(delta int) {
	n := len(f.controls)
	if n == 0 {
		f.index = -1
		return
	}
	if f.index < 0 {
		if delta > 0 {
			f.index = 0
		} else {
			f.index = n - 1
		}
		return
	}
	f.index = (f.index + delta + n) % n
}

func (f *FocusRing) FocusedID() string {
	if f.index < 0 || f.index >= len(f.controls) {
		return ""
	}
	return f.controls[f.index].ID
}

func (f *FocusRing) Focused() FocusKind {
	if f.index < 0 || f.index >= len(f.controls) {
		return FocusNone
	}
	return f.controls[f.index].Kind
}
