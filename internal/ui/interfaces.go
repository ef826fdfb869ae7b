package ui

import "surveydeck/internal/penalty"

// Controller receives the side effects the view cannot perform itself.
// Calls arrive on their own goroutine.
type Controller interface {
	OnQuit()
	OnToggleFullscreen(active bool)
	OnSlideChanged(from, to int)
	OnShotResolved(state penalty.State)
}

type View interface {
	Run() error
	Stop()
	Running() bool
	SetController(Controller)
	SetFullscreen(active bool)
	SetAltScreen(on bool, applied func(bool))
	FlashStatus(msg string)
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutTooSmall
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutWide:
		return "wide"
	case LayoutMedium:
		return "medium"
	default:
		return "too_small"
	}
}

// On-screen control ids, also used by demo scenarios.
const (
	ControlPrev      = "prev"
	ControlNext      = "next"
	ControlMap       = "map"
	ControlFull      = "full"
	ControlDirection = "direction"
	ControlPower     = "power"
	ControlShoot     = "shoot"
	ControlSurprise  = "surprise"
)
