package penalty

import (
	"math/rand"
	"sync"
	"time"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseShooting
	PhaseScored
	PhaseMissed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShooting:
		return "shooting"
	case PhaseScored:
		return "scored"
	case PhaseMissed:
		return "missed"
	default:
		return "unknown"
	}
}

const (
	MinDirection     = -12
	MaxDirection     = 12
	MinPower         = 0
	MaxPower         = 120
	DefaultDirection = 0
	DefaultPower     = 50

	// Acceptance window, inclusive on both ends.
	MinScoringPower     = 40
	MaxScoringPower     = 90
	MaxScoringDirection = 8

	ShotDelay = 800 * time.Millisecond

	maxKeeperOffset = 5
)

// Shot is the input captured when a shot is taken.
type Shot struct {
	Direction int
	Power     int
}

// Score is the outcome of shot. It depends on nothing else.
func Score(shot Shot) Phase {
	if shot.Power >= MinScoringPower && shot.Power <= MaxScoringPower &&
		shot.Direction >= -MaxScoringDirection && shot.Direction <= MaxScoringDirection {
		return PhaseScored
	}
	return PhaseMissed
}

// State is a read-only copy of the engine for rendering.
type State struct {
	Phase     Phase
	Direction int
	Power     int
	// Shot is the captured input of the current or last shot; zero in Idle.
	Shot     Shot
	Keeper   int
	Goals    int
	Attempts int
}

type Options struct {
	Scheduler Scheduler
	// Rand drives the keeper animation only.
	Rand      *rand.Rand
	OnResolve func(State)
}

// Engine is the penalty kick state machine:
//
//	Idle -Shoot-> Shooting -(ShotDelay)-> Scored | Missed -Shoot-> Idle
//
// Controls are only accepted in Idle.
type Engine struct {
	mu        sync.Mutex
	sched     Scheduler
	rng       *rand.Rand
	onResolve func(State)

	phase     Phase
	direction int
	power     int
	shot      Shot
	keeper    int
	goals     int
	attempts  int
}

func New(opts Options) *Engine {
	sched := opts.Scheduler
	if sched == nil {
		sched = ClockScheduler{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		sched:     sched,
		rng:       rng,
		onResolve: opts.OnResolve,
		direction: DefaultDirection,
		power:     DefaultPower,
	}
}

func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() State {
	return State{
		Phase:     e.phase,
		Direction: e.direction,
		Power:     e.power,
		Shot:      e.shot,
		Keeper:    e.keeper,
		Goals:     e.goals,
		Attempts:  e.attempts,
	}
}

func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// SetDirection clamps v into range. It returns false outside Idle.
func (e *Engine) SetDirection(v int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseIdle {
		return false
	}
	e.direction = clamp(v, MinDirection, MaxDirection)
	return true
}

// SetPower clamps v into range. It returns false outside Idle.
func (e *Engine) SetPower(v int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseIdle {
		return false
	}
	e.power = clamp(v, MinPower, MaxPower)
	return true
}

func (e *Engine) NudgeDirection(delta int) bool {
	e.mu.Lock()
	dir := e.direction
	e.mu.Unlock()
	return e.SetDirection(dir + delta)
}

func (e *Engine) NudgePower(delta int) bool {
	e.mu.Lock()
	power := e.power
	e.mu.Unlock()
	return e.SetPower(power + delta)
}

// Shoot takes a shot from Idle and resets from Scored or Missed. While a
// shot is in flight it does nothing. It returns the phase after the call.
func (e *Engine) Shoot() Phase {
	e.mu.Lock()
	switch e.phase {
	case PhaseIdle:
		shot := Shot{Direction: e.direction, Power: e.power}
		e.phase = PhaseShooting
		e.shot = shot
		e.attempts++
		e.keeper = e.rng.Intn(2*maxKeeperOffset+1) - maxKeeperOffset
		e.mu.Unlock()
		e.sched.AfterFunc(ShotDelay, func() { e.resolve(shot) })
		return PhaseShooting
	case PhaseScored, PhaseMissed:
		e.phase = PhaseIdle
		e.direction = DefaultDirection
		e.power = DefaultPower
		e.shot = Shot{}
		e.keeper = 0
		e.mu.Unlock()
		return PhaseIdle
	default:
		phase := e.phase
		e.mu.Unlock()
		return phase
	}
}

func (e *Engine) resolve(shot Shot) {
	e.mu.Lock()
	if e.phase != PhaseShooting {
		e.mu.Unlock()
		return
	}
	e.phase = Score(shot)
	if e.phase == PhaseScored {
		e.goals++
	}
	state := e.snapshotLocked()
	cb := e.onResolve
	e.mu.Unlock()
	if cb != nil {
		cb(state)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
