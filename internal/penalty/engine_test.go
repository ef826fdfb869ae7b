package penalty

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestEngine() (*Engine, *ManualScheduler) {
	sched := &ManualScheduler{}
	return New(Options{Scheduler: sched, Rand: rand.New(rand.NewSource(1))}), sched
}

func shootAndResolve(t *testing.T, power, direction int) Phase {
	t.Helper()
	e, sched := newTestEngine()
	if !e.SetPower(power) || !e.SetDirection(direction) {
		t.Fatalf("expected idle engine to accept controls")
	}
	if got := e.Shoot(); got != PhaseShooting {
		t.Fatalf("expected shooting, got %v", got)
	}
	if e.Phase() != PhaseShooting {
		t.Fatalf("expected shooting before the delay elapses")
	}
	sched.Flush()
	return e.Phase()
}

func TestShotOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		power     int
		direction int
		want      Phase
	}{
		{name: "centre", power: 65, direction: 0, want: PhaseScored},
		{name: "wide", power: 65, direction: 10, want: PhaseMissed},
		{name: "too strong", power: 95, direction: 0, want: PhaseMissed},
		{name: "upper corner", power: 90, direction: 8, want: PhaseScored},
		{name: "power just over", power: 91, direction: 8, want: PhaseMissed},
		{name: "lower corner", power: 40, direction: -8, want: PhaseScored},
		{name: "power just under", power: 39, direction: 0, want: PhaseMissed},
		{name: "left just wide", power: 60, direction: -9, want: PhaseMissed},
		{name: "right just wide", power: 60, direction: 9, want: PhaseMissed},
		{name: "extremes", power: 120, direction: -12, want: PhaseMissed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shootAndResolve(t, tt.power, tt.direction); got != tt.want {
				t.Fatalf("power=%d direction=%d: got %v want %v", tt.power, tt.direction, got, tt.want)
			}
			if got := Score(Shot{Direction: tt.direction, Power: tt.power}); got != tt.want {
				t.Fatalf("Score disagrees with engine: %v", got)
			}
		})
	}
}

func TestShotUsesDelay(t *testing.T) {
	e, sched := newTestEngine()
	e.Shoot()
	delays := sched.Delays()
	if len(delays) != 1 || delays[0] != ShotDelay {
		t.Fatalf("expected one %v delay, got %v", ShotDelay, delays)
	}
}

func TestControlsLockedOutsideIdle(t *testing.T) {
	e, sched := newTestEngine()
	e.SetPower(65)
	e.Shoot()
	if e.SetPower(200) || e.SetDirection(12) || e.NudgePower(1) || e.NudgeDirection(-1) {
		t.Fatalf("expected controls to be rejected while shooting")
	}
	if got := e.Shoot(); got != PhaseShooting {
		t.Fatalf("expected shoot to be ignored while shooting, got %v", got)
	}
	if sched.Pending() != 1 {
		t.Fatalf("expected a single pending resolution, got %d", sched.Pending())
	}
	sched.Flush()
	if e.Phase() != PhaseScored {
		t.Fatalf("expected scored, got %v", e.Phase())
	}
	if e.SetPower(10) {
		t.Fatalf("expected controls locked after the shot resolves")
	}
}

func TestShootAfterResultResets(t *testing.T) {
	for _, power := range []int{65, 110} {
		e, sched := newTestEngine()
		e.SetPower(power)
		e.SetDirection(-3)
		e.Shoot()
		sched.Flush()
		outcome := e.Phase()
		if outcome != PhaseScored && outcome != PhaseMissed {
			t.Fatalf("expected a result, got %v", outcome)
		}

		if got := e.Shoot(); got != PhaseIdle {
			t.Fatalf("expected reset to idle, got %v", got)
		}
		st := e.Snapshot()
		if st.Direction != DefaultDirection || st.Power != DefaultPower {
			t.Fatalf("expected defaults after reset, got direction=%d power=%d", st.Direction, st.Power)
		}
		if sched.Pending() != 0 {
			t.Fatalf("reset must not schedule a second evaluation")
		}
		if st.Attempts != 1 {
			t.Fatalf("expected a single attempt, got %d", st.Attempts)
		}
	}
}

func TestCapturedShotIgnoresLaterChanges(t *testing.T) {
	e, sched := newTestEngine()
	e.SetPower(65)
	e.SetDirection(0)
	e.Shoot()
	// Bypass the lock the way a stray slider event would have to.
	e.mu.Lock()
	e.power = 120
	e.direction = 12
	e.mu.Unlock()
	sched.Flush()
	if e.Phase() != PhaseScored {
		t.Fatalf("expected captured shot to decide the outcome, got %v", e.Phase())
	}
	if st := e.Snapshot(); st.Shot != (Shot{Direction: 0, Power: 65}) {
		t.Fatalf("unexpected captured shot %+v", st.Shot)
	}
}

func TestControlsClampToRange(t *testing.T) {
	e, _ := newTestEngine()
	e.SetDirection(-40)
	e.SetPower(500)
	st := e.Snapshot()
	if st.Direction != MinDirection || st.Power != MaxPower {
		t.Fatalf("expected clamped values, got %+v", st)
	}
	e.NudgePower(-1000)
	e.NudgeDirection(1000)
	st = e.Snapshot()
	if st.Direction != MaxDirection || st.Power != MinPower {
		t.Fatalf("expected clamped nudges, got %+v", st)
	}
}

func TestKeeperJitterDoesNotAffectOutcome(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		sched := &ManualScheduler{}
		e := New(Options{Scheduler: sched, Rand: rand.New(rand.NewSource(seed))})
		e.SetPower(90)
		e.SetDirection(8)
		e.Shoot()
		keeper := e.Snapshot().Keeper
		if keeper < -maxKeeperOffset || keeper > maxKeeperOffset {
			t.Fatalf("keeper offset %d out of range", keeper)
		}
		sched.Flush()
		if e.Phase() != PhaseScored {
			t.Fatalf("seed %d: expected scored, got %v", seed, e.Phase())
		}
	}
}

func TestOnResolveReportsOutcomeAndTallies(t *testing.T) {
	sched := &ManualScheduler{}
	var got []State
	e := New(Options{Scheduler: sched, OnResolve: func(s State) { got = append(got, s) }})
	e.Shoot()
	sched.Flush()
	e.Shoot()
	e.SetPower(100)
	e.Shoot()
	sched.Flush()
	if len(got) != 2 {
		t.Fatalf("expected two resolutions, got %d", len(got))
	}
	if got[0].Phase != PhaseScored || got[1].Phase != PhaseMissed {
		t.Fatalf("unexpected phases %v %v", got[0].Phase, got[1].Phase)
	}
	if got[1].Goals != 1 || got[1].Attempts != 2 {
		t.Fatalf("unexpected tallies %+v", got[1])
	}
}

func TestClockSchedulerResolvesAfterDelay(t *testing.T) {
	done := make(chan State, 1)
	e := New(Options{OnResolve: func(s State) { done <- s }})
	start := time.Now()
	e.Shoot()
	select {
	case st := <-done:
		if st.Phase != PhaseScored {
			t.Fatalf("expected default shot to score, got %v", st.Phase)
		}
		if time.Since(start) < ShotDelay {
			t.Fatalf("resolved before the shot delay")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("shot never resolved")
	}
}
