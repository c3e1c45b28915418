package reel

import "time"

// TimerKind names one of the engine's pending deadlines.
type TimerKind int

const (
	TimerGestureEnd TimerKind = iota
	TimerAnimation
	TimerCooldown
	timerKinds
)

func (k TimerKind) String() string {
	switch k {
	case TimerGestureEnd:
		return "gesture-end"
	case TimerAnimation:
		return "animation"
	case TimerCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// timers holds at most one deadline per kind.
type timers struct {
	at    [timerKinds]time.Time
	armed [timerKinds]bool
}

func (t *timers) arm(k TimerKind, at time.Time) {
	t.at[k] = at
	t.armed[k] = true
}

func (t *timers) cancel(k TimerKind) {
	t.armed[k] = false
	t.at[k] = time.Time{}
}

func (t *timers) cancelAll() {
	for k := TimerKind(0); k < timerKinds; k++ {
		t.cancel(k)
	}
}

func (t *timers) isArmed(k TimerKind) bool {
	return t.armed[k]
}

func (t *timers) pending() bool {
	for k := TimerKind(0); k < timerKinds; k++ {
		if t.armed[k] {
			return true
		}
	}
	return false
}

// next returns the earliest deadline. Ties go to the lower kind.
func (t *timers) next() (TimerKind, time.Time, bool) {
	found := false
	var kind TimerKind
	var at time.Time
	for k := TimerKind(0); k < timerKinds; k++ {
		if !t.armed[k] {
			continue
		}
		if !found || t.at[k].Before(at) {
			found, kind, at = true, k, t.at[k]
		}
	}
	return kind, at, found
}

// popDue disarms and returns the earliest deadline that is not after now.
func (t *timers) popDue(now time.Time) (TimerKind, bool) {
	k, at, ok := t.next()
	if !ok || at.After(now) {
		return 0, false
	}
	t.cancel(k)
	return k, true
}
