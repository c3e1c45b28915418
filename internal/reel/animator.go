package reel

import "time"

// AnimationState is the transition animator's state.
type AnimationState int

const (
	Idle AnimationState = iota
	Animating
)

func (s AnimationState) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// Animator tracks the single in-flight slide transition.
type Animator struct {
	duration  time.Duration
	state     AnimationState
	startedAt time.Time
}

// NewAnimator returns an idle Animator.
func NewAnimator(d time.Duration) Animator {
	return Animator{duration: d}
}

// Start begins a transition at now. It returns false, changing nothing, when
// one is already running.
func (a *Animator) Start(now time.Time) bool {
	if a.state == Animating {
		return false
	}
	a.state = Animating
	a.startedAt = now
	return true
}

// Finish ends the running transition and reports whether there was one.
func (a *Animator) Finish() bool {
	if a.state != Animating {
		return false
	}
	a.state = Idle
	return true
}

// State returns the current state.
func (a *Animator) State() AnimationState {
	return a.state
}

// EndsAt returns when the running transition completes.
func (a *Animator) EndsAt() time.Time {
	return a.startedAt.Add(a.duration)
}

// Progress returns the completed fraction of the running transition in
// [0, 1], or 0 when idle.
func (a *Animator) Progress(now time.Time) float64 {
	if a.state != Animating {
		return 0
	}
	p := float64(now.Sub(a.startedAt)) / float64(a.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
