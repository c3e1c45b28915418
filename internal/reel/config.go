// Package reel implements the gesture-driven reel navigation engine: input
// normalisation, wheel gesture accumulation, the advance cooldown, the slide
// transition and the persisted reel position.
//
// The engine owns no goroutines or wall-clock timers. Every operation takes
// the current time explicitly and pending work is expressed as deadlines that
// the host fires by calling Tick.
package reel

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the engine's thresholds and durations.
type Config struct {
	// SmallThreshold is the minimum |delta| of a wheel event; smaller events
	// are noise.
	SmallThreshold float64
	// GestureThreshold is the accumulated |delta| that completes a gesture.
	GestureThreshold float64
	// GestureTimeout resets an unfinished gesture when no wheel event
	// arrives within it.
	GestureTimeout time.Duration
	// AnimationDuration is the length of the slide transition.
	AnimationDuration time.Duration
	// CooldownDuration is the minimum interval between two accepted
	// advances. It must be at least AnimationDuration.
	CooldownDuration time.Duration
	// AdvanceKey is the key name that triggers a discrete advance.
	AdvanceKey string
}

// DefaultConfig returns the reference timings.
func DefaultConfig() Config {
	return Config{
		SmallThreshold:    5,
		GestureThreshold:  100,
		GestureTimeout:    80 * time.Millisecond,
		AnimationDuration: 600 * time.Millisecond,
		CooldownDuration:  1000 * time.Millisecond,
		AdvanceKey:        "down",
	}
}

// ErrCooldownShorterThanAnimation is returned by Validate when a second
// advance could start before the first slide has finished.
var ErrCooldownShorterThanAnimation = errors.New("reel: cooldown shorter than animation")

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.SmallThreshold < 0 {
		return fmt.Errorf("reel: small threshold %v is negative", c.SmallThreshold)
	}
	if c.GestureThreshold <= 0 {
		return fmt.Errorf("reel: gesture threshold %v must be positive", c.GestureThreshold)
	}
	if c.GestureTimeout <= 0 {
		return fmt.Errorf("reel: gesture timeout %v must be positive", c.GestureTimeout)
	}
	if c.AnimationDuration <= 0 {
		return fmt.Errorf("reel: animation duration %v must be positive", c.AnimationDuration)
	}
	if c.CooldownDuration < c.AnimationDuration {
		return fmt.Errorf("%w: %v < %v", ErrCooldownShorterThanAnimation, c.CooldownDuration, c.AnimationDuration)
	}
	if c.AdvanceKey == "" {
		return errors.New("reel: advance key is empty")
	}
	return nil
}
