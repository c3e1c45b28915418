package reel

import "math"

// GestureResult is the outcome of feeding one wheel delta to an Accumulator.
type GestureResult int

const (
	// GestureIgnored: the delta was below the noise threshold.
	GestureIgnored GestureResult = iota
	// GesturePending: the delta was added and the gesture is still open.
	GesturePending
	// GestureAdvance: the sum crossed the threshold in the advance direction.
	GestureAdvance
	// GestureReversed: the sum crossed the threshold backwards and was
	// discarded.
	GestureReversed
)

func (r GestureResult) String() string {
	switch r {
	case GestureIgnored:
		return "ignored"
	case GesturePending:
		return "pending"
	case GestureAdvance:
		return "advance"
	case GestureReversed:
		return "reversed"
	default:
		return "unknown"
	}
}

// Accumulator sums wheel deltas into a single advance intent. It has no
// notion of time; the engine resets it when the gesture-end deadline passes.
type Accumulator struct {
	small     float64
	threshold float64
	sum       float64
}

// NewAccumulator returns an Accumulator with the given noise and completion
// thresholds.
func NewAccumulator(small, threshold float64) Accumulator {
	return Accumulator{small: small, threshold: threshold}
}

// Add feeds one delta. The running sum is zero after GestureAdvance and
// GestureReversed.
func (a *Accumulator) Add(delta float64) GestureResult {
	if math.Abs(delta) < a.small {
		return GestureIgnored
	}
	a.sum += delta
	if math.Abs(a.sum) < a.threshold {
		return GesturePending
	}
	forward := a.sum > 0
	a.sum = 0
	if forward {
		return GestureAdvance
	}
	return GestureReversed
}

// Reset discards the running sum.
func (a *Accumulator) Reset() {
	a.sum = 0
}

// Sum returns the running sum.
func (a *Accumulator) Sum() float64 {
	return a.sum
}
