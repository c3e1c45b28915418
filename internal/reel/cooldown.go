package reel

import "time"

// CooldownGate enforces a minimum interval between accepted advances. There
// is one gate per engine, shared by every input channel.
type CooldownGate struct {
	duration time.Duration
	last     time.Time
	used     bool
}

// NewCooldownGate returns an open gate.
func NewCooldownGate(d time.Duration) CooldownGate {
	return CooldownGate{duration: d}
}

// CanAdvance reports whether an advance at now would be accepted.
func (g *CooldownGate) CanAdvance(now time.Time) bool {
	return !g.used || now.Sub(g.last) >= g.duration
}

// TryAcquire checks the gate and, when open, records now as the last advance.
// Check and set happen in one call so two signals cannot both pass.
func (g *CooldownGate) TryAcquire(now time.Time) bool {
	if !g.CanAdvance(now) {
		return false
	}
	g.last = now
	g.used = true
	return true
}

// OpensAt returns when the gate reopens after the last accepted advance.
func (g *CooldownGate) OpensAt() (time.Time, bool) {
	if !g.used {
		return time.Time{}, false
	}
	return g.last.Add(g.duration), true
}
