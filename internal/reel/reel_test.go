package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator(t *testing.T) {
	a := NewAccumulator(5, 100)

	assert.Equal(t, GestureIgnored, a.Add(4.9))
	assert.Equal(t, GestureIgnored, a.Add(-4))
	assert.Zero(t, a.Sum())

	assert.Equal(t, GesturePending, a.Add(5))
	assert.Equal(t, GesturePending, a.Add(94))
	assert.Equal(t, GestureAdvance, a.Add(1))
	assert.Zero(t, a.Sum())

	assert.Equal(t, GesturePending, a.Add(-50))
	assert.Equal(t, GestureReversed, a.Add(-50))
	assert.Zero(t, a.Sum())

	a.Add(30)
	a.Reset()
	assert.Zero(t, a.Sum())
}

func TestCooldownGate(t *testing.T) {
	g := NewCooldownGate(ms(1000))
	assert.True(t, g.CanAdvance(t0))
	_, ok := g.OpensAt()
	assert.False(t, ok)

	assert.True(t, g.TryAcquire(t0))
	assert.False(t, g.TryAcquire(t0.Add(ms(10))))
	assert.False(t, g.CanAdvance(t0.Add(ms(999))))

	at, ok := g.OpensAt()
	assert.True(t, ok)
	assert.Equal(t, t0.Add(ms(1000)), at)

	assert.True(t, g.TryAcquire(t0.Add(ms(1000))))
}

func TestAnimator(t *testing.T) {
	a := NewAnimator(ms(600))
	assert.Equal(t, Idle, a.State())
	assert.False(t, a.Finish())

	assert.True(t, a.Start(t0))
	assert.False(t, a.Start(t0.Add(ms(10))))
	assert.Equal(t, t0.Add(ms(600)), a.EndsAt())
	assert.Equal(t, "animating", a.State().String())

	assert.True(t, a.Finish())
	assert.Equal(t, Idle, a.State())
}

func TestTimersOrder(t *testing.T) {
	var tm timers
	assert.False(t, tm.pending())

	tm.arm(TimerCooldown, t0.Add(ms(1000)))
	tm.arm(TimerAnimation, t0.Add(ms(600)))
	tm.arm(TimerGestureEnd, t0.Add(ms(600)))

	k, at, ok := tm.next()
	assert.True(t, ok)
	assert.Equal(t, TimerGestureEnd, k)
	assert.Equal(t, t0.Add(ms(600)), at)

	_, ok = tm.popDue(t0.Add(ms(599)))
	assert.False(t, ok)

	var fired []TimerKind
	for {
		k, ok := tm.popDue(t0.Add(ms(2000)))
		if !ok {
			break
		}
		fired = append(fired, k)
	}
	assert.Equal(t, []TimerKind{TimerGestureEnd, TimerAnimation, TimerCooldown}, fired)
	assert.False(t, tm.pending())

	tm.arm(TimerAnimation, t0)
	tm.cancelAll()
	assert.False(t, tm.isArmed(TimerAnimation))
}

func TestDispatcherRemoveIsIdempotent(t *testing.T) {
	d := NewDispatcher()
	var got []Input
	remove := d.OnInput(func(in Input) { got = append(got, in) })
	other := d.OnInput(func(Input) {})
	assert.Equal(t, 2, d.ListenerCount())

	d.Dispatch(KeyInput{At: t0, Key: "x"})
	assert.Len(t, got, 1)

	remove()
	remove()
	assert.Equal(t, 1, d.ListenerCount())
	other()
	assert.Equal(t, 0, d.ListenerCount())

	d.Dispatch(KeyInput{At: t0, Key: "x"})
	assert.Len(t, got, 1)
}

func TestParsePosition(t *testing.T) {
	for raw, want := range map[string]int64{"0": 0, "7": 7, " 12\n": 12} {
		got, err := ParsePosition(raw)
		if assert.NoError(t, err, raw) {
			assert.Equal(t, want, got, raw)
		}
	}
	for _, raw := range []string{"", "-1", "1.5", "first", "99999999999999999999"} {
		_, err := ParsePosition(raw)
		assert.Error(t, err, raw)
	}
}
