package reel

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"scout/internal/catalog"
)

// EventType identifies what an Event reports.
type EventType string

const (
	EventAnimationStarted EventType = "animation_started"
	EventAdvanced         EventType = "advanced"
	EventCooldownReleased EventType = "cooldown_released"
)

// Event is published to subscribers when the engine changes observable state.
// Position is the position after the change.
type Event struct {
	Type     EventType
	Position int64
	At       time.Time
}

// Engine coordinates gesture accumulation, the cooldown gate, the slide
// transition and the position sequencer for one mounted reel view.
// All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	log      *slog.Logger
	seq      *Sequencer
	resolver *catalog.Resolver

	gesture Accumulator
	gate    CooldownGate
	anim    Animator
	timers  timers

	mounted bool
	remove  func()

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan Event
}

// NewEngine validates cfg and returns an unmounted engine.
func NewEngine(cfg Config, seq *Sequencer, resolver *catalog.Resolver, log *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if seq == nil {
		return nil, errors.New("reel: nil sequencer")
	}
	if resolver == nil {
		return nil, errors.New("reel: nil resolver")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		cfg:      cfg,
		log:      log.With("component", "reel"),
		seq:      seq,
		resolver: resolver,
		gesture:  NewAccumulator(cfg.SmallThreshold, cfg.GestureThreshold),
		gate:     NewCooldownGate(cfg.CooldownDuration),
		anim:     NewAnimator(cfg.AnimationDuration),
		subs:     make(map[int]chan Event),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Mount attaches the engine to src and fixes the day seed from now. Mounting
// an already mounted engine is a no-op.
func (e *Engine) Mount(src Source, now time.Time) {
	e.mu.Lock()
	if e.mounted {
		e.mu.Unlock()
		return
	}
	seed := catalog.DaySeed(now)
	if e.resolver.Reseed(seed) {
		e.log.Info("reel order reshuffled", "seed", seed)
	}
	e.mounted = true
	e.mu.Unlock()

	remove := func() {}
	if src != nil {
		remove = src.OnInput(e.handleInput)
	}

	e.mu.Lock()
	e.remove = remove
	e.mu.Unlock()

	e.log.Debug("mounted", "position", e.seq.Get(), "seed", seed)
}

// Unmount detaches the input listener, cancels every pending deadline and
// closes subscriber channels. It is safe to call more than once.
func (e *Engine) Unmount() {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}
	e.mounted = false
	remove := e.remove
	e.remove = nil
	e.timers.cancelAll()
	e.gesture.Reset()
	e.anim.Finish()
	e.mu.Unlock()

	if remove != nil {
		remove()
	}

	e.subsMu.Lock()
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
	e.subsMu.Unlock()

	e.log.Debug("unmounted", "position", e.seq.Get())
}

// Mounted reports whether the engine is mounted.
func (e *Engine) Mounted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mounted
}

func (e *Engine) handleInput(in Input) {
	switch ev := in.(type) {
	case WheelInput:
		e.HandleWheel(ev.At, ev.DeltaY)
	case KeyInput:
		if ev.Key == e.cfg.AdvanceKey {
			e.Trigger(ev.At)
		}
	case ClickInput:
		if ev.Target == AdvanceTarget {
			e.Trigger(ev.At)
		}
	}
}

// HandleWheel feeds one continuous scroll delta. Deltas arriving while a
// transition runs or the cooldown is active are dropped without
// accumulating.
func (e *Engine) HandleWheel(now time.Time, delta float64) {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}
	events := e.fireDueLocked(now)
	if e.anim.State() != Animating && e.gate.CanAdvance(now) {
		switch e.gesture.Add(delta) {
		case GesturePending:
			e.timers.arm(TimerGestureEnd, now.Add(e.cfg.GestureTimeout))
		case GestureReversed:
			e.timers.cancel(TimerGestureEnd)
		case GestureAdvance:
			e.timers.cancel(TimerGestureEnd)
			if ev := e.attemptLocked(now); ev != nil {
				events = append(events, *ev)
			}
		}
	}
	e.mu.Unlock()

	e.publishAll(events)
}

// Trigger is a discrete advance request. It reports whether the advance was
// accepted.
func (e *Engine) Trigger(now time.Time) bool {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return false
	}
	events := e.fireDueLocked(now)
	ev := e.attemptLocked(now)
	if ev != nil {
		events = append(events, *ev)
	}
	e.mu.Unlock()

	e.publishAll(events)
	return ev != nil
}

// attemptLocked passes an advance signal through the animation check and the
// cooldown gate. Must be called with mu held.
func (e *Engine) attemptLocked(now time.Time) *Event {
	if e.anim.State() == Animating {
		e.log.Debug("advance dropped", "reason", "animating")
		return nil
	}
	if !e.gate.TryAcquire(now) {
		e.log.Debug("advance dropped", "reason", "cooldown")
		return nil
	}
	e.anim.Start(now)
	e.gesture.Reset()
	e.timers.cancel(TimerGestureEnd)
	e.timers.arm(TimerAnimation, now.Add(e.cfg.AnimationDuration))
	e.timers.arm(TimerCooldown, now.Add(e.cfg.CooldownDuration))
	return &Event{Type: EventAnimationStarted, Position: e.seq.Get(), At: now}
}

// Tick fires every deadline due at or before now, earliest first.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}
	events := e.fireDueLocked(now)
	e.mu.Unlock()

	e.publishAll(events)
}

// fireDueLocked fires the deadlines due at or before now, earliest first, and
// returns the events to publish once mu is released. Input handlers call it
// first so they see the state at their own timestamp. Must be called with mu
// held.
func (e *Engine) fireDueLocked(now time.Time) []Event {
	var events []Event
	for {
		k, ok := e.timers.popDue(now)
		if !ok {
			return events
		}
		switch k {
		case TimerGestureEnd:
			e.gesture.Reset()
		case TimerAnimation:
			if e.anim.Finish() {
				pos := e.seq.advance()
				e.log.Info("advanced", "position", pos)
				events = append(events, Event{Type: EventAdvanced, Position: pos, At: now})
			}
		case TimerCooldown:
			events = append(events, Event{Type: EventCooldownReleased, Position: e.seq.Get(), At: now})
		}
	}
}

// NextDeadline returns the earliest pending deadline.
func (e *Engine) NextDeadline() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, at, ok := e.timers.next()
	return at, ok
}

// Pending reports whether any deadline is armed.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timers.pending()
}

// Position returns the current position.
func (e *Engine) Position() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.Get()
}

// Visible resolves the current and next entries for the current position.
func (e *Engine) Visible() (current, next catalog.Entry) {
	e.mu.Lock()
	pos := e.seq.Get()
	e.mu.Unlock()
	return e.resolver.Resolve(pos), e.resolver.Resolve(pos + 1)
}

// Animating reports whether a transition is running.
func (e *Engine) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.anim.State() == Animating
}

// AnimationProgress returns the completed fraction of the running transition.
func (e *Engine) AnimationProgress(now time.Time) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.anim.Progress(now)
}

// AdvanceEnabled reports whether the advance control should accept input at
// now. It is false while unmounted, animating or cooling down.
func (e *Engine) AdvanceEnabled(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mounted && e.anim.State() != Animating && e.gate.CanAdvance(now)
}

// GestureSum returns the running wheel sum.
func (e *Engine) GestureSum() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gesture.Sum()
}

// Seed returns the day seed of the current reel order.
func (e *Engine) Seed() int64 {
	return e.resolver.Seed()
}

// Subscribe returns a channel that receives engine events. bufSize controls
// the channel buffer; slow consumers have events dropped.
func (e *Engine) Subscribe(bufSize int) (int, <-chan Event) {
	ch := make(chan Event, bufSize)
	e.subsMu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = ch
	e.subsMu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (e *Engine) Unsubscribe(id int) {
	e.subsMu.Lock()
	if ch, ok := e.subs[id]; ok {
		delete(e.subs, id)
		close(ch)
	}
	e.subsMu.Unlock()
}

func (e *Engine) publishAll(events []Event) {
	for _, ev := range events {
		e.publish(ev)
	}
}

func (e *Engine) publish(ev Event) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
