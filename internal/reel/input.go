package reel

import (
	"sync"
	"time"
)

// AdvanceTarget is the click target name of the on-screen advance control.
const AdvanceTarget = "advance"

// Input is a raw user input event. At is when the event happened.
type Input interface {
	inputTime() time.Time
}

// WheelInput is a continuous scroll event. Positive DeltaY scrolls toward the
// next reel.
type WheelInput struct {
	At     time.Time
	DeltaY float64
}

// KeyInput is a key press, named the way the host names keys ("down", "j").
type KeyInput struct {
	At  time.Time
	Key string
}

// ClickInput is a pointer click on a named control.
type ClickInput struct {
	At     time.Time
	Target string
}

func (w WheelInput) inputTime() time.Time { return w.At }
func (k KeyInput) inputTime() time.Time   { return k.At }
func (c ClickInput) inputTime() time.Time { return c.At }

// Listener receives input events.
type Listener func(Input)

// Source is anything the engine can attach its input listener to.
type Source interface {
	// OnInput registers l and returns a func that removes it. The remove
	// func may be called more than once.
	OnInput(l Listener) (remove func())
}

// Dispatcher is an in-process Source. Hosts translate their native events
// into Inputs and hand them to Dispatch.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]Listener)}
}

// OnInput registers l.
func (d *Dispatcher) OnInput(l Listener) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = l
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.listeners, id)
			d.mu.Unlock()
		})
	}
}

// Dispatch delivers in to every registered listener. Listeners run outside
// the dispatcher lock so they may register or remove listeners.
func (d *Dispatcher) Dispatch(in Input) {
	d.mu.Lock()
	ls := make([]Listener, 0, len(d.listeners))
	for _, l := range d.listeners {
		ls = append(ls, l)
	}
	d.mu.Unlock()

	for _, l := range ls {
		l(in)
	}
}

// ListenerCount returns the number of registered listeners.
func (d *Dispatcher) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
