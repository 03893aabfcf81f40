package copier

import (
	"context"
	"sync"

	"golang.org/x/net/html"
)

// EventKind identifies a pointer event.
type EventKind string

const (
	EventClick       EventKind = "click"
	EventContextMenu EventKind = "contextmenu"
	EventMouseDown   EventKind = "mousedown"
)

// Event is a pointer event delivered to a markup node.
type Event struct {
	Kind   EventKind
	Target *html.Node
	X, Y   float64

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault suppresses the host's default handling of the event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation stops delivery to later listeners.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether a listener called StopPropagation.
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// Listener handles an event during the capture phase.
type Listener func(ctx context.Context, ev *Event)

// EventSource delivers events to registered listeners.
type EventSource interface {
	// AddListener registers l and returns a function that unregisters it.
	AddListener(l Listener) (remove func())
}

// Dispatcher is an in-process EventSource. Listeners run in registration
// order until one stops propagation.
type Dispatcher struct {
	mu        sync.RWMutex
	nextID    int
	listeners []registeredListener
}

type registeredListener struct {
	id int
	fn Listener
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddListener implements EventSource.
func (d *Dispatcher) AddListener(l Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, registeredListener{id: id, fn: l})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, rl := range d.listeners {
			if rl.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Dispatch delivers ev and reports whether the default action should still run.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) bool {
	d.mu.RLock()
	listeners := append([]registeredListener(nil), d.listeners...)
	d.mu.RUnlock()

	for _, rl := range listeners {
		rl.fn(ctx, ev)
		if ev.PropagationStopped() {
			break
		}
	}
	return !ev.DefaultPrevented()
}
