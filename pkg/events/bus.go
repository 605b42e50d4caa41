package events

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// GlobalScope is the scope id of document-wide listeners.
const GlobalScope = "#document"

// ErrListenerRequired is returned when Subscribe is called without a listener.
var ErrListenerRequired = errors.New("events: listener is required")

// Event is what a listener receives.
type Event[T any] struct {
	Scope   string
	Name    string
	Payload T
}

// Listener handles one event delivery.
type Listener[T any] func(Event[T])

type subscription[T any] struct {
	id       string
	listener Listener[T]
}

type key struct {
	scope string
	name  string
}

// Bus is a synchronous publish/subscribe registry keyed by scope id and event
// name. Fire calls every matching listener on the caller's goroutine, in
// subscription order, before returning. All methods are safe for concurrent
// use; listeners may subscribe or unsubscribe while being called.
type Bus[T any] struct {
	mu     sync.RWMutex
	byKey  map[key][]subscription[T]
	byID   map[string]key
	closed bool
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{
		byKey: make(map[key][]subscription[T]),
		byID:  make(map[string]key),
	}
}

// Subscribe registers listener for events named name on scope and returns the
// subscription id.
func (b *Bus[T]) Subscribe(scope, name string, listener Listener[T]) (string, error) {
	if listener == nil {
		return "", ErrListenerRequired
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", ErrBusClosed{}
	}

	id := uuid.NewString()
	k := key{scope: scope, name: name}
	b.byKey[k] = append(b.byKey[k], subscription[T]{id: id, listener: listener})
	b.byID[id] = k
	return id, nil
}

// Unsubscribe removes a subscription. It reports whether the id was known.
func (b *Bus[T]) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	k, ok := b.byID[id]
	if !ok {
		return false
	}
	delete(b.byID, id)

	subs := b.byKey[k]
	kept := make([]subscription[T], 0, len(subs))
	for _, sub := range subs {
		if sub.id != id {
			kept = append(kept, sub)
		}
	}
	if len(kept) == 0 {
		delete(b.byKey, k)
	} else {
		b.byKey[k] = kept
	}
	return true
}

// Fire delivers payload to every listener of name on scope. No listeners is a
// no-op.
func (b *Bus[T]) Fire(scope, name string, payload T) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := b.byKey[key{scope: scope, name: name}]
	snapshot := make([]subscription[T], len(subs))
	copy(snapshot, subs)
	b.mu.RUnlock()

	event := Event[T]{Scope: scope, Name: name, Payload: payload}
	for _, sub := range snapshot {
		sub.listener(event)
	}
}

// Count returns the number of listeners for name on scope.
func (b *Bus[T]) Count(scope, name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byKey[key{scope: scope, name: name}])
}

// Close drops every subscription. Later Subscribe calls fail and Fire becomes
// a no-op. Close is idempotent.
func (b *Bus[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	clear(b.byKey)
	clear(b.byID)
	return nil
}

// ErrBusClosed is returned when subscribing to a closed bus.
type ErrBusClosed struct{}

func (ErrBusClosed) Error() string {
	return "events: bus is closed"
}
