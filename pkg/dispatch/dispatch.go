package dispatch

import (
	"strings"

	"github.com/goliatone/go-formcheck/pkg/events"
	"github.com/goliatone/go-formcheck/pkg/message"
)

const (
	// DefaultNamespace is appended to the "onmessage." event prefix.
	DefaultNamespace = "formcheck"
	// DefaultEventName is the event channel used when no namespace is set.
	DefaultEventName = eventPrefix + DefaultNamespace

	eventPrefix = "onmessage."
)

// Publisher delivers an event to the listeners registered on scope. A nil
// payload asks listeners to clear what they show.
type Publisher interface {
	Fire(scope, event string, payload *message.Message)
}

// PublisherFunc adapts a function into a Publisher.
type PublisherFunc func(scope, event string, payload *message.Message)

// Fire delegates to the underlying function.
func (fn PublisherFunc) Fire(scope, event string, payload *message.Message) {
	fn(scope, event, payload)
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithNamespace sets the event channel to "onmessage." + namespace. Blank
// namespaces keep the default.
func WithNamespace(namespace string) Option {
	return func(d *Dispatcher) {
		if ns := strings.TrimSpace(namespace); ns != "" {
			d.event = eventPrefix + ns
		}
	}
}

// WithSanitizer escapes markup in messages before they are published.
func WithSanitizer(s *message.Sanitizer) Option {
	return func(d *Dispatcher) {
		d.sanitizer = s
	}
}

// Dispatcher broadcasts messages to a component's own listeners and to the
// global listeners.
type Dispatcher struct {
	publisher Publisher
	event     string
	sanitizer *message.Sanitizer
}

// New constructs a Dispatcher publishing through publisher. A nil publisher
// turns every call into a no-op.
func New(publisher Publisher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		publisher: publisher,
		event:     DefaultEventName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// EventName returns the event channel in use.
func (d *Dispatcher) EventName() string {
	return d.event
}

// Send fires the event once on the global scope and once on the component
// scope, both with a pointer to the message. A nil Dispatcher does nothing.
func (d *Dispatcher) Send(componentID string, m message.Message) {
	if d == nil {
		return
	}
	if d.sanitizer != nil {
		m = d.sanitizer.Message(m)
	}
	d.fire(componentID, &m)
}

// Clear fires the same two events with a nil payload.
func (d *Dispatcher) Clear(componentID string) {
	d.fire(componentID, nil)
}

func (d *Dispatcher) fire(componentID string, payload *message.Message) {
	if d == nil || d.publisher == nil {
		return
	}
	d.publisher.Fire(events.GlobalScope, d.event, payload)
	// A component addressed by the global scope id is delivered once.
	if componentID != events.GlobalScope {
		d.publisher.Fire(componentID, d.event, payload)
	}
}
