package formcheck

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/chain"
	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/dispatch"
	"github.com/goliatone/go-formcheck/pkg/events"
	"github.com/goliatone/go-formcheck/pkg/extract"
	"github.com/goliatone/go-formcheck/pkg/message"
	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/validate"
	"github.com/goliatone/go-formcheck/pkg/widgets"
)

// Message aliases message.Message for callers that only need the facade.
type Message = message.Message

// Event aliases chain.Event.
type Event = chain.Event

// Outcome aliases chain.Outcome.
type Outcome = chain.Outcome

// Listener receives dispatched messages; a nil payload means "clear".
type Listener = events.Listener[*message.Message]

// GlobalScope addresses listeners interested in every field.
const GlobalScope = events.GlobalScope

// Option configures a Checker.
type Option func(*settings)

type settings struct {
	namespace      string
	sanitize       bool
	converters     chain.ConverterLookup
	validators     chain.ValidatorLookup
	widgets        extract.WidgetLookup
	clearOnSuccess bool
}

// WithNamespace sets the dispatcher namespace ("onmessage.<namespace>").
func WithNamespace(namespace string) Option {
	return func(s *settings) { s.namespace = namespace }
}

// WithSanitizedMessages escapes markup in dispatched messages, for listeners
// that insert them as HTML.
func WithSanitizedMessages(enabled bool) Option {
	return func(s *settings) { s.sanitize = enabled }
}

// WithConverters replaces the built-in converter registry.
func WithConverters(lookup chain.ConverterLookup) Option {
	return func(s *settings) { s.converters = lookup }
}

// WithValidators replaces the built-in validator registry.
func WithValidators(lookup chain.ValidatorLookup) Option {
	return func(s *settings) { s.validators = lookup }
}

// WithWidgets replaces the built-in widget registry.
func WithWidgets(lookup extract.WidgetLookup) Option {
	return func(s *settings) { s.widgets = lookup }
}

// WithClearOnSuccess clears a field's message when it passes.
func WithClearOnSuccess(enabled bool) Option {
	return func(s *settings) { s.clearOnSuccess = enabled }
}

// Checker wires an element lookup, the built-in registries, a message bus and
// a dispatcher into one validation chain.
type Checker struct {
	bus        *events.Bus[*message.Message]
	dispatcher *dispatch.Dispatcher
	chain      *chain.Chain
}

// New builds a Checker for the elements of one page.
func New(elements extract.ElementLookup, opts ...Option) *Checker {
	s := &settings{
		converters: convert.Default(),
		validators: validate.Default(),
		widgets:    widgets.NewRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	bus := events.NewBus[*message.Message]()
	dispatchOpts := []dispatch.Option{dispatch.WithNamespace(s.namespace)}
	if s.sanitize {
		dispatchOpts = append(dispatchOpts, dispatch.WithSanitizer(message.NewSanitizer()))
	}
	dispatcher := dispatch.New(bus, dispatchOpts...)

	return &Checker{
		bus:        bus,
		dispatcher: dispatcher,
		chain: chain.New(
			chain.WithExtractor(extract.New(elements, s.widgets)),
			chain.WithConverters(s.converters),
			chain.WithValidators(s.validators),
			chain.WithMessenger(dispatcher),
			chain.WithClearOnSuccess(s.clearOnSuccess),
		),
	}
}

// Subscribe registers listener for messages about scope, a field id or
// GlobalScope. It returns the subscription id.
func (c *Checker) Subscribe(scope string, listener Listener) (string, error) {
	return c.bus.Subscribe(scope, c.dispatcher.EventName(), listener)
}

// Unsubscribe removes a subscription.
func (c *Checker) Unsubscribe(id string) bool {
	return c.bus.Unsubscribe(id)
}

// Validate runs the chain for one field and dispatches a failure.
func (c *Checker) Validate(ctx context.Context, event Event, id string, converter *convert.Spec, validators []validate.Spec) bool {
	return c.chain.Validate(ctx, event, id, converter, validators)
}

// ValidateForm validates every field of form.
func (c *Checker) ValidateForm(ctx context.Context, event Event, form rules.Form) bool {
	return c.chain.ValidateForm(ctx, event, form)
}

// RunForm returns the per-field outcomes of form without dispatching.
func (c *Checker) RunForm(ctx context.Context, form rules.Form) []chain.FieldOutcome {
	return c.chain.RunForm(ctx, Event{Type: "submit"}, form)
}

// Clear removes the message shown for id.
func (c *Checker) Clear(id string) {
	c.dispatcher.Clear(id)
}

// ClearForm removes the messages of every field of form.
func (c *Checker) ClearForm(form rules.Form) {
	c.chain.ClearForm(form)
}

// Chain exposes the underlying chain.
func (c *Checker) Chain() *chain.Chain {
	return c.chain
}

// Dispatcher exposes the dispatcher, which satisfies chain.Messenger.
func (c *Checker) Dispatcher() *dispatch.Dispatcher {
	return c.dispatcher
}
