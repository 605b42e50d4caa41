package chain

import (
	"context"
	"errors"

	slogctx "github.com/veqryn/slog-context"

	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/extract"
	"github.com/goliatone/go-formcheck/pkg/message"
	"github.com/goliatone/go-formcheck/pkg/validate"
)

// Stages reported by Outcome.
const (
	StageConvert  = "convert"
	StageValidate = "validate"
)

// ConverterLookup resolves converters by name. *convert.Registry satisfies it.
type ConverterLookup interface {
	Lookup(name string) (convert.Converter, bool)
}

// ValidatorLookup resolves validators by type. *validate.Registry satisfies it.
type ValidatorLookup interface {
	Lookup(kind string) (validate.Validator, bool)
}

// Messenger receives failure messages. *dispatch.Dispatcher satisfies it.
type Messenger interface {
	Send(componentID string, m message.Message)
	Clear(componentID string)
}

// Event describes what triggered a validation. Target, when set, is the
// element whose value is validated; otherwise the element is looked up by id.
type Event struct {
	Type   string
	Target extract.Element
}

// Outcome is the result of one validation run. Stage names the step that
// failed and Err keeps the original error.
type Outcome struct {
	Valid   bool
	Value   any
	Message message.Message
	Stage   string
	Err     error
}

// Chain runs an optional converter followed by ordered validators and stops
// at the first failure.
type Chain struct {
	extractor      *extract.Extractor
	converters     ConverterLookup
	validators     ValidatorLookup
	messenger      Messenger
	clearOnSuccess bool
}

// New constructs a Chain. Missing collaborators fall back to the built-in
// registries and an extractor without lookups.
func New(opts ...Option) *Chain {
	c := &Chain{}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	defaultOptions(c)
	return c
}

// Validate runs the chain for id. A failure is sent to the messenger and
// reported as false; errors never reach the caller.
func (c *Chain) Validate(ctx context.Context, event Event, id string, converter *convert.Spec, validators []validate.Spec) bool {
	outcome := c.Run(ctx, event, id, converter, validators)
	if !outcome.Valid {
		if c.messenger != nil {
			c.messenger.Send(id, outcome.Message)
		}
		return false
	}
	if c.clearOnSuccess && c.messenger != nil {
		c.messenger.Clear(id)
	}
	return true
}

// Run executes the chain and returns its Outcome without dispatching.
func (c *Chain) Run(ctx context.Context, event Event, id string, converter *convert.Spec, validators []validate.Spec) Outcome {
	ctx = slogctx.With(ctx, "field", id)
	value := c.extractor.Value(id, event.Target)

	if converter != nil {
		conv, ok := c.converters.Lookup(converter.Name)
		if !ok {
			slogctx.Debug(ctx, "converter not registered, skipping", "converter", converter.Name)
		} else {
			cc := convert.Context{ComponentID: id, Options: converter.Options}
			converted, err := conv.Convert(ctx, cc, value)
			if err != nil {
				slogctx.Debug(ctx, "conversion failed", "converter", converter.Name, "error", err)
				return failure(StageConvert, value, err)
			}
			value = converted
		}
	}

	for _, spec := range validators {
		v, ok := c.validators.Lookup(spec.Type)
		if !ok {
			slogctx.Debug(ctx, "validator not registered, skipping", "validator", spec.Type)
			continue
		}
		if err := v.Validate(ctx, id, value, spec.Params); err != nil {
			slogctx.Debug(ctx, "validation failed", "validator", spec.Type, "error", err)
			return failure(StageValidate, value, err)
		}
	}

	return Outcome{Valid: true, Value: value}
}

func failure(stage string, value any, err error) Outcome {
	return Outcome{
		Valid:   false,
		Value:   value,
		Message: MessageFromError(err),
		Stage:   stage,
		Err:     err,
	}
}

// MessageFromError returns the message carried by conversion and validation
// errors. Any other error becomes a message whose summary and detail are the
// error text.
func MessageFromError(err error) message.Message {
	if err == nil {
		return message.Message{}
	}
	var convErr *convert.ConversionError
	if errors.As(err, &convErr) && !convErr.Message.IsZero() {
		return convErr.Message
	}
	var valErr *validate.ValidationError
	if errors.As(err, &valErr) && !valErr.Message.IsZero() {
		return valErr.Message
	}
	return message.Text(err.Error())
}
