package convert

import (
	"context"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/message"
)

// Spec names a converter and carries its configuration. Specs are owned by
// the caller and never modified by the chain.
type Spec struct {
	Name    string  `json:"name" yaml:"name"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Options is the arbitrary configuration interpreted by a converter.
type Options map[string]any

// Message returns the "message" option as a Message. Message values, maps
// with summary/detail keys and plain strings are accepted; anything else
// yields fallback.
func (o Options) Message(fallback message.Message) message.Message {
	if o == nil {
		return fallback
	}
	switch raw := o["message"].(type) {
	case message.Message:
		if !raw.IsZero() {
			return raw
		}
	case *message.Message:
		if raw != nil && !raw.IsZero() {
			return *raw
		}
	case map[string]any:
		m := message.Message{
			Summary: stringOption(raw["summary"]),
			Detail:  stringOption(raw["detail"]),
		}
		if !m.IsZero() {
			return m
		}
	case map[string]string:
		m := message.Message{Summary: raw["summary"], Detail: raw["detail"]}
		if !m.IsZero() {
			return m
		}
	case string:
		if strings.TrimSpace(raw) != "" {
			return message.Text(raw)
		}
	}
	return fallback
}

// String returns a string option or the empty string.
func (o Options) String(key string) string {
	if o == nil {
		return ""
	}
	return stringOption(o[key])
}

func stringOption(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// Context gives a converter the identity of the field being converted next to
// its own options.
type Context struct {
	ComponentID string
	Options     Options
}

// Converter transforms a raw extracted value into a typed value. A format
// problem is reported as an error, typically a *ConversionError.
type Converter interface {
	Convert(ctx context.Context, cc Context, value any) (any, error)
}

// Func adapts a function into a Converter.
type Func func(ctx context.Context, cc Context, value any) (any, error)

// Convert delegates to the underlying function.
func (fn Func) Convert(ctx context.Context, cc Context, value any) (any, error) {
	return fn(ctx, cc, value)
}
