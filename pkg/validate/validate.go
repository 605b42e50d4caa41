package validate

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/message"
)

// Spec names a validator and carries its parameters. Specs are evaluated in
// slice order and never modified by the chain.
type Spec struct {
	Type   string `json:"type" yaml:"type"`
	Params Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// Params configures a validator. Minimum and Maximum are optional bounds;
// nil means unset. Extra holds validator specific keys.
type Params struct {
	Minimum *float64        `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64        `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Pattern string          `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Match   string          `json:"match,omitempty" yaml:"match,omitempty"`
	Message message.Message `json:"message,omitempty" yaml:"message,omitempty"`
	Extra   map[string]any  `json:"-" yaml:",inline"`
}

// Regex match modes. An empty Match means MatchFull.
const (
	MatchFull   = "full"
	MatchSearch = "search"
)

// Bound is a convenience for building Params literals.
func Bound(v float64) *float64 {
	return &v
}

// MessageOr returns the configured message, or fallback when none is set.
func (p Params) MessageOr(fallback message.Message) message.Message {
	if p.Message.IsZero() {
		return fallback
	}
	return p.Message
}

// Validator checks a (possibly converted) value. A rule violation is reported
// as an error, typically a *ValidationError.
type Validator interface {
	Validate(ctx context.Context, componentID string, value any, params Params) error
}

// Func adapts a function into a Validator.
type Func func(ctx context.Context, componentID string, value any, params Params) error

// Validate delegates to the underlying function.
func (fn Func) Validate(ctx context.Context, componentID string, value any, params Params) error {
	return fn(ctx, componentID, value, params)
}
