package validate

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formcheck/pkg/message"
)

// Default messages. Length and range messages interpolate {0} = minimum and
// {1} = maximum; the regex message interpolates {0} = pattern; the required
// message interpolates {0} = component id.
var (
	LengthMessage = message.Message{
		Summary: "Length must be between {0} and {1}.",
		Detail:  "Value length must be between {0} and {1} characters.",
	}
	RequiredMessage = message.Message{
		Summary: "Value is required.",
		Detail:  "{0}: value is required.",
	}
	RangeMessage = message.Message{
		Summary: "Value must be between {0} and {1}.",
		Detail:  "Value must be a number between {0} and {1}.",
	}
	RegexMessage = message.Message{
		Summary: "Value has an invalid format.",
		Detail:  "Value must match the pattern {0}.",
	}
)

// Length checks the rune count of value against the optional bounds. The
// maximum is checked first.
func Length(value string, msg message.Message, params Params) error {
	n := float64(utf8.RuneCountInString(value))
	if params.Maximum != nil && n > *params.Maximum {
		return boundsFailure(msg, params)
	}
	if params.Minimum != nil && n < *params.Minimum {
		return boundsFailure(msg, params)
	}
	return nil
}

// LengthValidator applies Length to the display form of value.
func LengthValidator(_ context.Context, _ string, value any, params Params) error {
	return Length(message.Display(value), params.MessageOr(LengthMessage), params)
}

// Required rejects nil values and blank strings.
func Required(_ context.Context, componentID string, value any, params Params) error {
	if value == nil || strings.TrimSpace(message.Display(value)) == "" {
		msg := params.MessageOr(RequiredMessage)
		return NewValidationError(message.GetMessage(msg, message.Indexed(componentID)))
	}
	return nil
}

// Range checks a numeric value against the optional bounds. Nil and blank
// values pass; pair it with required to reject them.
func Range(_ context.Context, _ string, value any, params Params) error {
	n, ok, err := numeric(value)
	if err != nil {
		return &ValidationError{
			Message: message.GetMessage(params.MessageOr(RangeMessage), bounds(params)),
			Err:     err,
		}
	}
	if !ok {
		return nil
	}
	if params.Maximum != nil && n > *params.Maximum {
		return boundsFailure(params.MessageOr(RangeMessage), params)
	}
	if params.Minimum != nil && n < *params.Minimum {
		return boundsFailure(params.MessageOr(RangeMessage), params)
	}
	return nil
}

// Regex requires the whole value to match params.Pattern, or any part of it
// when params.Match is MatchSearch. Blank values pass.
func Regex(_ context.Context, _ string, value any, params Params) error {
	raw := message.Display(value)
	if raw == "" {
		return nil
	}
	re, err := compilePattern(params.Pattern, strings.EqualFold(params.Match, MatchSearch))
	if err != nil {
		return &ValidationError{
			Message: message.GetMessage(params.MessageOr(RegexMessage), message.Indexed(params.Pattern)),
			Err:     err,
		}
	}
	if !re.MatchString(raw) {
		return NewValidationError(message.GetMessage(params.MessageOr(RegexMessage), message.Indexed(params.Pattern)))
	}
	return nil
}

func boundsFailure(msg message.Message, params Params) error {
	return NewValidationError(message.GetMessage(msg, bounds(params)))
}

func bounds(params Params) message.Values {
	return message.Indexed(params.Minimum, params.Maximum)
}

// numeric reports the float value of v. ok is false for nil and blank input.
func numeric(v any) (n float64, ok bool, err error) {
	switch typed := v.(type) {
	case nil:
		return 0, false, nil
	case int:
		return float64(typed), true, nil
	case int32:
		return float64(typed), true, nil
	case int64:
		return float64(typed), true, nil
	case float32:
		return float64(typed), true, nil
	case float64:
		if math.IsNaN(typed) {
			return 0, false, fmt.Errorf("validate: NaN is not comparable")
		}
		return typed, true, nil
	}
	raw := strings.TrimSpace(message.Display(v))
	if raw == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("validate: %q is not a number: %w", raw, err)
	}
	return f, true, nil
}

var patternCache sync.Map

func compilePattern(pattern string, search bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("validate: regex pattern is required")
	}
	expr := pattern
	if !search {
		expr = `^(?:` + pattern + `)$`
	}
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validate: compile pattern %q: %w", pattern, err)
	}
	patternCache.Store(expr, re)
	return re, nil
}
