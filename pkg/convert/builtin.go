package convert

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/message"
)

var (
	// DigitsPattern is the integer literal grammar.
	DigitsPattern = regexp.MustCompile(`^-?\d+$`)
	// FloatPattern is the decimal literal grammar: optional integer part,
	// optional fraction and an optional exponent after the fraction.
	FloatPattern = regexp.MustCompile(`^(-?\d+)?(\.(\d+)?(e[+-]?\d+)?)?$`)
)

// Default messages. {0} is the raw value and {1} the component id.
var (
	IntegerMessage = message.Message{
		Summary: "'{0}' must be a number consisting of one or more digits.",
		Detail:  "{1}: '{0}' must be a number consisting of one or more digits.",
	}
	NumberMessage = message.Message{
		Summary: "'{0}' is not a number.",
		Detail:  "{1}: '{0}' is not a number.",
	}
)

// ConvertBoolean parses a boolean literal. The value is trimmed and compared
// case-insensitively with "true". An empty value reports set == false.
func ConvertBoolean(value string) (result bool, set bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return false, false
	}
	return trimmed == "true", true
}

// Boolean converts the value with ConvertBoolean; unset values become nil.
func Boolean(_ context.Context, _ Context, value any) (any, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	result, set := ConvertBoolean(message.Display(value))
	if !set {
		return nil, nil
	}
	return result, nil
}

// Integer converts a digits-only literal into an int64. Empty values become
// nil.
func Integer(_ context.Context, cc Context, value any) (any, error) {
	raw := strings.TrimSpace(message.Display(value))
	if raw == "" {
		return nil, nil
	}
	if !DigitsPattern.MatchString(raw) {
		return nil, conversionFailure(cc, raw, IntegerMessage, nil)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, conversionFailure(cc, raw, IntegerMessage, err)
	}
	return n, nil
}

// Number converts a decimal literal into a float64. Empty values become nil.
func Number(_ context.Context, cc Context, value any) (any, error) {
	raw := strings.TrimSpace(message.Display(value))
	if raw == "" {
		return nil, nil
	}
	if !FloatPattern.MatchString(raw) {
		return nil, conversionFailure(cc, raw, NumberMessage, nil)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, conversionFailure(cc, raw, NumberMessage, err)
	}
	return f, nil
}

func conversionFailure(cc Context, raw string, fallback message.Message, cause error) error {
	tmpl := cc.Options.Message(fallback)
	return &ConversionError{
		Message: message.GetMessage(tmpl, message.Indexed(raw, cc.ComponentID)),
		Err:     cause,
	}
}
