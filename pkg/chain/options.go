package chain

import (
	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/extract"
	"github.com/goliatone/go-formcheck/pkg/validate"
)

// Option customises a Chain during construction.
type Option func(*Chain)

// WithExtractor sets the value extractor.
func WithExtractor(extractor *extract.Extractor) Option {
	return func(c *Chain) {
		c.extractor = extractor
	}
}

// WithConverters sets the converter lookup. Defaults to convert.Default().
func WithConverters(lookup ConverterLookup) Option {
	return func(c *Chain) {
		c.converters = lookup
	}
}

// WithValidators sets the validator lookup. Defaults to validate.Default().
func WithValidators(lookup ValidatorLookup) Option {
	return func(c *Chain) {
		c.validators = lookup
	}
}

// WithMessenger sets where failure messages go. Without one, Validate only
// reports the boolean result.
func WithMessenger(m Messenger) Option {
	return func(c *Chain) {
		c.messenger = m
	}
}

// WithClearOnSuccess makes Validate clear the field's message when it passes.
func WithClearOnSuccess(enabled bool) Option {
	return func(c *Chain) {
		c.clearOnSuccess = enabled
	}
}

func defaultOptions(c *Chain) {
	if c.converters == nil {
		c.converters = convert.Default()
	}
	if c.validators == nil {
		c.validators = validate.Default()
	}
	if c.extractor == nil {
		c.extractor = extract.New(nil, nil)
	}
}
