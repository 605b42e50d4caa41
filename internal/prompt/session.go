package prompt

import (
	"context"
	"fmt"

	slogctx "github.com/veqryn/slog-context"

	"github.com/goliatone/go-formcheck/pkg/chain"
	"github.com/goliatone/go-formcheck/pkg/page"
	"github.com/goliatone/go-formcheck/pkg/rules"
)

// DefaultMaxAttempts bounds how often a failing field is asked again.
const DefaultMaxAttempts = 5

// Option configures a Session.
type Option func(*Session)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithMessenger sets where failure messages go. The session clears a field's
// message once it passes.
func WithMessenger(m chain.Messenger) Option {
	return func(s *Session) {
		s.messenger = m
	}
}

// Answer is the accepted value of one field.
type Answer struct {
	FieldID  string
	Value    any
	Attempts int
}

// Session asks for every field of a form and keeps asking until the field
// passes its validation chain.
type Session struct {
	driver      Driver
	page        *page.Page
	chain       *chain.Chain
	messenger   chain.Messenger
	maxAttempts int
}

// NewSession wires a driver, the page that receives the answers and the
// chain that validates them.
func NewSession(driver Driver, p *page.Page, c *chain.Chain, opts ...Option) *Session {
	s := &Session{
		driver:      driver,
		page:        p,
		chain:       c,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run asks for each field of form in order and returns the accepted values.
func (s *Session) Run(ctx context.Context, form rules.Form) ([]Answer, error) {
	answers := make([]Answer, 0, len(form.Fields))
	for _, field := range form.Fields {
		answer, err := s.askField(ctx, field)
		if err != nil {
			return answers, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

func (s *Session) askField(ctx context.Context, field rules.FieldRules) (Answer, error) {
	el, err := s.element(field)
	if err != nil {
		return Answer{}, err
	}
	ctx = slogctx.With(ctx, "field", field.ID)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := s.ask(ctx, el, field); err != nil {
			return Answer{}, err
		}
		outcome := s.chain.Run(ctx, chain.Event{Type: "prompt", Target: el}, field.ID, field.Converter, field.Validators)
		if outcome.Valid {
			if s.messenger != nil {
				s.messenger.Clear(field.ID)
			}
			return Answer{FieldID: field.ID, Value: outcome.Value, Attempts: attempt}, nil
		}
		slogctx.Debug(ctx, "answer rejected", "attempt", attempt, "stage", outcome.Stage)
		if s.messenger != nil {
			s.messenger.Send(field.ID, outcome.Message)
		}
	}
	return Answer{}, fmt.Errorf("%w: %s", ErrTooManyAttempts, field.ID)
}

func (s *Session) element(field rules.FieldRules) (*page.Element, error) {
	if el, ok := s.page.Element(field.ID); ok {
		return el, nil
	}
	el := page.NewElement(page.Node{ID: field.ID, Kind: "input", Type: "text", Label: field.Label})
	if err := s.page.Add(el); err != nil {
		return nil, err
	}
	return el, nil
}

func (s *Session) ask(ctx context.Context, el *page.Element, field rules.FieldRules) error {
	label := el.Label()
	if label == el.ID() {
		label = field.DisplayLabel()
	}

	switch {
	case el.Kind() == "toggle" || el.InputType() == "checkbox":
		checked, err := s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: el.Checked()})
		if err != nil {
			return err
		}
		el.SetChecked(checked)
	case el.Kind() == "select":
		return s.askSelect(ctx, el, label)
	case el.Kind() == "textarea":
		text, err := s.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: el.Text()})
		if err != nil {
			return err
		}
		el.SetText(text)
	default:
		value, err := s.driver.Input(ctx, InputConfig{Message: label, Default: el.Value()})
		if err != nil {
			return err
		}
		el.SetValue(value)
	}
	return nil
}

func (s *Session) askSelect(ctx context.Context, el *page.Element, label string) error {
	options := el.Options()
	labels := make([]string, len(options))
	var defaults []int
	for idx, opt := range options {
		labels[idx] = opt.Label
		if labels[idx] == "" {
			labels[idx] = opt.Value
		}
		if opt.Selected {
			defaults = append(defaults, idx)
		}
	}

	if el.Multiple() {
		picked, err := s.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: labels, Defaults: defaults})
		if err != nil {
			return err
		}
		values := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(options) {
				values = append(values, options[idx].Value)
			}
		}
		el.Select(values...)
		return nil
	}

	defaultIndex := -1
	if len(defaults) > 0 {
		defaultIndex = defaults[0]
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: defaultIndex})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(options) {
		el.Select(options[idx].Value)
	} else {
		el.Select()
	}
	return nil
}
