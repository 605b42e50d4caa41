package chain

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/rules"
)

// FieldOutcome pairs a field id with the outcome of its chain.
type FieldOutcome struct {
	FieldID string
	Outcome Outcome
}

// RunForm runs the chain for every field of form, in field order. Each field
// stops at its own first failure; other fields still run.
func (c *Chain) RunForm(ctx context.Context, event Event, form rules.Form) []FieldOutcome {
	results := make([]FieldOutcome, 0, len(form.Fields))
	for _, field := range form.Fields {
		results = append(results, FieldOutcome{
			FieldID: field.ID,
			Outcome: c.Run(ctx, Event{Type: event.Type}, field.ID, field.Converter, field.Validators),
		})
	}
	return results
}

// ValidateForm validates every field of form and dispatches each failure to
// its field. It reports true only when all fields pass.
func (c *Chain) ValidateForm(ctx context.Context, event Event, form rules.Form) bool {
	valid := true
	for _, field := range form.Fields {
		if !c.Validate(ctx, Event{Type: event.Type}, field.ID, field.Converter, field.Validators) {
			valid = false
		}
	}
	return valid
}

// ClearForm clears the message of every field of form.
func (c *Chain) ClearForm(form rules.Form) {
	if c.messenger == nil {
		return
	}
	for _, field := range form.Fields {
		c.messenger.Clear(field.ID)
	}
}
