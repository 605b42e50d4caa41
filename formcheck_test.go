package formcheck_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/events"
	"github.com/goliatone/go-formcheck/pkg/message"
	"github.com/goliatone/go-formcheck/pkg/page"
	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/validate"
)

func TestChecker_EndToEnd(t *testing.T) {
	p, err := page.New(
		page.Node{ID: "signup:age", Kind: "input", Type: "text", Value: "<b>x</b>"},
		page.Node{ID: "signup:agree", Kind: "input", Type: "checkbox"},
	)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	checker := formcheck.New(p, formcheck.WithNamespace("signup"), formcheck.WithSanitizedMessages(true))

	var global, own []*message.Message
	if _, err := checker.Subscribe(formcheck.GlobalScope, func(e events.Event[*message.Message]) { global = append(global, e.Payload) }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	id, err := checker.Subscribe("signup:age", func(e events.Event[*message.Message]) {
		if e.Name != "onmessage.signup" {
			t.Errorf("unexpected event name %q", e.Name)
		}
		own = append(own, e.Payload)
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ok := checker.Validate(context.Background(), formcheck.Event{Type: "blur"}, "signup:age", &convert.Spec{Name: convert.NameInteger}, nil)
	if ok {
		t.Fatalf("expected failure")
	}
	want := []*message.Message{{
		Summary: "&#39;&lt;b&gt;x&lt;/b&gt;&#39; must be a number consisting of one or more digits.",
		Detail:  "signup:age: &#39;&lt;b&gt;x&lt;/b&gt;&#39; must be a number consisting of one or more digits.",
	}}
	if diff := cmp.Diff(want, own); diff != "" {
		t.Fatalf("component delivery mismatch (-want +got):\n%s", diff)
	}
	if len(global) != 1 {
		t.Fatalf("expected one global delivery, got %d", len(global))
	}

	checker.Clear("signup:age")
	if len(own) != 2 || own[1] != nil {
		t.Fatalf("clear should deliver a nil payload, got %+v", own)
	}

	checker.Unsubscribe(id)
	form := rules.Form{ID: "signup", Fields: []rules.FieldRules{
		{ID: "signup:agree", Converter: &convert.Spec{Name: convert.NameBoolean}, Validators: []validate.Spec{{Type: validate.TypeRequired}}},
	}}
	if !checker.ValidateForm(context.Background(), formcheck.Event{Type: "submit"}, form) {
		t.Fatalf("unchecked toggle converts to false, which is a present value")
	}
	results := checker.RunForm(context.Background(), form)
	if results[0].Outcome.Value != false {
		t.Fatalf("expected false from the toggle widget, got %#v", results[0].Outcome.Value)
	}
	if len(own) != 2 {
		t.Fatalf("unsubscribed listener should not be called again")
	}
}
