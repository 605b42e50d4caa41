package extract_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/extract"
)

type input struct{ value string }

func (i input) Value() string { return i.value }

type checkbox struct{ checked bool }

type toggle struct{ el checkbox }

func (t toggle) GetValue() any { return t.el.checked }

type inert struct{}

func wrapCheckbox(el extract.Element) (any, bool) {
	if cb, ok := el.(checkbox); ok {
		return toggle{el: cb}, true
	}
	if _, ok := el.(inert); ok {
		return struct{}{}, true
	}
	return nil, false
}

func TestExtractor_Value(t *testing.T) {
	page := extract.Elements{
		"form:name":   input{value: "Ada"},
		"form:agree":  checkbox{checked: true},
		"form:empty":  input{value: ""},
		"form:plain":  inert{},
		"form:absent": nil,
	}
	x := extract.New(page, extract.WidgetLookupFunc(wrapCheckbox))

	cases := []struct {
		name string
		id   string
		el   extract.Element
		want any
	}{
		{name: "raw value fast path", id: "form:name", want: "Ada"},
		{name: "widget delegation", id: "form:agree", want: true},
		{name: "empty raw value without widget", id: "form:empty", want: ""},
		{name: "wrapper without getter", id: "form:plain", want: ""},
		{name: "unknown id", id: "form:missing", want: ""},
		{name: "nil element registered", id: "form:absent", want: ""},
		{name: "explicit element wins over lookup", id: "form:name", el: input{value: "Grace"}, want: "Grace"},
		{name: "explicit widget element", id: "ignored", el: checkbox{checked: false}, want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := x.Value(tc.id, tc.el)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractor_NilCollaborators(t *testing.T) {
	x := extract.New(nil, nil)
	if got := x.Value("form:name", nil); got != "" {
		t.Fatalf("expected empty value, got %v", got)
	}
	if got := x.Value("form:agree", checkbox{checked: true}); got != "" {
		t.Fatalf("expected empty value without widget lookup, got %v", got)
	}
}

func TestElementLookupFunc(t *testing.T) {
	lookup := extract.ElementLookupFunc(func(id string) (extract.Element, bool) {
		if id == "x" {
			return input{value: "from func"}, true
		}
		return nil, false
	})
	x := extract.New(lookup, nil)
	if got := x.Value("x", nil); got != "from func" {
		t.Fatalf("expected value from lookup func, got %v", got)
	}
}
