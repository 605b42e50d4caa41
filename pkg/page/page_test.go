package page

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/extract"
	"github.com/goliatone/go-formcheck/pkg/widgets"
)

const snapshot = `
elements:
  - id: signup:name
    kind: input
    type: text
    value: Ada
  - id: signup:agree
    kind: input
    type: checkbox
    checked: true
  - id: signup:tags
    kind: select
    multiple: true
    options:
      - {value: go, selected: true}
      - {value: rust}
      - {value: zig, selected: true}
  - id: signup:bio
    kind: textarea
    text: "hello there"
`

func TestParse_WithExtractor(t *testing.T) {
	p, err := Load(fstest.MapFS{"page.yaml": {Data: []byte(snapshot)}}, "page.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	x := extract.New(p, widgets.NewRegistry())

	cases := map[string]any{
		"signup:name":  "Ada",
		"signup:agree": "true",
		"signup:tags":  "go,zig",
		"signup:bio":   "hello there",
		"missing":      "",
	}
	for id, want := range cases {
		if got := x.Value(id, nil); got != want {
			t.Fatalf("Value(%q): want %#v, got %#v", id, want, got)
		}
	}
	if diff := cmp.Diff([]string{"signup:name", "signup:agree", "signup:tags", "signup:bio"}, p.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsInvalidIDs(t *testing.T) {
	if _, err := New(Node{ID: " "}); err == nil || !strings.Contains(err.Error(), "id is required") {
		t.Fatalf("expected missing id error, got %v", err)
	}
	if _, err := New(Node{ID: "a"}, Node{ID: "a"}); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestElement_Mutators(t *testing.T) {
	el := NewElement(Node{ID: "color", Kind: "select", Options: []Option{{Value: "red"}, {Value: "green"}, {Value: "blue"}}})

	el.Select("green", "blue")
	if diff := cmp.Diff([]string{"green"}, el.Selected()); diff != "" {
		t.Fatalf("single select should keep the first match (-want +got):\n%s", diff)
	}

	multi := NewElement(Node{ID: "tags", Kind: "select", Multiple: true, Options: []Option{{Value: "a"}, {Value: "b"}}})
	multi.Select("b", "a", "unknown")
	if diff := cmp.Diff([]string{"a", "b"}, multi.Selected()); diff != "" {
		t.Fatalf("multi select mismatch (-want +got):\n%s", diff)
	}

	el.SetValue("v")
	el.SetChecked(true)
	el.SetText("t")
	snap := el.Snapshot()
	if snap.Value != "v" || !snap.Checked || snap.Text != "t" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if el.Label() != "color" {
		t.Fatalf("label should fall back to id, got %q", el.Label())
	}
}

func TestMarshal_ParsesBack(t *testing.T) {
	p, err := Parse([]byte(snapshot))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse encoded: %v", err)
	}
	if diff := cmp.Diff(p.Nodes(), again.Nodes()); diff != "" {
		t.Fatalf("nodes changed after encoding (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "missing.yaml"); err == nil {
		t.Fatalf("expected read error")
	}
	_, err := Load(fstest.MapFS{"bad.yaml": {Data: []byte("elements: [")}}, "bad.yaml")
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}
