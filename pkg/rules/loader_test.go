package rules

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/message"
	"github.com/goliatone/go-formcheck/pkg/validate"
)

const signupYAML = `
forms:
  signup:
    fields:
      - id: signup:age
        label: Age
        converter:
          name: integer
          options:
            message:
              summary: "{0} is not an age"
              detail: "{1}: {0} is not an age"
        validators:
          - type: required
          - type: range
            params:
              minimum: 18
              maximum: 120
      - id: signup:nick
        validators:
          - type: length
            params:
              minimum: 3
              maximum: 5
              message:
                summary: "between {0} and {1}"
                detail: "nick must be {0}..{1} characters"
`

const contactJSON = `{
  "forms": {
    "contact": {
      "fields": [
        {"id": "contact:email", "validators": [{"type": "regex", "params": {"pattern": "[^@]+@[^@]+"}}]}
      ]
    }
  }
}`

func TestLoadFS_ParsesYAMLAndJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/signup.yaml":  {Data: []byte(signupYAML)},
		"rules/contact.json": {Data: []byte(contactJSON)},
		"rules/README.md":    {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "signup"}, store.IDs()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}

	signup, ok := store.Form("signup")
	if !ok {
		t.Fatalf("signup form missing")
	}
	want := []FieldRules{
		{
			ID:    "signup:age",
			Label: "Age",
			Converter: &convert.Spec{
				Name: "integer",
				Options: convert.Options{"message": map[string]any{
					"summary": "{0} is not an age",
					"detail":  "{1}: {0} is not an age",
				}},
			},
			Validators: []validate.Spec{
				{Type: "required"},
				{Type: "range", Params: validate.Params{Minimum: validate.Bound(18), Maximum: validate.Bound(120)}},
			},
		},
		{
			ID: "signup:nick",
			Validators: []validate.Spec{
				{Type: "length", Params: validate.Params{
					Minimum: validate.Bound(3),
					Maximum: validate.Bound(5),
					Message: message.Message{Summary: "between {0} and {1}", Detail: "nick must be {0}..{1} characters"},
				}},
			},
		},
	}
	if diff := cmp.Diff(want, signup.Fields, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("signup fields mismatch (-want +got):\n%s", diff)
	}
	if signup.Source != "rules/signup.yaml" {
		t.Fatalf("unexpected source %q", signup.Source)
	}

	contact, _ := store.Form("contact")
	if got := contact.Fields[0].Validators[0].Params.Pattern; got != "[^@]+@[^@]+" {
		t.Fatalf("unexpected pattern %q", got)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name: "duplicate form across files",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("forms:\n  f:\n    fields: []\n")},
				"b.yaml": {Data: []byte("forms:\n  f:\n    fields: []\n")},
			},
			wantErr: `duplicate form "f"`,
		},
		{
			name:    "empty file",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("  \n")}},
			wantErr: "rule file is empty",
		},
		{
			name:    "field without id",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    fields:\n      - label: x\n")}},
			wantErr: "field 0 has no id",
		},
		{
			name:    "duplicate field",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    fields:\n      - id: x\n      - id: x\n")}},
			wantErr: `duplicate field "x"`,
		},
		{
			name:    "invalid yaml",
			files:   fstest.MapFS{"a.yml": {Data: []byte("forms: [unterminated")}},
			wantErr: "parsing rule file",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFS(tc.files)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q in %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadFS_NilFilesystem(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("LoadFS(nil): %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestParse_DropsNamelessConverter(t *testing.T) {
	forms, err := Parse([]byte("forms:\n  f:\n    fields:\n      - id: x\n        converter: {name: ' '}\n"), "inline")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if forms[0].Fields[0].Converter != nil {
		t.Fatalf("blank converter name should be dropped")
	}
}

func TestMarshalYAML_ParsesBack(t *testing.T) {
	forms, err := Parse([]byte(signupYAML), "signup.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := MarshalYAML(forms)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	again, err := Parse(data, "encoded.yaml")
	if err != nil {
		t.Fatalf("Parse encoded: %v\n%s", err, data)
	}
	if diff := cmp.Diff(forms[0].Fields, again[0].Fields, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("fields changed after encoding (-want +got):\n%s", diff)
	}
}

func TestForm_Field(t *testing.T) {
	form := Form{ID: "f", Fields: []FieldRules{{ID: "a"}, {ID: "b", Label: "Bee"}}}
	field, ok := form.Field("b")
	if !ok || field.DisplayLabel() != "Bee" {
		t.Fatalf("unexpected field %+v", field)
	}
	if _, ok := form.Field("c"); ok {
		t.Fatalf("unknown field should miss")
	}
	if (FieldRules{ID: "a"}).DisplayLabel() != "a" {
		t.Fatalf("label should fall back to id")
	}
}
