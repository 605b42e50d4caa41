package rules

import (
	"sort"

	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/validate"
)

// ErrDomainRules tags oops errors raised while loading or deriving rules.
const ErrDomainRules = "rules"

// FieldRules is the validation setup of one field: an optional converter and
// validators evaluated in order.
type FieldRules struct {
	ID         string          `json:"id" yaml:"id"`
	Label      string          `json:"label,omitempty" yaml:"label,omitempty"`
	Converter  *convert.Spec   `json:"converter,omitempty" yaml:"converter,omitempty"`
	Validators []validate.Spec `json:"validators,omitempty" yaml:"validators,omitempty"`
}

// DisplayLabel returns Label, falling back to ID.
func (f FieldRules) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

// Form groups field rules. Field order is evaluation order.
type Form struct {
	ID     string       `json:"id" yaml:"id"`
	Source string       `json:"-" yaml:"-"`
	Fields []FieldRules `json:"fields" yaml:"fields"`
}

// Field returns the rules for a field id.
func (f Form) Field(id string) (FieldRules, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldRules{}, false
}

// Store holds forms indexed by id.
type Store struct {
	forms map[string]Form
}

// NewStore builds a store from forms. Later forms replace earlier ones with
// the same id.
func NewStore(forms ...Form) *Store {
	store := &Store{forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		store.forms[form.ID] = form
	}
	return store
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs returns the sorted form ids.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}
