package rules

import (
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Fields []FieldRules `json:"fields" yaml:"fields"`
}

// LoadFS walks fsys and parses every JSON/YAML rule file. A nil filesystem
// yields an empty store. Form ids must be unique across files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRuleFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return oops.In(ErrDomainRules).With("path", p).Wrapf(err, "reading rule file")
		}
		forms, err := Parse(data, p)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if _, exists := store.forms[form.ID]; exists {
				return oops.In(ErrDomainRules).With("path", p).Errorf("duplicate form %q", form.ID)
			}
			store.forms[form.ID] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single rule file from fsys.
func LoadFile(fsys fs.FS, name string) (*Store, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, oops.In(ErrDomainRules).With("path", name).Wrapf(err, "reading rule file")
	}
	forms, err := Parse(data, name)
	if err != nil {
		return nil, err
	}
	return NewStore(forms...), nil
}

// Parse decodes a rule document. JSON is tried first, then YAML. Forms are
// returned sorted by id.
func Parse(data []byte, source string) ([]Form, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, oops.In(ErrDomainRules).With("path", source).Errorf("rule file is empty")
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, oops.In(ErrDomainRules).With("path", source).Wrapf(yerr, "parsing rule file")
		}
	}

	store := NewStore()
	for rawID, raw := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, oops.In(ErrDomainRules).With("path", source).Errorf("empty form id")
		}
		form, err := normaliseForm(id, source, raw)
		if err != nil {
			return nil, err
		}
		store.forms[id] = form
	}

	forms := make([]Form, 0, len(store.forms))
	for _, id := range store.IDs() {
		forms = append(forms, store.forms[id])
	}
	return forms, nil
}

// MarshalYAML renders forms as a rule document accepted by Parse.
func MarshalYAML(forms []Form) ([]byte, error) {
	doc := documentFile{Forms: make(map[string]formFile, len(forms))}
	for _, form := range forms {
		doc.Forms[form.ID] = formFile{Fields: form.Fields}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, oops.In(ErrDomainRules).Wrapf(err, "encoding rule document")
	}
	return data, nil
}

func normaliseForm(id, source string, raw formFile) (Form, error) {
	form := Form{ID: id, Source: source, Fields: make([]FieldRules, 0, len(raw.Fields))}
	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, field := range raw.Fields {
		field.ID = strings.TrimSpace(field.ID)
		if field.ID == "" {
			return Form{}, oops.In(ErrDomainRules).
				With("path", source).
				With("form", id).
				Errorf("field %d has no id", idx)
		}
		if _, dup := seen[field.ID]; dup {
			return Form{}, oops.In(ErrDomainRules).
				With("path", source).
				With("form", id).
				Errorf("duplicate field %q", field.ID)
		}
		seen[field.ID] = struct{}{}

		if field.Converter != nil && strings.TrimSpace(field.Converter.Name) == "" {
			field.Converter = nil
		}
		form.Fields = append(form.Fields, field)
	}
	return form, nil
}

func isRuleFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
