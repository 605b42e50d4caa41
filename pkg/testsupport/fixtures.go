package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/page"
	"github.com/goliatone/go-formcheck/pkg/rules"
)

// UpdateEnv enables golden rewriting when set to any non-empty value.
const UpdateEnv = "UPDATE_GOLDENS"

// LoadForm reads a rule file and returns the form registered under id.
func LoadForm(path, id string) (rules.Form, error) {
	if path == "" {
		return rules.Form{}, errors.New("testsupport: rules path is required")
	}
	store, err := rules.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return rules.Form{}, fmt.Errorf("testsupport: load rules: %w", err)
	}
	form, ok := store.Form(id)
	if !ok {
		return rules.Form{}, fmt.Errorf("testsupport: form %q not found in %s", id, path)
	}
	return form, nil
}

// MustLoadForm is LoadForm failing the test on error.
func MustLoadForm(t *testing.T, path, id string) rules.Form {
	t.Helper()

	form, err := LoadForm(path, id)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// MustLoadPage reads a page snapshot fixture.
func MustLoadPage(t *testing.T, path string) *page.Page {
	t.Helper()

	p, err := page.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	return p
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set. It
// reports whether the golden was written.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv(UpdateEnv) == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	return WriteMaybeGolden(t, path, append(payload, '\n'))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv(UpdateEnv) == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustLoadGolden decodes a JSON golden into out.
func MustLoadGolden(t *testing.T, path string, out any) {
	t.Helper()
	if err := json.Unmarshal(MustReadGolden(t, path), out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
