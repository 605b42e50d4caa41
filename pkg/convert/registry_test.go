package convert

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_DefaultBuiltins(t *testing.T) {
	reg := Default()
	want := []string{NameBoolean, NameInteger, NameNumber}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("builtin names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatalf("unknown converter should miss")
	}
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	identity := Func(func(_ context.Context, _ Context, v any) (any, error) { return v, nil })

	if err := reg.Register("", identity); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("id", nil); err == nil {
		t.Fatalf("expected error for nil converter")
	}
	if err := reg.Register(" id ", identity); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("id", identity); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, ok := reg.Lookup("id"); !ok {
		t.Fatalf("trimmed name should resolve")
	}
}

func TestRegistry_NilLookup(t *testing.T) {
	var reg *Registry
	if _, ok := reg.Lookup(NameBoolean); ok {
		t.Fatalf("nil registry should never resolve")
	}
}
