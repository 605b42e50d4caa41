package validate

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in validator types.
const (
	TypeLength   = "length"
	TypeRequired = "required"
	TypeRange    = "range"
	TypeRegex    = "regex"
)

// Registry stores validators by type name. Unknown types are reported as
// misses so the chain can skip them.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Default returns a registry with the built-in validators registered.
func Default() *Registry {
	reg := NewRegistry()
	reg.MustRegister(TypeLength, Func(LengthValidator))
	reg.MustRegister(TypeRequired, Func(Required))
	reg.MustRegister(TypeRange, Func(Range))
	reg.MustRegister(TypeRegex, Func(Regex))
	return reg
}

// Register adds a validator under kind. Duplicate kinds return an error.
func (r *Registry) Register(kind string, validator Validator) error {
	if validator == nil {
		return fmt.Errorf("validate: validator is required")
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("validate: validator type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[kind]; exists {
		return fmt.Errorf("validate: validator %q already registered", kind)
	}
	r.validators[kind] = validator
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(kind string, validator Validator) {
	if err := r.Register(kind, validator); err != nil {
		panic(err)
	}
}

// Lookup returns the validator registered under kind.
func (r *Registry) Lookup(kind string) (Validator, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	validator, ok := r.validators[strings.TrimSpace(kind)]
	return validator, ok
}

// List returns the sorted validator types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.validators))
	for kind := range r.validators {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
