package convert

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in converter names.
const (
	NameBoolean = "boolean"
	NameInteger = "integer"
	NameNumber  = "number"
)

// Registry stores converters by name. It is populated at startup and read by
// the validation chain; unknown names are reported as misses, not errors.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// Default returns a registry with the built-in converters registered.
func Default() *Registry {
	reg := NewRegistry()
	reg.MustRegister(NameBoolean, Func(Boolean))
	reg.MustRegister(NameInteger, Func(Integer))
	reg.MustRegister(NameNumber, Func(Number))
	return reg
}

// Register adds a converter under name. Duplicate names return an error.
func (r *Registry) Register(name string, converter Converter) error {
	if converter == nil {
		return fmt.Errorf("convert: converter is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("convert: converter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.converters[name]; exists {
		return fmt.Errorf("convert: converter %q already registered", name)
	}
	r.converters[name] = converter
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, converter Converter) {
	if err := r.Register(name, converter); err != nil {
		panic(err)
	}
}

// Lookup returns the converter registered under name.
func (r *Registry) Lookup(name string) (Converter, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	converter, ok := r.converters[strings.TrimSpace(name)]
	return converter, ok
}

// List returns the sorted converter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
