package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formcheck/pkg/extract"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetToggle = "toggle"
	WidgetChips  = "chips"
	WidgetSelect = "select"
	WidgetEditor = "editor"
)

// Matcher decides whether a widget should wrap the supplied element.
type Matcher func(el extract.Element) bool

// Factory wraps an element into a widget that knows how to read its value.
type Factory func(el extract.Element) extract.Widget

type rule struct {
	name     string
	priority int
	match    Matcher
	wrap     Factory
	order    int
}

// Registry selects widget wrappers for page elements based on explicit hints
// or registered matchers. Higher priority wins; ties fall back to
// registration order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Empty returns a registry without built-ins.
func Empty() *Registry {
	return &Registry{}
}

// Register adds a widget with the provided name, priority, matcher and
// factory. Callers should avoid duplicate names; the latest registration wins
// when resolving explicit hints.
func (r *Registry) Register(name string, priority int, matcher Matcher, factory Factory) {
	if r == nil || matcher == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		wrap:     factory,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for an element. An explicit hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(el extract.Element) (string, bool) {
	entry, ok := r.resolve(el)
	if !ok {
		return "", false
	}
	return entry.name, true
}

// Wrap implements extract.WidgetLookup. Elements that already implement
// extract.Widget are returned unchanged.
func (r *Registry) Wrap(el extract.Element) (any, bool) {
	if el == nil {
		return nil, false
	}
	if widget, ok := el.(extract.Widget); ok {
		return widget, true
	}
	entry, ok := r.resolve(el)
	if !ok {
		return nil, false
	}
	widget := entry.wrap(el)
	if widget == nil {
		return nil, false
	}
	return widget, true
}

func (r *Registry) resolve(el extract.Element) (rule, bool) {
	if r == nil || el == nil {
		return rule{}, false
	}
	rules := r.sorted()
	if len(rules) == 0 {
		return rule{}, false
	}
	if hint := explicitWidget(el); hint != "" {
		if entry, ok := latestNamed(rules, hint); ok {
			return entry, true
		}
	}
	for _, entry := range rules {
		if entry.match(el) {
			return entry, true
		}
	}
	return rule{}, false
}

func (r *Registry) sorted() []rule {
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	return rules
}

func latestNamed(rules []rule, name string) (rule, bool) {
	var found rule
	ok := false
	for _, entry := range rules {
		if entry.name == name && (!ok || entry.order > found.order) {
			found, ok = entry, true
		}
	}
	return found, ok
}

func explicitWidget(el extract.Element) string {
	if hinted, ok := el.(Hinted); ok {
		return strings.TrimSpace(hinted.WidgetHint())
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(el extract.Element) bool {
		_, ok := el.(Checkable)
		return ok && kindAllows(el, "toggle", "checkbox")
	}, func(el extract.Element) extract.Widget {
		return toggle{el}
	})

	r.Register(WidgetChips, 80, func(el extract.Element) bool {
		sel, ok := el.(Selectable)
		return ok && sel.Multiple() && kindAllows(el, "select", "chips")
	}, func(el extract.Element) extract.Widget {
		return chips{el}
	})

	r.Register(WidgetSelect, 70, func(el extract.Element) bool {
		sel, ok := el.(Selectable)
		return ok && !sel.Multiple() && kindAllows(el, "select", "radio")
	}, func(el extract.Element) extract.Widget {
		return single{el}
	})

	r.Register(WidgetEditor, 60, func(el extract.Element) bool {
		_, ok := el.(TextHolder)
		return ok && kindAllows(el, "textarea", "editor", "contenteditable")
	}, func(el extract.Element) extract.Widget {
		return editor{el}
	})
}

// kindAllows accepts elements that do not describe themselves and described
// elements of one of kinds.
func kindAllows(el extract.Element, kinds ...string) bool {
	if _, ok := el.(Described); !ok {
		return true
	}
	return isKind(el, kinds...)
}

func isKind(el extract.Element, kinds ...string) bool {
	described, ok := el.(Described)
	if !ok {
		return false
	}
	for _, kind := range kinds {
		if strings.EqualFold(described.Kind(), kind) || strings.EqualFold(described.InputType(), kind) {
			return true
		}
	}
	return false
}
