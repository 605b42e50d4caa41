package extract

// Element is an opaque handle to a page element supplied by the UI framework.
type Element any

// ValueHolder is implemented by native input-like elements that expose their
// raw value directly.
type ValueHolder interface {
	Value() string
}

// Widget is implemented by component wrappers that compute the value of the
// element they decorate (toggles, selects, editors).
type Widget interface {
	GetValue() any
}

// ElementLookup resolves an element by its client identifier.
type ElementLookup interface {
	ElementByID(id string) (Element, bool)
}

// WidgetLookup wraps an element into its component object, when one exists.
type WidgetLookup interface {
	Wrap(el Element) (any, bool)
}

// ElementLookupFunc adapts a function into an ElementLookup.
type ElementLookupFunc func(id string) (Element, bool)

// ElementByID delegates to the underlying function.
func (fn ElementLookupFunc) ElementByID(id string) (Element, bool) {
	return fn(id)
}

// WidgetLookupFunc adapts a function into a WidgetLookup.
type WidgetLookupFunc func(el Element) (any, bool)

// Wrap delegates to the underlying function.
func (fn WidgetLookupFunc) Wrap(el Element) (any, bool) {
	return fn(el)
}

// Elements is a map-backed ElementLookup keyed by client id.
type Elements map[string]Element

// ElementByID returns the element registered under id.
func (e Elements) ElementByID(id string) (Element, bool) {
	el, ok := e[id]
	return el, ok
}

// Extractor resolves the current value of a field. Both lookups are optional;
// a nil lookup behaves like one that never finds anything.
type Extractor struct {
	elements ElementLookup
	widgets  WidgetLookup
}

// New constructs an Extractor from the page collaborators.
func New(elements ElementLookup, widgets WidgetLookup) *Extractor {
	return &Extractor{elements: elements, widgets: widgets}
}

// Value returns the current value of clientID. When el is nil the element is
// resolved through the element lookup. A non-empty raw value wins; otherwise
// the element's widget is asked for its value. Absence of a usable value
// yields the empty string.
func (x *Extractor) Value(clientID string, el Element) any {
	if el == nil {
		el = x.lookup(clientID)
		if el == nil {
			return ""
		}
	}

	if holder, ok := el.(ValueHolder); ok {
		if value := holder.Value(); value != "" {
			return value
		}
	}

	if x == nil || x.widgets == nil {
		return ""
	}
	wrapped, ok := x.widgets.Wrap(el)
	if !ok || wrapped == nil {
		return ""
	}
	if widget, ok := wrapped.(Widget); ok {
		return widget.GetValue()
	}
	return ""
}

func (x *Extractor) lookup(clientID string) Element {
	if x == nil || x.elements == nil {
		return nil
	}
	el, ok := x.elements.ElementByID(clientID)
	if !ok {
		return nil
	}
	return el
}
