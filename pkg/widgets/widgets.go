package widgets

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/extract"
)

// Described exposes the element kind ("input", "select", "textarea", ...)
// and, for inputs, the type attribute.
type Described interface {
	Kind() string
	InputType() string
}

// Hinted elements name the widget that should wrap them.
type Hinted interface {
	WidgetHint() string
}

// Checkable elements carry an on/off state.
type Checkable interface {
	Checked() bool
}

// Selectable elements carry a set of selected option values.
type Selectable interface {
	Selected() []string
	Multiple() bool
}

// TextHolder elements carry free text outside the value attribute.
type TextHolder interface {
	Text() string
}

// ChipSeparator joins the values of a multi-select.
const ChipSeparator = ","

type toggle struct{ el extract.Element }

// GetValue reports "true" or "false".
func (t toggle) GetValue() any {
	c, ok := t.el.(Checkable)
	if !ok {
		return ""
	}
	return strconv.FormatBool(c.Checked())
}

type chips struct{ el extract.Element }

// GetValue joins the selected values with ChipSeparator.
func (c chips) GetValue() any {
	sel, ok := c.el.(Selectable)
	if !ok {
		return ""
	}
	return strings.Join(sel.Selected(), ChipSeparator)
}

type single struct{ el extract.Element }

// GetValue returns the first selected value.
func (s single) GetValue() any {
	sel, ok := s.el.(Selectable)
	if !ok {
		return ""
	}
	if values := sel.Selected(); len(values) > 0 {
		return values[0]
	}
	return ""
}

type editor struct{ el extract.Element }

func (e editor) GetValue() any {
	holder, ok := e.el.(TextHolder)
	if !ok {
		return ""
	}
	return holder.Text()
}
