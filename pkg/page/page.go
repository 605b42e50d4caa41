package page

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/extract"
)

// Option is one choice of a select element.
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Node is the serialisable description of an element.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Kind     string   `json:"kind" yaml:"kind"`
	Type     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Widget   string   `json:"widget,omitempty" yaml:"widget,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
	Checked  bool     `json:"checked,omitempty" yaml:"checked,omitempty"`
	Multiple bool     `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Options  []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// Element is a live page element. It exposes the raw value used by the
// extractor fast path and the capabilities widget wrappers read from. All
// methods are safe for concurrent use.
type Element struct {
	mu   sync.RWMutex
	node Node
}

// NewElement builds an element from its description.
func NewElement(node Node) *Element {
	node.Options = append([]Option(nil), node.Options...)
	return &Element{node: node}
}

// ID returns the client id.
func (e *Element) ID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.node.ID
}

// Label returns the human label, falling back to the id.
func (e *Element) Label() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.node.Label != "" {
		return e.node.Label
	}
	return e.node.ID
}

// Value returns the raw value attribute.
func (e *Element) Value() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.node.Value
}

// Kind returns the element kind, lower-cased.
func (e *Element) Kind() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return strings.ToLower(e.node.Kind)
}

// InputType returns the type attribute of inputs.
func (e *Element) InputType() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return strings.ToLower(e.node.Type)
}

// WidgetHint returns the explicit widget name, if any.
func (e *Element) WidgetHint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.node.Widget
}

// Checked reports the on/off state.
func (e *Element) Checked() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.node.Checked
}

// Multiple reports whether several options may be selected.
func (e *Element) Multiple() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.node.Multiple
}

// Selected returns the selected option values in option order.
func (e *Element) Selected() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var values []string
	for _, opt := range e.node.Options {
		if opt.Selected {
			values = append(values, opt.Value)
		}
	}
	return values
}

// Options returns a copy of the element options.
func (e *Element) Options() []Option {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Option(nil), e.node.Options...)
}

// Text returns the free text content.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.node.Text
}

// Snapshot returns a copy of the element description.
func (e *Element) Snapshot() Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	node := e.node
	node.Options = append([]Option(nil), e.node.Options...)
	return node
}

// SetValue sets the raw value.
func (e *Element) SetValue(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.node.Value = value
}

// SetChecked sets the on/off state.
func (e *Element) SetChecked(checked bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.node.Checked = checked
}

// SetText sets the free text content.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.node.Text = text
}

// Select marks exactly the options whose value is in values as selected.
// Single selects keep only the first match. Unknown values are ignored.
func (e *Element) Select(values ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	wanted := make(map[string]bool, len(values))
	for _, v := range values {
		wanted[v] = true
	}
	picked := false
	for idx := range e.node.Options {
		sel := wanted[e.node.Options[idx].Value]
		if sel && !e.node.Multiple && picked {
			sel = false
		}
		picked = picked || sel
		e.node.Options[idx].Selected = sel
	}
}

// Page is an in-memory set of elements addressed by client id. It implements
// extract.ElementLookup.
type Page struct {
	mu       sync.RWMutex
	order    []string
	elements map[string]*Element
}

// New builds a page from element descriptions. Ids must be unique and
// non-empty.
func New(nodes ...Node) (*Page, error) {
	p := &Page{elements: make(map[string]*Element, len(nodes))}
	for _, node := range nodes {
		if err := p.Add(NewElement(node)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add registers an element.
func (p *Page) Add(el *Element) error {
	if el == nil {
		return fmt.Errorf("page: element is required")
	}
	id := strings.TrimSpace(el.ID())
	if id == "" {
		return fmt.Errorf("page: element id is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.elements[id]; exists {
		return fmt.Errorf("page: duplicate element %q", id)
	}
	p.elements[id] = el
	p.order = append(p.order, id)
	return nil
}

// Element returns the element registered under id.
func (p *Page) Element(id string) (*Element, bool) {
	if p == nil {
		return nil, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	el, ok := p.elements[id]
	return el, ok
}

// ElementByID implements extract.ElementLookup.
func (p *Page) ElementByID(id string) (extract.Element, bool) {
	el, ok := p.Element(id)
	if !ok {
		return nil, false
	}
	return el, true
}

// IDs returns element ids in insertion order.
func (p *Page) IDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.order...)
}

// Nodes returns a snapshot of every element, in insertion order.
func (p *Page) Nodes() []Node {
	p.mu.RLock()
	defer p.mu.RUnlock()
	nodes := make([]Node, 0, len(p.order))
	for _, id := range p.order {
		nodes = append(nodes, p.elements[id].Snapshot())
	}
	return nodes
}

type document struct {
	Elements []Node `yaml:"elements" json:"elements"`
}

// Parse decodes a page snapshot document (YAML or JSON).
func Parse(data []byte) (*Page, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("page: parse snapshot: %w", err)
	}
	return New(doc.Elements...)
}

// Load reads and parses a snapshot from fsys.
func Load(fsys fs.FS, name string) (*Page, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("page: read %s: %w", name, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, name)
	}
	return p, nil
}

// Marshal encodes the page as a YAML snapshot.
func (p *Page) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(document{Elements: p.Nodes()})
	if err != nil {
		return nil, fmt.Errorf("page: encode snapshot: %w", err)
	}
	return data, nil
}
