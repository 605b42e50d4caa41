package message

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// Sanitizer makes messages safe to insert as HTML text. Markup in a message
// is escaped, never removed, so every character of the original text is
// still shown.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer whose output passes a strict policy that
// allows no elements or attributes.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: textPolicy()}
}

// Message returns a copy of m with both fields sanitised.
func (s *Sanitizer) Message(m Message) Message {
	if s == nil {
		return m
	}
	return Message{
		Summary: s.Text(m.Summary),
		Detail:  s.Text(m.Detail),
	}
}

// Text escapes raw for use as HTML text content. The strict policy sees only
// text tokens after escaping, so it keeps the content and re-escapes it.
func (s *Sanitizer) Text(raw string) string {
	if s == nil || raw == "" {
		return raw
	}
	return s.policy.Sanitize(html.EscapeString(raw))
}

func textPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
