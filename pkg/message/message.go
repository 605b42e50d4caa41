package message

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholderPattern matches `{n}` tokens. Anything else, including unmatched
// braces, is literal text.
var placeholderPattern = regexp.MustCompile(`\{(\d+)\}`)

// Message is the payload rendered by message widgets. Summary and Detail may
// hold templates before interpolation and plain strings after.
type Message struct {
	Summary string `json:"summary" yaml:"summary"`
	Detail  string `json:"detail" yaml:"detail"`
}

// Text builds a message whose summary and detail are the same string.
func Text(text string) Message {
	return Message{Summary: text, Detail: text}
}

// IsZero reports whether both fields are empty.
func (m Message) IsZero() bool {
	return m.Summary == "" && m.Detail == ""
}

// String returns the summary, falling back to the detail.
func (m Message) String() string {
	if m.Summary != "" {
		return m.Summary
	}
	return m.Detail
}

// Values maps placeholder indexes ("0", "1", ...) to substitution values.
type Values map[string]any

// Indexed builds Values from positional arguments.
func Indexed(args ...any) Values {
	values := make(Values, len(args))
	for idx, arg := range args {
		values[strconv.Itoa(idx)] = arg
	}
	return values
}

// GetMessage interpolates detail and summary independently and returns a new
// Message. The input is left untouched.
func GetMessage(m Message, values Values) Message {
	return Message{
		Summary: Interpolate(m.Summary, values),
		Detail:  Interpolate(m.Detail, values),
	}
}

// Interpolate replaces every `{n}` placeholder in template with the display
// form of values["n"]. Missing keys resolve to the empty string. Substituted
// text is never scanned again, so a value containing `{0}` is emitted as is.
func Interpolate(template string, values Values) string {
	if template == "" {
		return ""
	}
	matches := placeholderPattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, match := range matches {
		b.WriteString(template[last:match[0]])
		key := template[match[2]:match[3]]
		if value, ok := values[key]; ok {
			b.WriteString(Display(value))
		}
		last = match[1]
	}
	b.WriteString(template[last:])
	return b.String()
}

// Display converts a substitution value into the text shown to users. Nil
// values render as the empty string and floats never use exponent notation.
func Display(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case *float64:
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	case *int:
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
