package prompt

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/events"
	"github.com/goliatone/go-formcheck/pkg/message"
)

// ErrorPrefix starts every printed failure line.
const ErrorPrefix = "! "

// Printer returns a bus listener that prints delivered messages through the
// driver. Clears (nil payloads) print nothing.
func Printer(ctx context.Context, d Driver) events.Listener[*message.Message] {
	return func(e events.Event[*message.Message]) {
		if e.Payload == nil {
			return
		}
		_ = d.Info(ctx, FormatMessage(*e.Payload))
	}
}

// FormatMessage renders a message on one line: the summary, followed by the
// detail when it adds something.
func FormatMessage(m message.Message) string {
	line := m.String()
	if m.Detail != "" && m.Detail != line {
		line += " (" + m.Detail + ")"
	}
	return ErrorPrefix + line
}
