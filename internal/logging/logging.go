package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogctx "github.com/veqryn/slog-context"
)

// Format represents logger output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*options)

type options struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithLevelName sets the level from its name; unknown names keep info.
func WithLevelName(name string) Option {
	return func(o *options) { o.level = ParseLevel(name) }
}

// WithFormat sets output format. Unknown formats fall back to text.
func WithFormat(f Format) Option {
	return func(o *options) {
		switch Format(strings.ToLower(string(f))) {
		case FormatJSON:
			o.format = FormatJSON
		default:
			o.format = FormatText
		}
	}
}

// WithOutput sets the destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New builds a logger whose handler also emits attributes stored in the
// context with slogctx.With and slogctx.Prepend.
func New(opts ...Option) *slog.Logger {
	o := &options{level: slog.LevelInfo, format: FormatText, output: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}
	var base slog.Handler
	if o.format == FormatJSON {
		base = slog.NewJSONHandler(o.output, handlerOpts)
	} else {
		base = slog.NewTextHandler(o.output, handlerOpts)
	}
	if len(o.attrs) > 0 {
		base = base.WithAttrs(o.attrs)
	}
	return slog.New(slogctx.NewHandler(base, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
