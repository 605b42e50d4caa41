package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(map[string]string{})
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	want := Config{
		LogLevel:         "info",
		LogFormat:        "text",
		EventNamespace:   "formcheck",
		SanitizeMessages: false,
		ReportFormat:     "text",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(map[string]string{
		"FORMCHECK_LOG_LEVEL":         " DEBUG ",
		"FORMCHECK_LOG_FORMAT":        "json",
		"FORMCHECK_EVENT_NAMESPACE":   "signup",
		"FORMCHECK_SANITIZE_MESSAGES": "true",
		"FORMCHECK_REPORT_FORMAT":     "JSON",
		"LOG_LEVEL":                   "error",
	})
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	want := Config{
		LogLevel:         "debug",
		LogFormat:        "json",
		EventNamespace:   "signup",
		SanitizeMessages: true,
		ReportFormat:     "json",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWith_InvalidValues(t *testing.T) {
	_, err := LoadWith(map[string]string{
		"FORMCHECK_LOG_LEVEL":       "loud",
		"FORMCHECK_LOG_FORMAT":      "xml",
		"FORMCHECK_REPORT_FORMAT":   "html",
		"FORMCHECK_EVENT_NAMESPACE": "two words",
	})
	for _, sentinel := range []error{ErrInvalidLogLevel, ErrInvalidLogFormat, ErrInvalidReportFormat, ErrInvalidNamespace} {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected %v in %v", sentinel, err)
		}
	}
}

func TestLoadWith_BadBool(t *testing.T) {
	if _, err := LoadWith(map[string]string{"FORMCHECK_SANITIZE_MESSAGES": "maybe"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
