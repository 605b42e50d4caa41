package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable name.
const Prefix = "FORMCHECK_"

var (
	// ErrInvalidLogLevel reports an unknown log level.
	ErrInvalidLogLevel = errors.New("config: invalid log level")
	// ErrInvalidLogFormat reports an unknown log format.
	ErrInvalidLogFormat = errors.New("config: invalid log format")
	// ErrInvalidReportFormat reports an unknown report format.
	ErrInvalidReportFormat = errors.New("config: invalid report format")
	// ErrInvalidNamespace reports an event namespace containing whitespace.
	ErrInvalidNamespace = errors.New("config: invalid event namespace")
)

// Config is the process configuration, read from FORMCHECK_* variables.
type Config struct {
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"text"`
	EventNamespace   string `env:"EVENT_NAMESPACE" envDefault:"formcheck"`
	SanitizeMessages bool   `env:"SANITIZE_MESSAGES" envDefault:"false"`
	ReportFormat     string `env:"REPORT_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with an explicit environment, used by tests. A nil map
// reads the process environment.
func LoadWith(environment map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: Prefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalise() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.ReportFormat = strings.ToLower(strings.TrimSpace(c.ReportFormat))
	c.EventNamespace = strings.TrimSpace(c.EventNamespace)
}

// Validate checks every setting and joins the failures.
func (c Config) Validate() error {
	var errs []error
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat))
	}
	switch c.ReportFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidReportFormat, c.ReportFormat))
	}
	if strings.ContainsAny(c.EventNamespace, " \t\n") {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidNamespace, c.EventNamespace))
	}
	return errors.Join(errs...)
}
