package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/internal/config"
	"github.com/goliatone/go-formcheck/internal/logging"
	"github.com/goliatone/go-formcheck/pkg/page"
	"github.com/goliatone/go-formcheck/pkg/rules"
)

// ErrInvalid is returned when at least one field failed validation. It is not
// printed; the report already says what failed.
var ErrInvalid = errors.New("form is invalid")

var (
	logLevel  string
	logFormat string
	namespace string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "formcheck",
	Short: "Client-side style form validation from declarative rules",
	Long: `formcheck validates form fields with converter and validator chains
declared in rule files, and reports failures as messages.

Commands:
  validate - validate a page snapshot against a form's rules
  prompt   - fill a form interactively, re-asking until each field passes
  derive   - derive rule files from an OpenAPI document`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and prints any error other than ErrInvalid.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrInvalid) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env FORMCHECK_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (env FORMCHECK_LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&namespace, "namespace", "", "message event namespace (env FORMCHECK_EVENT_NAMESPACE)")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		loaded.LogFormat = logFormat
	}
	if cmd.Flags().Changed("namespace") {
		loaded.EventNamespace = namespace
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger := logging.New(
		logging.WithLevelName(cfg.LogLevel),
		logging.WithFormat(logging.Format(cfg.LogFormat)),
		logging.WithOutput(cmd.ErrOrStderr()),
	)
	cmd.SetContext(slogctx.NewCtx(cmd.Context(), logger))
	return nil
}

func newChecker(p *page.Page) *formcheck.Checker {
	return formcheck.New(p,
		formcheck.WithNamespace(cfg.EventNamespace),
		formcheck.WithSanitizedMessages(cfg.SanitizeMessages),
	)
}

// loadForm reads rules from a file or a directory and picks formID. An empty
// formID is accepted when the rules hold exactly one form.
func loadForm(rulesPath, formID string) (rules.Form, error) {
	if strings.TrimSpace(rulesPath) == "" {
		return rules.Form{}, fmt.Errorf("--rules is required")
	}
	info, err := os.Stat(rulesPath)
	if err != nil {
		return rules.Form{}, err
	}

	var store *rules.Store
	if info.IsDir() {
		store, err = rules.LoadFS(os.DirFS(rulesPath))
	} else {
		store, err = rules.LoadFile(os.DirFS(filepath.Dir(rulesPath)), filepath.Base(rulesPath))
	}
	if err != nil {
		return rules.Form{}, err
	}

	if formID == "" {
		ids := store.IDs()
		if len(ids) != 1 {
			return rules.Form{}, fmt.Errorf("--form is required when the rules define %d forms (%s)", len(ids), strings.Join(ids, ", "))
		}
		formID = ids[0]
	}
	form, ok := store.Form(formID)
	if !ok {
		return rules.Form{}, fmt.Errorf("form %q not found in %s", formID, rulesPath)
	}
	return form, nil
}

// loadPage reads a page snapshot. An empty path yields an empty page.
func loadPage(pagePath string) (*page.Page, error) {
	if strings.TrimSpace(pagePath) == "" {
		return page.New()
	}
	return page.Load(os.DirFS(filepath.Dir(pagePath)), filepath.Base(pagePath))
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
