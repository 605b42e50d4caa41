package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/goliatone/go-formcheck/internal/report"
	"github.com/goliatone/go-formcheck/pkg/events"
	"github.com/goliatone/go-formcheck/pkg/message"
)

var (
	validateRules  string
	validatePage   string
	validateForm   string
	validateFormat string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a page snapshot against a form's rules",
	Long: `Runs every field's converter and validators against the values in a
page snapshot, dispatches a message for each failure and prints a report.
Exits with status 1 when any field fails.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateRules, "rules", "", "rule file or directory")
	validateCmd.Flags().StringVar(&validatePage, "page", "", "page snapshot (YAML or JSON)")
	validateCmd.Flags().StringVar(&validateForm, "form", "", "form id (optional when the rules define one form)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "", "report format: text or json (env FORMCHECK_REPORT_FORMAT)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	form, err := loadForm(validateRules, validateForm)
	if err != nil {
		return err
	}
	p, err := loadPage(validatePage)
	if err != nil {
		return err
	}

	checker := newChecker(p)
	logDispatched := func(e events.Event[*message.Message]) {
		if e.Payload != nil {
			slogctx.Debug(ctx, "message dispatched", "field", e.Scope, "summary", e.Payload.Summary)
		}
	}
	for _, field := range form.Fields {
		if _, err := checker.Subscribe(field.ID, logDispatched); err != nil {
			return err
		}
	}

	results := checker.RunForm(ctx, form)
	for _, res := range results {
		if !res.Outcome.Valid {
			checker.Dispatcher().Send(res.FieldID, res.Outcome.Message)
		}
	}

	format := validateFormat
	if format == "" {
		format = cfg.ReportFormat
	}
	r := report.Build(form, results)
	if err := report.Write(cmd.OutOrStdout(), report.Format(format), r); err != nil {
		return err
	}
	slogctx.Info(ctx, "form validated", "form", form.ID, "valid", r.Valid, "passed", r.Passed, "total", r.Total)
	if !r.Valid {
		return fmt.Errorf("%w: %s", ErrInvalid, form.ID)
	}
	return nil
}
