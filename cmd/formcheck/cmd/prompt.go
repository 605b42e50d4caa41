package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/internal/prompt"
	"github.com/goliatone/go-formcheck/pkg/message"
)

var (
	promptRules       string
	promptPage        string
	promptForm        string
	promptMaxAttempts int
	promptSave        string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill a form interactively",
	Long: `Asks for every field of a form. A rejected answer prints its message and
the field is asked again until it passes or the attempt limit is reached.`,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVar(&promptRules, "rules", "", "rule file or directory")
	promptCmd.Flags().StringVar(&promptPage, "page", "", "page snapshot providing labels, kinds and defaults")
	promptCmd.Flags().StringVar(&promptForm, "form", "", "form id (optional when the rules define one form)")
	promptCmd.Flags().IntVar(&promptMaxAttempts, "max-attempts", prompt.DefaultMaxAttempts, "attempts per field")
	promptCmd.Flags().StringVar(&promptSave, "save", "", "write the filled page snapshot to this file")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	form, err := loadForm(promptRules, promptForm)
	if err != nil {
		return err
	}
	p, err := loadPage(promptPage)
	if err != nil {
		return err
	}

	driver := prompt.NewSurveyDriver(cmd.OutOrStdout())
	checker := newChecker(p)
	if _, err := checker.Subscribe(formcheck.GlobalScope, prompt.Printer(ctx, driver)); err != nil {
		return err
	}

	session := prompt.NewSession(driver, p, checker.Chain(),
		prompt.WithMaxAttempts(promptMaxAttempts),
		prompt.WithMessenger(checker.Dispatcher()),
	)
	answers, err := session.Run(ctx, form)
	if errors.Is(err, prompt.ErrAborted) {
		slogctx.Info(ctx, "prompt aborted", "form", form.ID, "answered", len(answers))
		return err
	}
	if err != nil {
		return err
	}

	for _, answer := range answers {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", answer.FieldID, message.Display(answer.Value))
	}

	if promptSave != "" {
		data, err := p.Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(promptSave, data, 0o644); err != nil {
			return err
		}
		slogctx.Info(ctx, "page saved", "path", promptSave)
	}
	return nil
}
