package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/goliatone/go-formcheck/pkg/rules"
)

var (
	deriveOperation   string
	deriveSeparator   string
	deriveResolveRefs bool
	deriveOutput      string
)

var deriveCmd = &cobra.Command{
	Use:   "derive <openapi-file>",
	Short: "Derive rule files from an OpenAPI document",
	Long: `Builds one form per operation from the request body schema. Numeric and
boolean properties get a converter, required properties a required validator,
string bounds become length/regex and numeric bounds become range.`,
	Args: cobra.ExactArgs(1),
	RunE: runDerive,
}

func init() {
	deriveCmd.Flags().StringVar(&deriveOperation, "operation", "", "derive only this operation id")
	deriveCmd.Flags().StringVar(&deriveSeparator, "separator", ":", "separator between form id and property name")
	deriveCmd.Flags().BoolVar(&deriveResolveRefs, "resolve-refs", false, "resolve external $refs and validate the document")
	deriveCmd.Flags().StringVarP(&deriveOutput, "output", "o", "", "output file (stdout if empty)")
	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	forms, err := rules.FromOpenAPI(ctx, data, rules.DeriveOptions{
		OperationID:       deriveOperation,
		FieldSeparator:    deriveSeparator,
		ResolveReferences: deriveResolveRefs,
	})
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		return fmt.Errorf("no operation with a request body found in %s", args[0])
	}

	out, err := rules.MarshalYAML(forms)
	if err != nil {
		return err
	}
	slogctx.Info(ctx, "rules derived", "source", args[0], "forms", len(forms))

	if deriveOutput != "" {
		if err := os.WriteFile(deriveOutput, out, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rules written to %s\n", deriveOutput)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
