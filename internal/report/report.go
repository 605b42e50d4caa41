package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formcheck/pkg/chain"
	"github.com/goliatone/go-formcheck/pkg/message"
	"github.com/goliatone/go-formcheck/pkg/rules"
)

//go:embed templates/*.tpl
var templateFS embed.FS

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Field is the report line of one field.
type Field struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Valid   bool   `json:"valid"`
	Value   string `json:"value,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Summary string `json:"summary,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Report summarises a form validation run.
type Report struct {
	Form   string  `json:"form"`
	Valid  bool    `json:"valid"`
	Passed int     `json:"passed"`
	Total  int     `json:"total"`
	Fields []Field `json:"fields"`
}

// Build turns the per-field outcomes of form into a Report.
func Build(form rules.Form, results []chain.FieldOutcome) Report {
	r := Report{Form: form.ID, Valid: true, Total: len(results), Fields: make([]Field, 0, len(results))}
	for _, res := range results {
		label := res.FieldID
		if rule, ok := form.Field(res.FieldID); ok {
			label = rule.DisplayLabel()
		}
		field := Field{
			ID:    res.FieldID,
			Label: label,
			Valid: res.Outcome.Valid,
			Value: message.Display(res.Outcome.Value),
		}
		if res.Outcome.Valid {
			r.Passed++
		} else {
			r.Valid = false
			field.Stage = res.Outcome.Stage
			field.Summary = res.Outcome.Message.Summary
			field.Detail = res.Outcome.Message.Detail
		}
		r.Fields = append(r.Fields, field)
	}
	return r
}

var (
	setOnce sync.Once
	set     *pongo2.TemplateSet
)

func templates() *pongo2.TemplateSet {
	setOnce.Do(func() {
		set = pongo2.NewSet("formcheck-report", pongo2.NewFSLoader(templateFS))
	})
	return set
}

// Write encodes r to w in the requested format.
func Write(w io.Writer, format Format, r Report) error {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		return nil
	case FormatText, "":
		return writeText(w, r)
	default:
		return fmt.Errorf("report: unsupported format %q", format)
	}
}

func writeText(w io.Writer, r Report) error {
	tpl, err := templates().FromFile("templates/report.txt.tpl")
	if err != nil {
		return fmt.Errorf("report: load template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(pongo2.Context{"report": r}, &buf); err != nil {
		return fmt.Errorf("report: render text: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
