package rules

import (
	"context"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/oops"

	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/validate"
)

// DeriveOptions configures FromOpenAPI.
type DeriveOptions struct {
	// OperationID limits derivation to one operation. Empty derives every
	// operation with a request body.
	OperationID string
	// FieldSeparator joins the form id and the property name into the field
	// id. Defaults to ":".
	FieldSeparator string
	// ResolveReferences allows external $refs and validates the document.
	ResolveReferences bool
}

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// FromOpenAPI derives one form per operation from the request body schema of
// an OpenAPI 3 document. Each top-level property becomes a field: numeric and
// boolean types get a converter, required properties get a required
// validator, string bounds become length/regex and numeric bounds become range.
func FromOpenAPI(ctx context.Context, data []byte, opts DeriveOptions) ([]Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, oops.In(ErrDomainRules).WithContext(ctx).Errorf("openapi document is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.ResolveReferences,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, oops.In(ErrDomainRules).WithContext(ctx).Wrapf(err, "loading openapi document")
	}
	if opts.ResolveReferences {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, oops.In(ErrDomainRules).WithContext(ctx).Wrapf(err, "validating openapi document")
		}
	}

	sep := opts.FieldSeparator
	if sep == "" {
		sep = ":"
	}

	var forms []Form
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				id := operationID(method, path, op)
				if opts.OperationID != "" && id != opts.OperationID {
					continue
				}
				schema := requestSchema(op)
				if schema == nil {
					continue
				}
				forms = append(forms, formFromSchema(id, sep, schema))
			}
		}
	}

	if opts.OperationID != "" && len(forms) == 0 {
		return nil, oops.In(ErrDomainRules).
			WithContext(ctx).
			With("operation", opts.OperationID).
			Errorf("operation not found or has no request body")
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID < forms[j].ID })
	return forms, nil
}

func operationID(method, path string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func formFromSchema(id, sep string, schema *openapi3.Schema) Form {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	form := Form{ID: id, Source: "openapi", Fields: make([]FieldRules, 0, len(names))}
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		form.Fields = append(form.Fields, fieldFromSchema(id+sep+name, name, ref.Value, required[name]))
	}
	return form
}

func fieldFromSchema(fieldID, name string, prop *openapi3.Schema, required bool) FieldRules {
	field := FieldRules{ID: fieldID, Label: prop.Title}
	if field.Label == "" {
		field.Label = name
	}

	kind := primaryType(prop.Type)
	switch kind {
	case openapi3.TypeInteger:
		field.Converter = &convert.Spec{Name: convert.NameInteger}
	case openapi3.TypeNumber:
		field.Converter = &convert.Spec{Name: convert.NameNumber}
	case openapi3.TypeBoolean:
		field.Converter = &convert.Spec{Name: convert.NameBoolean}
	}

	if required {
		field.Validators = append(field.Validators, validate.Spec{Type: validate.TypeRequired})
	}

	switch kind {
	case openapi3.TypeInteger, openapi3.TypeNumber:
		if prop.Min != nil || prop.Max != nil {
			field.Validators = append(field.Validators, validate.Spec{
				Type:   validate.TypeRange,
				Params: validate.Params{Minimum: copyFloat(prop.Min), Maximum: copyFloat(prop.Max)},
			})
		}
	case openapi3.TypeString, "":
		if prop.MinLength != 0 || prop.MaxLength != nil {
			params := validate.Params{}
			if prop.MinLength != 0 {
				params.Minimum = validate.Bound(float64(prop.MinLength))
			}
			if prop.MaxLength != nil {
				params.Maximum = validate.Bound(float64(*prop.MaxLength))
			}
			field.Validators = append(field.Validators, validate.Spec{Type: validate.TypeLength, Params: params})
		}
		if prop.Pattern != "" {
			field.Validators = append(field.Validators, validate.Spec{
				Type:   validate.TypeRegex,
				// Schema patterns are unanchored.
				Params: validate.Params{Pattern: prop.Pattern, Match: validate.MatchSearch},
			})
		}
	}
	return field
}

func primaryType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != openapi3.TypeNull {
			return t
		}
	}
	return ""
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return validate.Bound(*v)
}
