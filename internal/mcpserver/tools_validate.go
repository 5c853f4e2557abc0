package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/schemaguard/schemaguard/sgerrors"
	"github.com/schemaguard/schemaguard/validator"
)

type validateInput struct {
	Schema   schemaInput `json:"schema"             jsonschema:"The schema document to validate against"`
	Data     dataInput   `json:"data"               jsonschema:"The data payload to validate"`
	Kind     string      `json:"kind,omitempty"     jsonschema:"Validator kind: body, param, query, or response (default body)"`
	Coerce   *bool       `json:"coerce,omitempty"   jsonschema:"Coerce string inputs toward declared property types"`
	Strip    *bool       `json:"strip,omitempty"    jsonschema:"Strip properties not declared in the schema"`
	Required *bool       `json:"required,omitempty" jsonschema:"Treat null data as an error (default true)"`
}

type validateIssue struct {
	InstancePath string         `json:"instance_path"`
	Keyword      string         `json:"keyword"`
	Message      string         `json:"message"`
	Params       map[string]any `json:"params,omitempty"`
}

type validateOutput struct {
	Valid      bool            `json:"valid"`
	Kind       string          `json:"kind"`
	ErrorCount int             `json:"error_count"`
	Data       any             `json:"data,omitempty"`
	Errors     []validateIssue `json:"errors,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	coerce := cfg.CoerceDefault
	if input.Coerce != nil {
		coerce = *input.Coerce
	}
	strip := cfg.StripDefault
	if input.Strip != nil {
		strip = *input.Strip
	}
	required := true
	if input.Required != nil {
		required = *input.Required
	}
	kind := validator.Kind(input.Kind)
	if input.Kind == "" {
		kind = validator.KindBody
	}

	s, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	data, err := input.Data.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	v, err := buildValidator(s, validator.Config{
		Kind:              kind,
		Name:              "mcp",
		Schema:            s,
		CoerceTypes:       coerce,
		StripUnknownProps: strip,
		Required:          required,
	})
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	out, err := v.Validate(data)
	if err != nil {
		var failure *sgerrors.ValidationFailure
		if !errors.As(err, &failure) {
			return errResult(err), validateOutput{}, nil
		}
		output := validateOutput{
			Valid:      false,
			Kind:       string(kind),
			ErrorCount: len(failure.Errors),
			Errors:     make([]validateIssue, 0, len(failure.Errors)),
		}
		for _, e := range failure.Errors {
			output.Errors = append(output.Errors, validateIssue{
				InstancePath: e.InstancePath,
				Keyword:      e.Keyword,
				Message:      e.Message,
				Params:       e.Params,
			})
		}
		return nil, output, nil
	}

	return nil, validateOutput{
		Valid: true,
		Kind:  string(kind),
		Data:  out,
	}, nil
}
