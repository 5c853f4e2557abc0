package sgerrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ConfigError{
			Field:   "Name",
			Value:   "",
			Message: "must not be empty",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "configuration error for Name: must not be empty: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ConfigError{}
		if err.Error() != "configuration error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message omits empty value", func(t *testing.T) {
		err := &ConfigError{Field: "Name", Value: "", Message: "must not be empty"}
		if err.Error() != "configuration error for Name: must not be empty" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with value", func(t *testing.T) {
		err := &ConfigError{Field: "Kind", Value: "cookie", Message: "unknown kind"}
		if err.Error() != "configuration error for Kind (value: cookie): unknown kind" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ConfigError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		err := &ConfigError{Message: "test"}
		if !errors.Is(err, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})

	t.Run("Is does not match other sentinels", func(t *testing.T) {
		err := &ConfigError{Message: "test"}
		if errors.Is(err, ErrSchema) || errors.Is(err, ErrValidation) {
			t.Error("ConfigError should not match ErrSchema or ErrValidation")
		}
	})
}

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("compile failed")
		err := &SchemaError{
			Source:  "user.schema.json",
			Message: "not a valid schema document",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "schema error in user.schema.json: not a valid schema document: compile failed" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &SchemaError{}
		if err.Error() != "schema error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrSchema and ErrConfig", func(t *testing.T) {
		err := &SchemaError{Message: "test"}
		if !errors.Is(err, ErrSchema) {
			t.Error("SchemaError should match ErrSchema")
		}
		if !errors.Is(err, ErrConfig) {
			t.Error("SchemaError should match ErrConfig (bad schema is a config mistake)")
		}
	})

	t.Run("Is does not match ErrValidation", func(t *testing.T) {
		err := &SchemaError{Message: "test"}
		if errors.Is(err, ErrValidation) {
			t.Error("SchemaError should not match ErrValidation")
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &SchemaError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})
}

func TestValidationFailure(t *testing.T) {
	t.Run("Error message includes kind and count", func(t *testing.T) {
		err := &ValidationFailure{
			Kind: "body",
			Errors: []ErrorEntry{
				{InstancePath: "/age", Keyword: "invalid_type", Message: "expected integer"},
				{InstancePath: "", Keyword: "required", Message: "name is required"},
			},
		}
		if err.Error() != "Validation error (body): 2 errors" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message singular count", func(t *testing.T) {
		err := &ValidationFailure{
			Kind:   "query",
			Errors: []ErrorEntry{{Keyword: "required"}},
		}
		if err.Error() != "Validation error (query): 1 error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Message matches wire contract", func(t *testing.T) {
		for _, kind := range []string{"body", "param", "query", "response"} {
			err := &ValidationFailure{Kind: kind}
			want := fmt.Sprintf("Validation error (%s)", kind)
			if err.Message() != want {
				t.Errorf("Message() = %q, want %q", err.Message(), want)
			}
		}
	})

	t.Run("StatusCode is 400", func(t *testing.T) {
		err := &ValidationFailure{Kind: "body"}
		if err.StatusCode() != 400 {
			t.Errorf("StatusCode() = %d, want 400", err.StatusCode())
		}
	})

	t.Run("Is matches ErrValidation only", func(t *testing.T) {
		err := &ValidationFailure{Kind: "body"}
		if !errors.Is(err, ErrValidation) {
			t.Error("ValidationFailure should match ErrValidation")
		}
		if errors.Is(err, ErrConfig) {
			t.Error("ValidationFailure should not match ErrConfig")
		}
	})
}

func TestValidationFailureResponseBody(t *testing.T) {
	t.Run("wire shape is bit-exact", func(t *testing.T) {
		failure := &ValidationFailure{
			Kind: "body",
			Errors: []ErrorEntry{
				{
					InstancePath: "/q",
					Keyword:      "required",
					Message:      "q is required",
					Params:       map[string]any{"property": "q"},
				},
			},
		}

		body, err := failure.ResponseBody()
		if err != nil {
			t.Fatalf("ResponseBody() error: %v", err)
		}

		want := `{"statusCode":400,"message":"Validation error (body)","errors":[{"instancePath":"/q","keyword":"required","message":"q is required","params":{"property":"q"}}]}`
		if string(body) != want {
			t.Errorf("ResponseBody() = %s\nwant %s", body, want)
		}
	})

	t.Run("nil errors render as empty array", func(t *testing.T) {
		failure := &ValidationFailure{Kind: "response"}

		body, err := failure.ResponseBody()
		if err != nil {
			t.Fatalf("ResponseBody() error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Fatalf("ResponseBody() produced invalid JSON: %v", err)
		}
		if arr, ok := decoded["errors"].([]any); !ok || len(arr) != 0 {
			t.Errorf("errors should be an empty array, got %v", decoded["errors"])
		}
	})
}
