package sgerrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrConfig indicates an invalid validator configuration.
	ErrConfig = errors.New("configuration error")

	// ErrSchema indicates a schema document failed to parse or compile.
	ErrSchema = errors.New("schema error")

	// ErrValidation indicates input data failed schema compliance.
	ErrValidation = errors.New("validation error")
)

// ConfigError represents an invalid validator configuration.
// This includes a missing kind, an empty name, and conflicting options.
type ConfigError struct {
	// Field is the name of the problematic configuration field
	Field string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Field != "" {
		msg += " for " + e.Field
	}
	if e.Value != nil && e.Value != "" {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// SchemaError represents a schema document that could not be parsed or
// compiled into a checker.
type SchemaError struct {
	// Source identifies where the schema came from (file path, "inline", ...)
	Source string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// A malformed schema is a configuration mistake, so SchemaError matches
// both ErrSchema and ErrConfig.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema || target == ErrConfig
}

// ErrorEntry is a single structured validation error in the reduced,
// client-facing error list. Field names match the documented wire shape.
type ErrorEntry struct {
	// InstancePath is a JSON pointer into the validated data identifying
	// where the error occurred ("" for the root value).
	InstancePath string `json:"instancePath"`
	// Keyword is the schema keyword that failed (e.g. "required", "oneOf").
	Keyword string `json:"keyword"`
	// Message is a human-readable description of the failure.
	Message string `json:"message"`
	// Params carries keyword-specific details (e.g. the missing property name).
	Params map[string]any `json:"params"`
}

// ValidationFailure represents input data that failed schema compliance.
// It carries the validator kind and the reduced, ordered error list, and
// renders directly into the documented HTTP 400 wire shape.
type ValidationFailure struct {
	// Kind identifies what was being validated: "body", "param", "query",
	// or "response".
	Kind string
	// Errors is the ordered, de-duplicated list of validation errors.
	Errors []ErrorEntry
}

// Error returns a human-readable error message.
func (e *ValidationFailure) Error() string {
	msg := e.Message()
	if n := len(e.Errors); n == 1 {
		msg += ": 1 error"
	} else if n > 1 {
		msg += fmt.Sprintf(": %d errors", n)
	}
	return msg
}

// Message returns the client-facing message, e.g. "Validation error (body)".
func (e *ValidationFailure) Message() string {
	return fmt.Sprintf("Validation error (%s)", e.Kind)
}

// StatusCode returns the HTTP status classification of the failure.
// Schema validation failures are always client-input errors.
func (e *ValidationFailure) StatusCode() int {
	return 400
}

// Is reports whether target matches this error type.
func (e *ValidationFailure) Is(target error) bool {
	return target == ErrValidation
}

// wireBody is the serialized form of a ValidationFailure.
type wireBody struct {
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Errors     []ErrorEntry `json:"errors"`
}

// ResponseBody renders the failure into the documented wire shape:
//
//	{"statusCode":400,"message":"Validation error (<kind>)","errors":[...]}
//
// The errors array is always present, even when empty.
func (e *ValidationFailure) ResponseBody() ([]byte, error) {
	entries := e.Errors
	if entries == nil {
		entries = []ErrorEntry{}
	}
	return json.Marshal(wireBody{
		StatusCode: e.StatusCode(),
		Message:    e.Message(),
		Errors:     entries,
	})
}
