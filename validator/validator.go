package validator

import (
	"errors"
	"fmt"

	playground "github.com/go-playground/validator/v10"

	"github.com/schemaguard/schemaguard/schema"
	"github.com/schemaguard/schemaguard/sgerrors"
)

// Kind determines a validator's defaulting rules and the label used in
// client-facing error messages.
type Kind string

// Validator kinds.
const (
	// KindBody validates request bodies. A schema is required.
	KindBody Kind = "body"

	// KindParam validates path parameters. Defaults to a string schema.
	KindParam Kind = "param"

	// KindQuery validates query parameters. Defaults to a string schema.
	KindQuery Kind = "query"

	// KindResponse validates response payloads. A schema is required.
	KindResponse Kind = "response"
)

// Config describes how to build one Validator.
type Config struct {
	// Kind determines defaulting rules. Required.
	Kind Kind `validate:"required,oneof=body param query response"`

	// Name is a human-readable identifier used in error messages and
	// documentation. Required.
	Name string `validate:"required"`

	// Schema is the type description to validate against. Required for
	// body and response validators; param and query validators default
	// to the generic string schema when nil.
	Schema *schema.Schema

	// CoerceTypes attempts best-effort type coercion on known properties
	// before checking (e.g. "42" -> 42 for an integer property).
	CoerceTypes bool

	// StripUnknownProps drops properties not declared in the schema.
	StripUnknownProps bool

	// Required controls whether nil input is an error. When false, nil
	// input short-circuits to success without invoking the checker.
	Required bool
}

// configCheck validates Config structs via their struct tags. The instance
// is read-only after construction and safe for concurrent use.
var configCheck = playground.New()

// Validator validates data against a schema. It is immutable after Build
// and safe for unsynchronized concurrent use across requests: the compiled
// checker and the closed-over configuration are never mutated.
type Validator struct {
	name      string
	kind      Kind
	schema    *schema.Schema
	checker   *Checker
	propTypes map[string]string
	elemType  string
	logger    Logger

	coerceTypes  bool
	stripUnknown bool
	required     bool
}

// Build constructs a Validator from cfg. It is intended to run once per
// declared route parameter, body, or response at route-registration time.
//
// Build fails with an error matching [sgerrors.ErrConfig] when the kind is
// absent or unknown, the name is empty, or the schema document cannot be
// compiled into a checker. Compilation failure is fatal at startup, never
// per request.
func Build(cfg Config, opts ...Option) (*Validator, error) {
	bo, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	if err := configCheck.Struct(cfg); err != nil {
		return nil, configError(err)
	}

	s := cfg.Schema
	if s == nil {
		switch cfg.Kind {
		case KindParam, KindQuery:
			s = schema.String()
		default:
			return nil, &sgerrors.ConfigError{
				Field:   "Schema",
				Message: fmt.Sprintf("a schema is required for %s validators", cfg.Kind),
			}
		}
	}

	checker, err := bo.compiler.Compile(s)
	if err != nil {
		return nil, err
	}

	// Coercion and stripping act per element: for an array schema with an
	// object items sub-schema, the element schema is the items schema.
	elem := s
	if s.Type() == "array" {
		if items := s.Items(); items != nil {
			elem = items
		}
	}

	v := &Validator{
		name:         cfg.Name,
		kind:         cfg.Kind,
		schema:       s,
		checker:      checker,
		propTypes:    elem.PropertyTypes(),
		elemType:     elem.Type(),
		logger:       bo.logger,
		coerceTypes:  cfg.CoerceTypes,
		stripUnknown: cfg.StripUnknownProps,
		required:     cfg.Required,
	}

	v.logger.Debug("validator built",
		"name", v.name,
		"kind", string(v.kind),
		"coerce", v.coerceTypes,
		"strip", v.stripUnknown,
		"required", v.required)

	return v, nil
}

// configError translates a struct-tag validation failure into a ConfigError
// for the first offending field.
func configError(err error) error {
	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "is invalid"
		switch fe.Tag() {
		case "required":
			msg = "must not be empty"
		case "oneof":
			msg = "must be one of body, param, query, response"
		}
		val := fe.Value()
		if s, ok := val.(Kind); ok && s == "" {
			val = nil
		}
		if s, ok := val.(string); ok && s == "" {
			val = nil
		}
		return &sgerrors.ConfigError{
			Field:   fe.Field(),
			Value:   val,
			Message: msg,
		}
	}
	return &sgerrors.ConfigError{Message: "invalid validator config", Cause: err}
}

// Name returns the human-readable identifier given at Build time.
func (v *Validator) Name() string {
	return v.name
}

// Kind returns what this validator checks: body, param, query, or response.
func (v *Validator) Kind() Kind {
	return v.kind
}

// Schema returns the schema the validator was built with.
func (v *Validator) Schema() *schema.Schema {
	return v.schema
}

// Validate coerces, strips, and checks input against the schema.
//
// Input may be a single value or a []any batch; batches are transformed
// per element and reassembled in their original shape. On success the
// (possibly transformed) data is returned. On schema non-compliance the
// error is a *sgerrors.ValidationFailure carrying the validator kind and
// the reduced error list. Any other error is an internal checker failure.
//
// Nil input with Required=false returns (nil, nil) without invoking the
// checker.
func (v *Validator) Validate(input any) (any, error) {
	if input == nil && !v.required {
		return nil, nil
	}

	data := input
	if v.coerceTypes || v.stripUnknown {
		data = v.transform(input)
	}

	rawErrors, err := v.checker.Check(data)
	if err != nil {
		return nil, fmt.Errorf("validator %q: checking input: %w", v.name, err)
	}
	if len(rawErrors) > 0 {
		failure := report(v.kind, rawErrors)
		v.logger.Debug("validation failed",
			"name", v.name,
			"kind", string(v.kind),
			"errors", len(failure.Errors))
		return nil, failure
	}

	return data, nil
}

// transform applies coercion and stripping to the input, preserving its
// single-vs-batch shape. The input is never mutated; records are rebuilt
// into fresh maps.
func (v *Validator) transform(input any) any {
	batch, isBatch := input.([]any)
	if !isBatch {
		batch = []any{input}
	}

	out := make([]any, len(batch))
	for i, element := range batch {
		out[i] = v.transformElement(element)
	}

	if isBatch {
		return out
	}
	return out[0]
}

// transformElement handles one element of the (possibly singleton) batch.
func (v *Validator) transformElement(element any) any {
	record, ok := element.(map[string]any)
	if !ok {
		// Whole-value coercion applies only when the element schema
		// declares a single scalar type.
		if v.coerceTypes && v.elemType != "" {
			return coerceValue(v.elemType, element)
		}
		return element
	}

	out := make(map[string]any, len(record))
	for name, value := range record {
		declared, known := v.propTypes[name]
		if !known {
			if v.stripUnknown {
				continue
			}
			out[name] = value
			continue
		}
		if v.coerceTypes {
			out[name] = coerceValue(declared, value)
		} else {
			out[name] = value
		}
	}
	return out
}
