// Package validator builds schema validators for HTTP request and response
// data.
//
// Import path: github.com/schemaguard/schemaguard/validator
//
// A Validator is built once per declared route parameter, body, or response
// at route-registration time, and then invoked once per incoming value per
// request. Validators are immutable after Build and safe for unsynchronized
// concurrent use: the compiled checker and the closed-over configuration are
// never mutated. Validation itself is pure computation bounded by input
// size; there is no blocking I/O, no cancellation, and no shared mutable
// state.
//
// # Building
//
//	s, _ := schema.FromJSON([]byte(`{
//		"type": "object",
//		"properties": {"q": {"type": "number"}},
//		"required": ["q"]
//	}`))
//
//	v, err := validator.Build(validator.Config{
//		Kind:        validator.KindQuery,
//		Name:        "SearchQuery",
//		Schema:      s,
//		CoerceTypes: true,
//	})
//
// Build fails with an error matching [sgerrors.ErrConfig] when the kind is
// absent, the name is empty, or the schema document is rejected by the
// checker compiler. These are programming mistakes: they surface immediately
// and abort route registration.
//
// Param and query validators default to the generic string schema
// {"type":"string"} when no schema is given; body and response validators
// require one.
//
// # Validating
//
//	out, err := v.Validate(map[string]any{"q": "3.5"})
//	// out == map[string]any{"q": 3.5}
//
// When CoerceTypes or StripUnknownProps is set, Validate first determines
// the known-property-type map for the schema (for union schemas, the union
// of all anyOf/allOf branch properties, later branches winning ties) and
// rebuilds each input record accordingly: unknown properties are dropped
// under StripUnknownProps, known properties are coerced under CoerceTypes.
// Coercion is best-effort and never fails; the compiled checker has the
// final say. Input may also be a []any batch, transformed per element and
// reassembled in its original shape.
//
// Failures are *[sgerrors.ValidationFailure] values carrying the validator
// kind and a reduced error list: per-branch noise under oneOf/anyOf
// mismatches is suppressed so clients see at most one entry per union
// mismatch.
//
// # Shared Compiler
//
// Checker compilation settings live in a [Compiler]. Construct one at
// process start and share it across Build calls:
//
//	compiler := validator.NewCompiler()
//	v1, _ := validator.Build(cfg1, validator.WithCompiler(compiler))
//	v2, _ := validator.Build(cfg2, validator.WithCompiler(compiler))
package validator
