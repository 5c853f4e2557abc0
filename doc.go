// Package schemaguard provides schema-driven validation of HTTP request and
// response data.
//
// schemaguard bridges JSON-schema-compatible type descriptions to a compiled
// checker, coercing and stripping incoming data according to the declared
// property types and reducing raw checker failures into a structured,
// non-redundant error report suitable for client-facing 400 responses.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - schema: load and inspect JSON-schema-compatible documents (JSON or YAML)
//   - validator: build immutable Validators that coerce, strip, and check data
//   - httpbind: bind validators to net/http and echo routes at registration time
//
// Supporting packages:
//
//   - sgerrors: structured error types usable with errors.Is and errors.As
//
// # Quick Start
//
// Build a validator once at startup and reuse it for every request:
//
//	import (
//		"github.com/schemaguard/schemaguard/schema"
//		"github.com/schemaguard/schemaguard/validator"
//	)
//
//	s, err := schema.FromJSON([]byte(`{
//		"type": "object",
//		"properties": {"age": {"type": "integer"}},
//		"required": ["age"]
//	}`))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	v, err := validator.Build(validator.Config{
//		Kind:        validator.KindBody,
//		Name:        "CreateUser",
//		Schema:      s,
//		CoerceTypes: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	out, err := v.Validate(map[string]any{"age": "42"})
//	// out == map[string]any{"age": int64(42)}
//
// Validation failures are *sgerrors.ValidationFailure values carrying the
// validator kind and an ordered, de-duplicated list of error entries. The
// failure renders directly into the documented wire shape:
//
//	{"statusCode":400,"message":"Validation error (body)","errors":[...]}
//
// # Command Line
//
// The schemaguard command validates data files against schema documents and
// can expose validation as an MCP tool:
//
//	schemaguard validate -schema user.schema.json -data payload.json -coerce
//	schemaguard mcp
package schemaguard
