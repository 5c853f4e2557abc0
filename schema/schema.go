// Package schema loads and inspects JSON-schema-compatible documents.
//
// A Schema carries the decoded document plus its canonical JSON encoding,
// regardless of whether it arrived as JSON, YAML, or an in-memory map.
// The validator package compiles Schemas into checkers; this package only
// answers structural questions (declared type, known property types, array
// element schema) that drive coercion and stripping.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/schemaguard/schemaguard/sgerrors"
)

// Schema is an opaque JSON-schema-compatible type description.
//
// A Schema is either an object document (the common case) or a bare boolean,
// which JSON Schema permits ("true" accepts everything, "false" nothing).
// Schemas are immutable after construction.
type Schema struct {
	// raw is the decoded document: map[string]any or bool
	raw any

	// canonical is the document re-encoded as JSON, regardless of the
	// source format. This is what gets handed to the checker compiler.
	canonical []byte

	// source identifies where the document came from, for error messages
	source string
}

// FromMap creates a Schema from an already-decoded document.
func FromMap(doc map[string]any) (*Schema, error) {
	return build(doc, "inline")
}

// FromJSON creates a Schema from a JSON document.
func FromJSON(data []byte) (*Schema, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &sgerrors.SchemaError{
			Source:  "inline",
			Message: "invalid JSON",
			Cause:   err,
		}
	}
	return build(raw, "inline")
}

// FromYAML creates a Schema from a YAML document.
func FromYAML(data []byte) (*Schema, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &sgerrors.SchemaError{
			Source:  "inline",
			Message: "invalid YAML",
			Cause:   err,
		}
	}
	return build(normalizeKeys(raw), "inline")
}

// FromFile creates a Schema from a file on disk. The format is chosen by
// extension (.json, .yaml, .yml); anything else is sniffed: documents
// starting with '{' or '[' parse as JSON, the rest as YAML.
func FromFile(path string, data []byte) (*Schema, error) {
	var (
		s   *Schema
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		s, err = FromJSON(data)
	case ".yaml", ".yml":
		s, err = FromYAML(data)
	default:
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			s, err = FromJSON(data)
		} else {
			s, err = FromYAML(data)
		}
	}
	if err != nil {
		var schemaErr *sgerrors.SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.Source = path
		}
		return nil, err
	}
	s.source = path
	return s, nil
}

// String returns the generic string schema {"type":"string"}, the default
// for param and query validators without an explicit schema.
func String() *Schema {
	s, err := FromMap(map[string]any{"type": "string"})
	if err != nil {
		// A literal one-key document cannot fail to build.
		panic(fmt.Sprintf("schema: building generic string schema: %v", err))
	}
	return s
}

// build validates the document's basic structure and freezes it.
func build(raw any, source string) (*Schema, error) {
	switch raw.(type) {
	case map[string]any, bool:
	default:
		return nil, &sgerrors.SchemaError{
			Source:  source,
			Message: fmt.Sprintf("schema document must be an object or boolean, got %T", raw),
		}
	}

	canonical, err := json.Marshal(raw)
	if err != nil {
		return nil, &sgerrors.SchemaError{
			Source:  source,
			Message: "schema document is not JSON-encodable",
			Cause:   err,
		}
	}

	return &Schema{raw: raw, canonical: canonical, source: source}, nil
}

// JSON returns the canonical JSON encoding of the document.
func (s *Schema) JSON() []byte {
	return s.canonical
}

// Raw returns the decoded document (map[string]any or bool).
// Callers must not mutate the returned value.
func (s *Schema) Raw() any {
	return s.raw
}

// Source identifies where the document came from ("inline" or a file path).
func (s *Schema) Source() string {
	return s.source
}

// doc returns the document as an object, or nil for boolean schemas.
func (s *Schema) doc() map[string]any {
	m, _ := s.raw.(map[string]any)
	return m
}

// normalizeKeys converts map[any]any nodes produced by YAML decoding into
// map[string]any so the document round-trips through encoding/json.
func normalizeKeys(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprintf("%v", k)] = normalizeKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range node {
			node[k] = normalizeKeys(val)
		}
		return node
	case []any:
		for i, val := range node {
			node[i] = normalizeKeys(val)
		}
		return node
	default:
		return v
	}
}
