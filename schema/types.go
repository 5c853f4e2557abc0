package schema

// TypeUnknown marks a declared property whose type is absent or too complex
// to coerce (nested unions, type arrays, sub-objects without a scalar type).
const TypeUnknown = "unknown"

// Type returns the schema's declared scalar type name, handling both the
// "type": "string" and "type": ["string", "null"] forms. Returns "" when
// the type is absent, non-scalar, or the document is a boolean schema.
func (s *Schema) Type() string {
	doc := s.doc()
	if doc == nil {
		return ""
	}
	return scalarType(doc)
}

// PropertyTypes returns the known-property-type map for the document: every
// declared property name mapped to its declared primitive type name, or
// [TypeUnknown] when the type is absent or complex.
//
// For a plain object schema the map covers its own "properties". For a union
// schema it covers the union of declared properties across all "anyOf" and
// "allOf" branches. When branches disagree on a property's type, later
// branches overwrite earlier ones; this tie-break is intentional, not an
// error. Boolean schemas have no declared properties.
func (s *Schema) PropertyTypes() map[string]string {
	doc := s.doc()
	if doc == nil {
		return nil
	}

	types := make(map[string]string)
	collectProperties(doc, types)
	for _, key := range []string{"anyOf", "allOf"} {
		branches, _ := doc[key].([]any)
		for _, branch := range branches {
			if b, ok := branch.(map[string]any); ok {
				collectProperties(b, types)
			}
		}
	}
	return types
}

// Items returns the element sub-schema of an array schema, or nil when the
// document declares no object-form "items". The returned Schema shares the
// parent's source identifier.
func (s *Schema) Items() *Schema {
	doc := s.doc()
	if doc == nil {
		return nil
	}
	items, ok := doc["items"].(map[string]any)
	if !ok {
		return nil
	}
	sub, err := build(items, s.source)
	if err != nil {
		return nil
	}
	return sub
}

// collectProperties merges one schema object's declared properties into types.
func collectProperties(doc map[string]any, types map[string]string) {
	props, _ := doc["properties"].(map[string]any)
	for name, prop := range props {
		declared := TypeUnknown
		if p, ok := prop.(map[string]any); ok {
			if t, ok := p["type"].(string); ok {
				declared = t
			}
		}
		types[name] = declared
	}
}

// scalarType extracts a single usable type name from a schema object.
// Type arrays count as scalar only when exactly one non-"null" entry remains,
// mirroring how nullable types are declared in newer schema drafts.
func scalarType(doc map[string]any) string {
	switch t := doc["type"].(type) {
	case string:
		return t
	case []any:
		found := ""
		for _, entry := range t {
			s, ok := entry.(string)
			if !ok {
				return ""
			}
			if s == "null" {
				continue
			}
			if found != "" {
				return ""
			}
			found = s
		}
		return found
	}
	return ""
}
