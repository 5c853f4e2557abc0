package validator

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/schemaguard/schemaguard/internal/jsonpath"
	"github.com/schemaguard/schemaguard/sgerrors"
)

// unionKeywords maps the checker's union-mismatch error types to the schema
// keywords they represent.
var unionKeywords = map[string]string{
	"number_one_of": "oneOf",
	"number_any_of": "anyOf",
	"number_all_of": "allOf",
}

// report reduces the checker's raw error list to a non-redundant,
// client-facing failure.
//
// The checker reports a union-type mismatch both at the union's own path and
// again for every branch that failed to match, producing deep per-branch
// noise that is useless to clients. Processing the raw list in original
// order, report keeps an error unless its instance path equals or descends
// from a path where a oneOf/anyOf mismatch was already recorded; kept
// union-mismatch errors record their path for subsequent filtering.
// Non-union errors outside recorded union paths are always kept, in their
// original order.
func report(kind Kind, raw []gojsonschema.ResultError) *sgerrors.ValidationFailure {
	entries := make([]sgerrors.ErrorEntry, 0, len(raw))
	var unionPaths []string

	for _, re := range raw {
		path := jsonpath.FromDotted(re.Field())

		if underAny(path, unionPaths) {
			continue
		}

		keyword := re.Type()
		if normalized, ok := unionKeywords[keyword]; ok {
			keyword = normalized
		}
		if keyword == "oneOf" || keyword == "anyOf" {
			unionPaths = append(unionPaths, path)
		}

		entries = append(entries, sgerrors.ErrorEntry{
			InstancePath: path,
			Keyword:      keyword,
			Message:      re.Description(),
			Params:       entryParams(re),
		})
	}

	return &sgerrors.ValidationFailure{
		Kind:   string(kind),
		Errors: entries,
	}
}

// underAny reports whether path equals or descends from any recorded path.
func underAny(path string, recorded []string) bool {
	for _, prefix := range recorded {
		if jsonpath.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// entryParams copies the checker's keyword-specific details into the wire
// shape. Only these documented fields ever reach clients; the checker's
// internal representations stay inside the process.
func entryParams(re gojsonschema.ResultError) map[string]any {
	details := re.Details()
	if len(details) == 0 {
		return map[string]any{}
	}
	params := make(map[string]any, len(details))
	for k, v := range details {
		// "context" and "field" duplicate the instance path in the
		// checker's own dotted form; they are location, not params.
		if k == "context" || k == "field" {
			continue
		}
		params[k] = v
	}
	return params
}
