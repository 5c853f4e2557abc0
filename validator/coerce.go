package validator

import "strconv"

// coerceValue converts a raw value toward the target primitive type name.
// Coercion is best-effort normalization and never fails: values that cannot
// be converted pass through unchanged and are left for the checker to
// reject. Only numeric-looking and boolean-looking strings are rewritten;
// everything else (including already-typed values) is returned as-is.
func coerceValue(target string, value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}

	switch target {
	case "integer":
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	case "number":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case "boolean":
		// Exact, case-sensitive spellings only: "True" stays a string.
		switch s {
		case "true":
			return true
		case "false":
			return false
		}
	}

	return value
}
