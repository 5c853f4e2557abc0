// Package jsonpath provides JSON pointer helpers for instance paths.
//
// Instance paths identify where in a validated document an error occurred,
// in JSON pointer form: "" for the root, "/a/b" for nested properties,
// "/items/0" for array elements.
package jsonpath

import "strings"

// Join appends a child segment to a parent pointer.
// Segment separators inside the child are escaped per RFC 6901.
func Join(parent, child string) string {
	child = strings.ReplaceAll(child, "~", "~0")
	child = strings.ReplaceAll(child, "/", "~1")
	return parent + "/" + child
}

// FromDotted converts a dotted field path (as reported by gojsonschema,
// e.g. "a.b.0") into a JSON pointer ("/a/b/0"). The root marker "(root)"
// and the empty string both map to the root pointer "".
func FromDotted(field string) string {
	if field == "" || field == "(root)" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(field, ".") {
		b.WriteString("/")
		b.WriteString(seg)
	}
	return b.String()
}

// HasPrefix reports whether path is prefix itself or a descendant of it.
// Matching is segment-aware: "/a/b" is under "/a", but "/ab" is not.
// Every path is under the root pointer "".
func HasPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
