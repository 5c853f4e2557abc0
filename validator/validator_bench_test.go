package validator

import (
	"testing"

	"github.com/schemaguard/schemaguard/schema"
)

func benchValidator(b *testing.B, coerce bool) *Validator {
	b.Helper()
	s, err := schema.FromJSON([]byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age":  {"type": "integer"},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["name", "age"]
	}`))
	if err != nil {
		b.Fatal(err)
	}
	v, err := Build(Config{Kind: KindBody, Name: "bench", Schema: s, CoerceTypes: coerce})
	if err != nil {
		b.Fatal(err)
	}
	return v
}

func BenchmarkValidate(b *testing.B) {
	v := benchValidator(b, false)
	data := map[string]any{"name": "alice", "age": 30, "tags": []any{"a", "b"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.Validate(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateCoerce(b *testing.B) {
	v := benchValidator(b, true)
	data := map[string]any{"name": "alice", "age": "30", "tags": []any{"a", "b"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.Validate(data); err != nil {
			b.Fatal(err)
		}
	}
}
