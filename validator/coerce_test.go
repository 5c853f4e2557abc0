package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name   string
		target string
		value  any
		want   any
	}{
		{"integer from numeric string", "integer", "42", int64(42)},
		{"integer from negative string", "integer", "-7", int64(-7)},
		{"integer from float string unchanged", "integer", "3.5", "3.5"},
		{"integer from word unchanged", "integer", "forty-two", "forty-two"},
		{"integer from non-string unchanged", "integer", 42, 42},
		{"number from float string", "number", "3.5", 3.5},
		{"number from integer string", "number", "42", float64(42)},
		{"number from word unchanged", "number", "pi", "pi"},
		{"boolean true", "boolean", "true", true},
		{"boolean false", "boolean", "false", false},
		{"boolean is case-sensitive", "boolean", "True", "True"},
		{"boolean numeric unchanged", "boolean", "1", "1"},
		{"boolean non-string unchanged", "boolean", true, true},
		{"string passes through", "string", "42", "42"},
		{"unknown passes through", "unknown", "42", "42"},
		{"array passes through", "array", "42", "42"},
		{"nil passes through", "integer", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceValue(tt.target, tt.value))
		})
	}
}
