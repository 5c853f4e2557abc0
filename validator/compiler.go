package validator

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/schemaguard/schemaguard/schema"
	"github.com/schemaguard/schemaguard/sgerrors"
)

// Compiler turns schema documents into compiled checkers.
//
// A Compiler holds the compilation settings and is safe for concurrent use;
// construct one at process start and pass it to Build via [WithCompiler] so
// every validator shares the same settings. Build constructs a default
// Compiler per call when none is supplied.
type Compiler struct {
	// draft pins the JSON Schema draft used when the document carries no
	// $schema declaration. Zero means auto-detect with the library default.
	draft gojsonschema.Draft

	// validateDocument checks the schema document against its meta-schema
	// during compilation. Enabled by default so malformed documents fail
	// at startup instead of behaving unpredictably per request.
	validateDocument bool
}

// NewCompiler creates a Compiler with default settings: draft auto-detection
// and meta-schema validation of the document.
func NewCompiler() *Compiler {
	return &Compiler{
		draft:            gojsonschema.Hybrid,
		validateDocument: true,
	}
}

// Compile compiles a schema document into a Checker. A document the
// underlying library does not recognize as a well-formed schema fails with
// an error matching [sgerrors.ErrSchema].
func (c *Compiler) Compile(s *schema.Schema) (*Checker, error) {
	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = c.draft
	loader.AutoDetect = true
	loader.Validate = c.validateDocument

	compiled, err := loader.Compile(gojsonschema.NewBytesLoader(s.JSON()))
	if err != nil {
		return nil, &sgerrors.SchemaError{
			Source:  s.Source(),
			Message: "schema not recognized by checker compiler",
			Cause:   err,
		}
	}

	return &Checker{compiled: compiled}, nil
}

// Checker is a compiled schema checker. It is immutable and safe for
// unsynchronized concurrent use.
type Checker struct {
	compiled *gojsonschema.Schema
}

// Check runs the compiled schema against data and returns the raw checker
// errors (nil when the data conforms). The error return is reserved for
// internal checker failures, such as data that cannot be represented as a
// JSON document; schema non-compliance is never an error here.
func (c *Checker) Check(data any) ([]gojsonschema.ResultError, error) {
	result, err := c.compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema checker: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	return result.Errors(), nil
}
