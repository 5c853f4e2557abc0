package httpbind

import (
	"fmt"

	"github.com/schemaguard/schemaguard/schema"
	"github.com/schemaguard/schemaguard/sgerrors"
	"github.com/schemaguard/schemaguard/validator"
)

// RouteSet holds the validators bound to one route. It is assembled at
// route-registration time and is immutable once serving begins; the
// middleware only reads it.
type RouteSet struct {
	compiler *validator.Compiler
	logger   validator.Logger

	body     *validator.Validator
	response *validator.Validator
	queries  []*validator.Validator
	params   []*validator.Validator
}

// Option is a functional option for configuring a RouteSet.
type Option func(*RouteSet) error

// WithCompiler shares a pre-constructed schema compiler across all
// validators bound to this route.
func WithCompiler(c *validator.Compiler) Option {
	return func(rs *RouteSet) error {
		if c == nil {
			return &sgerrors.ConfigError{Field: "Compiler", Message: "compiler cannot be nil"}
		}
		rs.compiler = c
		return nil
	}
}

// WithLogger sets the logger used at bind time and by the middleware.
func WithLogger(l validator.Logger) Option {
	return func(rs *RouteSet) error {
		if l != nil {
			rs.logger = l
		}
		return nil
	}
}

// NewRouteSet creates an empty RouteSet.
func NewRouteSet(opts ...Option) (*RouteSet, error) {
	rs := &RouteSet{
		compiler: validator.NewCompiler(),
		logger:   validator.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(rs); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// build constructs one validator with the route's shared compiler and logger.
func (rs *RouteSet) build(cfg validator.Config) (*validator.Validator, error) {
	return validator.Build(cfg,
		validator.WithCompiler(rs.compiler),
		validator.WithLogger(rs.logger))
}

// BindBody binds a request-body validator. Errors abort route registration:
// a bad binding is a programming mistake, not a runtime condition.
func (rs *RouteSet) BindBody(name string, s *schema.Schema, cfg BindConfig) error {
	if rs.body != nil {
		return &sgerrors.ConfigError{Field: "body", Value: name, Message: "body already bound"}
	}
	v, err := rs.build(validator.Config{
		Kind:              validator.KindBody,
		Name:              name,
		Schema:            s,
		CoerceTypes:       cfg.CoerceTypes,
		StripUnknownProps: cfg.StripUnknownProps,
		Required:          cfg.Required,
	})
	if err != nil {
		return err
	}
	rs.body = v
	return nil
}

// BindQuery binds a query-parameter validator. A nil schema defaults to the
// generic string schema. The name is the query key to read. A query key
// that may repeat is validated as one array, so it needs an array schema
// with an items sub-schema; under a scalar schema repeated keys fail
// validation.
func (rs *RouteSet) BindQuery(name string, s *schema.Schema, cfg BindConfig) error {
	v, err := rs.build(validator.Config{
		Kind:              validator.KindQuery,
		Name:              name,
		Schema:            s,
		CoerceTypes:       cfg.CoerceTypes,
		StripUnknownProps: cfg.StripUnknownProps,
		Required:          cfg.Required,
	})
	if err != nil {
		return err
	}
	rs.queries = append(rs.queries, v)
	return nil
}

// BindParam binds a path-parameter validator. A nil schema defaults to the
// generic string schema. The name must match the route pattern's wildcard.
func (rs *RouteSet) BindParam(name string, s *schema.Schema, cfg BindConfig) error {
	v, err := rs.build(validator.Config{
		Kind:              validator.KindParam,
		Name:              name,
		Schema:            s,
		CoerceTypes:       cfg.CoerceTypes,
		StripUnknownProps: cfg.StripUnknownProps,
		Required:          cfg.Required,
	})
	if err != nil {
		return err
	}
	rs.params = append(rs.params, v)
	return nil
}

// BindResponse binds a response-payload validator for use with
// [RouteSet.CheckResponse].
func (rs *RouteSet) BindResponse(name string, s *schema.Schema, cfg BindConfig) error {
	if rs.response != nil {
		return &sgerrors.ConfigError{Field: "response", Value: name, Message: "response already bound"}
	}
	v, err := rs.build(validator.Config{
		Kind:              validator.KindResponse,
		Name:              name,
		Schema:            s,
		CoerceTypes:       cfg.CoerceTypes,
		StripUnknownProps: cfg.StripUnknownProps,
		Required:          cfg.Required,
	})
	if err != nil {
		return err
	}
	rs.response = v
	return nil
}

// BindConfig carries the per-binding behavior flags.
type BindConfig struct {
	// CoerceTypes attempts type coercion on known properties before checking.
	CoerceTypes bool

	// StripUnknownProps drops properties not declared in the schema.
	StripUnknownProps bool

	// Required makes missing input an error. Query and path parameters
	// with Required=false simply skip validation when absent.
	Required bool
}

// CheckResponse validates an outgoing payload against the bound response
// validator. A failure here is a server-side bug, not client input: it is
// logged at error level and returned for the handler to translate into a
// 500. Routes without a response binding accept any payload.
func (rs *RouteSet) CheckResponse(payload any) (any, error) {
	if rs.response == nil {
		return payload, nil
	}
	out, err := rs.response.Validate(payload)
	if err != nil {
		rs.logger.Error("response validation failed",
			"validator", rs.response.Name(),
			"error", err.Error())
		return nil, fmt.Errorf("response %q does not match its schema: %w", rs.response.Name(), err)
	}
	return out, nil
}
