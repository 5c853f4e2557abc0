package httpbind

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/schemaguard/schemaguard/sgerrors"
)

// Validated holds the validated (and possibly coerced/stripped) inputs of
// one request, keyed the way they were bound.
type Validated struct {
	// Body is the validated request body, nil when none was bound or sent.
	Body any

	// Query maps bound query-parameter names to their validated values.
	Query map[string]any

	// Params maps bound path-parameter names to their validated values.
	Params map[string]any
}

// ctxKey is the context key for the Validated of the current request.
type ctxKey struct{}

// FromContext returns the Validated stored by the middleware, or nil when
// the request did not pass through it.
func FromContext(ctx context.Context) *Validated {
	v, _ := ctx.Value(ctxKey{}).(*Validated)
	return v
}

// Middleware validates incoming requests against the RouteSet and stores
// the validated inputs in the request context. Requests that fail
// validation are answered with the documented 400 wire shape and never
// reach the next handler.
func (rs *RouteSet) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		validated, failure, err := rs.validateRequest(r)
		if err != nil {
			rs.logger.Error("request validation internal error", "error", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if failure != nil {
			WriteFailure(w, failure)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, validated)))
	})
}

// validateRequest runs every bound validator against the request.
// The failure return carries client errors; the error return is reserved
// for internal failures.
func (rs *RouteSet) validateRequest(r *http.Request) (*Validated, *sgerrors.ValidationFailure, error) {
	validated := &Validated{
		Query:  make(map[string]any),
		Params: make(map[string]any),
	}

	if rs.body != nil {
		raw, failure, err := decodeBody(r)
		if err != nil {
			return nil, nil, err
		}
		if failure != nil {
			return nil, failure, nil
		}
		out, err := rs.body.Validate(raw)
		if failure, ok := asFailure(err); ok {
			return nil, failure, nil
		}
		if err != nil {
			return nil, nil, err
		}
		validated.Body = out
	}

	queryValues := r.URL.Query()
	for _, v := range rs.queries {
		out, err := v.Validate(queryInput(queryValues[v.Name()]))
		if failure, ok := asFailure(err); ok {
			return nil, failure, nil
		}
		if err != nil {
			return nil, nil, err
		}
		if out != nil {
			validated.Query[v.Name()] = out
		}
	}

	for _, v := range rs.params {
		out, err := v.Validate(paramInput(r.PathValue(v.Name())))
		if failure, ok := asFailure(err); ok {
			return nil, failure, nil
		}
		if err != nil {
			return nil, nil, err
		}
		if out != nil {
			validated.Params[v.Name()] = out
		}
	}

	return validated, nil, nil
}

// decodeBody reads and decodes a JSON request body. An absent body maps to
// nil so the validator's Required flag decides; a malformed body is a
// client error in the documented wire shape.
func decodeBody(r *http.Request) (any, *sgerrors.ValidationFailure, error) {
	if r.Body == nil {
		return nil, nil, nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &sgerrors.ValidationFailure{
			Kind: "body",
			Errors: []sgerrors.ErrorEntry{{
				InstancePath: "",
				Keyword:      "parse",
				Message:      "invalid JSON: " + err.Error(),
				Params:       map[string]any{},
			}},
		}, nil
	}
	return raw, nil, nil
}

// queryInput maps raw query values to validator input: absent parameters
// become nil, single values stay scalar, repeated keys form a batch.
func queryInput(values []string) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		batch := make([]any, len(values))
		for i, s := range values {
			batch[i] = s
		}
		return batch
	}
}

// paramInput maps a raw path value to validator input. net/http reports
// missing wildcards as "", which means absent here.
func paramInput(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// asFailure extracts a ValidationFailure from err.
func asFailure(err error) (*sgerrors.ValidationFailure, bool) {
	if err == nil {
		return nil, false
	}
	var failure *sgerrors.ValidationFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// WriteFailure writes the documented 400 wire shape for a validation
// failure:
//
//	{"statusCode":400,"message":"Validation error (<kind>)","errors":[...]}
func WriteFailure(w http.ResponseWriter, failure *sgerrors.ValidationFailure) {
	body, err := failure.ResponseBody()
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(failure.StatusCode())
	_, _ = w.Write(body)
}
