package httpbind

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schemaguard/schemaguard/sgerrors"
	"github.com/schemaguard/schemaguard/validator"
)

// validatedKey is the echo context key the middleware stores Validated under.
const validatedKey = "schemaguard.validated"

// FromEcho returns the Validated stored by EchoMiddleware, or nil when the
// request did not pass through it.
func FromEcho(c echo.Context) *Validated {
	v, _ := c.Get(validatedKey).(*Validated)
	return v
}

// EchoMiddleware validates incoming requests against the RouteSet and
// stores the validated inputs on the echo context. Validation failures are
// returned as *echo.HTTPError with the documented wire shape as the
// message, so echo's error handler serializes them as-is.
func (rs *RouteSet) EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			validated := &Validated{
				Query:  make(map[string]any),
				Params: make(map[string]any),
			}

			if rs.body != nil {
				raw, failure, err := decodeBody(c.Request())
				if err != nil {
					return err
				}
				if failure != nil {
					return echoFailure(failure)
				}
				out, err := rs.body.Validate(raw)
				if failure, ok := asFailure(err); ok {
					return echoFailure(failure)
				}
				if err != nil {
					return err
				}
				validated.Body = out
			}

			queryValues := c.QueryParams()
			for _, v := range rs.queries {
				out, err := v.Validate(queryInput(queryValues[v.Name()]))
				if failure, ok := asFailure(err); ok {
					return echoFailure(failure)
				}
				if err != nil {
					return err
				}
				if out != nil {
					validated.Query[v.Name()] = out
				}
			}

			for _, v := range rs.params {
				out, err := v.Validate(paramInput(c.Param(v.Name())))
				if failure, ok := asFailure(err); ok {
					return echoFailure(failure)
				}
				if err != nil {
					return err
				}
				if out != nil {
					validated.Params[v.Name()] = out
				}
			}

			c.Set(validatedKey, validated)
			return next(c)
		}
	}
}

// ResponseCheck validates an outgoing payload against a response-kind
// validator. A mismatch is a server-side bug, so it surfaces as a 500
// *echo.HTTPError while the structured failure stays on the internal
// error chain for logging.
func ResponseCheck(v *validator.Validator, payload any) error {
	if v == nil {
		return nil
	}
	_, err := v.Validate(payload)
	if failure, ok := asFailure(err); ok {
		return echo.NewHTTPError(http.StatusInternalServerError,
			"response does not match its schema").SetInternal(failure)
	}
	return err
}

// echoFailure wraps a validation failure into an *echo.HTTPError carrying
// the wire-shape fields, mirroring what WriteFailure sends over net/http.
func echoFailure(failure *sgerrors.ValidationFailure) error {
	entries := failure.Errors
	if entries == nil {
		entries = []sgerrors.ErrorEntry{}
	}
	return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
		"statusCode": failure.StatusCode(),
		"message":    failure.Message(),
		"errors":     entries,
	}).SetInternal(failure)
}
