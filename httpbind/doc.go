// Package httpbind binds schema validators to HTTP handlers.
//
// A RouteSet collects the validators of a single route: at most one body
// validator, at most one response validator, and any number of query and
// path-parameter validators. The set is built once at startup and shared
// across requests.
//
// # Basic Usage
//
// Bind schemas to a route and wrap the handler:
//
//	body, _ := schema.FromJSON([]byte(`{"type":"object","properties":{"age":{"type":"integer"}}}`))
//
//	rs := httpbind.NewRouteSet()
//	if err := rs.BindBody("createUser", body, httpbind.BindConfig{CoerceTypes: true, Required: true}); err != nil {
//	    log.Fatal(err)
//	}
//	if err := rs.BindQuery("page", nil, httpbind.BindConfig{CoerceTypes: true}); err != nil {
//	    log.Fatal(err)
//	}
//
//	mux.Handle("POST /users", rs.Middleware(http.HandlerFunc(handler)))
//
// Inside the handler the validated inputs are on the request context:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    v := httpbind.FromContext(r.Context())
//	    page := v.Query["page"] // coerced per the bound schema
//	    ...
//	}
//
// Requests that fail validation never reach the handler; they are answered
// with status 400 and the wire shape
//
//	{"statusCode":400,"message":"Validation error (body)","errors":[...]}
//
// # Echo
//
// The same RouteSet drives labstack/echo routes through EchoMiddleware;
// validated inputs come back via FromEcho and failures surface as
// *echo.HTTPError carrying the wire body:
//
//	e.POST("/users", handler, rs.EchoMiddleware())
//
// # Response Validation
//
// Response schemas bound with BindResponse are checked explicitly via
// CheckResponse (or ResponseCheck for echo handlers) before the payload is
// written. A mismatch there is a server-side bug, not a client error, so
// it is logged and reported as an internal error.
package httpbind
