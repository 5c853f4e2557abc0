// Package sgerrors provides structured error types for the schemaguard library.
//
// Import path: github.com/schemaguard/schemaguard/sgerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides three core error types:
//
//   - [ConfigError]: invalid validator configuration (missing kind, empty name)
//   - [SchemaError]: schema documents that fail to parse or compile
//   - [ValidationFailure]: request data that failed schema compliance
//
// ConfigError and SchemaError surface at startup, during route registration.
// They indicate a programming mistake and are not recoverable. ValidationFailure
// surfaces per request and translates into a structured, client-facing 400
// response; it is never retried and never silently swallowed.
//
// # Sentinel Errors
//
// Each error type matches a sentinel via [errors.Is]:
//
//   - [ErrConfig] matches [ConfigError] and [SchemaError]
//   - [ErrSchema] matches [SchemaError]
//   - [ErrValidation] matches [ValidationFailure]
//
// # Wire Shape
//
// [ValidationFailure.ResponseBody] renders the documented client contract:
//
//	{
//	  "statusCode": 400,
//	  "message": "Validation error (body)",
//	  "errors": [
//	    {"instancePath": "/age", "keyword": "invalid_type", "message": "...", "params": {...}}
//	  ]
//	}
//
// Only the fields instancePath, keyword, message, and params ever leak to
// clients; checker-internal representations stay inside the process.
package sgerrors
