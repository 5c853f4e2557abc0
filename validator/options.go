package validator

import (
	"github.com/schemaguard/schemaguard/sgerrors"
)

// Option is a functional option for configuring Build.
type Option func(*buildOptions) error

// buildOptions holds cross-cutting dependencies a Validator is built with,
// as opposed to Config, which describes the validator itself.
type buildOptions struct {
	compiler *Compiler
	logger   Logger
}

// applyOptions resolves the option list against the defaults.
func applyOptions(opts []Option) (*buildOptions, error) {
	bo := &buildOptions{
		compiler: NewCompiler(),
		logger:   NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(bo); err != nil {
			return nil, err
		}
	}
	return bo, nil
}

// WithCompiler uses a shared, pre-constructed Compiler instead of a default
// one. Construct a single Compiler at process start and pass it to every
// Build call so all validators share the same compilation settings.
func WithCompiler(c *Compiler) Option {
	return func(bo *buildOptions) error {
		if c == nil {
			return &sgerrors.ConfigError{
				Field:   "Compiler",
				Message: "compiler cannot be nil",
			}
		}
		bo.compiler = c
		return nil
	}
}

// WithLogger sets the logger used during Build and Validate.
// The default discards all output.
func WithLogger(l Logger) Option {
	return func(bo *buildOptions) error {
		if l == nil {
			bo.logger = NopLogger{}
			return nil
		}
		bo.logger = l
		return nil
	}
}
