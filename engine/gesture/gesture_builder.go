package gesture

import "log/slog"

// ArbiterBuilderOption is a functional option for configuring an Arbiter.
type ArbiterBuilderOption func(*arbiterImpl)

// WithLogger sets the structured logger used for transition tracing.
//
// Parameters:
//   - logger: the logger to use (nil keeps the default)
//
// Returns:
//   - ArbiterBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) ArbiterBuilderOption {
	return func(a *arbiterImpl) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithOnTransition registers a callback fired after every successful ownership change,
// including releases back to idle.
//
// Parameters:
//   - fn: callback receiving the previous and new state
//
// Returns:
//   - ArbiterBuilderOption: functional option to set the callback
func WithOnTransition(fn func(from, to State)) ArbiterBuilderOption {
	return func(a *arbiterImpl) {
		a.onTransition = fn
	}
}
