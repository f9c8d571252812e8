package engine

import (
	"time"

	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/reconciliation"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by every run. Without it, the logger
// attached to the run context is used.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTracer sets the tracer used by every run. Without it, the tracer
// attached to the run context, or the global one, is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithCheckers replaces the default VAT, matching and lettrage checkers.
// Passing none disables reconciliation.
func WithCheckers(checkers ...reconciliation.Checker) Option {
	return func(e *Engine) {
		e.checkers = checkers
		e.customCheckers = true
	}
}

// WithRunTimeout bounds the duration of one run. Zero means no bound beyond
// the caller's context.
func WithRunTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}
