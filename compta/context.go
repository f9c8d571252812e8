package compta

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecomledger/lib-compta/v2/compta/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNilParentContext indicates that a nil parent context was provided
var ErrNilParentContext = errors.New("cannot create context from nil parent")

// DefaultTracerName names the tracer used when none is attached to the context.
const DefaultTracerName = "compta.default"

// ---- Context container ----

type customContextKey string

// CustomContextKey is the context key used to store CustomContextKeyValue.
var CustomContextKey = customContextKey("compta_context")

// CustomContextKeyValue holds all run-scoped facilities we attach to context.
type CustomContextKeyValue struct {
	RunID  string
	Tracer trace.Tracer
	Logger log.Logger

	// AttrBag holds run-wide attributes applied to every span (tenant, source file, period).
	AttrBag []attribute.KeyValue
}

// cloneContextValues copies the container so derived contexts never share
// mutations with their parent.
func cloneContextValues(ctx context.Context) *CustomContextKeyValue {
	values, _ := ctx.Value(CustomContextKey).(*CustomContextKeyValue)
	if values == nil {
		return &CustomContextKeyValue{}
	}

	clone := *values
	if values.AttrBag != nil {
		clone.AttrBag = append([]attribute.KeyValue(nil), values.AttrBag...)
	}

	return &clone
}

// ---- Logger helpers ----

// NewLoggerFromContext extract the Logger from "logger" value inside context
//
//nolint:ireturn
func NewLoggerFromContext(ctx context.Context) log.Logger {
	if customContext, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok &&
		customContext.Logger != nil {
		return customContext.Logger
	}

	return &log.NopLogger{}
}

// ContextWithLogger returns a context within a Logger in "logger" value.
func ContextWithLogger(ctx context.Context, logger log.Logger) context.Context {
	values := cloneContextValues(ctx)
	values.Logger = logger

	return context.WithValue(ctx, CustomContextKey, values)
}

// ---- Tracer helpers ----

// NewTracerFromContext returns the attached tracer or the global one.
//
//nolint:ireturn
func NewTracerFromContext(ctx context.Context) trace.Tracer {
	if customContext, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok &&
		customContext.Tracer != nil {
		return customContext.Tracer
	}

	return otel.Tracer(DefaultTracerName)
}

// ContextWithTracer returns a context within a trace.Tracer in "tracer" value.
func ContextWithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	values := cloneContextValues(ctx)
	values.Tracer = tracer

	return context.WithValue(ctx, CustomContextKey, values)
}

// ---- Run ID helpers ----

// ContextWithRunID returns a context carrying the identifier of the current run.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	values := cloneContextValues(ctx)
	values.RunID = strings.TrimSpace(runID)

	return context.WithValue(ctx, CustomContextKey, values)
}

// RunIDFromContext returns the run identifier, or "" when none was set.
func RunIDFromContext(ctx context.Context) string {
	if values, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok && values != nil {
		return values.RunID
	}

	return ""
}

// ---- Attribute Bag (run-wide span attributes) ----

// ContextWithSpanAttributes appends one or more attributes to the run's AttrBag.
func ContextWithSpanAttributes(ctx context.Context, kv ...attribute.KeyValue) context.Context {
	if len(kv) == 0 {
		return ctx
	}

	values := cloneContextValues(ctx)
	values.AttrBag = append(values.AttrBag, kv...)

	return context.WithValue(ctx, CustomContextKey, values)
}

// AttributesFromContext returns a shallow copy of the AttrBag slice, safe to reuse by processors.
func AttributesFromContext(ctx context.Context) []attribute.KeyValue {
	if values, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok && values != nil && len(values.AttrBag) > 0 {
		out := make([]attribute.KeyValue, len(values.AttrBag))
		copy(out, values.AttrBag)

		return out
	}

	return nil
}

// ---- Deadline Management ----

// WithTimeoutSafe creates a context with the specified timeout, but respects
// any existing deadline in the parent context. Returns an error if parent is nil.
//
// When the parent's deadline is shorter than the requested timeout, the
// returned context inherits the parent's deadline.
func WithTimeoutSafe(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	if parent == nil {
		return nil, nil, ErrNilParentContext
	}

	if deadline, ok := parent.Deadline(); ok {
		if time.Until(deadline) < timeout {
			ctx, cancel := context.WithCancel(parent)
			return ctx, cancel, nil
		}
	}

	ctx, cancel := context.WithTimeout(parent, timeout)

	return ctx, cancel, nil
}
