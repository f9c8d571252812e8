// Package zap bridges the compta/log abstraction to go.uber.org/zap.
//
// New builds a JSON logger whose level defaults follow the deployment
// environment. Log appends trace_id and span_id when the context carries an
// OpenTelemetry span, so engine runs correlate with the host's traces.
package zap
