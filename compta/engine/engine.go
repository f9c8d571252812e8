package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecomledger/lib-compta/v2/compta"
	"github.com/ecomledger/lib-compta/v2/compta/accounting"
	"github.com/ecomledger/lib-compta/v2/compta/config"
	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/reconciliation"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNilConfig is returned by New without configuration.
var ErrNilConfig = errors.New("engine: nil configuration")

const spanRun = "compta.engine.run"

// Engine turns normalized records into normalized entries and anomalies.
type Engine struct {
	cfg            *config.AppConfig
	logger         log.Logger
	tracer         trace.Tracer
	checkers       []reconciliation.Checker
	customCheckers bool
	timeout        time.Duration
}

// Result is the outcome of one run. Generation anomalies come first, then
// the anomalies of each checker in order.
type Result struct {
	RunID     string
	Entries   []accounting.AccountingEntry
	Anomalies []accounting.Anomaly
}

// New validates cfg and builds an engine.
func New(cfg *config.AppConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid configuration: %w", err)
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}

	if !e.customCheckers {
		e.checkers = reconciliation.Default(cfg)
	}

	return e, nil
}

// Run processes one batch. Configuration lookup failures and generator
// defects abort the run; every business inconsistency is an anomaly.
func (e *Engine) Run(ctx context.Context, txs []accounting.NormalizedTransaction, payouts []accounting.PayoutSummary) (Result, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Result{}, fmt.Errorf("engine: run id: %w", err)
	}

	runID := id.String()
	ctx = compta.ContextWithRunID(ctx, runID)

	if e.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel, err = compta.WithTimeoutSafe(ctx, e.timeout)
		if err != nil {
			return Result{}, err
		}
		defer cancel()
	}

	logger := e.loggerFor(ctx).With(log.String("run_id", runID))

	attrs := append(compta.AttributesFromContext(ctx),
		attribute.String("compta.run_id", runID),
		attribute.Int("compta.transactions", len(txs)),
		attribute.Int("compta.payouts", len(payouts)),
	)

	ctx, span := e.tracerFor(ctx).Start(ctx, spanRun, trace.WithAttributes(attrs...))
	defer span.End()

	logger.Log(ctx, log.LevelInfo, "accounting run started",
		log.Int("transactions", len(txs)), log.Int("payouts", len(payouts)))

	gen, err := accounting.NewGenerator(e.cfg, logger).Generate(ctx, txs, payouts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		logger.Log(ctx, log.LevelError, "accounting run failed", log.Err(err))

		return Result{}, err
	}

	entries := accounting.NormalizeLettrage(gen.Entries)

	anomalies := append([]accounting.Anomaly(nil), gen.Anomalies...)
	anomalies = append(anomalies, reconciliation.Run(ctx, e.checkers, reconciliation.Input{
		Transactions: txs,
		Entries:      entries,
	})...)

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run interrupted")

		return Result{}, err
	}

	counts := countBySeverity(anomalies)

	span.SetAttributes(
		attribute.Int("compta.entries", len(entries)),
		attribute.Int("compta.anomalies", len(anomalies)),
		attribute.Int("compta.anomalies.error", counts[accounting.SeverityError]),
	)

	logger.Log(ctx, log.LevelInfo, "accounting run completed",
		log.Int("entries", len(entries)),
		log.Int("anomalies", len(anomalies)),
		log.Int("errors", counts[accounting.SeverityError]),
		log.Int("warnings", counts[accounting.SeverityWarning]))

	return Result{RunID: runID, Entries: entries, Anomalies: anomalies}, nil
}

//nolint:ireturn
func (e *Engine) loggerFor(ctx context.Context) log.Logger {
	if e.logger != nil {
		return e.logger
	}

	return compta.NewLoggerFromContext(ctx)
}

//nolint:ireturn
func (e *Engine) tracerFor(ctx context.Context) trace.Tracer {
	if e.tracer != nil {
		return e.tracer
	}

	return compta.NewTracerFromContext(ctx)
}

func countBySeverity(anomalies []accounting.Anomaly) map[accounting.Severity]int {
	counts := make(map[accounting.Severity]int, 3)
	for _, a := range anomalies {
		counts[a.Severity]++
	}

	return counts
}
