//go:build unit

package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecomledger/lib-compta/v2/compta"
	"github.com/ecomledger/lib-compta/v2/compta/accounting"
	"github.com/ecomledger/lib-compta/v2/compta/config"
	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/ecomledger/lib-compta/v2/compta/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const testConfigYAML = `
vat_rates:
  "250": 20
channels:
  shopify:
    name: Shopify
    code: "01"
    client_account: "41110000"
psps:
  stripe:
    account: "51150000"
    commission_account: "62700000"
`

var (
	saleDate   = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	payoutDate = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	cfg, err := config.Parse([]byte(testConfigYAML))
	require.NoError(t, err)

	return cfg
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale(ref, net string) accounting.NormalizedTransaction {
	return accounting.NormalizedTransaction{
		Reference:       ref,
		Channel:         "shopify",
		Date:            saleDate,
		Type:            accounting.TypeSale,
		AmountHT:        dec("100"),
		AmountTVA:       dec("20"),
		AmountTTC:       dec("120"),
		TVARate:         dec("20"),
		CountryCode:     "250",
		CommissionTTC:   dec("5"),
		NetAmount:       dec(net),
		PayoutDate:      pointers.Time(payoutDate),
		PayoutReference: pointers.String("PO-1"),
		PaymentMethod:   pointers.String("stripe"),
	}
}

func payout(total string) accounting.PayoutSummary {
	return accounting.PayoutSummary{
		PayoutDate:      payoutDate,
		Channel:         "shopify",
		TotalAmount:     dec(total),
		PSPType:         pointers.String("stripe"),
		PayoutReference: "PO-1",
	}
}

func newRecordingTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()

	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilConfig)

	cfg := testConfig(t)
	cfg.MatchingTolerance = pointers.Of(dec("-1"))

	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matching_tolerance")

	eng, err := New(testConfig(t))
	require.NoError(t, err)
	assert.Len(t, eng.checkers, 3)

	eng, err = New(testConfig(t), WithCheckers())
	require.NoError(t, err)
	assert.Empty(t, eng.checkers)
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

func TestRunProducesNormalizedEntriesAndAnomalies(t *testing.T) {
	t.Parallel()

	rec := log.NewRecorder(log.LevelInfo)
	sr, tp := newRecordingTracer()

	eng, err := New(testConfig(t), WithLogger(rec), WithTracer(tp.Tracer("test")))
	require.NoError(t, err)

	orphan := sale("#1500", "115")
	orphan.Type = accounting.TypeRefund
	orphan.PaymentMethod = nil
	orphan.PayoutReference = nil

	res, err := eng.Run(context.Background(),
		[]accounting.NormalizedTransaction{sale("#1001", "115"), sale("#1002", "110"), orphan},
		[]accounting.PayoutSummary{payout("225")})
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)

	require.NoError(t, accounting.VerifyBalance(res.Entries))

	for _, e := range res.Entries {
		if e.Lettrage != "" {
			assert.Regexp(t, `^[A-Z]+$`, e.Lettrage)
		}
	}

	var types []string
	for _, a := range res.Anomalies {
		types = append(types, a.Type)
	}

	assert.Equal(t, []string{constant.AnomalyAmountMismatch, constant.AnomalyOrphanRefund}, types)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "compta.engine.run", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("compta.transactions", 3))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("compta.anomalies", 2))

	infos := rec.EventsAt(log.LevelInfo)
	require.Len(t, infos, 2)
	assert.Equal(t, "accounting run completed", infos[1].Message)

	runID, ok := infos[1].Field("run_id")
	require.True(t, ok)
	assert.Equal(t, res.RunID, runID)
}

func TestRunLettrageBalancesAcrossSettlementAndPayout(t *testing.T) {
	t.Parallel()

	eng, err := New(testConfig(t))
	require.NoError(t, err)

	res, err := eng.Run(context.Background(),
		[]accounting.NormalizedTransaction{sale("#1001", "115"), sale("#1002", "115")},
		[]accounting.PayoutSummary{payout("229")})
	require.NoError(t, err)

	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, constant.AnomalyLettrageImbalance, res.Anomalies[0].Type)

	res, err = eng.Run(context.Background(),
		[]accounting.NormalizedTransaction{sale("#1001", "115"), sale("#1002", "115")},
		[]accounting.PayoutSummary{payout("230")})
	require.NoError(t, err)
	assert.Empty(t, res.Anomalies)
}

func TestRunUsesContextLoggerAndTracer(t *testing.T) {
	t.Parallel()

	rec := log.NewRecorder(log.LevelDebug)
	sr, tp := newRecordingTracer()

	ctx := compta.ContextWithLogger(context.Background(), rec)
	ctx = compta.ContextWithTracer(ctx, tp.Tracer("ctx"))
	ctx = compta.ContextWithSpanAttributes(ctx, attribute.String("tenant", "acme"))

	eng, err := New(testConfig(t), WithCheckers())
	require.NoError(t, err)

	_, err = eng.Run(ctx, []accounting.NormalizedTransaction{sale("#1001", "115")}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.EventsAt(log.LevelDebug))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("tenant", "acme"))
}

func TestRunFailures(t *testing.T) {
	t.Parallel()

	rec := log.NewRecorder(log.LevelError)
	sr, tp := newRecordingTracer()

	eng, err := New(testConfig(t), WithLogger(rec), WithTracer(tp.Tracer("test")))
	require.NoError(t, err)

	unknown := sale("#1001", "115")
	unknown.Channel = "etsy"

	_, err = eng.Run(context.Background(), []accounting.NormalizedTransaction{unknown}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissingConfiguration))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, rec.Events(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Run(ctx, []accounting.NormalizedTransaction{sale("#1001", "115")}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()

	eng, err := New(testConfig(t), WithRunTimeout(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, eng.timeout)

	_, err = eng.Run(context.Background(), []accounting.NormalizedTransaction{sale("#1001", "115")}, nil)
	require.NoError(t, err)
}

// countingChecker records how many times it ran.
type countingChecker struct {
	calls int
}

func (c *countingChecker) Name() string { return "counting" }

func (c *countingChecker) Check(_ context.Context, in reconciliation.Input) []accounting.Anomaly {
	c.calls++

	return []accounting.Anomaly{{
		Type:      "custom",
		Severity:  accounting.SeverityInfo,
		Reference: in.Transactions[0].Reference,
	}}
}

func TestRunCustomCheckers(t *testing.T) {
	t.Parallel()

	checker := &countingChecker{}

	eng, err := New(testConfig(t), WithCheckers(checker))
	require.NoError(t, err)

	res, err := eng.Run(context.Background(), []accounting.NormalizedTransaction{sale("#1001", "115")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, checker.calls)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, "custom", res.Anomalies[0].Type)
}
