package reconciliation

import (
	"context"

	"github.com/ecomledger/lib-compta/v2/compta/accounting"
	"github.com/ecomledger/lib-compta/v2/compta/config"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
)

// centTolerance bounds the amount comparisons that are not configurable.
var centTolerance = safe.Cent

// Input is the read-only view a checker works on.
type Input struct {
	Transactions []accounting.NormalizedTransaction
	Entries      []accounting.AccountingEntry
}

// Checker inspects a run and returns the anomalies it finds.
type Checker interface {
	Name() string
	Check(ctx context.Context, in Input) []accounting.Anomaly
}

// Default returns the VAT, matching and lettrage checkers, in that order.
func Default(cfg *config.AppConfig) []Checker {
	return []Checker{
		NewVatChecker(cfg),
		NewMatchingChecker(cfg),
		NewLettrageChecker(cfg),
	}
}

// Run executes checkers in order and concatenates their anomalies.
// It stops early when ctx is done and returns what was collected so far.
func Run(ctx context.Context, checkers []Checker, in Input) []accounting.Anomaly {
	var out []accounting.Anomaly

	for _, c := range checkers {
		if ctx.Err() != nil {
			break
		}

		out = append(out, c.Check(ctx, in)...)
	}

	return out
}

// regular yields the transactions without special type.
func regular(txs []accounting.NormalizedTransaction) []accounting.NormalizedTransaction {
	out := make([]accounting.NormalizedTransaction, 0, len(txs))

	for _, tx := range txs {
		if tx.SpecialType == accounting.SpecialNone {
			out = append(out, tx)
		}
	}

	return out
}
