package engine

import (
	"context"
	"fmt"

	"github.com/ecomledger/lib-compta/v2/compta/accounting"
	"github.com/ecomledger/lib-compta/v2/compta/errgroup"
)

// Batch is one independent set of records, typically one channel export.
type Batch struct {
	Transactions []accounting.NormalizedTransaction
	Payouts      []accounting.PayoutSummary
}

// RunBatches runs independent batches concurrently, at most limit at a time
// (no bound when limit < 1). Results keep the order of batches. The first
// failing batch cancels the others and its error is returned.
//
// Lettrage codes are normalized per batch, so codes of different results
// must not be compared.
func (e *Engine) RunBatches(ctx context.Context, batches []Batch, limit int) ([]Result, error) {
	results := make([]Result, len(batches))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	group.SetLogger(e.loggerFor(ctx))

	for i := range batches {
		group.Go(func() error {
			res, err := e.Run(groupCtx, batches[i].Transactions, batches[i].Payouts)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}

			results[i] = res

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
