package accounting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecomledger/lib-compta/v2/compta/config"
	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/shopspring/decimal"
)

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
)

// Generator turns normalized transactions and payout summaries into balanced
// ledger lines. It holds no mutable state and is safe for concurrent use.
type Generator struct {
	cfg    *config.AppConfig
	logger log.Logger
}

// NewGenerator creates a generator over a validated configuration.
func NewGenerator(cfg *config.AppConfig, logger log.Logger) *Generator {
	if logger == nil {
		logger = log.NewNop()
	}

	return &Generator{cfg: cfg, logger: logger}
}

// Generation is the raw output of one Generate call, before lettrage normalization.
type Generation struct {
	Entries   []AccountingEntry
	Anomalies []Anomaly
}

// Generate dispatches every transaction then every payout, in input order.
//
// Configuration lookup failures abort the whole run. Balance errors abort it
// too, except on the returns_avoir path where they become anomalies.
func (g *Generator) Generate(ctx context.Context, txs []NormalizedTransaction, payouts []PayoutSummary) (Generation, error) {
	var out Generation

	for i := range txs {
		if err := ctx.Err(); err != nil {
			return Generation{}, err
		}

		entries, anomalies, err := g.dispatch(ctx, txs[i])
		if err != nil {
			return Generation{}, fmt.Errorf("transaction %q (%s): %w", txs[i].Reference, txs[i].Channel, err)
		}

		out.Entries = append(out.Entries, entries...)
		out.Anomalies = append(out.Anomalies, anomalies...)
	}

	for i := range payouts {
		entries, anomalies, err := g.PayoutEntries(ctx, payouts[i])
		if err != nil {
			return Generation{}, fmt.Errorf("payout %q (%s): %w", payouts[i].PayoutReference, payouts[i].Channel, err)
		}

		out.Entries = append(out.Entries, entries...)
		out.Anomalies = append(out.Anomalies, anomalies...)
	}

	out.Entries = g.stripOrphanAvoirLettrage(txs, out.Entries)

	return out, nil
}

func (g *Generator) dispatch(ctx context.Context, tx NormalizedTransaction) ([]AccountingEntry, []Anomaly, error) {
	route := Classify(tx.SpecialType, g.cfg.IsMarketplace(tx.Channel))

	g.logger.Log(ctx, log.LevelDebug, "dispatching transaction",
		log.Reference(tx.Reference), log.Channel(tx.Channel), log.String("route", route.String()))

	switch route {
	case RouteNone:
		return nil, nil, nil
	case RouteAvoir:
		entries, err := g.SaleEntries(tx)

		var balanceErr *BalanceError
		if errors.As(err, &balanceErr) {
			g.logger.Log(ctx, log.LevelError, "unbalanced credit note skipped",
				log.Reference(tx.Reference), log.Channel(tx.Channel), log.Err(err))

			return nil, []Anomaly{{
				Type:          constant.AnomalyBalanceError,
				Severity:      SeverityError,
				Reference:     tx.Reference,
				Channel:       tx.Channel,
				Detail:        err.Error(),
				ExpectedValue: pointers.String(balanceErr.Debit.StringFixed(2)),
				ActualValue:   pointers.String(balanceErr.Credit.StringFixed(2)),
			}}, nil
		}

		return entries, nil, err
	case RouteSettlement:
		return g.SettlementEntries(ctx, tx)
	case RouteDirectPayment:
		entries, err := g.DirectPaymentEntries(tx)

		return entries, nil, err
	case RouteMarketplaceSpecial:
		entries, err := g.MarketplacePayoutEntries(ctx, tx)

		return entries, nil, err
	case RouteMarketplaceSale:
		return g.marketplaceSale(ctx, tx)
	case RouteStorefrontSale:
		return g.storefrontSale(ctx, tx)
	case RouteUnknown:
		return nil, []Anomaly{{
			Type:      constant.AnomalyUnknownSpecialType,
			Severity:  SeverityError,
			Reference: tx.Reference,
			Channel:   tx.Channel,
			Detail:    fmt.Sprintf("unknown special type %q", tx.SpecialType),
		}}, nil
	default:
		return nil, nil, NewDomainError(ErrorInvalidInput, "route", fmt.Sprintf("unhandled route %d", route))
	}
}

func (g *Generator) storefrontSale(ctx context.Context, tx NormalizedTransaction) ([]AccountingEntry, []Anomaly, error) {
	entries, err := g.SaleEntries(tx)
	if err != nil {
		return nil, nil, err
	}

	if _, direct := g.cfg.DirectPaymentAccount(pointers.StringValue(tx.PaymentMethod)); direct {
		// A refund paid back by direct method posts the avoir only.
		if tx.IsRefund() {
			return entries, nil, nil
		}

		payment, err := g.DirectPaymentEntries(tx)
		if err != nil {
			return nil, nil, err
		}

		return append(entries, payment...), nil, nil
	}

	settlement, anomalies, err := g.SettlementEntries(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	return append(entries, settlement...), anomalies, nil
}

func (g *Generator) marketplaceSale(ctx context.Context, tx NormalizedTransaction) ([]AccountingEntry, []Anomaly, error) {
	entries, err := g.SaleEntries(tx)
	if err != nil {
		return nil, nil, err
	}

	commission, err := g.CommissionEntries(tx)
	if err != nil {
		return nil, nil, err
	}

	entries = append(entries, commission...)

	// Channels with an expense account settle through the aggregate payout only.
	if g.cfg.HasExpenseAccount(tx.Channel) {
		return entries, nil, nil
	}

	payout, err := g.MarketplacePayoutEntries(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	return append(entries, payout...), nil, nil
}

// stripOrphanAvoirLettrage clears the lettrage of every client line lettered
// with a credit note reference that has no refund settlement in the batch.
func (g *Generator) stripOrphanAvoirLettrage(txs []NormalizedTransaction, entries []AccountingEntry) []AccountingEntry {
	refunded := make(map[string]struct{})
	avoirs := make(map[string]struct{})

	for _, tx := range txs {
		switch tx.SpecialType {
		case SpecialRefundSettlement:
			refunded[tx.Reference] = struct{}{}
		case SpecialReturnsAvoir:
			avoirs[tx.Reference] = struct{}{}
		}
	}

	for ref := range refunded {
		delete(avoirs, ref)
	}

	if len(avoirs) == 0 {
		return entries
	}

	out := make([]AccountingEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		if _, orphan := avoirs[e.Lettrage]; orphan && strings.HasPrefix(e.Account, g.cfg.Accounts.ClientClass) {
			out[i] = e.WithLettrage("")
		}
	}

	return out
}

// clientLettrage is the reconciliation key of a client line.
func (g *Generator) clientLettrage(tx NormalizedTransaction) string {
	ch, _ := g.cfg.Channel(tx.Channel)
	if ch.LettrageByPayoutCycle {
		if ref := pointers.StringValue(tx.PayoutReference); ref != "" {
			return ref
		}
	}

	return tx.Reference
}

func (g *Generator) label(prefix, reference, suffix string) string {
	return prefix + " " + reference + " " + suffix
}
