package accounting

import (
	"context"

	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
)

// MarketplacePayoutEntries posts what a marketplace transfers for one row.
//
// Untagged rows move net_amount from the supplier account to the bank once the
// payout date is known. Special rows post against their resolved counterpart;
// SUBSCRIPTION is dated on the transaction and offsets the client account.
func (g *Generator) MarketplacePayoutEntries(ctx context.Context, tx NormalizedTransaction) ([]AccountingEntry, error) {
	if tx.SpecialType == SpecialNone {
		return g.regularPayout(tx)
	}

	if tx.SpecialType == SpecialSubscription {
		return g.subscription(tx)
	}

	return g.specialPayout(ctx, tx)
}

func (g *Generator) regularPayout(tx NormalizedTransaction) ([]AccountingEntry, error) {
	net := safe.Round2(tx.NetAmount)
	if tx.PayoutDate == nil || net.IsZero() {
		return nil, nil
	}

	supplier, err := g.cfg.SupplierAccount(tx.Channel)
	if err != nil {
		return nil, err
	}

	b := newBatch(g.payoutHeader(tx, constant.LabelPayout, EntryPayout))
	b.post(g.cfg.Accounts.Bank, net, "")
	b.post(supplier, net.Neg(), "")

	return b.verified()
}

func (g *Generator) specialPayout(ctx context.Context, tx NormalizedTransaction) ([]AccountingEntry, error) {
	if tx.PayoutDate == nil {
		g.logger.Log(ctx, log.LevelWarn, "special line without payout date skipped",
			log.Reference(tx.Reference), log.Channel(tx.Channel), log.String("special_type", string(tx.SpecialType)))

		return nil, nil
	}

	net := safe.Round2(tx.NetAmount)
	if net.IsZero() {
		return nil, nil
	}

	counterpart, err := g.counterpart(tx)
	if err != nil {
		return nil, err
	}

	entryType := EntryPayout
	if tx.SpecialType == SpecialRefundPenalty {
		entryType = EntryFee
	}

	b := newBatch(g.payoutHeader(tx, tx.SpecialType.label(), entryType))
	b.post(g.cfg.Accounts.Bank, net, "")
	b.post(counterpart, net.Neg(), "")

	return b.verified()
}

// subscription posts a marketplace subscription fee. A negative net debits the
// client account; with a commission VAT rate, an expense account and a
// VAT-deductible account the counterpart is split into HT and VAT.
func (g *Generator) subscription(tx NormalizedTransaction) ([]AccountingEntry, error) {
	net := safe.Round2(tx.NetAmount)
	if net.IsZero() {
		return nil, nil
	}

	client, err := g.cfg.ClientAccount(tx.Channel)
	if err != nil {
		return nil, err
	}

	counterpart, err := g.counterpart(tx)
	if err != nil {
		return nil, err
	}

	sign := minusOne
	if net.IsNegative() {
		sign = one
	}

	ttc := net.Abs()
	ch, _ := g.cfg.Channel(tx.Channel)

	lettrage := ""
	if ch.LettrageByPayoutCycle {
		lettrage = pointers.StringValue(tx.PayoutReference)
	}

	h := g.payoutHeader(tx, tx.SpecialType.label(), EntryFee)
	h.date = tx.Date
	b := newBatch(h)

	b.post(client, ttc.Mul(sign), lettrage)

	deductible := g.cfg.Accounts.VATDeductible
	if ch.CommissionVATRate != nil && ch.ExpenseAccount != "" && deductible != "" {
		ht, vat, err := safe.SplitGross(ttc, *ch.CommissionVATRate)
		if err != nil {
			return nil, err
		}

		b.post(counterpart, ht.Mul(sign).Neg(), "")
		b.post(deductible, vat.Mul(sign).Neg(), "")
	} else {
		b.post(counterpart, ttc.Mul(sign).Neg(), "")
	}

	return b.verified()
}

// counterpart resolves the account offsetting a special line: the subscription
// account for SUBSCRIPTION, then the special account of the tag, then the
// supplier account.
func (g *Generator) counterpart(tx NormalizedTransaction) (string, error) {
	ch, _ := g.cfg.Channel(tx.Channel)
	if tx.SpecialType == SpecialSubscription && ch.SubscriptionAccount != "" {
		return ch.SubscriptionAccount, nil
	}

	if account, ok := g.cfg.SpecialAccount(string(tx.SpecialType)); ok {
		return account, nil
	}

	return g.cfg.SupplierAccount(tx.Channel)
}

func (g *Generator) payoutHeader(tx NormalizedTransaction, prefix string, entryType EntryType) header {
	piece := pointers.StringOr(tx.PayoutReference, tx.Reference)

	date := tx.Date
	if tx.PayoutDate != nil {
		date = *tx.PayoutDate
	}

	return header{
		date:      date,
		journal:   g.cfg.Journals.Bank,
		piece:     piece,
		channel:   tx.Channel,
		label:     g.label(prefix, piece, g.cfg.ChannelName(tx.Channel)),
		entryType: entryType,
	}
}
