package accounting

import (
	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
)

// DirectPaymentEntries posts a storefront payment collected without a PSP:
// the configured method account is debited and the client credited for TTC.
// Nothing is posted for a refund, an unconfigured method or a non-positive TTC.
func (g *Generator) DirectPaymentEntries(tx NormalizedTransaction) ([]AccountingEntry, error) {
	if tx.IsRefund() {
		return nil, nil
	}

	method := pointers.StringValue(tx.PaymentMethod)

	account, ok := g.cfg.DirectPaymentAccount(method)
	if !ok {
		return nil, nil
	}

	ttc := safe.Round2(tx.AmountTTC)
	if !ttc.IsPositive() {
		return nil, nil
	}

	client, err := g.cfg.ClientAccount(tx.Channel)
	if err != nil {
		return nil, err
	}

	b := newBatch(header{
		date:      tx.Date,
		journal:   g.cfg.Journals.Settlement,
		piece:     tx.Reference,
		channel:   tx.Channel,
		label:     g.label(constant.LabelDirectPayment, tx.Reference, method),
		entryType: EntrySettlement,
	})

	b.post(account, ttc, "")
	b.post(client, ttc.Neg(), tx.Reference)

	return b.verified()
}
