package accounting

import (
	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
)

// CommissionEntries posts the marketplace commission of a sale or refund.
//
// A negative commission_ttc is a commission charged on a sale and debits the
// supplier (or expense) side; a positive one is a refunded commission and
// reverses the lines. With an expense account and a known HT figure the
// deductible VAT is split out when a VAT-deductible account is configured.
func (g *Generator) CommissionEntries(tx NormalizedTransaction) ([]AccountingEntry, error) {
	if !g.cfg.IsMarketplace(tx.Channel) {
		return nil, nil
	}

	ttc := safe.Round2(tx.CommissionTTC)
	if ttc.IsZero() {
		return nil, nil
	}

	client, err := g.cfg.ClientAccount(tx.Channel)
	if err != nil {
		return nil, err
	}

	sign := minusOne
	if ttc.IsNegative() {
		sign = one
	}

	ttc = ttc.Abs()
	ht := safe.Round2(tx.CommissionHT).Abs()
	ch, _ := g.cfg.Channel(tx.Channel)

	b := newBatch(header{
		date:      tx.Date,
		journal:   g.cfg.Journals.Miscellaneous,
		piece:     tx.Reference,
		channel:   tx.Channel,
		label:     g.label(constant.LabelCommission, tx.Reference, g.cfg.ChannelName(tx.Channel)),
		entryType: EntryCommission,
	})

	switch {
	case ch.ExpenseAccount == "":
		supplier, err := g.cfg.SupplierAccount(tx.Channel)
		if err != nil {
			return nil, err
		}

		b.post(supplier, ttc.Mul(sign), "")
	case ht.IsZero():
		b.post(ch.ExpenseAccount, ttc.Mul(sign), "")
	default:
		vat := ttc.Sub(ht)
		if deductible := g.cfg.Accounts.VATDeductible; deductible != "" && vat.IsPositive() {
			b.post(ch.ExpenseAccount, ht.Mul(sign), "")
			b.post(deductible, vat.Mul(sign), "")
		} else {
			b.post(ch.ExpenseAccount, ttc.Mul(sign), "")
		}
	}

	b.post(client, ttc.Mul(sign).Neg(), g.clientLettrage(tx))

	return b.verified()
}
