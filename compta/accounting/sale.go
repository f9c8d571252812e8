package accounting

import (
	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
)

// SaleEntries posts a sale or a credit note: client for TTC against revenue,
// shipping and VAT. Refunds and returns_avoir rows reverse every direction.
//
// Components are taken as absolute values when TTC is negative, the direction
// comes from the transaction type alone.
func (g *Generator) SaleEntries(tx NormalizedTransaction) ([]AccountingEntry, error) {
	client, err := g.cfg.ClientAccount(tx.Channel)
	if err != nil {
		return nil, err
	}

	ht := safe.Round2(tx.AmountHT)
	tva := safe.Round2(tx.AmountTVA)
	ttc := safe.Round2(tx.AmountTTC)
	shipHT := safe.Round2(tx.ShippingHT)
	shipTVA := safe.Round2(tx.ShippingTVA)

	if ttc.IsNegative() {
		ht, tva, ttc, shipHT, shipTVA = ht.Neg(), tva.Neg(), ttc.Neg(), shipHT.Neg(), shipTVA.Neg()
	}

	sign, prefix, entryType := one, constant.LabelSale, EntrySale
	if tx.IsRefund() {
		sign, prefix, entryType = minusOne, constant.LabelRefund, EntryRefund
	}

	code := g.cfg.ChannelCode(tx.Channel)
	accounts := g.cfg.Accounts

	b := newBatch(header{
		date:      tx.Date,
		journal:   g.cfg.SalesJournal(tx.Channel),
		piece:     tx.Reference,
		channel:   tx.Channel,
		label:     g.label(prefix, tx.Reference, g.cfg.ChannelName(tx.Channel)),
		entryType: entryType,
	})

	b.post(client, ttc.Mul(sign), g.clientLettrage(tx))

	revenue := ht
	if accounts.ShippingPrefix == "" {
		revenue = ht.Add(shipHT)
	}

	b.post(BuildAccount(accounts.SalePrefix, code, tx.CountryCode), revenue.Mul(sign).Neg(), "")

	if accounts.ShippingPrefix != "" {
		zone := g.cfg.ShippingZoneCode(ResolveShippingZone(tx.CountryCode, g.cfg))
		b.post(BuildShippingAccount(accounts.ShippingPrefix, code, zone), shipHT.Mul(sign).Neg(), "")
	}

	b.post(BuildAccount(accounts.VATPrefix, code, tx.CountryCode), tva.Add(shipTVA).Mul(sign).Neg(), "")

	return b.verified()
}
