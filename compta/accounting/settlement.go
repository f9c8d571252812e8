package accounting

import (
	"context"
	"fmt"

	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
)

// SettlementEntries posts the PSP side of a storefront transaction: the gross
// (net + commission) leaves the client account, the net reaches the PSP and
// the commission is expensed. Refunds carry negative inputs and mirror
// naturally.
//
// A transaction without payment method yields nothing. An unknown PSP yields
// an unknown_psp anomaly and no entries.
func (g *Generator) SettlementEntries(ctx context.Context, tx NormalizedTransaction) ([]AccountingEntry, []Anomaly, error) {
	method := pointers.StringValue(tx.PaymentMethod)
	if method == "" {
		return nil, nil, nil
	}

	psp, ok := g.cfg.PSP(method)
	if !ok {
		g.logger.Log(ctx, log.LevelWarn, "settlement skipped for unknown psp",
			log.Reference(tx.Reference), log.Channel(tx.Channel), log.String("psp", method))

		return nil, []Anomaly{{
			Type:        constant.AnomalyUnknownPSP,
			Severity:    SeverityWarning,
			Reference:   tx.Reference,
			Channel:     tx.Channel,
			Detail:      fmt.Sprintf("payment method %q has no configured psp", method),
			ActualValue: pointers.String(method),
		}}, nil
	}

	client, err := g.cfg.ClientAccount(tx.Channel)
	if err != nil {
		return nil, nil, err
	}

	net := safe.Round2(tx.NetAmount)
	commission := safe.Round2(tx.CommissionTTC)
	gross := net.Add(commission)
	payoutRef := pointers.StringValue(tx.PayoutReference)

	date := tx.Date
	if tx.PayoutDate != nil {
		date = *tx.PayoutDate
	}

	label := g.label(constant.LabelSettlement, tx.Reference, psp.Label(method))
	if tx.SpecialType == SpecialOrphanSettlement {
		label = constant.LabelOrphan + " " + label
	}

	b := newBatch(header{
		date:      date,
		journal:   g.cfg.Journals.Settlement,
		piece:     tx.Reference,
		channel:   tx.Channel,
		label:     label,
		entryType: EntrySettlement,
	})

	if psp.IntermediaryAccount == "" {
		b.post(psp.Account, net, payoutRef)
		b.postAs(EntryFee, psp.CommissionAccount, commission, "")
		b.post(client, gross.Neg(), tx.Reference)
	} else {
		if !gross.IsZero() {
			b.post(psp.IntermediaryAccount, gross, payoutRef)
			b.post(client, gross.Neg(), tx.Reference)
		}

		if !commission.IsZero() {
			b.postAs(EntryFee, psp.CommissionAccount, commission, "")
			b.post(psp.IntermediaryAccount, commission.Neg(), payoutRef)
		}
	}

	entries, err := b.verified()

	return entries, nil, err
}
