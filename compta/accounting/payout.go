package accounting

import (
	"context"
	"fmt"

	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
)

// PayoutEntries posts one settlement batch into the transit account.
//
// Marketplaces with an expense account get a single transit/client pair. PSP
// channels get one transit/PSP pair, or one pair per detail in detailed mode.
// A payout mixing several PSPs is reported and not posted.
func (g *Generator) PayoutEntries(ctx context.Context, p PayoutSummary) ([]AccountingEntry, []Anomaly, error) {
	piece := p.PayoutReference
	if piece == "" {
		piece = p.Channel + "-" + p.PayoutDate.Format("2006-01-02")
	}

	if g.cfg.IsMarketplace(p.Channel) {
		entries, err := g.marketplaceAggregate(p, piece)

		return entries, nil, err
	}

	pspType := pointers.StringValue(p.PSPType)
	if pspType == "" {
		g.logger.Log(ctx, log.LevelWarn, "payout mixes several psps, not posted",
			log.Reference(piece), log.Channel(p.Channel), log.Amount("total", p.TotalAmount))

		return nil, []Anomaly{{
			Type:      constant.AnomalyMixedPSPPayout,
			Severity:  SeverityWarning,
			Reference: piece,
			Channel:   p.Channel,
			Detail:    "payout mixes several payment providers and cannot be posted automatically",
		}}, nil
	}

	if len(p.Details) > 0 {
		return g.detailedPayout(ctx, p, piece, pspType)
	}

	psp, ok := g.cfg.PSP(pspType)
	if !ok {
		return nil, []Anomaly{{
			Type:        constant.AnomalyUnknownPSP,
			Severity:    SeverityWarning,
			Reference:   piece,
			Channel:     p.Channel,
			Detail:      fmt.Sprintf("payout psp %q is not configured", pspType),
			ActualValue: pointers.String(pspType),
		}}, nil
	}

	total := safe.Round2(p.TotalAmount)
	if total.IsZero() {
		return nil, nil, nil
	}

	b := newBatch(g.aggregateHeader(p, piece, psp.Label(pspType)))
	b.post(g.cfg.Accounts.Transit, total, "")
	b.post(psp.ClearingAccount(), total.Neg(), p.PayoutReference)

	entries, err := b.verified()

	return entries, nil, err
}

func (g *Generator) marketplaceAggregate(p PayoutSummary, piece string) ([]AccountingEntry, error) {
	total := safe.Round2(p.TotalAmount)
	if !g.cfg.HasExpenseAccount(p.Channel) || total.IsZero() {
		return nil, nil
	}

	client, err := g.cfg.ClientAccount(p.Channel)
	if err != nil {
		return nil, err
	}

	b := newBatch(g.aggregateHeader(p, piece, g.cfg.ChannelName(p.Channel)))
	b.post(g.cfg.Accounts.Transit, total, "")
	b.post(client, total.Neg(), p.PayoutReference)

	return b.verified()
}

func (g *Generator) detailedPayout(ctx context.Context, p PayoutSummary, piece, pspType string) ([]AccountingEntry, []Anomaly, error) {
	var (
		entries   []AccountingEntry
		anomalies []Anomaly
	)

	for _, d := range p.Details {
		method := pointers.StringOr(d.PaymentMethod, pspType)

		psp, ok := g.cfg.PSP(method)
		if !ok {
			g.logger.Log(ctx, log.LevelWarn, "payout detail skipped for unknown psp",
				log.Reference(d.OrderReference), log.Channel(p.Channel), log.String("psp", method))

			anomalies = append(anomalies, Anomaly{
				Type:        constant.AnomalyUnknownPSPDetail,
				Severity:    SeverityWarning,
				Reference:   d.OrderReference,
				Channel:     p.Channel,
				Detail:      fmt.Sprintf("payout %s detail uses unconfigured psp %q", piece, method),
				ActualValue: pointers.String(method),
			})

			continue
		}

		net := safe.Round2(d.NetAmount)
		if net.IsZero() {
			continue
		}

		b := newBatch(g.aggregateHeader(p, piece, d.OrderReference))
		b.post(g.cfg.Accounts.Transit, net, "")
		b.post(psp.ClearingAccount(), net.Neg(), p.PayoutReference)

		pair, err := b.verified()
		if err != nil {
			return nil, nil, err
		}

		entries = append(entries, pair...)
	}

	return entries, anomalies, nil
}

func (g *Generator) aggregateHeader(p PayoutSummary, piece, suffix string) header {
	return header{
		date:      p.PayoutDate,
		journal:   g.cfg.Journals.Bank,
		piece:     piece,
		channel:   p.Channel,
		label:     g.label(constant.LabelPayout, piece, suffix),
		entryType: EntryPayout,
	}
}
