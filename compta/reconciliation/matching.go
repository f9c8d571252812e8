package reconciliation

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecomledger/lib-compta/v2/compta/accounting"
	"github.com/ecomledger/lib-compta/v2/compta/config"
	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
	"github.com/shopspring/decimal"
)

const digitsPattern = `(\d+)`

// MatchingChecker verifies that every order settles for its amount and that
// every refund points at a known sale.
type MatchingChecker struct {
	cfg *config.AppConfig
}

// NewMatchingChecker creates a matching checker.
func NewMatchingChecker(cfg *config.AppConfig) *MatchingChecker {
	return &MatchingChecker{cfg: cfg}
}

// Name implements Checker.
func (c *MatchingChecker) Name() string { return "matching" }

// Check implements Checker.
func (c *MatchingChecker) Check(_ context.Context, in Input) []accounting.Anomaly {
	txs := regular(in.Transactions)

	var out []accounting.Anomaly

	for _, tx := range txs {
		if tx.IsAllZero() {
			continue
		}

		out = append(out, c.checkAmount(tx)...)

		if tx.PayoutDate == nil {
			out = append(out, accounting.Anomaly{
				Type:      constant.AnomalyMissingPayout,
				Severity:  accounting.SeverityInfo,
				Reference: tx.Reference,
				Channel:   tx.Channel,
				Detail:    "no payout recorded yet",
			})
		}
	}

	return append(out, c.checkRefunds(txs, currentPeriod(in.Transactions))...)
}

// checkAmount compares TTC with the absolute value of commission plus net.
// Refund rows exported with a negative TTC are compared on its magnitude.
func (c *MatchingChecker) checkAmount(tx accounting.NormalizedTransaction) []accounting.Anomaly {
	settled := safe.Sum(tx.CommissionTTC, tx.NetAmount).Abs()
	ttc := tx.AmountTTC.Abs()

	if safe.Within(ttc, settled, c.cfg.Tolerance()) {
		return nil
	}

	return []accounting.Anomaly{{
		Type:          constant.AnomalyAmountMismatch,
		Severity:      accounting.SeverityWarning,
		Reference:     tx.Reference,
		Channel:       tx.Channel,
		Detail:        fmt.Sprintf("ttc %s does not match commission plus net %s", ttc.StringFixed(2), settled.StringFixed(2)),
		ExpectedValue: pointers.String(ttc.StringFixed(2)),
		ActualValue:   pointers.String(settled.StringFixed(2)),
	}}
}

type periodGroup struct {
	channel string
	refs    []string
}

func (c *MatchingChecker) checkRefunds(txs []accounting.NormalizedTransaction, current string) []accounting.Anomaly {
	sales := make(map[string]struct{})
	minSale, hasMin := decimal.Zero, false

	for _, tx := range txs {
		if tx.Type != accounting.TypeSale {
			continue
		}

		sales[tx.Reference] = struct{}{}

		if n, ok := referenceNumber(tx.Reference); ok && (!hasMin || n.LessThan(minSale)) {
			minSale, hasMin = n, true
		}
	}

	var (
		out              []accounting.Anomaly
		overdue, pending []*periodGroup
	)

	for _, tx := range txs {
		if tx.Type != accounting.TypeRefund {
			continue
		}

		if _, ok := sales[tx.Reference]; ok {
			continue
		}

		if period, ok := c.referencePeriod(tx); ok && current != "" {
			if period < current {
				overdue = addToGroup(overdue, tx)
			} else {
				pending = addToGroup(pending, tx)
			}

			continue
		}

		if n, ok := referenceNumber(tx.Reference); ok && hasMin && n.LessThan(minSale) {
			out = append(out, accounting.Anomaly{
				Type:      constant.AnomalyPriorPeriodRefund,
				Severity:  accounting.SeverityInfo,
				Reference: tx.Reference,
				Channel:   tx.Channel,
				Detail:    "refund of a sale from a previous period",
			})

			continue
		}

		out = append(out, accounting.Anomaly{
			Type:      constant.AnomalyOrphanRefund,
			Severity:  accounting.SeverityWarning,
			Reference: tx.Reference,
			Channel:   tx.Channel,
			Detail:    "refund without matching sale",
		})
	}

	for _, g := range overdue {
		out = append(out, accounting.Anomaly{
			Type:      constant.AnomalyOverdueManoManoPayout,
			Severity:  accounting.SeverityWarning,
			Reference: strings.Join(g.refs, ", "),
			Channel:   g.channel,
			Detail:    fmt.Sprintf("%d refunds from past periods still unsettled", len(g.refs)),
		})
	}

	for _, g := range pending {
		out = append(out, accounting.Anomaly{
			Type:      constant.AnomalyPendingManoManoPayout,
			Severity:  accounting.SeverityInfo,
			Reference: strings.Join(g.refs, ", "),
			Channel:   g.channel,
			Detail:    fmt.Sprintf("%d refunds of the current period awaiting payout", len(g.refs)),
		})
	}

	return out
}

// referencePeriod extracts the YYMM period encoded in a reference for
// channels configured with a reference period pattern.
func (c *MatchingChecker) referencePeriod(tx accounting.NormalizedTransaction) (string, bool) {
	pattern := c.cfg.ReferencePeriodPattern(tx.Channel)
	if pattern == "" {
		return "", false
	}

	m, err := safe.FindSubmatch(pattern, tx.Reference)
	if err != nil || len(m) < 3 {
		return "", false
	}

	return m[1] + m[2], true
}

// currentPeriod is the YYMM of the latest transaction date.
func currentPeriod(txs []accounting.NormalizedTransaction) string {
	var latest string

	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}

		if p := tx.Date.Format("0601"); p > latest {
			latest = p
		}
	}

	return latest
}

// referenceNumber reads the first digit run of a reference.
func referenceNumber(ref string) (decimal.Decimal, bool) {
	m, err := safe.FindSubmatch(digitsPattern, ref)
	if err != nil || len(m) < 2 {
		return decimal.Zero, false
	}

	n, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false
	}

	return n, true
}

func addToGroup(groups []*periodGroup, tx accounting.NormalizedTransaction) []*periodGroup {
	for _, g := range groups {
		if g.channel == tx.Channel {
			g.refs = append(g.refs, tx.Reference)

			return groups
		}
	}

	return append(groups, &periodGroup{channel: tx.Channel, refs: []string{tx.Reference}})
}
