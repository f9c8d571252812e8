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

// LettrageChecker verifies that every lettrage code on PSP transit accounts
// reconciles to zero.
type LettrageChecker struct {
	cfg *config.AppConfig
}

// NewLettrageChecker creates a lettrage checker.
func NewLettrageChecker(cfg *config.AppConfig) *LettrageChecker {
	return &LettrageChecker{cfg: cfg}
}

// Name implements Checker.
func (c *LettrageChecker) Name() string { return "lettrage" }

type lettrageGroup struct {
	code          string
	channel       string
	debit, credit decimal.Decimal
}

// Check implements Checker.
func (c *LettrageChecker) Check(_ context.Context, in Input) []accounting.Anomaly {
	prefix := c.cfg.Accounts.PSPTransitPrefix

	var order []*lettrageGroup

	groups := make(map[string]*lettrageGroup)

	for _, e := range in.Entries {
		if e.Lettrage == "" || !strings.HasPrefix(e.Account, prefix) {
			continue
		}

		key := accounting.AccountGroup(e.Account) + "/" + e.Lettrage

		g, ok := groups[key]
		if !ok {
			g = &lettrageGroup{code: e.Lettrage, channel: e.Channel}
			groups[key] = g
			order = append(order, g)
		}

		g.debit = g.debit.Add(e.Debit)
		g.credit = g.credit.Add(e.Credit)
	}

	var out []accounting.Anomaly

	for _, g := range order {
		if safe.Within(g.debit, g.credit, centTolerance) {
			continue
		}

		out = append(out, accounting.Anomaly{
			Type:          constant.AnomalyLettrageImbalance,
			Severity:      accounting.SeverityError,
			Reference:     g.code,
			Channel:       g.channel,
			Detail:        fmt.Sprintf("lettrage %s does not balance on psp transit accounts", g.code),
			ExpectedValue: pointers.String(safe.Round2(g.debit).StringFixed(2)),
			ActualValue:   pointers.String(safe.Round2(g.credit).StringFixed(2)),
		})
	}

	return out
}
