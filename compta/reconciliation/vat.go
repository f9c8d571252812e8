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

// rateTolerance is the accepted gap, in percentage points, between the
// declared and the configured VAT rate.
var rateTolerance = decimal.RequireFromString("0.1")

// VatChecker compares declared VAT with the configured rate table.
type VatChecker struct {
	cfg *config.AppConfig
}

// NewVatChecker creates a VAT checker.
func NewVatChecker(cfg *config.AppConfig) *VatChecker {
	return &VatChecker{cfg: cfg}
}

// Name implements Checker.
func (c *VatChecker) Name() string { return "vat" }

// Check implements Checker. It is a no-op when no VAT rate is configured.
func (c *VatChecker) Check(_ context.Context, in Input) []accounting.Anomaly {
	if len(c.cfg.VATRates) == 0 {
		return nil
	}

	var out []accounting.Anomaly

	for _, tx := range regular(in.Transactions) {
		out = append(out, c.checkRate(tx)...)
		out = append(out, c.checkAmounts(tx)...)
		out = append(out, checkTotal(tx)...)
	}

	return out
}

func (c *VatChecker) checkRate(tx accounting.NormalizedTransaction) []accounting.Anomaly {
	rate, ok := c.cfg.VATRate(tx.CountryCode)
	if !ok {
		return []accounting.Anomaly{{
			Type:        constant.AnomalyUnknownCountry,
			Severity:    accounting.SeverityError,
			Reference:   tx.Reference,
			Channel:     tx.Channel,
			Detail:      fmt.Sprintf("country code %q has no configured vat rate", tx.CountryCode),
			ActualValue: pointers.String(tx.CountryCode),
		}}
	}

	if safe.Within(tx.TVARate, rate, rateTolerance) {
		return nil
	}

	return []accounting.Anomaly{{
		Type:          constant.AnomalyVATRateMismatch,
		Severity:      accounting.SeverityWarning,
		Reference:     tx.Reference,
		Channel:       tx.Channel,
		Detail:        fmt.Sprintf("declared vat rate %s%% differs from %s%% configured for %s", tx.TVARate, rate, tx.CountryCode),
		ExpectedValue: pointers.String(rate.String()),
		ActualValue:   pointers.String(tx.TVARate.String()),
	}}
}

// checkAmounts recomputes product and shipping VAT from the declared rate and
// merges both mismatches into one anomaly.
func (c *VatChecker) checkAmounts(tx accounting.NormalizedTransaction) []accounting.Anomaly {
	var (
		details          []string
		expected, actual decimal.Decimal
	)

	wantProduct := safe.ApplyRate(tx.AmountHT, tx.TVARate)
	if !safe.Within(tx.AmountTVA, wantProduct, centTolerance) {
		details = append(details, fmt.Sprintf("product vat %s, expected %s", tx.AmountTVA.StringFixed(2), wantProduct.StringFixed(2)))
		expected, actual = expected.Add(wantProduct), actual.Add(tx.AmountTVA)
	}

	wantShipping := safe.ApplyRate(tx.ShippingHT, tx.TVARate)
	if !safe.Within(tx.ShippingTVA, wantShipping, centTolerance) {
		details = append(details, fmt.Sprintf("shipping vat %s, expected %s", tx.ShippingTVA.StringFixed(2), wantShipping.StringFixed(2)))
		expected, actual = expected.Add(wantShipping), actual.Add(tx.ShippingTVA)
	}

	if len(details) == 0 {
		return nil
	}

	return []accounting.Anomaly{{
		Type:          constant.AnomalyVATAmountMismatch,
		Severity:      accounting.SeverityWarning,
		Reference:     tx.Reference,
		Channel:       tx.Channel,
		Detail:        strings.Join(details, "; "),
		ExpectedValue: pointers.String(expected.StringFixed(2)),
		ActualValue:   pointers.String(actual.StringFixed(2)),
	}}
}

func checkTotal(tx accounting.NormalizedTransaction) []accounting.Anomaly {
	sum := safe.Sum(tx.AmountHT, tx.AmountTVA, tx.ShippingHT, tx.ShippingTVA)
	if safe.Within(tx.AmountTTC, sum, centTolerance) {
		return nil
	}

	return []accounting.Anomaly{{
		Type:          constant.AnomalyTTCMismatch,
		Severity:      accounting.SeverityWarning,
		Reference:     tx.Reference,
		Channel:       tx.Channel,
		Detail:        fmt.Sprintf("ttc %s does not match ht and vat components %s", tx.AmountTTC.StringFixed(2), sum.StringFixed(2)),
		ExpectedValue: pointers.String(sum.StringFixed(2)),
		ActualValue:   pointers.String(tx.AmountTTC.StringFixed(2)),
	}}
}
