//go:build unit

package reconciliation

import (
	"testing"
	"time"

	"github.com/ecomledger/lib-compta/v2/compta/accounting"
	"github.com/ecomledger/lib-compta/v2/compta/config"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
vat_rates:
  "250": 20
  "276": 19
channels:
  shopify:
    client_account: "41110000"
  manomano:
    client_account: "41130000"
    supplier_account: "40130000"
matching_tolerance: "0.01"
`

var (
	marchDate = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	payout    = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	cfg, err := config.Parse([]byte(testConfigYAML))
	require.NoError(t, err)

	return cfg
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale(ref string) accounting.NormalizedTransaction {
	return accounting.NormalizedTransaction{
		Reference:     ref,
		Channel:       "shopify",
		Date:          marchDate,
		Type:          accounting.TypeSale,
		AmountHT:      dec("100"),
		AmountTVA:     dec("20"),
		AmountTTC:     dec("120"),
		TVARate:       dec("20"),
		CountryCode:   "250",
		CommissionTTC: dec("5"),
		NetAmount:     dec("115"),
		PayoutDate:    pointers.Time(payout),
	}
}

func refund(ref string) accounting.NormalizedTransaction {
	tx := sale(ref)
	tx.Type = accounting.TypeRefund
	tx.AmountHT, tx.AmountTVA, tx.AmountTTC = dec("-100"), dec("-20"), dec("-120")
	tx.CommissionTTC, tx.NetAmount = dec("-5"), dec("-115")

	return tx
}

func types(anomalies []accounting.Anomaly) []string {
	out := make([]string, 0, len(anomalies))
	for _, a := range anomalies {
		out = append(out, a.Type)
	}

	return out
}
