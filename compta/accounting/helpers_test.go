//go:build unit

package accounting

import (
	"testing"
	"time"

	"github.com/ecomledger/lib-compta/v2/compta/config"
	"github.com/ecomledger/lib-compta/v2/compta/log"
	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
france_country_code: "250"
dom_tom_country_codes: ["974"]
vat_rates:
  "250": 20
  "276": 19
channels:
  shopify:
    name: Shopify
    code: "01"
    client_account: "41110000"
  amazon:
    name: Amazon
    code: "02"
    client_account: "41120000"
    supplier_account: "40120000"
    expense_account: "62220000"
    subscription_account: "62230000"
    commission_vat_rate: 20
    lettrage_by_payout_cycle: true
  manomano:
    name: ManoMano
    code: "03"
    client_account: "41130000"
    supplier_account: "40130000"
    subscription_account: "62231000"
  orphanshop:
    code: "09"
psps:
  stripe:
    name: Stripe
    account: "51150000"
    commission_account: "62700000"
  paypal:
    name: PayPal
    account: "51160000"
    commission_account: "62710000"
    intermediary_account: "51169000"
direct_payments:
  bank_transfer: "51210000"
special_accounts:
  REFUND_PENALTY: "67100000"
`

var (
	saleDate   = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	payoutDate = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	cfg, err := config.Parse([]byte(testConfigYAML))
	require.NoError(t, err)

	return cfg
}

func newTestGenerator(t *testing.T, mutate ...func(*config.AppConfig)) (*Generator, *log.Recorder) {
	t.Helper()

	cfg := testConfig(t)
	for _, m := range mutate {
		m(cfg)
	}

	rec := log.NewRecorder(log.LevelDebug)

	return NewGenerator(cfg, rec), rec
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func shopifySale() NormalizedTransaction {
	return NormalizedTransaction{
		Reference:   "#1001",
		Channel:     "shopify",
		Date:        saleDate,
		Type:        TypeSale,
		AmountHT:    dec("100"),
		AmountTVA:   dec("20"),
		AmountTTC:   dec("120"),
		TVARate:     dec("20"),
		CountryCode: "250",
	}
}

func stripeSale() NormalizedTransaction {
	tx := shopifySale()
	tx.PaymentMethod = pointers.String("stripe")
	tx.PayoutDate = pointers.Time(payoutDate)
	tx.PayoutReference = pointers.String("PO-1")
	tx.CommissionTTC = dec("5")
	tx.NetAmount = dec("115")

	return tx
}

func marketplaceSale(channel string) NormalizedTransaction {
	return NormalizedTransaction{
		Reference:       "M-2001",
		Channel:         channel,
		Date:            saleDate,
		Type:            TypeSale,
		AmountHT:        dec("100"),
		AmountTVA:       dec("20"),
		AmountTTC:       dec("120"),
		TVARate:         dec("20"),
		CountryCode:     "250",
		CommissionTTC:   dec("-12"),
		CommissionHT:    dec("-10"),
		NetAmount:       dec("108"),
		PayoutDate:      pointers.Time(payoutDate),
		PayoutReference: pointers.String("CYCLE-7"),
	}
}

// line is the compact form of an entry used in assertions.
type line struct {
	Account  string
	Debit    string
	Credit   string
	Lettrage string
}

func lines(entries []AccountingEntry) []line {
	out := make([]line, 0, len(entries))
	for _, e := range entries {
		out = append(out, line{
			Account:  e.Account,
			Debit:    e.Debit.StringFixed(2),
			Credit:   e.Credit.StringFixed(2),
			Lettrage: e.Lettrage,
		})
	}

	return out
}

func requireBalanced(t *testing.T, entries []AccountingEntry) {
	t.Helper()

	require.NoError(t, VerifyBalance(entries))

	for _, e := range entries {
		assert.False(t, e.Debit.IsZero() && e.Credit.IsZero(), "zero line emitted on %s", e.Account)
		assert.False(t, !e.Debit.IsZero() && !e.Credit.IsZero(), "two-sided line on %s", e.Account)
	}
}
