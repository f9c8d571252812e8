//go:build unit

package accounting

import (
	"testing"

	"github.com/ecomledger/lib-compta/v2/compta/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionEntriesSupplierMode(t *testing.T) {
	t.Parallel()

	g, _ := newTestGenerator(t)

	tests := []struct {
		name       string
		commission string
		want       []line
	}{
		{
			name:       "charged on sale",
			commission: "-12",
			want: []line{
				{Account: "40130000", Debit: "12.00", Credit: "0.00"},
				{Account: "41130000", Debit: "0.00", Credit: "12.00", Lettrage: "M-2001"},
			},
		},
		{
			name:       "refunded",
			commission: "12",
			want: []line{
				{Account: "40130000", Debit: "0.00", Credit: "12.00"},
				{Account: "41130000", Debit: "12.00", Credit: "0.00", Lettrage: "M-2001"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tx := marketplaceSale("manomano")
			tx.CommissionTTC = dec(tt.commission)

			entries, err := g.CommissionEntries(tx)
			require.NoError(t, err)
			requireBalanced(t, entries)
			assert.Equal(t, tt.want, lines(entries))
			assert.Equal(t, "OD", entries[0].Journal)
			assert.Equal(t, EntryCommission, entries[0].EntryType)
			assert.Equal(t, "Commission M-2001 ManoMano", entries[0].Label)
		})
	}
}

func TestCommissionEntriesExpenseMode(t *testing.T) {
	t.Parallel()

	t.Run("vat split with deductible account", func(t *testing.T) {
		t.Parallel()

		g, _ := newTestGenerator(t, func(cfg *config.AppConfig) { cfg.Accounts.VATDeductible = "44566000" })

		entries, err := g.CommissionEntries(marketplaceSale("amazon"))
		require.NoError(t, err)
		requireBalanced(t, entries)

		assert.Equal(t, []line{
			{Account: "62220000", Debit: "10.00", Credit: "0.00"},
			{Account: "44566000", Debit: "2.00", Credit: "0.00"},
			{Account: "41120000", Debit: "0.00", Credit: "12.00", Lettrage: "CYCLE-7"},
		}, lines(entries))
	})

	t.Run("vat included without deductible account", func(t *testing.T) {
		t.Parallel()

		g, _ := newTestGenerator(t)

		entries, err := g.CommissionEntries(marketplaceSale("amazon"))
		require.NoError(t, err)
		requireBalanced(t, entries)

		assert.Equal(t, []line{
			{Account: "62220000", Debit: "12.00", Credit: "0.00"},
			{Account: "41120000", Debit: "0.00", Credit: "12.00", Lettrage: "CYCLE-7"},
		}, lines(entries))
	})

	t.Run("no ht figure", func(t *testing.T) {
		t.Parallel()

		g, _ := newTestGenerator(t, func(cfg *config.AppConfig) { cfg.Accounts.VATDeductible = "44566000" })

		tx := marketplaceSale("amazon")
		tx.CommissionHT = dec("0")
		tx.CommissionTTC = dec("12")

		entries, err := g.CommissionEntries(tx)
		require.NoError(t, err)

		assert.Equal(t, []line{
			{Account: "62220000", Debit: "0.00", Credit: "12.00"},
			{Account: "41120000", Debit: "12.00", Credit: "0.00", Lettrage: "CYCLE-7"},
		}, lines(entries))
	})
}

func TestCommissionEntriesSkips(t *testing.T) {
	t.Parallel()

	g, _ := newTestGenerator(t)

	tx := marketplaceSale("manomano")
	tx.CommissionTTC = dec("0")

	entries, err := g.CommissionEntries(tx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = g.CommissionEntries(stripeSale())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
