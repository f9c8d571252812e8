//go:build unit

package accounting

import (
	"testing"

	"github.com/ecomledger/lib-compta/v2/compta/pointers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectPaymentEntries(t *testing.T) {
	t.Parallel()

	g, _ := newTestGenerator(t)

	tx := shopifySale()
	tx.PaymentMethod = pointers.String("bank_transfer")

	entries, err := g.DirectPaymentEntries(tx)
	require.NoError(t, err)
	requireBalanced(t, entries)

	assert.Equal(t, []line{
		{Account: "51210000", Debit: "120.00", Credit: "0.00"},
		{Account: "41110000", Debit: "0.00", Credit: "120.00", Lettrage: "#1001"},
	}, lines(entries))
	assert.Equal(t, EntrySettlement, entries[0].EntryType)
	assert.Equal(t, "Paiement direct #1001 bank_transfer", entries[0].Label)
}

func TestDirectPaymentEntriesSkips(t *testing.T) {
	t.Parallel()

	g, _ := newTestGenerator(t)

	tests := []struct {
		name   string
		method *string
		ttc    string
		refund bool
	}{
		{name: "no method", method: nil, ttc: "120"},
		{name: "unconfigured method", method: pointers.String("cheque"), ttc: "120"},
		{name: "zero amount", method: pointers.String("bank_transfer"), ttc: "0"},
		{name: "negative amount", method: pointers.String("bank_transfer"), ttc: "-120"},
		{name: "refund", method: pointers.String("bank_transfer"), ttc: "120", refund: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tx := shopifySale()
			tx.PaymentMethod = tt.method
			tx.AmountTTC = dec(tt.ttc)

			if tt.refund {
				tx.Type = TypeRefund
			}

			entries, err := g.DirectPaymentEntries(tx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
