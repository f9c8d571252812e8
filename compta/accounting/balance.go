package accounting

import (
	"github.com/ecomledger/lib-compta/v2/compta/safe"
	"github.com/shopspring/decimal"
)

// VerifyBalance sums debits and credits independently, rounds each to cents
// and returns a *BalanceError when they differ. The error reference is the
// piece number of the first entry.
func VerifyBalance(entries []AccountingEntry) error {
	debit, credit := Totals(entries)
	if debit.Equal(credit) {
		return nil
	}

	ref := ""
	if len(entries) > 0 {
		ref = entries[0].PieceNumber
	}

	return &BalanceError{Reference: ref, Debit: debit, Credit: credit}
}

// Totals returns the rounded debit and credit sums of entries.
func Totals(entries []AccountingEntry) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero

	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}

	return safe.Round2(debit), safe.Round2(credit)
}
