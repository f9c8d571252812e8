package accounting

import (
	"time"

	"github.com/ecomledger/lib-compta/v2/compta/safe"
	"github.com/shopspring/decimal"
)

// header holds the fields shared by every line of one source document.
type header struct {
	date      time.Time
	journal   string
	piece     string
	channel   string
	label     string
	entryType EntryType
}

// batch accumulates the lines of one generator call in emission order.
type batch struct {
	header
	entries []AccountingEntry
}

func newBatch(h header) *batch {
	return &batch{header: h}
}

// post appends a line for a signed amount: positive debits account, negative
// credits it, zero emits nothing.
func (b *batch) post(account string, amount decimal.Decimal, lettrage string) {
	b.postAs(b.entryType, account, amount, lettrage)
}

func (b *batch) postAs(entryType EntryType, account string, amount decimal.Decimal, lettrage string) {
	amount = safe.Round2(amount)
	if amount.IsZero() {
		return
	}

	entry := AccountingEntry{
		Date:        b.date,
		Journal:     b.journal,
		Account:     account,
		Label:       b.label,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
		PieceNumber: b.piece,
		Lettrage:    lettrage,
		Channel:     b.channel,
		EntryType:   entryType,
	}

	if amount.IsPositive() {
		entry.Debit = amount
	} else {
		entry.Credit = amount.Neg()
	}

	b.entries = append(b.entries, entry)
}

// verified returns the lines once they balance.
func (b *batch) verified() ([]AccountingEntry, error) {
	if err := VerifyBalance(b.entries); err != nil {
		return nil, err
	}

	return b.entries, nil
}
