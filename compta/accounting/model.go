package accounting

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a normalized transaction.
type TransactionType string

const (
	TypeSale   TransactionType = "sale"
	TypeRefund TransactionType = "refund"
)

// NormalizedTransaction is one order line produced by a channel parser.
//
// Reference is not globally unique; it groups the rows of one order. Nil
// pointers mean "not known yet" (payout not happened, no PSP involved).
// CommissionTTC and CommissionHT are signed: negative is a commission charged on a sale.
type NormalizedTransaction struct {
	Reference       string          `json:"reference"`
	Channel         string          `json:"channel"`
	Date            time.Time       `json:"date"`
	Type            TransactionType `json:"type"`
	AmountHT        decimal.Decimal `json:"amountHt"`
	AmountTVA       decimal.Decimal `json:"amountTva"`
	AmountTTC       decimal.Decimal `json:"amountTtc"`
	ShippingHT      decimal.Decimal `json:"shippingHt"`
	ShippingTVA     decimal.Decimal `json:"shippingTva"`
	TVARate         decimal.Decimal `json:"tvaRate"`
	CountryCode     string          `json:"countryCode"`
	CommissionTTC   decimal.Decimal `json:"commissionTtc"`
	CommissionHT    decimal.Decimal `json:"commissionHt"`
	NetAmount       decimal.Decimal `json:"netAmount"`
	PayoutDate      *time.Time      `json:"payoutDate,omitempty"`
	PayoutReference *string         `json:"payoutReference,omitempty"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty"`
	SpecialType     SpecialType     `json:"specialType,omitempty"`
}

// IsRefund reports whether the transaction posts in the refund direction.
func (tx NormalizedTransaction) IsRefund() bool {
	return tx.Type == TypeRefund || tx.SpecialType == SpecialReturnsAvoir
}

// IsAllZero reports whether TTC, commission and net are all exactly zero.
func (tx NormalizedTransaction) IsAllZero() bool {
	return tx.AmountTTC.IsZero() && tx.CommissionTTC.IsZero() && tx.NetAmount.IsZero()
}

// PayoutDetail is one order inside a settlement batch.
type PayoutDetail struct {
	OrderReference string          `json:"orderReference"`
	PaymentMethod  *string         `json:"paymentMethod,omitempty"`
	GrossAmount    decimal.Decimal `json:"grossAmount"`
	FeeAmount      decimal.Decimal `json:"feeAmount"`
	NetAmount      decimal.Decimal `json:"netAmount"`
}

// PayoutSummary aggregates one PSP or marketplace settlement batch.
//
// A nil PSPType means several PSPs were mixed in one payout. With Details the
// payout is posted order by order instead of as one aggregate pair.
type PayoutSummary struct {
	PayoutDate      time.Time       `json:"payoutDate"`
	Channel         string          `json:"channel"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PSPType         *string         `json:"pspType,omitempty"`
	PayoutReference string          `json:"payoutReference"`
	Details         []PayoutDetail  `json:"details,omitempty"`
}

// EntryType tags the business origin of a ledger line.
type EntryType string

const (
	EntrySale       EntryType = "sale"
	EntryRefund     EntryType = "refund"
	EntrySettlement EntryType = "settlement"
	EntryCommission EntryType = "commission"
	EntryPayout     EntryType = "payout"
	EntryFee        EntryType = "fee"
)

// AccountingEntry is one immutable ledger line. Exactly one of Debit and Credit is non-zero.
type AccountingEntry struct {
	Date        time.Time       `json:"date"`
	Journal     string          `json:"journal"`
	Account     string          `json:"account"`
	Label       string          `json:"label"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	PieceNumber string          `json:"pieceNumber"`
	Lettrage    string          `json:"lettrage,omitempty"`
	Channel     string          `json:"channel"`
	EntryType   EntryType       `json:"entryType"`
}

// WithLettrage returns a copy of the entry carrying code as lettrage.
func (e AccountingEntry) WithLettrage(code string) AccountingEntry {
	e.Lettrage = code

	return e
}

// Severity guides user attention on an anomaly.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Anomaly is a business-rule inconsistency attached to a run. It never blocks generation.
type Anomaly struct {
	Type          string   `json:"type"`
	Severity      Severity `json:"severity"`
	Reference     string   `json:"reference"`
	Channel       string   `json:"channel"`
	Detail        string   `json:"detail"`
	ExpectedValue *string  `json:"expectedValue,omitempty"`
	ActualValue   *string  `json:"actualValue,omitempty"`
}
