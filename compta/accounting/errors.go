package accounting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorCode is a domain error code used by the accounting engine.
type ErrorCode string

const (
	// ErrorUnbalancedEntries indicates a generator produced debit != credit.
	ErrorUnbalancedEntries ErrorCode = "0201"
	// ErrorUnknownSpecialType indicates a special_type tag outside the known set.
	ErrorUnknownSpecialType ErrorCode = "0202"
	// ErrorInvalidInput indicates a malformed transaction or payout record.
	ErrorInvalidInput ErrorCode = "0203"
)

// ErrUnbalanced is matched by every *BalanceError.
var ErrUnbalanced = errors.New(string(ErrorUnbalancedEntries) + ": entries do not balance")

// DomainError represents a structured accounting validation error.
type DomainError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewDomainError creates a domain error with code, field, and message.
func NewDomainError(code ErrorCode, field, message string) error {
	return DomainError{Code: code, Field: field, Message: message}
}

// BalanceError carries the rounded totals of an unbalanced batch.
type BalanceError struct {
	Reference string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%s: unbalanced entries for %q (debit=%s credit=%s)",
		ErrorUnbalancedEntries, e.Reference, e.Debit.StringFixed(2), e.Credit.StringFixed(2))
}

// Unwrap lets errors.Is match ErrUnbalanced.
func (e *BalanceError) Unwrap() error {
	return ErrUnbalanced
}
