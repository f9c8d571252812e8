package safe

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned when attempting to divide by zero.
var ErrDivisionByZero = errors.New("division by zero")

// CentPlaces is the number of decimals kept on every ledger amount.
const CentPlaces int32 = 2

var (
	hundredDecimal = decimal.NewFromInt(100)
	// Cent is the smallest amount a ledger line can carry.
	Cent = decimal.New(1, -CentPlaces)
)

// Round2 rounds to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// Sum adds values and rounds the total to cents.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}

	return Round2(total)
}

// Within reports whether |a-b| <= tolerance.
func Within(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// DivideRound performs decimal division with rounding and zero check.
func DivideRound(numerator, denominator decimal.Decimal, places int32) (decimal.Decimal, error) {
	if denominator.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}

	return numerator.DivRound(denominator, places), nil
}

// ApplyRate returns base*rate/100 rounded to cents.
//
// Example:
//
//	vat := safe.ApplyRate(ht, decimal.NewFromInt(20)) // 100.00 -> 20.00
func ApplyRate(base, ratePercent decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(ratePercent).Div(hundredDecimal))
}

// SplitGross splits a tax-inclusive amount into its base and tax parts using
// ratePercent. The base is rounded to cents and the tax absorbs the remainder,
// so base+tax always equals the rounded gross.
//
// Example:
//
//	ht, tva, err := safe.SplitGross(decimal.NewFromInt(120), decimal.NewFromInt(20)) // 100.00, 20.00
func SplitGross(gross, ratePercent decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundredDecimal))

	base, err := DivideRound(gross, divisor, CentPlaces)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return base, Round2(gross).Sub(base), nil
}
