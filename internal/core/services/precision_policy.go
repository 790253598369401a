package services

import (
	"strings"

	"github.com/currconv/currency_conversion_app/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// DefaultPrecision is used when a user has no stored preference.
	DefaultPrecision = 2

	// MinPrecision and MaxPrecision bound the per-user fractional digit count.
	MinPrecision = 0
	MaxPrecision = 10

	// MaxCombinedDigits caps the total digit count of a quantized output
	// amount, counting both sides of the decimal point.
	MaxCombinedDigits = 15
)

// PrecisionPolicy resolves and applies per-user decimal precision. All
// methods are pure. Quantization rounds half-even (banker's rounding), which
// matches the default decimal context of the prior deployment.
type PrecisionPolicy struct{}

// Resolve returns the precision to use for a user. Stored values are
// validated at write time, but resolution clamps to [MinPrecision,
// MaxPrecision] anyway rather than trusting the store.
func (PrecisionPolicy) Resolve(pref *models.UserPreference) int {
	if pref == nil {
		return DefaultPrecision
	}
	p := pref.DecimalPrecision
	if p < MinPrecision {
		return MinPrecision
	}
	if p > MaxPrecision {
		return MaxPrecision
	}
	return p
}

// Quantize rounds amount to exactly precision fractional digits, half-even.
func (PrecisionPolicy) Quantize(amount decimal.Decimal, precision int) decimal.Decimal {
	return amount.RoundBank(int32(precision))
}

// CombinedDigitCount counts the digits of amount rendered at the given
// precision, ignoring the decimal separator and any sign. Trailing zeros up
// to the precision count: 92.00 at precision 2 has four digits.
func (PrecisionPolicy) CombinedDigitCount(amount decimal.Decimal, precision int) int {
	s := amount.Abs().StringFixed(int32(precision))
	return len(strings.ReplaceAll(s, ".", ""))
}
