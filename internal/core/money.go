// Package core provides the expense record type and amount handling.
//
// This file contains the parse-and-validate step shared by the create and
// update paths, and the fixed-prefix rendering used by the list and summary.
package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is prepended to every rendered amount.
const CurrencyPrefix = "Rs. "

// ParseAmount validates amount text and converts it to a float.
//
// Only non-negative decimal numerals are accepted: ASCII digits with at most
// one decimal point and at least one digit. Whitespace, signs, exponents and
// separators are rejected.
//
// Examples:
//
//	ParseAmount("50")     -> 50, nil
//	ParseAmount("50.5")   -> 50.5, nil
//	ParseAmount(".5")     -> 0.5, nil
//	ParseAmount("12.3.4") -> 0, *ValidationError
//
// Numerals too large for a float64 are rejected as well.
func ParseAmount(s string) (float64, error) {
	if !isDecimalNumeral(s) {
		return 0, &ValidationError{Field: "amount", Value: s, Err: ErrInvalidAmount}
	}
	// decimal rejects a bare trailing point
	normalized := s
	if normalized[len(normalized)-1] == '.' {
		normalized += "0"
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Value: s, Err: ErrInvalidAmount}
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &ValidationError{Field: "amount", Value: s, Err: ErrInvalidAmount}
	}
	return f, nil
}

func isDecimalNumeral(s string) bool {
	digits, points := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			points++
			if points > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

// FormatAmount renders an amount with the currency prefix. Whole amounts have
// no decimals; fractional amounts have exactly two, rounded half to even on
// the exact binary value.
//
//	FormatAmount(50)    -> "Rs. 50"
//	FormatAmount(50.5)  -> "Rs. 50.50"
//	FormatAmount(2.675) -> "Rs. 2.67"
func FormatAmount(amount float64) string {
	return CurrencyPrefix + AmountText(amount)
}

// AmountText is FormatAmount without the prefix, suitable for an input field.
func AmountText(amount float64) string {
	if s, ok := nonFinite(amount); ok {
		return s
	}
	d := exactDecimal(amount)
	if d.IsInteger() {
		return d.String()
	}
	return d.StringFixedBank(2)
}

// FormatTotal renders a summary total, always with two decimals.
func FormatTotal(total float64) string {
	if s, ok := nonFinite(total); ok {
		return CurrencyPrefix + s
	}
	return CurrencyPrefix + exactDecimal(total).StringFixedBank(2)
}

// minExponent is below the smallest binary exponent, so the conversion keeps
// every digit of the float.
const minExponent = -1100

func exactDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(f, minExponent)
}

// nonFinite renders values decimal cannot hold. Stored rows and summed totals
// may overflow even though ParseAmount never returns them.
func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "nan", true
	case math.IsInf(f, 1):
		return "inf", true
	case math.IsInf(f, -1):
		return "-inf", true
	}
	return "", false
}
