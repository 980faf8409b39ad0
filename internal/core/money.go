// Package core provides the expense record and the pure computations
// derived from a list of records.
//
// This file contains the amount parsing helpers. Amounts travel as strings
// on the wire and are only turned into decimals when something is computed.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimals totals are rounded to.
const AmountPlaces = 2

// ParseAmount converts a string-encoded amount to a decimal.
//
// It never fails: empty or unparsable input counts as zero. Both dot (12.34)
// and comma (12,34) decimal separators are accepted.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34
//	ParseAmount("-3,50") -> -3.5
//	ParseAmount("")      -> 0
//	ParseAmount("abc")   -> 0
func ParseAmount(s string) decimal.Decimal {
	d, err := ParseAmountStrict(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAmountStrict is like ParseAmount but reports malformed input.
func ParseAmountStrict(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// RoundAmount rounds half away from zero to AmountPlaces decimals,
// so 10.005 becomes 10.01 and -10.005 becomes -10.01.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}
