// Package money canonicalizes monetary values: fixed-point decimals with two
// fractional digits, rounded half-up at the point a value is finalized.
// Intermediate arithmetic stays at full precision; callers round once.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Round canonicalizes d to two decimal places. shopspring's Round is
// half-away-from-zero, which for ties is exactly the half-up rule the
// ledger requires (also for negative balances).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromNull treats an absent amount as zero.
func FromNull(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Sum accumulates raw values and rounds the total once.
func Sum(vals ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return Round(total)
}

// Parse converts a decimal string into a canonical non-negative amount.
// It accepts both dot and comma separators ("12.34" and "12,34") and rounds
// a third fractional digit half-up. Signs and non-numeric input are rejected
// with ErrInvalidAmount.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if r != '.' && !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return Round(d), nil
}
