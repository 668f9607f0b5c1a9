package decimal

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// plain matches the wire notation: optional sign, digits, optional fraction.
// Exponent notation is accepted by shopspring but never valid on the wire.
var plain = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// FromString parses a wire decimal keeping its scale, with no rounding
func FromString(s string) (decimal.Decimal, error) {
	if !plain.MatchString(s) {
		return Zero, fmt.Errorf("not a plain decimal: %q", s)
	}
	return decimal.NewFromString(s)
}

// Format renders d in fixed notation with the scale it was parsed with,
// so "10.0000" stays "10.0000"
func Format(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
