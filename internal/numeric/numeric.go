// Package numeric centralizes decimal parsing and the fixed-precision
// string rendering the wire format requires: money 2 decimals, quantities
// 3 decimals, unit prices 6 decimals.
package numeric

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// IsDecimal reports whether s parses as a non-negative decimal number.
func IsDecimal(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

// Parse parses a decimal string.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Money renders a parseable amount string to 2 decimal places. The input
// must already be validated; unparsable input is returned unchanged so a
// bad value never silently becomes "0.00".
func Money(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.StringFixed(2)
}

// Quantity renders a quantity to 3 decimal places.
func Quantity(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(3)
}

// QuantityString renders a parseable quantity string to 3 decimal places.
func QuantityString(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.StringFixed(3)
}

// UnitPrice renders a parseable unit price string to 6 decimal places.
func UnitPrice(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.StringFixed(6)
}

// Percent renders a percentage without trailing zeros ("25", "5.5").
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// ParseFloat parses decimal-looking text into a float64. Used by the
// reverse parser where the model expects a number.
func ParseFloat(s string) (float64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
