// Package money does price arithmetic in fixed-point decimals so totals match
// the rounding shown to shoppers.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single cart line, in kilograms.
const MaxQuantity = 1000.0

// Line is one priced quantity.
type Line struct {
	Quantity  float64
	UnitPrice float64
}

// Round2 rounds half away from zero to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// LineTotal returns quantity × price, unrounded.
func LineTotal(quantity, unitPrice float64) decimal.Decimal {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice))
}

// Total sums every line and rounds the result to cents.
func Total(lines []Line) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineTotal(line.Quantity, line.UnitPrice))
	}
	return sum.Round(2).InexactFloat64()
}

// SumQuantities adds quantities without float drift.
func SumQuantities(quantities []float64) float64 {
	sum := decimal.Zero
	for _, q := range quantities {
		sum = sum.Add(decimal.NewFromFloat(q))
	}
	return sum.InexactFloat64()
}

// ValidQuantity reports whether q is a finite amount in [0, MaxQuantity].
// Non-finite values would panic in the decimal conversions above.
func ValidQuantity(q float64) bool {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return false
	}
	return q >= 0 && q <= MaxQuantity
}
