package discount

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Apply stacks discounts on price multiplicatively, highest percentage
// first. Percentages are never summed: 10% and 20% yield price × 0.8 × 0.9.
// The input slice is not modified.
func Apply(price decimal.Decimal, discounts []Discount) decimal.Decimal {
	if len(discounts) == 0 {
		return price
	}

	sorted := slices.Clone(discounts)
	slices.SortStableFunc(sorted, func(a, b Discount) int {
		return cmp.Compare(b.Percentage, a.Percentage)
	})

	acc := price
	for _, d := range sorted {
		acc = acc.Mul(Factor(d.Percentage))
	}
	return acc
}

// Factor returns the multiplier (1 - percentage/100) for a single discount.
func Factor(percentage int) decimal.Decimal {
	return one.Sub(decimal.NewFromInt(int64(percentage)).Div(hundred))
}
