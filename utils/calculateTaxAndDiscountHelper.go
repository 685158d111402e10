package utils

import (
	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateTaxAmount is the tax-exclusive tax on amount at taxPercent.
func CalculateTaxAmount(amount decimal.Decimal, taxPercent decimal.Decimal) decimal.Decimal {
	if taxPercent.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(taxPercent).Div(decimalOneHundred)
}

// CalculateDiscountAmount returns subTotal * discount% rounded to 2 places.
// The percentage is clamped to [0, 100].
func CalculateDiscountAmount(subTotal decimal.Decimal, discountPercent decimal.Decimal) decimal.Decimal {
	if !discountPercent.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	if discountPercent.GreaterThan(decimalOneHundred) {
		discountPercent = decimalOneHundred
	}
	return subTotal.Mul(discountPercent).Div(decimalOneHundred).Round(2)
}

// LineTotal is qty * rate * (1 + gst/100), rounded to 2 places.
func LineTotal(qty, rate, gstPercent decimal.Decimal) decimal.Decimal {
	taxable := qty.Mul(rate)
	return taxable.Add(CalculateTaxAmount(taxable, gstPercent)).Round(2)
}
