package services

import (
	"localeats/entity"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales-tax rate applied to the taxable base
// (subtotal - discount + delivery fee). Tips are never taxed.
var TaxRate = decimal.NewFromFloat(0.085)

// Quote is one fully-priced breakdown. Every component is rounded to cents
// at the point it is computed, so the parts always sum to the grand total.
type Quote struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	Tax            decimal.Decimal `json:"tax"`
	Tip            decimal.Decimal `json:"tip"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// LineItemTotal prices one cart line: base price plus size delta plus every
// selected add-on and modification, times quantity, rounded to cents.
func LineItemTotal(base decimal.Decimal, sizeDelta decimal.Decimal, addOns, mods []entity.OptionSnapshot, qty int) decimal.Decimal {
	unit := base.Add(sizeDelta)
	for _, a := range addOns {
		unit = unit.Add(a.Price)
	}
	for _, m := range mods {
		unit = unit.Add(m.Price)
	}
	if qty < 1 {
		qty = 1
	}
	return unit.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// CartSubtotal sums the already-rounded line totals.
func CartSubtotal(items []entity.CartLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.ItemTotal)
	}
	return sum.Round(2)
}

// DiscountValue turns an applied discount into a money amount against the
// given subtotal. Percentage discounts are rounded to cents here; the result
// is clamped into [0, subtotal] so a large fixed coupon can never push the
// taxable base negative.
func DiscountValue(d *entity.DiscountSnapshot, subtotal decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	var amt decimal.Decimal
	switch d.Type {
	case entity.DiscountPercentage:
		amt = subtotal.Mul(d.Value).Div(decimal.NewFromInt(100)).Round(2)
	case entity.DiscountFixedAmount:
		amt = d.Value.Round(2)
	default:
		return decimal.Zero
	}
	if amt.IsNegative() {
		return decimal.Zero
	}
	if amt.GreaterThan(subtotal) {
		return subtotal
	}
	return amt
}

// TaxOn computes sales tax on the taxable base, rounded to cents.
func TaxOn(taxable decimal.Decimal) decimal.Decimal {
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	return taxable.Mul(TaxRate).Round(2)
}

// PriceCart produces the full quote for a cart. The caller decides the
// delivery fee: the restaurant's fee for delivery orders, zero for pickup.
func PriceCart(cart *entity.Cart, deliveryFee decimal.Decimal) Quote {
	subtotal := CartSubtotal(cart.Items)
	discount := DiscountValue(cart.AppliedDiscount, subtotal)
	fee := deliveryFee.Round(2)
	if fee.IsNegative() {
		fee = decimal.Zero
	}

	taxable := subtotal.Sub(discount).Add(fee)
	tax := TaxOn(taxable)

	tip := cart.Tip.Round(2)
	if tip.IsNegative() {
		tip = decimal.Zero
	}

	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		DeliveryFee:    fee,
		Tax:            tax,
		Tip:            tip,
		GrandTotal:     subtotal.Sub(discount).Add(fee).Add(tax).Add(tip).Round(2),
	}
}

// RetotalOrder recomputes just the grand total after a tip edit. All other
// components are frozen at checkout and must not move. Returns the normalized
// tip and the new total so both land in the same UPDATE.
func RetotalOrder(o *entity.Order, newTip decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	tip := newTip.Round(2)
	if tip.IsNegative() {
		tip = decimal.Zero
	}
	grand := o.Subtotal.Sub(o.DiscountAmount).Add(o.DeliveryFee).Add(o.Tax).Add(tip).Round(2)
	return tip, grand
}
