package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the per-user staging area for a prospective order. It lives in the
// cart store only, never in the database; checkout consumes it whole.
type Cart struct {
	UserID uint `json:"userId"`

	// 0 while the cart is empty. All items belong to this restaurant; adding
	// an item from another restaurant replaces the cart.
	RestaurantID uint `json:"restaurantId"`

	Items []CartLineItem `json:"items"`

	AppliedDiscount *DiscountSnapshot `json:"appliedDiscount,omitempty"`

	Tip decimal.Decimal `json:"tip"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmpty reports whether the cart holds no line items.
func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

func (c *Cart) FindItem(lineID string) *CartLineItem {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return &c.Items[i]
		}
	}
	return nil
}

// SizeSelection is the size chosen for a cart line, price delta snapshotted.
type SizeSelection struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

// CartLineItem is one priced, quantified entry. Name and prices are captured
// when the item is added; later menu edits do not touch existing carts.
type CartLineItem struct {
	ID string `json:"id"`

	MenuItemID uint            `json:"menuItemId"`
	ItemName   string          `json:"itemName"`
	BasePrice  decimal.Decimal `json:"basePrice"`

	Size          *SizeSelection   `json:"size,omitempty"`
	AddOns        []OptionSnapshot `json:"addOns"`
	Modifications []OptionSnapshot `json:"modifications"`

	SpecialInstructions string `json:"specialInstructions,omitempty"`

	Quantity int `json:"quantity"`

	// (base + size delta + add-ons + modifications) × quantity, 2dp.
	ItemTotal decimal.Decimal `json:"itemTotal"`
}

// DiscountSnapshot pins the discount the user applied to the cart. The ledger
// revalidates against the live row at checkout.
type DiscountSnapshot struct {
	DiscountID         uint                `json:"discountId"`
	Code               string              `json:"code"`
	Type               DiscountType        `json:"type"`
	Value              decimal.Decimal     `json:"value"`
	MinimumOrderAmount decimal.NullDecimal `json:"minimumOrderAmount"`
}

// Clone returns a deep copy so store readers never alias store state.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = make([]CartLineItem, len(c.Items))
	for i, it := range c.Items {
		cp.Items[i] = it
		if it.Size != nil {
			size := *it.Size
			cp.Items[i].Size = &size
		}
		cp.Items[i].AddOns = append([]OptionSnapshot(nil), it.AddOns...)
		cp.Items[i].Modifications = append([]OptionSnapshot(nil), it.Modifications...)
	}
	if c.AppliedDiscount != nil {
		d := *c.AppliedDiscount
		cp.AppliedDiscount = &d
	}
	return &cp
}
