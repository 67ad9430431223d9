package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountType selects how Value is applied to a subtotal.
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

type Discount struct {
	gorm.Model
	Code      string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	QRPayload string `gorm:"size:120;index" json:"qrPayload,omitempty"`
	Detail    string `json:"detail"`

	DiscountType DiscountType    `json:"discountType"`
	Value        decimal.Decimal `gorm:"type:decimal(10,2)" json:"value"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	MinimumOrderAmount decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"minimumOrderAmount"`

	MaxRedemptionsPerUser *int `json:"maxRedemptionsPerUser,omitempty"`
	TotalRedemptionLimit  *int `json:"totalRedemptionLimit,omitempty"`

	// Running counter; mutated only by the redemption increment inside the
	// checkout transaction.
	CurrentRedemptionCount int `gorm:"default:0" json:"currentRedemptionCount"`

	// No column default on purpose: gorm skips zero-valued fields that carry
	// one, which would turn an inactive row active at insert.
	IsActive bool `json:"isActive"`

	Redemptions []DiscountRedemption `json:"-"`
}

// WithinWindow reports whether now falls inside [StartDate, EndDate].
func (d *Discount) WithinWindow(now time.Time) bool {
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// DiscountRedemption is the immutable record of one use of a discount. The
// per-user redemption count is always derived by counting these rows.
type DiscountRedemption struct {
	gorm.Model
	DiscountID uint     `gorm:"index:idx_redemption_user,priority:1" json:"discountId"`
	Discount   Discount `json:"-"`

	UserID uint `gorm:"index:idx_redemption_user,priority:2" json:"userId"`
	User   User `json:"-"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	AmountApplied decimal.Decimal `gorm:"type:decimal(10,2)" json:"amountApplied"`
	RedeemedAt    time.Time       `json:"redeemedAt"`
}
