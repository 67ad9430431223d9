package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	CuisineType string `json:"cuisineType"`
	Address     string `json:"address"`

	OwnerID uint `json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	// Fee schedule consumed by the order pipeline.
	DeliveryFee        decimal.Decimal `gorm:"type:decimal(10,2)" json:"deliveryFee"`
	MinimumOrderAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"minimumOrderAmount"`

	AcceptsDelivery bool `json:"acceptsDelivery"`
	AcceptsPickup   bool `json:"acceptsPickup"`

	EstimatedDeliveryMinutes int `gorm:"default:45" json:"estimatedDeliveryMinutes"`
	EstimatedPickupMinutes   int `gorm:"default:20" json:"estimatedPickupMinutes"`

	IsOpen bool `json:"isOpen"`

	// Aggregate counter, incremented inside the checkout transaction.
	TotalOrders int `gorm:"default:0" json:"totalOrders"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
}

// SupportsOrderType reports whether the restaurant accepts the given order type.
func (r *Restaurant) SupportsOrderType(t OrderType) bool {
	switch t {
	case OrderTypeDelivery:
		return r.AcceptsDelivery
	case OrderTypePickup:
		return r.AcceptsPickup
	default:
		return false
	}
}
