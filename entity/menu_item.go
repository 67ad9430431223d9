package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	MenuName    string          `json:"menuName"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"basePrice"`
	IsAvailable bool            `json:"isAvailable"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Sizes         []MenuItemSize         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sizes"`
	AddOns        []MenuItemAddOn        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addOns"`
	Modifications []MenuItemModification `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"modifications"`

	OrderItems []OrderItem `json:"-"`
}

// MenuItemSize is one selectable size with its price delta over the base price.
type MenuItemSize struct {
	gorm.Model
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `gorm:"type:decimal(10,2)" json:"priceDelta"`
}

type MenuItemAddOn struct {
	gorm.Model
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}

type MenuItemModification struct {
	gorm.Model
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}
