package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `gorm:"not null;default:customer" json:"role"`

	Orders           []Order      `json:"-"`
	RestaurantsOwned []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
}

// UserStats holds the per-user aggregate counters that checkout bumps
// inside the order transaction.
type UserStats struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	OrdersPlaced  int             `json:"ordersPlaced"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalSpent"`
	CuisinesTried []string        `gorm:"serializer:json" json:"cuisinesTried"`
}

// HasTriedCuisine reports whether the cuisine is already counted.
func (s *UserStats) HasTriedCuisine(cuisine string) bool {
	for _, c := range s.CuisinesTried {
		if c == cuisine {
			return true
		}
	}
	return false
}
