package repository

import (
	"testing"
	"time"

	"localeats/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.UserStats{},
		&entity.Restaurant{},
		&entity.MenuItem{}, &entity.MenuItemSize{}, &entity.MenuItemAddOn{}, &entity.MenuItemModification{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Discount{}, &entity.DiscountRedemption{},
	))
	return db
}

// Rows created with their flags off must read back off. The cart and checkout
// rejections (unavailable item, closed order type, paused discount) all hang
// on these columns.
func TestCreate_FalseFlagsSurviveInsert(t *testing.T) {
	db := newCatalogDB(t)
	repo := NewCatalogRepository(db)

	rest := entity.Restaurant{
		Name:               "Counter Only",
		DeliveryFee:        decimal.Zero,
		MinimumOrderAmount: decimal.Zero,
		AcceptsDelivery:    false,
		AcceptsPickup:      false,
		IsOpen:             false,
	}
	require.NoError(t, db.Create(&rest).Error)

	got, err := repo.FindRestaurant(rest.ID)
	require.NoError(t, err)
	require.False(t, got.AcceptsDelivery)
	require.False(t, got.AcceptsPickup)
	require.False(t, got.IsOpen)

	item := entity.MenuItem{
		MenuName:     "Off Menu",
		BasePrice:    decimal.RequireFromString("9.99"),
		IsAvailable:  false,
		RestaurantID: rest.ID,
	}
	require.NoError(t, db.Create(&item).Error)

	fresh, err := repo.FindMenuItem(item.ID)
	require.NoError(t, err)
	require.False(t, fresh.IsAvailable)

	disc := entity.Discount{
		Code:         "PAUSED",
		DiscountType: entity.DiscountPercentage,
		Value:        decimal.RequireFromString("10"),
		StartDate:    time.Now().Add(-time.Hour),
		EndDate:      time.Now().Add(time.Hour),
		IsActive:     false,
	}
	require.NoError(t, db.Create(&disc).Error)

	var pausedDisc entity.Discount
	require.NoError(t, db.First(&pausedDisc, disc.ID).Error)
	require.False(t, pausedDisc.IsActive)
}

func TestListRestaurants_SkipsClosed(t *testing.T) {
	db := newCatalogDB(t)
	repo := NewCatalogRepository(db)

	open := entity.Restaurant{Name: "Open Door", IsOpen: true}
	closed := entity.Restaurant{Name: "Shuttered", IsOpen: false}
	require.NoError(t, db.Create(&open).Error)
	require.NoError(t, db.Create(&closed).Error)

	rests, err := repo.ListRestaurants()
	require.NoError(t, err)
	require.Len(t, rests, 1)
	require.Equal(t, "Open Door", rests[0].Name)
}
