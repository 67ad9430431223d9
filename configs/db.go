package configs

import (
	"fmt"

	"localeats/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the configured database. sqlite serves dev and tests;
// postgres is the deployment target (its row locks back the discount
// redemption path).
func ConnectionDB(cfg *Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBSource)
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db = database
	return nil
}

// SetupDatabase migrates the ordering schema.
func SetupDatabase() error {
	return db.AutoMigrate(
		&entity.User{}, &entity.UserStats{},
		&entity.Restaurant{},
		&entity.MenuItem{}, &entity.MenuItemSize{}, &entity.MenuItemAddOn{}, &entity.MenuItemModification{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Discount{}, &entity.DiscountRedemption{},
	)
}
