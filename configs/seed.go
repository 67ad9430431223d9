package configs

import (
	"log"
	"time"

	"localeats/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func intPtr(n int) *int { return &n }

// SeedDemo loads a small demo dataset: two accounts, two restaurants with
// menus, and three discounts. Idempotent, keyed on unique columns.
func SeedDemo() error {
	db := DB()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	customer := entity.User{
		Email:     "casey@example.com",
		Password:  string(hash),
		FirstName: "Casey",
		LastName:  "River",
		Role:      "customer",
	}
	if err := db.Where(entity.User{Email: customer.Email}).FirstOrCreate(&customer).Error; err != nil {
		return err
	}

	owner := entity.User{
		Email:     "mei@goldenwok.example.com",
		Password:  string(hash),
		FirstName: "Mei",
		LastName:  "Tan",
		Role:      "owner",
	}
	if err := db.Where(entity.User{Email: owner.Email}).FirstOrCreate(&owner).Error; err != nil {
		return err
	}

	ownerTwo := entity.User{
		Email:     "luca@trattoria.example.com",
		Password:  string(hash),
		FirstName: "Luca",
		LastName:  "Bianchi",
		Role:      "owner",
	}
	if err := db.Where(entity.User{Email: ownerTwo.Email}).FirstOrCreate(&ownerTwo).Error; err != nil {
		return err
	}

	wok := entity.Restaurant{
		Name:                     "Golden Wok",
		CuisineType:              "Chinese",
		Address:                  "88 Harbor St",
		OwnerID:                  owner.ID,
		DeliveryFee:              decimal.NewFromFloat(4.99),
		MinimumOrderAmount:       decimal.NewFromFloat(10.00),
		AcceptsDelivery:          true,
		AcceptsPickup:            true,
		EstimatedDeliveryMinutes: 45,
		EstimatedPickupMinutes:   20,
		IsOpen:                   true,
	}
	if err := db.Where(entity.Restaurant{Name: wok.Name}).FirstOrCreate(&wok).Error; err != nil {
		return err
	}

	trattoria := entity.Restaurant{
		Name:                     "Trattoria Nonna",
		CuisineType:              "Italian",
		Address:                  "12 Vine Ave",
		OwnerID:                  ownerTwo.ID,
		DeliveryFee:              decimal.NewFromFloat(3.49),
		MinimumOrderAmount:       decimal.NewFromFloat(15.00),
		AcceptsDelivery:          true,
		AcceptsPickup:            false,
		EstimatedDeliveryMinutes: 35,
		EstimatedPickupMinutes:   15,
		IsOpen:                   true,
	}
	if err := db.Where(entity.Restaurant{Name: trattoria.Name}).FirstOrCreate(&trattoria).Error; err != nil {
		return err
	}

	var menuCount int64
	db.Model(&entity.MenuItem{}).Count(&menuCount)
	if menuCount == 0 {
		items := []entity.MenuItem{
			{
				MenuName:     "Kung Pao Chicken",
				Description:  "Stir-fried chicken, peanuts, dried chili",
				BasePrice:    decimal.NewFromFloat(12.99),
				IsAvailable:  true,
				RestaurantID: wok.ID,
				Sizes: []entity.MenuItemSize{
					{Name: "Regular", PriceDelta: decimal.Zero},
					{Name: "Large", PriceDelta: decimal.NewFromFloat(3.00)},
				},
				AddOns: []entity.MenuItemAddOn{
					{Name: "Extra Chicken", Price: decimal.NewFromFloat(2.50)},
					{Name: "Steamed Rice", Price: decimal.NewFromFloat(1.50)},
				},
				Modifications: []entity.MenuItemModification{
					{Name: "Extra Spicy", Price: decimal.Zero},
					{Name: "No Peanuts", Price: decimal.Zero},
				},
			},
			{
				MenuName:     "Vegetable Spring Rolls",
				Description:  "Four rolls with sweet chili dip",
				BasePrice:    decimal.NewFromFloat(5.49),
				IsAvailable:  true,
				RestaurantID: wok.ID,
			},
			{
				MenuName:     "Margherita Pizza",
				Description:  "San Marzano tomato, mozzarella, basil",
				BasePrice:    decimal.NewFromFloat(14.50),
				IsAvailable:  true,
				RestaurantID: trattoria.ID,
				Sizes: []entity.MenuItemSize{
					{Name: "12 inch", PriceDelta: decimal.Zero},
					{Name: "16 inch", PriceDelta: decimal.NewFromFloat(5.00)},
				},
				AddOns: []entity.MenuItemAddOn{
					{Name: "Burrata", Price: decimal.NewFromFloat(4.00)},
				},
			},
			{
				MenuName:     "Tiramisu",
				Description:  "House-made, serves one",
				BasePrice:    decimal.NewFromFloat(7.00),
				IsAvailable:  false,
				RestaurantID: trattoria.ID,
			},
		}
		for i := range items {
			if err := db.Create(&items[i]).Error; err != nil {
				return err
			}
		}
	}

	now := time.Now()
	discounts := []entity.Discount{
		{
			Code:                  "WELCOME20",
			Detail:                "20% off your first order",
			DiscountType:          entity.DiscountPercentage,
			Value:                 decimal.NewFromInt(20),
			StartDate:             now.AddDate(0, -1, 0),
			EndDate:               now.AddDate(1, 0, 0),
			MaxRedemptionsPerUser: intPtr(1),
			IsActive:              true,
		},
		{
			Code:         "SAVE5",
			Detail:       "$5 off orders over $25",
			DiscountType: entity.DiscountFixedAmount,
			Value:        decimal.NewFromInt(5),
			StartDate:    now.AddDate(0, -1, 0),
			EndDate:      now.AddDate(0, 6, 0),
			MinimumOrderAmount: decimal.NullDecimal{
				Decimal: decimal.NewFromInt(25), Valid: true,
			},
			TotalRedemptionLimit: intPtr(500),
			IsActive:             true,
		},
		{
			Code:         "TABLETENT10",
			QRPayload:    "localeats://discount/TABLETENT10",
			Detail:       "10% off, scan at the counter",
			DiscountType: entity.DiscountPercentage,
			Value:        decimal.NewFromInt(10),
			StartDate:    now.AddDate(0, -1, 0),
			EndDate:      now.AddDate(0, 3, 0),
			IsActive:     true,
		},
	}
	for i := range discounts {
		if err := db.Where(entity.Discount{Code: discounts[i].Code}).FirstOrCreate(&discounts[i]).Error; err != nil {
			return err
		}
	}

	log.Println("demo data seeded")
	return nil
}
