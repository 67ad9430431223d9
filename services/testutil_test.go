package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"localeats/entity"
	"localeats/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. One connection keeps the
// memory store alive for the whole test and serializes concurrent writers the
// way sqlite would anyway.
func newTestDB(t *testing.T) *gorm.DB {
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

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	require.NoError(t, db.Create(value).Error)
}

// fakeGateway records charges and can be told to fail.
type fakeGateway struct {
	mu      sync.Mutex
	fail    error
	charges []PaymentCharge
}

func (g *fakeGateway) Charge(_ context.Context, in PaymentCharge) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail != nil {
		return "", g.fail
	}
	g.charges = append(g.charges, in)
	return fmt.Sprintf("txn_test_%d", len(g.charges)), nil
}

// fakeNotifier records confirmations and can be told to fail.
type fakeNotifier struct {
	mu   sync.Mutex
	fail error
	sent []OrderNotification
}

func (n *fakeNotifier) SendOrderConfirmation(_ context.Context, msg OrderNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, msg)
	return nil
}

// fixture wires every service against one test database with a known catalog.
type fixture struct {
	DB        *gorm.DB
	Store     *repository.MemoryCartStore
	Carts     *CartService
	Orders    *OrderService
	Discounts *DiscountService
	Gateway   *fakeGateway
	Notifier  *fakeNotifier

	Customer  entity.User
	Owner     entity.User
	Wok       entity.Restaurant // delivery+pickup, fee 4.99, min 10
	Trattoria entity.Restaurant // delivery only, fee 3.49, min 15
	KungPao   entity.MenuItem   // 12.99, size/add-on/mod children
	Rolls     entity.MenuItem   // 5.49, plain
	Pizza     entity.MenuItem   // 14.50, at Trattoria
	Tiramisu  entity.MenuItem   // unavailable
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{DB: db}

	f.Customer = entity.User{Email: "casey@example.com", Password: "x", FirstName: "Casey", LastName: "River", Role: "customer"}
	mustCreate(t, db, &f.Customer)
	f.Owner = entity.User{Email: "mei@example.com", Password: "x", FirstName: "Mei", LastName: "Tan", Role: "owner"}
	mustCreate(t, db, &f.Owner)

	f.Wok = entity.Restaurant{
		Name: "Golden Wok", CuisineType: "Chinese", Address: "88 Harbor St",
		OwnerID:     f.Owner.ID,
		DeliveryFee: d("4.99"), MinimumOrderAmount: d("10.00"),
		AcceptsDelivery: true, AcceptsPickup: true,
		EstimatedDeliveryMinutes: 45, EstimatedPickupMinutes: 20,
		IsOpen: true,
	}
	mustCreate(t, db, &f.Wok)

	f.Trattoria = entity.Restaurant{
		Name: "Trattoria Nonna", CuisineType: "Italian", Address: "12 Vine Ave",
		OwnerID:     f.Owner.ID,
		DeliveryFee: d("3.49"), MinimumOrderAmount: d("15.00"),
		AcceptsDelivery: true, AcceptsPickup: false,
		EstimatedDeliveryMinutes: 35, EstimatedPickupMinutes: 15,
		IsOpen: true,
	}
	mustCreate(t, db, &f.Trattoria)

	f.KungPao = entity.MenuItem{
		MenuName: "Kung Pao Chicken", BasePrice: d("12.99"), IsAvailable: true, RestaurantID: f.Wok.ID,
		Sizes: []entity.MenuItemSize{
			{Name: "Regular", PriceDelta: decimal.Zero},
			{Name: "Large", PriceDelta: d("3.00")},
		},
		AddOns: []entity.MenuItemAddOn{
			{Name: "Extra Chicken", Price: d("2.50")},
		},
		Modifications: []entity.MenuItemModification{
			{Name: "Extra Spicy", Price: decimal.Zero},
		},
	}
	mustCreate(t, db, &f.KungPao)

	f.Rolls = entity.MenuItem{MenuName: "Vegetable Spring Rolls", BasePrice: d("5.49"), IsAvailable: true, RestaurantID: f.Wok.ID}
	mustCreate(t, db, &f.Rolls)

	f.Pizza = entity.MenuItem{MenuName: "Margherita Pizza", BasePrice: d("14.50"), IsAvailable: true, RestaurantID: f.Trattoria.ID}
	mustCreate(t, db, &f.Pizza)

	f.Tiramisu = entity.MenuItem{MenuName: "Tiramisu", BasePrice: d("7.00"), IsAvailable: false, RestaurantID: f.Trattoria.ID}
	mustCreate(t, db, &f.Tiramisu)

	f.Store = repository.NewMemoryCartStore(time.Hour)
	f.Gateway = &fakeGateway{}
	f.Notifier = &fakeNotifier{}

	catalogRepo := repository.NewCatalogRepository(db)
	f.Discounts = NewDiscountService(db, repository.NewDiscountRepository(db))
	f.Carts = NewCartService(f.Store, catalogRepo, f.Discounts)
	f.Orders = NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		catalogRepo,
		f.Carts, f.Discounts, f.Gateway, f.Notifier, nil)
	return f
}

// seedDiscount inserts one discount row and returns it.
func (f *fixture) seedDiscount(t *testing.T, mutate func(*entity.Discount)) entity.Discount {
	t.Helper()
	disc := entity.Discount{
		Code:         "WELCOME20",
		DiscountType: entity.DiscountPercentage,
		Value:        d("20"),
		StartDate:    time.Now().Add(-24 * time.Hour),
		EndDate:      time.Now().Add(24 * time.Hour),
		IsActive:     true,
	}
	if mutate != nil {
		mutate(&disc)
	}
	mustCreate(t, f.DB, &disc)
	return disc
}

// addKungPao puts one plain Kung Pao line into the customer's cart.
func (f *fixture) addKungPao(t *testing.T) {
	t.Helper()
	_, _, err := f.Carts.AddItem(f.Customer.ID, &AddItemIn{MenuItemID: f.KungPao.ID, Quantity: 1})
	require.NoError(t, err)
}

// checkoutIn builds a valid delivery checkout request for the Wok.
func (f *fixture) checkoutIn() *CheckoutIn {
	return &CheckoutIn{
		RestaurantID:       f.Wok.ID,
		OrderType:          "delivery",
		PaymentMethodID:    "pm_card_visa",
		DeliveryStreet:     "42 Pine St",
		DeliveryCity:       "Springfield",
		DeliveryState:      "IL",
		DeliveryPostalCode: "62704",
	}
}
