package repository

import (
	"strings"
	"time"

	"localeats/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// OrderSummary is the list projection for a customer's order history.
type OrderSummary struct {
	ID             uint               `json:"id"`
	RestaurantID   uint               `json:"restaurantId"`
	RestaurantName string             `json:"restaurantName"`
	OrderType      entity.OrderType   `json:"orderType"`
	Status         entity.OrderStatus `json:"status"`
	GrandTotal     decimal.Decimal    `json:"grandTotal"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// OwnerOrderSummary is the list projection for a restaurant dashboard.
type OwnerOrderSummary struct {
	ID           uint               `json:"id"`
	UserID       uint               `json:"userId"`
	CustomerName string             `json:"customerName"`
	OrderType    entity.OrderType   `json:"orderType"`
	Status       entity.OrderStatus `json:"status"`
	GrandTotal   decimal.Decimal    `json:"grandTotal"`
	ItemCount    int64              `json:"itemCount"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// Create inserts the order row inside the caller's transaction.
func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// CreateItem inserts one snapshot line inside the caller's transaction.
func (r *OrderRepository) CreateItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// FindByID loads an order with its items, no ownership filter.
func (r *OrderRepository) FindByID(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("OrderItems").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// FindForUser loads an order with its items, scoped to the owning customer.
func (r *OrderRepository) FindForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindForRestaurant loads an order scoped to the restaurant it was placed with.
func (r *OrderRepository) FindForRestaurant(restaurantID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("OrderItems").
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListForUser returns the newest orders of one customer.
func (r *OrderRepository) ListForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("orders.id, orders.restaurant_id, restaurants.name AS restaurant_name, orders.order_type, orders.status, orders.grand_total, orders.created_at").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("orders.user_id = ?", userID).
		Order("orders.id DESC").Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ListForRestaurant returns orders of one restaurant, optionally filtered by status.
func (r *OrderRepository) ListForRestaurant(restaurantID uint, status *entity.OrderStatus, limit int) ([]OwnerOrderSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []struct {
		ID         uint
		UserID     uint
		OrderType  entity.OrderType
		Status     entity.OrderStatus
		GrandTotal decimal.Decimal
		ItemCount  int64
		CreatedAt  time.Time
		FirstName  string
		LastName   string
	}
	db := r.DB.Table("orders AS o").
		Select(`o.id, o.user_id, o.order_type, o.status, o.grand_total, o.created_at,
			u.first_name, u.last_name,
			(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count`).
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ?", restaurantID)
	if status != nil {
		db = db.Where("o.status = ?", *status)
	}
	if err := db.Order("o.id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]OwnerOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OwnerOrderSummary{
			ID:           row.ID,
			UserID:       row.UserID,
			CustomerName: strings.TrimSpace(row.FirstName + " " + row.LastName),
			OrderType:    row.OrderType,
			Status:       row.Status,
			GrandTotal:   row.GrandTotal,
			ItemCount:    row.ItemCount,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

// TransitionStatus flips status only while the current value still matches from,
// writing any milestone stamps in the same UPDATE. Rows affected tells the caller
// whether it won the race.
func (r *OrderRepository) TransitionStatus(tx *gorm.DB, orderID uint, from, to entity.OrderStatus, stamps map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range stamps {
		updates[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateEdits applies customer-editable fields (tip, instructions, recomputed
// total) unless the order has been delivered in the meantime. Rows affected
// tells the caller whether the edit landed.
func (r *OrderRepository) UpdateEdits(tx *gorm.DB, orderID uint, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status <> ?", orderID, entity.StatusDelivered).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// IncrementRestaurantOrders bumps the denormalized counter inside the checkout transaction.
func (r *OrderRepository) IncrementRestaurantOrders(tx *gorm.DB, restaurantID uint) error {
	return tx.Model(&entity.Restaurant{}).
		Where("id = ?", restaurantID).
		UpdateColumn("total_orders", gorm.Expr("total_orders + ?", 1)).Error
}
