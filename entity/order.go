package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderType distinguishes delivery from pickup orders.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// PaymentStatus is the snapshot of the gateway outcome stored on the order.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	OrderType OrderType   `json:"orderType"`
	Status    OrderStatus `gorm:"index" json:"status"`

	// Delivery address, snapshotted at checkout. Empty for pickup orders.
	DeliveryStreet      string `json:"deliveryStreet,omitempty"`
	DeliveryApartment   string `json:"deliveryApartment,omitempty"`
	DeliveryCity        string `json:"deliveryCity,omitempty"`
	DeliveryState       string `json:"deliveryState,omitempty"`
	DeliveryPostalCode  string `json:"deliveryPostalCode,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"discountAmount"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(10,2)" json:"deliveryFee"`
	Tax            decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax"`
	Tip            decimal.Decimal `gorm:"type:decimal(10,2)" json:"tip"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(10,2)" json:"grandTotal"`

	DiscountID   *uint  `json:"discountId,omitempty"`
	DiscountCode string `json:"discountCode,omitempty"`

	// Opaque reference passed through to the payment gateway.
	PaymentMethodID string        `json:"paymentMethodId"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	TransactionID   string        `json:"transactionId"`

	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt,omitempty"`
	EstimatedPickupAt   *time.Time `json:"estimatedPickupAt,omitempty"`

	// Milestone stamps, set once when the matching status is entered.
	PreparingAt      *time.Time `json:"preparingAt,omitempty"`
	ReadyAt          *time.Time `json:"readyAt,omitempty"`
	OutForDeliveryAt *time.Time `json:"outForDeliveryAt,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`

	OrderItems []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// HasCompleteAddress reports whether all fields a courier needs are present.
func (o *Order) HasCompleteAddress() bool {
	return o.DeliveryStreet != "" && o.DeliveryCity != "" && o.DeliveryPostalCode != ""
}

// OptionSnapshot is the immutable copy of one priced add-on or modification,
// stored inline on cart lines and order items.
type OptionSnapshot struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint `json:"menuItemId"`

	// Snapshot of the cart line at checkout; never re-read from the menu.
	ItemName       string          `json:"itemName"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(10,2)" json:"basePrice"`
	SizeName       *string         `json:"sizeName,omitempty"`
	SizePriceDelta decimal.Decimal `gorm:"type:decimal(10,2)" json:"sizePriceDelta"`

	AddOns        []OptionSnapshot `gorm:"serializer:json" json:"addOns"`
	Modifications []OptionSnapshot `gorm:"serializer:json" json:"modifications"`

	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	Quantity            int             `json:"quantity"`
	ItemTotal           decimal.Decimal `gorm:"type:decimal(10,2)" json:"itemTotal"`
}
