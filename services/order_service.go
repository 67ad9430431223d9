package services

import (
	"context"
	"errors"
	"log"
	"time"

	"localeats/entity"
	"localeats/repository"
	"localeats/ws"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRestaurantMismatch  = errors.New("cart belongs to a different restaurant")
	ErrDeliveryNotAccepted = errors.New("restaurant does not accept delivery")
	ErrPickupNotAccepted   = errors.New("restaurant does not accept pickup")
	ErrMissingAddress      = errors.New("delivery orders need a complete address")
	ErrMinimumOrderNotMet  = errors.New("subtotal is below the restaurant minimum")
	ErrPaymentFailed       = errors.New("payment failed")
	ErrOrderDelivered      = errors.New("order has already been delivered")
)

// OrderService coordinates checkout and everything that happens to an order
// after it exists.
type OrderService struct {
	DB        *gorm.DB
	Orders    *repository.OrderRepository
	Users     *repository.UserRepository
	Catalog   *repository.CatalogRepository
	Carts     *CartService
	Discounts *DiscountService
	Payments  PaymentGateway
	Notifier  NotificationSender
	Track     *ws.TrackHub
}

func NewOrderService(
	db *gorm.DB,
	orders *repository.OrderRepository,
	users *repository.UserRepository,
	catalog *repository.CatalogRepository,
	carts *CartService,
	discounts *DiscountService,
	payments PaymentGateway,
	notifier NotificationSender,
	track *ws.TrackHub,
) *OrderService {
	return &OrderService{
		DB: db, Orders: orders, Users: users, Catalog: catalog,
		Carts: carts, Discounts: discounts,
		Payments: payments, Notifier: notifier, Track: track,
	}
}

type CheckoutIn struct {
	RestaurantID        uint   `json:"restaurantId" binding:"required"`
	OrderType           string `json:"orderType" binding:"required,oneof=delivery pickup"`
	PaymentMethodID     string `json:"paymentMethodId" binding:"required"`
	DeliveryStreet      string `json:"deliveryStreet"`
	DeliveryApartment   string `json:"deliveryApartment"`
	DeliveryCity        string `json:"deliveryCity"`
	DeliveryState       string `json:"deliveryState"`
	DeliveryPostalCode  string `json:"deliveryPostalCode"`
	SpecialInstructions string `json:"specialInstructions"`
}

// RestaurantSummary rides along with the created order in the checkout response.
type RestaurantSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	CuisineType string `json:"cuisineType"`
	Address     string `json:"address"`
}

type CheckoutOut struct {
	Order      *entity.Order     `json:"order"`
	Restaurant RestaurantSummary `json:"restaurant"`
}

type UpdateOrderIn struct {
	Tip                 *decimal.Decimal `json:"tip"`
	SpecialInstructions *string          `json:"specialInstructions"`
}

// Checkout turns the user's cart into a durable order. Preconditions run in a
// fixed sequence so clients always see the same first failure. Payment is
// captured before the transaction opens and is never retried; every durable
// write then lands in one transaction, so a failure at any point leaves no
// partial order behind. The cart survives until the commit succeeds.
func (s *OrderService) Checkout(ctx context.Context, userID uint, in *CheckoutIn) (*CheckoutOut, error) {
	cart := s.Carts.load(userID)
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}
	if in.RestaurantID != cart.RestaurantID {
		return nil, ErrRestaurantMismatch
	}

	rest, err := s.Catalog.FindRestaurant(cart.RestaurantID)
	if err != nil {
		return nil, err
	}

	orderType := entity.OrderType(in.OrderType)
	if !rest.SupportsOrderType(orderType) {
		if orderType == entity.OrderTypeDelivery {
			return nil, ErrDeliveryNotAccepted
		}
		return nil, ErrPickupNotAccepted
	}

	order := &entity.Order{
		UserID:              userID,
		RestaurantID:        rest.ID,
		OrderType:           orderType,
		Status:              entity.StatusOrderReceived,
		DeliveryStreet:      in.DeliveryStreet,
		DeliveryApartment:   in.DeliveryApartment,
		DeliveryCity:        in.DeliveryCity,
		DeliveryState:       in.DeliveryState,
		DeliveryPostalCode:  in.DeliveryPostalCode,
		SpecialInstructions: in.SpecialInstructions,
	}
	if orderType == entity.OrderTypeDelivery && !order.HasCompleteAddress() {
		return nil, ErrMissingAddress
	}

	fee := decimal.Zero
	if orderType == entity.OrderTypeDelivery {
		fee = rest.DeliveryFee
	}
	quote := PriceCart(cart, fee)

	if quote.Subtotal.LessThan(rest.MinimumOrderAmount) {
		return nil, ErrMinimumOrderNotMet
	}

	// Charge first. A declined or timed-out payment must leave zero rows
	// behind, so nothing is written until the gateway answers.
	txnID, err := s.Payments.Charge(ctx, PaymentCharge{
		UserID:          userID,
		Amount:          quote.GrandTotal,
		Currency:        "USD",
		PaymentMethodID: in.PaymentMethodID,
	})
	if err != nil {
		log.Printf("checkout: payment for user %d rejected: %v", userID, err)
		return nil, ErrPaymentFailed
	}

	now := time.Now()
	order.Subtotal = quote.Subtotal
	order.DiscountAmount = quote.DiscountAmount
	order.DeliveryFee = quote.DeliveryFee
	order.Tax = quote.Tax
	order.Tip = quote.Tip
	order.GrandTotal = quote.GrandTotal
	order.PaymentMethodID = in.PaymentMethodID
	order.PaymentStatus = entity.PaymentStatusPaid
	order.TransactionID = txnID
	if cart.AppliedDiscount != nil {
		id := cart.AppliedDiscount.DiscountID
		order.DiscountID = &id
		order.DiscountCode = cart.AppliedDiscount.Code
	}
	switch orderType {
	case entity.OrderTypeDelivery:
		eta := now.Add(time.Duration(rest.EstimatedDeliveryMinutes) * time.Minute)
		order.EstimatedDeliveryAt = &eta
	case entity.OrderTypePickup:
		eta := now.Add(time.Duration(rest.EstimatedPickupMinutes) * time.Minute)
		order.EstimatedPickupAt = &eta
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Orders.Create(tx, order); err != nil {
			return err
		}
		for _, line := range cart.Items {
			item := entity.OrderItem{
				OrderID:             order.ID,
				MenuItemID:          line.MenuItemID,
				ItemName:            line.ItemName,
				BasePrice:           line.BasePrice,
				AddOns:              line.AddOns,
				Modifications:       line.Modifications,
				SpecialInstructions: line.SpecialInstructions,
				Quantity:            line.Quantity,
				ItemTotal:           line.ItemTotal,
			}
			if line.Size != nil {
				name := line.Size.Name
				item.SizeName = &name
				item.SizePriceDelta = line.Size.PriceDelta
			}
			if err := s.Orders.CreateItem(tx, &item); err != nil {
				return err
			}
			order.OrderItems = append(order.OrderItems, item)
		}
		if err := s.Orders.IncrementRestaurantOrders(tx, rest.ID); err != nil {
			return err
		}
		if err := s.Users.RecordOrderStats(tx, userID, quote.GrandTotal, rest.CuisineType); err != nil {
			return err
		}
		if cart.AppliedDiscount != nil {
			return s.Discounts.Redeem(tx, cart.AppliedDiscount.DiscountID, userID, order.ID,
				quote.Subtotal, quote.DiscountAmount, now)
		}
		return nil
	})
	if err != nil {
		// Rolled back. The charge already went through, so flag it for
		// manual follow-up rather than hiding it.
		log.Printf("checkout: transaction for user %d rolled back after charge %s: %v", userID, txnID, err)
		order.OrderItems = nil
		return nil, err
	}

	s.Carts.Clear(userID)
	s.notifyConfirmation(ctx, order, rest)
	s.publishStatus(order)

	return &CheckoutOut{
		Order: order,
		Restaurant: RestaurantSummary{
			ID:          rest.ID,
			Name:        rest.Name,
			CuisineType: rest.CuisineType,
			Address:     rest.Address,
		},
	}, nil
}

// notifyConfirmation sends the post-commit confirmation. Best effort: a dead
// notifier must never unwind a committed order.
func (s *OrderService) notifyConfirmation(ctx context.Context, order *entity.Order, rest *entity.Restaurant) {
	if s.Notifier == nil {
		return
	}
	user, err := s.Users.FindByID(order.UserID)
	if err != nil {
		log.Printf("checkout: confirmation for order %d skipped, user lookup: %v", order.ID, err)
		return
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	estimated := order.EstimatedDeliveryAt
	if order.OrderType == entity.OrderTypePickup {
		estimated = order.EstimatedPickupAt
	}
	err = s.Notifier.SendOrderConfirmation(nctx, OrderNotification{
		OrderID:        order.ID,
		UserID:         order.UserID,
		Email:          user.Email,
		RestaurantName: rest.Name,
		GrandTotal:     order.GrandTotal,
		OrderType:      string(order.OrderType),
		EstimatedAt:    estimated,
	})
	if err != nil {
		log.Printf("checkout: confirmation for order %d failed: %v", order.ID, err)
	}
}

func (s *OrderService) publishStatus(order *entity.Order) {
	if s.Track == nil {
		return
	}
	s.Track.PublishStatus(order.ID, string(order.Status))
}

// ListOrders returns the user's order history, newest first.
func (s *OrderService) ListOrders(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Orders.ListForUser(userID, limit)
}

// GetOrder returns one order with items, ownership-scoped.
func (s *OrderService) GetOrder(userID, orderID uint) (*entity.Order, error) {
	return s.Orders.FindForUser(userID, orderID)
}

// UpdateOrder edits tip and special instructions. Allowed until the order is
// delivered; a tip change recomputes the grand total and nothing else.
func (s *OrderService) UpdateOrder(userID, orderID uint, in *UpdateOrderIn) (*entity.Order, error) {
	order, err := s.Orders.FindForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.StatusDelivered {
		return nil, ErrOrderDelivered
	}

	updates := map[string]any{}
	if in.Tip != nil {
		if in.Tip.IsNegative() {
			return nil, ErrInvalidTip
		}
		tip, grand := RetotalOrder(order, *in.Tip)
		updates["tip"] = tip
		updates["grand_total"] = grand
		order.Tip = tip
		order.GrandTotal = grand
	}
	if in.SpecialInstructions != nil {
		updates["special_instructions"] = *in.SpecialInstructions
		order.SpecialInstructions = *in.SpecialInstructions
	}
	if len(updates) == 0 {
		return order, nil
	}

	var affected int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err = s.Orders.UpdateEdits(tx, order.ID, updates)
		return err
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Delivered between the load and the update; the guard in the
		// UPDATE refused the edit.
		return nil, ErrOrderDelivered
	}
	return order, nil
}
