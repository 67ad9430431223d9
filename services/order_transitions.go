package services

import (
	"errors"
	"time"

	"localeats/entity"
	"localeats/repository"

	"gorm.io/gorm"
)

var (
	ErrCannotCancel      = errors.New("order can no longer be cancelled")
	ErrTooLateToCancel   = errors.New("order is already being prepared for handoff")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

// DefaultCancelReason is stored when the customer gives none.
const DefaultCancelReason = "Cancelled by customer"

// milestoneColumn maps each status to the timestamp column stamped when the
// order enters it.
func milestoneColumn(st entity.OrderStatus) string {
	switch st {
	case entity.StatusPreparing:
		return "preparing_at"
	case entity.StatusReady:
		return "ready_at"
	case entity.StatusOutForDelivery:
		return "out_for_delivery_at"
	case entity.StatusDelivered:
		return "delivered_at"
	case entity.StatusCancelled:
		return "cancelled_at"
	}
	return ""
}

// CancelOrder cancels a customer's own order. Only order_received and
// preparing are cancellable; terminal orders answer CannotCancel, orders past
// the kitchen answer TooLateToCancel. The guarded update closes the race with
// a simultaneous owner transition.
func (s *OrderService) CancelOrder(userID, orderID uint, reason string) (*entity.Order, error) {
	order, err := s.Orders.FindForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := cancelGate(order.Status); err != nil {
		return nil, err
	}
	if reason == "" {
		reason = DefaultCancelReason
	}

	now := time.Now()
	stamps := map[string]any{
		"cancelled_at":        &now,
		"cancellation_reason": &reason,
		"payment_status":      entity.PaymentStatusRefunded,
	}
	var affected int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err = s.Orders.TransitionStatus(tx, order.ID, order.Status, entity.StatusCancelled, stamps)
		return err
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the race: reload and report what the order became.
		fresh, ferr := s.Orders.FindForUser(userID, orderID)
		if ferr != nil {
			return nil, ferr
		}
		return nil, cancelGate(fresh.Status)
	}

	order.Status = entity.StatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = &reason
	order.PaymentStatus = entity.PaymentStatusRefunded
	s.publishStatus(order)
	return order, nil
}

func cancelGate(st entity.OrderStatus) error {
	switch st.Cancellability() {
	case entity.CancelTerminal:
		return ErrCannotCancel
	case entity.CancelTooLate:
		return ErrTooLateToCancel
	}
	return nil
}

// AdvanceStatus moves an order forward on behalf of the restaurant owner.
// The transition table rejects skips and backward moves; the guarded update
// turns a concurrent move into ErrStatusConflict instead of a double write.
func (s *OrderService) AdvanceStatus(ownerID, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	rest, err := s.Catalog.FindRestaurantForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	order, err := s.Orders.FindForRestaurant(rest.ID, orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(order.Status, to) {
		return nil, ErrInvalidTransition
	}
	// ready -> delivered is the pickup handoff; delivery orders go through
	// the courier leg.
	if order.Status == entity.StatusReady && to == entity.StatusDelivered &&
		order.OrderType != entity.OrderTypePickup {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	stamps := map[string]any{}
	if col := milestoneColumn(to); col != "" {
		stamps[col] = &now
	}
	if to == entity.StatusCancelled {
		reason := "Cancelled by restaurant"
		stamps["cancellation_reason"] = &reason
		stamps["payment_status"] = entity.PaymentStatusRefunded
		order.CancellationReason = &reason
		order.PaymentStatus = entity.PaymentStatusRefunded
	}

	var affected int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err = s.Orders.TransitionStatus(tx, order.ID, order.Status, to, stamps)
		return err
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrStatusConflict
	}

	order.Status = to
	switch to {
	case entity.StatusPreparing:
		order.PreparingAt = &now
	case entity.StatusReady:
		order.ReadyAt = &now
	case entity.StatusOutForDelivery:
		order.OutForDeliveryAt = &now
	case entity.StatusDelivered:
		order.DeliveredAt = &now
	case entity.StatusCancelled:
		order.CancelledAt = &now
	}
	s.publishStatus(order)
	return order, nil
}

// ListRestaurantOrders returns the owner dashboard view, optionally filtered
// by status.
func (s *OrderService) ListRestaurantOrders(ownerID uint, status *entity.OrderStatus, limit int) ([]repository.OwnerOrderSummary, error) {
	rest, err := s.Catalog.FindRestaurantForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.Orders.ListForRestaurant(rest.ID, status, limit)
}

// GetRestaurantOrder returns one order of the owner's restaurant.
func (s *OrderService) GetRestaurantOrder(ownerID, orderID uint) (*entity.Order, error) {
	rest, err := s.Catalog.FindRestaurantForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.Orders.FindForRestaurant(rest.ID, orderID)
}

// CanTrack reports whether a user may watch an order's status stream: the
// customer who placed it, or the owner of the restaurant it was placed with.
func (s *OrderService) CanTrack(userID, orderID uint) (bool, error) {
	order, err := s.Orders.FindByID(orderID)
	if err != nil {
		return false, err
	}
	if order.UserID == userID {
		return true, nil
	}
	rest, err := s.Catalog.FindRestaurant(order.RestaurantID)
	if err != nil {
		return false, err
	}
	return rest.OwnerID == userID, nil
}
