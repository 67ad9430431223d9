package entity

// OrderStatus is the lifecycle state of a persisted order.
type OrderStatus string

const (
	StatusOrderReceived  OrderStatus = "order_received"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) String() string { return string(s) }

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// orderTransitions is the full forward transition table. Cancellation is
// modelled here too so owners and customers go through the same gate.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusOrderReceived:  {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusDelivered},
	StatusOutForDelivery: {StatusDelivered},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s names a known status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusOrderReceived, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Cancellability classifies why (or whether) an order in this status may be
// cancelled: orders already in a terminal state can never be, orders that the
// kitchen has finished or handed to a rider are simply too late.
type Cancellability int

const (
	Cancellable Cancellability = iota
	CancelTerminal
	CancelTooLate
)

func (s OrderStatus) Cancellability() Cancellability {
	switch s {
	case StatusDelivered, StatusCancelled:
		return CancelTerminal
	case StatusReady, StatusOutForDelivery:
		return CancelTooLate
	default:
		return Cancellable
	}
}
