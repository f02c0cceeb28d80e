package domain

import (
	"time"
)

// Order statuses. Orders advance PENDING → PAID → SHIPPED → DELIVERED, and
// may be cancelled while still PENDING or PAID.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// orderTransitions maps each status to the statuses reachable from it.
// DELIVERED and CANCELLED are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ValidOrderStatuses returns the set of known order statuses.
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
}

// IsValidOrderStatus checks whether the given status is known.
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransitionTo reports whether an order in status from may move to status to.
func CanTransitionTo(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a customer purchase. Total is always computed server-side from the
// item snapshots; any client-submitted total is ignored.
type Order struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId,omitempty"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []OrderItem `json:"items,omitempty"`
	User  *User       `json:"user,omitempty"`
}

// OrderItem is one line of an order. Price is a snapshot taken at creation
// time; later variant price changes do not affect placed orders.
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	VariantID string  `json:"variantId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`

	Variant *ProductVariant `json:"variant,omitempty"`
}

// ItemsTotal computes the order total from its item snapshots.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
