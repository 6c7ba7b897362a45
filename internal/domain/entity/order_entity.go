package entity

import (
	"fmt"
	"strings"
	"time"
)

// MinimumOrderAmount is the smallest accepted order total.
const MinimumOrderAmount = 10.0

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions is the allowed-edge table of the status state machine.
// DELIVERED and CANCELLED have no outbound edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ParseOrderStatus maps wire input onto a known status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := orderTransitions[s]; !ok {
		return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidArgument, raw)
	}
	return s, nil
}

// CanTransitionTo reports whether (s -> next) is an allowed edge.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outbound edges.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// OrderItem is an immutable line item; invariants are checked at construction.
type OrderItem struct {
	ProductID ProductID
	Quantity  int
	UnitPrice float64
}

func NewOrderItem(productID ProductID, quantity int, unitPrice float64) (OrderItem, error) {
	if strings.TrimSpace(productID.String()) == "" {
		return OrderItem{}, fmt.Errorf("%w: product id cannot be blank", ErrInvalidArgument)
	}
	if quantity <= 0 {
		return OrderItem{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, quantity)
	}
	if unitPrice <= 0 {
		return OrderItem{}, fmt.Errorf("%w: unit price must be positive, got %v", ErrInvalidArgument, unitPrice)
	}
	return OrderItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// TotalPrice is the derived line total.
func (i OrderItem) TotalPrice() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order is the aggregate root for the order domain. TotalAmount is computed
// once at creation and never recomputed; status changes go through
// UpdateStatus, which enforces the transition table.
type Order struct {
	ID          OrderID
	UserID      UserID
	Items       []OrderItem
	Status      OrderStatus
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder builds a PENDING order from the given items, computing the total.
func NewOrder(userID UserID, items []OrderItem) (Order, error) {
	if len(items) == 0 {
		return Order{}, fmt.Errorf("%w: order must contain at least one item", ErrInvalidArgument)
	}
	var total float64
	copied := make([]OrderItem, len(items))
	for idx, item := range items {
		validated, err := NewOrderItem(item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return Order{}, err
		}
		copied[idx] = validated
		total += validated.TotalPrice()
	}
	if total < MinimumOrderAmount {
		return Order{}, fmt.Errorf("%w: order total %.2f is below the minimum of %.2f", ErrInvalidArgument, total, MinimumOrderAmount)
	}
	now := time.Now().UTC()
	return Order{
		ID:          NewOrderID(),
		UserID:      userID,
		Items:       copied,
		Status:      OrderStatusPending,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateStatus returns a copy in the new status with UpdatedAt advanced.
// TotalAmount is carried over as-is, never recomputed.
func (o Order) UpdateStatus(next OrderStatus) (Order, error) {
	if !o.Status.CanTransitionTo(next) {
		return Order{}, fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStateTransition, o.Status, next)
	}
	updated := o
	updated.Status = next
	updated.UpdatedAt = time.Now().UTC()
	return updated, nil
}

// IsModifiable reports whether items could still change for this order.
func (o Order) IsModifiable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// IsCancellable reports whether the order can still be cancelled.
func (o Order) IsCancellable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// AgeInHours is the elapsed time since creation.
func (o Order) AgeInHours() float64 {
	return time.Since(o.CreatedAt).Hours()
}
