package event

import (
	"time"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
)

// DomainEvent is an immutable record of a state change. Events are published
// after the repository write commits; delivery is best-effort.
type DomainEvent interface {
	EventName() string
}

const (
	UserCreatedName        = "user.created"
	UserUpdatedName        = "user.updated"
	UserDeletedName        = "user.deleted"
	OrderCreatedName       = "order.created"
	OrderStatusChangedName = "order.status_changed"
)

type UserCreated struct {
	ID         entity.UserID `json:"id"`
	Email      entity.Email  `json:"email"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (UserCreated) EventName() string { return UserCreatedName }

type UserUpdated struct {
	ID         entity.UserID `json:"id"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (UserUpdated) EventName() string { return UserUpdatedName }

type UserDeleted struct {
	ID         entity.UserID `json:"id"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (UserDeleted) EventName() string { return UserDeletedName }

type OrderItemPayload struct {
	ProductID entity.ProductID `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice float64          `json:"unit_price"`
}

type OrderCreated struct {
	ID          entity.OrderID     `json:"id"`
	UserID      entity.UserID      `json:"user_id"`
	Items       []OrderItemPayload `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func (OrderCreated) EventName() string { return OrderCreatedName }

type OrderStatusChanged struct {
	ID         entity.OrderID     `json:"id"`
	OldStatus  entity.OrderStatus `json:"old_status"`
	NewStatus  entity.OrderStatus `json:"new_status"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func (OrderStatusChanged) EventName() string { return OrderStatusChangedName }

// ItemsPayload converts aggregate items into the stable event shape.
func ItemsPayload(items []entity.OrderItem) []OrderItemPayload {
	out := make([]OrderItemPayload, len(items))
	for i, it := range items {
		out[i] = OrderItemPayload{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return out
}
