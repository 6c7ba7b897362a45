package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/internal/domain/event"
	repo "github.com/danuartha/go-commerce-ddd/internal/domain/repository"
)

// OrderService orchestrates order creation and status transitions. Transition
// validation lives in the aggregate; the service resolves references, persists
// and publishes.
type OrderService struct {
	Orders    repo.OrderRepository
	Users     repo.UserRepository
	Publisher event.Publisher
	Logger    *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, users repo.UserRepository, pub event.Publisher, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Users: users, Publisher: pub, Logger: logger}
}

// CreateOrder places a new order for an existing user. The aggregate enforces
// item invariants and the minimum total; a missing user fails with
// entity.ErrNotFound before anything is written.
func (s *OrderService) CreateOrder(ctx context.Context, userID entity.UserID, items []entity.OrderItem) (*entity.Order, error) {
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	o, err := entity.NewOrder(userID, items)
	if err != nil {
		return nil, err
	}

	saved, err := s.Orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	ev := event.OrderCreated{
		ID:          saved.ID,
		UserID:      saved.UserID,
		Items:       event.ItemsPayload(saved.Items),
		TotalAmount: saved.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		s.logError("publish order.created failed", err, logrus.Fields{"order_id": saved.ID})
		return saved, fmt.Errorf("order persisted but event publish failed: %w", err)
	}
	return saved, nil
}

// UpdateOrderStatus moves an order along the status state machine. Illegal
// edges fail with entity.ErrInvalidStateTransition and nothing is written.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID entity.OrderID, next entity.OrderStatus) (*entity.Order, error) {
	current, err := s.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	oldStatus := current.Status
	updated, err := current.UpdateStatus(next)
	if err != nil {
		return nil, err
	}

	saved, err := s.Orders.Save(ctx, updated)
	if err != nil {
		return nil, err
	}

	ev := event.OrderStatusChanged{
		ID:         saved.ID,
		OldStatus:  oldStatus,
		NewStatus:  saved.Status,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		s.logError("publish order.status_changed failed", err, logrus.Fields{"order_id": saved.ID})
		return saved, fmt.Errorf("order persisted but event publish failed: %w", err)
	}
	return saved, nil
}

// GetOrder is a pure lookup.
func (s *OrderService) GetOrder(ctx context.Context, id entity.OrderID) (*entity.Order, error) {
	return s.Orders.FindByID(ctx, id)
}

// GetOrdersByUser lists a user's orders, newest first.
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID entity.UserID) ([]entity.Order, error) {
	return s.Orders.FindByUserID(ctx, userID)
}

// GetOrdersByStatus lists orders currently in the given status.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	return s.Orders.FindByStatus(ctx, status)
}

func (s *OrderService) logError(msg string, err error, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(fields).Warn(msg)
}
