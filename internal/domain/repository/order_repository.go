package repository

import (
	"context"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	FindByID(ctx context.Context, id entity.OrderID) (*entity.Order, error)
	Save(ctx context.Context, o entity.Order) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID entity.UserID) ([]entity.Order, error)
	FindByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error)
}
