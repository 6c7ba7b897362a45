package repository

import (
	"context"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
)

// UserRepository defines the persistence contract for user aggregates.
// Save is insert-or-replace by id; the store enforces email uniqueness and
// surfaces violations as entity.ErrConflict. FindAll keeps insertion order
// so pagination is stable across calls.
type UserRepository interface {
	FindByID(ctx context.Context, id entity.UserID) (*entity.User, error)
	FindByEmail(ctx context.Context, email entity.Email) (*entity.User, error)
	Save(ctx context.Context, u entity.User) (*entity.User, error)
	Delete(ctx context.Context, id entity.UserID) (bool, error)
	FindAll(ctx context.Context, page, size int) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}
