package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/internal/domain/event"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email entity.Email) (*entity.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// Save echoes the passed aggregate unless the expectation overrides it.
func (m *mockUserRepository) Save(ctx context.Context, u entity.User) (*entity.User, error) {
	args := m.Called(ctx, u)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id entity.UserID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context, page, size int) ([]entity.User, error) {
	args := m.Called(ctx, page, size)
	if v := args.Get(0); v != nil {
		return v.([]entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id entity.OrderID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepository) Save(ctx context.Context, o entity.Order) (*entity.Order, error) {
	args := m.Called(ctx, o)
	if v := args.Get(0); v != nil {
		return v.(*entity.Order), args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return &o, nil
}

func (m *mockOrderRepository) FindByUserID(ctx context.Context, userID entity.UserID) ([]entity.Order, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]entity.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepository) FindByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	args := m.Called(ctx, status)
	if v := args.Get(0); v != nil {
		return v.([]entity.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, e event.DomainEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockPublisher) PublishBatch(ctx context.Context, events []event.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
