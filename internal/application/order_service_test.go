package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/danuartha/go-commerce-ddd/internal/application"
	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/internal/domain/event"
)

func newOrderService(orders *mockOrderRepository, users *mockUserRepository, pub *mockPublisher) *application.OrderService {
	return application.NewOrderService(orders, users, pub, nil)
}

func seedItems(t *testing.T) []entity.OrderItem {
	t.Helper()
	item, err := entity.NewOrderItem(entity.NewProductID(), 2, 49.99)
	require.NoError(t, err)
	return []entity.OrderItem{item}
}

func seedOrder(t *testing.T, status entity.OrderStatus) entity.Order {
	t.Helper()
	o, err := entity.NewOrder(entity.NewUserID(), seedItems(t))
	require.NoError(t, err)
	// walk the state machine up to the requested status
	path := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderStatusPending:    {},
		entity.OrderStatusConfirmed:  {entity.OrderStatusConfirmed},
		entity.OrderStatusProcessing: {entity.OrderStatusConfirmed, entity.OrderStatusProcessing},
		entity.OrderStatusShipped:    {entity.OrderStatusConfirmed, entity.OrderStatusProcessing, entity.OrderStatusShipped},
	}
	for _, next := range path[status] {
		o, err = o.UpdateStatus(next)
		require.NoError(t, err)
	}
	return o
}

func TestCreateOrder(t *testing.T) {
	orders := new(mockOrderRepository)
	users := new(mockUserRepository)
	pub := new(mockPublisher)
	svc := newOrderService(orders, users, pub)

	owner := seedUser(t, "jane@example.com", "Jane", "Doe")
	users.On("FindByID", mock.Anything, owner.ID).Return(&owner, nil).Once()
	orders.On("Save", mock.Anything, mock.MatchedBy(func(o entity.Order) bool {
		return o.UserID == owner.ID && o.Status == entity.OrderStatusPending
	})).Return(nil, nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e event.OrderCreated) bool {
		return e.UserID == owner.ID && len(e.Items) == 1 && e.TotalAmount > 99.97 && e.TotalAmount < 99.99
	})).Return(nil).Once()

	o, err := svc.CreateOrder(context.Background(), owner.ID, seedItems(t))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.InDelta(t, 99.98, o.TotalAmount, 1e-9)

	orders.AssertExpectations(t)
	users.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateOrderUserMissing(t *testing.T) {
	orders := new(mockOrderRepository)
	users := new(mockUserRepository)
	pub := new(mockPublisher)
	svc := newOrderService(orders, users, pub)

	userID := entity.NewUserID()
	users.On("FindByID", mock.Anything, userID).Return(nil, entity.ErrNotFound).Once()

	_, err := svc.CreateOrder(context.Background(), userID, seedItems(t))
	assert.ErrorIs(t, err, entity.ErrNotFound)

	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderInvalidItems(t *testing.T) {
	orders := new(mockOrderRepository)
	users := new(mockUserRepository)
	pub := new(mockPublisher)
	svc := newOrderService(orders, users, pub)

	owner := seedUser(t, "jane@example.com", "Jane", "Doe")
	users.On("FindByID", mock.Anything, owner.ID).Return(&owner, nil).Twice()

	_, err := svc.CreateOrder(context.Background(), owner.ID, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	// below the order minimum
	small, err := entity.NewOrderItem(entity.NewProductID(), 1, 5.0)
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), owner.ID, []entity.OrderItem{small})
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderPublishFailure(t *testing.T) {
	orders := new(mockOrderRepository)
	users := new(mockUserRepository)
	pub := new(mockPublisher)
	svc := newOrderService(orders, users, pub)

	owner := seedUser(t, "jane@example.com", "Jane", "Doe")
	users.On("FindByID", mock.Anything, owner.ID).Return(&owner, nil).Once()
	orders.On("Save", mock.Anything, mock.Anything).Return(nil, nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker unavailable")).Once()

	o, err := svc.CreateOrder(context.Background(), owner.ID, seedItems(t))
	require.NotNil(t, o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisted")
}

func TestUpdateOrderStatus(t *testing.T) {
	orders := new(mockOrderRepository)
	pub := new(mockPublisher)
	svc := newOrderService(orders, new(mockUserRepository), pub)

	shipped := seedOrder(t, entity.OrderStatusShipped)
	orders.On("FindByID", mock.Anything, shipped.ID).Return(&shipped, nil).Once()
	orders.On("Save", mock.Anything, mock.MatchedBy(func(o entity.Order) bool {
		return o.ID == shipped.ID && o.Status == entity.OrderStatusDelivered
	})).Return(nil, nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e event.OrderStatusChanged) bool {
		return e.ID == shipped.ID &&
			e.OldStatus == entity.OrderStatusShipped &&
			e.NewStatus == entity.OrderStatusDelivered
	})).Return(nil).Once()

	o, err := svc.UpdateOrderStatus(context.Background(), shipped.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, o.Status)
	assert.Equal(t, shipped.TotalAmount, o.TotalAmount)

	orders.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestUpdateOrderStatusIllegalTransition(t *testing.T) {
	orders := new(mockOrderRepository)
	pub := new(mockPublisher)
	svc := newOrderService(orders, new(mockUserRepository), pub)

	pending := seedOrder(t, entity.OrderStatusPending)
	orders.On("FindByID", mock.Anything, pending.ID).Return(&pending, nil).Once()

	_, err := svc.UpdateOrderStatus(context.Background(), pending.ID, entity.OrderStatusShipped)
	assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)

	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	orders := new(mockOrderRepository)
	svc := newOrderService(orders, new(mockUserRepository), new(mockPublisher))

	id := entity.NewOrderID()
	orders.On("FindByID", mock.Anything, id).Return(nil, entity.ErrNotFound).Once()

	_, err := svc.UpdateOrderStatus(context.Background(), id, entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetOrdersByUser(t *testing.T) {
	orders := new(mockOrderRepository)
	svc := newOrderService(orders, new(mockUserRepository), new(mockPublisher))

	userID := entity.NewUserID()
	first := seedOrder(t, entity.OrderStatusPending)
	orders.On("FindByUserID", mock.Anything, userID).Return([]entity.Order{first}, nil).Once()

	list, err := svc.GetOrdersByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetOrdersByStatus(t *testing.T) {
	orders := new(mockOrderRepository)
	svc := newOrderService(orders, new(mockUserRepository), new(mockPublisher))

	orders.On("FindByStatus", mock.Anything, entity.OrderStatusPending).Return([]entity.Order{}, nil).Once()

	list, err := svc.GetOrdersByStatus(context.Background(), entity.OrderStatusPending)
	require.NoError(t, err)
	assert.Empty(t, list)
}
