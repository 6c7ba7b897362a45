package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, quantity int, unitPrice float64) OrderItem {
	t.Helper()
	item, err := NewOrderItem(NewProductID(), quantity, unitPrice)
	require.NoError(t, err)
	return item
}

func TestNewOrderItem(t *testing.T) {
	item, err := NewOrderItem("p1", 2, 49.99)
	require.NoError(t, err)
	assert.InDelta(t, 99.98, item.TotalPrice(), 1e-9)

	cases := []struct {
		name      string
		productID ProductID
		quantity  int
		unitPrice float64
	}{
		{"blank product id", "", 1, 10.0},
		{"whitespace product id", "  ", 1, 10.0},
		{"zero quantity", "p1", 0, 10.0},
		{"negative quantity", "p1", -1, 10.0},
		{"zero price", "p1", 1, 0},
		{"negative price", "p1", 1, -5.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrderItem(tc.productID, tc.quantity, tc.unitPrice)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNewOrder(t *testing.T) {
	userID := NewUserID()
	item, err := NewOrderItem("p1", 2, 49.99)
	require.NoError(t, err)

	o, err := NewOrder(userID, []OrderItem{item})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, userID, o.UserID)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.InDelta(t, 99.98, o.TotalAmount, 1e-9)
	assert.Len(t, o.Items, 1)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
}

func TestNewOrderEmptyItems(t *testing.T) {
	_, err := NewOrder(NewUserID(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewOrder(NewUserID(), []OrderItem{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewOrderBelowMinimum(t *testing.T) {
	// single item at 5.0 lands below the 10.0 floor
	_, err := NewOrder(NewUserID(), []OrderItem{mustItem(t, 1, 5.0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// exactly at the floor is accepted
	o, err := NewOrder(NewUserID(), []OrderItem{mustItem(t, 2, 5.0)})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, o.TotalAmount, 1e-9)
}

func TestNewOrderInvalidItem(t *testing.T) {
	bad := OrderItem{ProductID: "p1", Quantity: 0, UnitPrice: 10}
	_, err := NewOrder(NewUserID(), []OrderItem{bad})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusProcessing},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	}

	// terminal states have no outbound edges
	for _, next := range all {
		assert.False(t, OrderStatusDelivered.CanTransitionTo(next), "DELIVERED -> %s", next)
		assert.False(t, OrderStatusCancelled.CanTransitionTo(next), "CANCELLED -> %s", next)
	}
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())

	// skipping intermediate states is rejected
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
}

func TestUpdateStatus(t *testing.T) {
	o, err := NewOrder(NewUserID(), []OrderItem{mustItem(t, 2, 49.99)})
	require.NoError(t, err)

	confirmed, err := o.UpdateStatus(OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusConfirmed, confirmed.Status)
	assert.Equal(t, o.ID, confirmed.ID)
	assert.Equal(t, o.TotalAmount, confirmed.TotalAmount, "total is never recomputed")

	cancelled, err := confirmed.UpdateStatus(OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCancelled, cancelled.Status)

	// original values untouched along the way
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, OrderStatusConfirmed, confirmed.Status)

	_, err = cancelled.UpdateStatus(OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	_, err = o.UpdateStatus(OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, s)

	s, err = ParseOrderStatus(" SHIPPED ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, s)

	_, err = ParseOrderStatus("UNKNOWN")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOrderDerivedQueries(t *testing.T) {
	o, err := NewOrder(NewUserID(), []OrderItem{mustItem(t, 2, 49.99)})
	require.NoError(t, err)

	assert.True(t, o.IsModifiable())
	assert.True(t, o.IsCancellable())
	assert.GreaterOrEqual(t, o.AgeInHours(), 0.0)
	assert.Less(t, o.AgeInHours(), 1.0)

	confirmed, err := o.UpdateStatus(OrderStatusConfirmed)
	require.NoError(t, err)
	assert.True(t, confirmed.IsModifiable())
	assert.True(t, confirmed.IsCancellable())

	processing, err := confirmed.UpdateStatus(OrderStatusProcessing)
	require.NoError(t, err)
	assert.False(t, processing.IsModifiable())
	assert.False(t, processing.IsCancellable())

	shipped, err := processing.UpdateStatus(OrderStatusShipped)
	require.NoError(t, err)
	delivered, err := shipped.UpdateStatus(OrderStatusDelivered)
	require.NoError(t, err)
	assert.False(t, delivered.IsModifiable())
	assert.False(t, delivered.IsCancellable())
	assert.Equal(t, o.TotalAmount, delivered.TotalAmount)
}
