package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderbill/backend/internal/domain/shared"
)

func makeItem(t *testing.T, qty int, price string) OrderItem {
	t.Helper()
	d, err := decimal.NewFromString(price)
	require.NoError(t, err)
	item, err := NewOrderItem(uuid.New(), qty, d)
	require.NoError(t, err)
	return *item
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total from items", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), time.Now(), "", []OrderItem{
			makeItem(t, 10, "450.50"),
			makeItem(t, 2, "380.00"),
		})
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.Total.Equal(decimal.RequireFromString("5265.00")),
			"expected 5265.00, got %s", order.Total)
		assert.Nil(t, order.ChallanID)
		for _, item := range order.Items {
			assert.Equal(t, order.ID, item.OrderID)
		}
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), time.Now(), "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects nil client", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, time.Now(), "", []OrderItem{makeItem(t, 1, "10")})
		assert.Error(t, err)
	})
}

func TestNewOrderItem(t *testing.T) {
	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), 0, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), 1, decimal.NewFromInt(-10))
		assert.Error(t, err)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderAttachChallan(t *testing.T) {
	newPending := func(t *testing.T) *Order {
		order, err := NewOrder(uuid.New(), time.Now(), "", []OrderItem{makeItem(t, 1, "100")})
		require.NoError(t, err)
		return order
	}

	t.Run("links challan and moves to processing", func(t *testing.T) {
		order := newPending(t)
		challanID := uuid.New()

		require.NoError(t, order.AttachChallan(challanID))
		assert.Equal(t, OrderStatusProcessing, order.Status)
		require.NotNil(t, order.ChallanID)
		assert.Equal(t, challanID, *order.ChallanID)
	})

	t.Run("rejects second challan", func(t *testing.T) {
		order := newPending(t)
		require.NoError(t, order.AttachChallan(uuid.New()))

		err := order.AttachChallan(uuid.New())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})

	t.Run("rejects non pending order", func(t *testing.T) {
		order := newPending(t)
		require.NoError(t, order.Cancel())

		err := order.AttachChallan(uuid.New())
		assert.Error(t, err)
	})
}

func TestOrderDetachChallan(t *testing.T) {
	order, err := NewOrder(uuid.New(), time.Now(), "", []OrderItem{makeItem(t, 1, "100")})
	require.NoError(t, err)
	require.NoError(t, order.AttachChallan(uuid.New()))

	require.NoError(t, order.DetachChallan())
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Nil(t, order.ChallanID)

	assert.Error(t, order.DetachChallan())
}

func TestOrderComplete(t *testing.T) {
	order, err := NewOrder(uuid.New(), time.Now(), "", []OrderItem{makeItem(t, 1, "100")})
	require.NoError(t, err)

	assert.Error(t, order.Complete(), "pending order cannot complete directly")

	require.NoError(t, order.AttachChallan(uuid.New()))
	require.NoError(t, order.Complete())
	assert.Equal(t, OrderStatusCompleted, order.Status)
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancels pending order without challan", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), time.Now(), "", []OrderItem{makeItem(t, 1, "100")})
		require.NoError(t, err)

		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("refuses order with challan", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), time.Now(), "", []OrderItem{makeItem(t, 1, "100")})
		require.NoError(t, err)
		require.NoError(t, order.AttachChallan(uuid.New()))

		err = order.Cancel()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})
}

func TestOrderCanDelete(t *testing.T) {
	order, err := NewOrder(uuid.New(), time.Now(), "", []OrderItem{makeItem(t, 1, "100")})
	require.NoError(t, err)
	assert.NoError(t, order.CanDelete())

	require.NoError(t, order.AttachChallan(uuid.New()))
	assert.Error(t, order.CanDelete())
}
