package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"github.com/storeworks/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func filledCart() domain.Cart {
	mug := domain.Product{
		ProductID: "p1",
		Name:      "Mug",
		Category:  "home",
		Price:     decimal.RequireFromString("10"),
	}
	return domain.NewCart().AddItem(mug, 2)
}

func TestOrderCheckout(t *testing.T) {

	customer := domain.User{UserID: "u1", Role: domain.RoleCustomer}
	req := port.CheckoutRequest{
		SessionID:     testSessionID,
		Shipping:      domain.Address{Street: "1 Main St"},
		PaymentMethod: "card",
	}

	t.Run("SnapshotsCartAndClears", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		carts := new(MockCartProvider)
		svc := service.NewOrderService(orders, carts)

		carts.On("Cart", mock.Anything, testSessionID).
			Return(filledCart(), nil)
		orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
		carts.On("ClearCart", mock.Anything, testSessionID).
			Return(domain.NewCart(), nil)

		order, err := svc.Checkout(t.Context(), customer, req)
		require.NoError(t, err)
		assert.NotEmpty(t, order.OrderID)
		assert.Equal(t, "u1", order.UserID)
		assert.Equal(t, domain.OrderPending, order.Status)
		assert.Equal(t, domain.PaymentUnpaid, order.PaymentStatus)
		require.Len(t, order.Items, 1)
		assert.True(t, order.Total.Equal(decimal.RequireFromString("22")))
		require.Len(t, order.Tracking, 1)
		assert.Equal(t, "created", order.Tracking[0].Status)
		carts.AssertCalled(t, "ClearCart", mock.Anything, testSessionID)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		carts := new(MockCartProvider)
		svc := service.NewOrderService(orders, carts)

		carts.On("Cart", mock.Anything, testSessionID).
			Return(domain.NewCart(), nil)

		_, err := svc.Checkout(t.Context(), customer, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})
}

func TestOrderAccess(t *testing.T) {

	stored := domain.Order{OrderID: "o1", UserID: "u1"}

	t.Run("OwnerReadsOwnOrder", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		svc := service.NewOrderService(orders, new(MockCartProvider))

		orders.On("OrderByID", mock.Anything, "o1").Return(stored, nil)

		o, err := svc.Order(
			t.Context(), domain.User{UserID: "u1"}, "o1",
		)
		require.NoError(t, err)
		assert.Equal(t, "o1", o.OrderID)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		svc := service.NewOrderService(orders, new(MockCartProvider))

		orders.On("OrderByID", mock.Anything, "o1").Return(stored, nil)

		_, err := svc.Order(
			t.Context(), domain.User{UserID: "u2"}, "o1",
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("AdminReadsAnyOrder", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		svc := service.NewOrderService(orders, new(MockCartProvider))

		orders.On("OrderByID", mock.Anything, "o1").Return(stored, nil)

		admin := domain.User{UserID: "adm", Role: domain.RoleAdmin}
		o, err := svc.Order(t.Context(), admin, "o1")
		require.NoError(t, err)
		assert.Equal(t, "o1", o.OrderID)
	})
}

func TestOrderUpdateStatus(t *testing.T) {

	t.Run("AppendsTrackingEvent", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		svc := service.NewOrderService(orders, new(MockCartProvider))

		stored := domain.Order{
			OrderID: "o1",
			UserID:  "u1",
			Status:  domain.OrderPending,
			Tracking: []domain.TrackingEvent{
				{Status: "created"},
			},
		}
		orders.On("OrderByID", mock.Anything, "o1").Return(stored, nil)
		orders.On("UpdateOrder", mock.Anything, mock.Anything).Return(nil)

		o, err := svc.UpdateStatus(
			t.Context(), "o1", domain.OrderShipped, "left warehouse",
		)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderShipped, o.Status)
		require.Len(t, o.Tracking, 2)
		assert.Equal(t, "shipped", o.Tracking[1].Status)
		assert.Equal(t, "left warehouse", o.Tracking[1].Note)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		svc := service.NewOrderService(orders, new(MockCartProvider))

		_, err := svc.UpdateStatus(
			t.Context(), "o1", domain.OrderStatus("teleported"), "",
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalid)
		orders.AssertNotCalled(t, "OrderByID", mock.Anything, mock.Anything)
	})

	t.Run("TerminalOrderRejectsUpdate", func(t *testing.T) {
		orders := new(MockOrdersRepository)
		svc := service.NewOrderService(orders, new(MockCartProvider))

		orders.On("OrderByID", mock.Anything, "o1").Return(domain.Order{
			OrderID: "o1",
			Status:  domain.OrderDelivered,
		}, nil)

		_, err := svc.UpdateStatus(
			t.Context(), "o1", domain.OrderCancelled, "",
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOrderClosed)
		orders.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
	})
}

func TestOrderUpdatePaymentStatus(t *testing.T) {
	orders := new(MockOrdersRepository)
	svc := service.NewOrderService(orders, new(MockCartProvider))

	orders.On("OrderByID", mock.Anything, "o1").Return(domain.Order{
		OrderID:       "o1",
		Status:        domain.OrderPending,
		PaymentStatus: domain.PaymentUnpaid,
	}, nil)
	orders.On("UpdateOrder", mock.Anything, mock.Anything).Return(nil)

	o, err := svc.UpdatePaymentStatus(t.Context(), "o1", domain.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, o.PaymentStatus)
	require.NotEmpty(t, o.Tracking)
	assert.Equal(t, "payment:paid", o.Tracking[len(o.Tracking)-1].Status)
}
