package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
)

var _ port.Orders = (*OrderService)(nil)

type OrderService struct {
	orders port.OrdersRepository
	carts  port.CartProvider
}

func NewOrderService(
	orders port.OrdersRepository, carts port.CartProvider,
) OrderService {
	return OrderService{orders, carts}
}

// Checkout snapshots the session cart into an order and clears the cart.
// The order items capture prices at purchase time.
func (s OrderService) Checkout(
	ctx context.Context, user domain.User, req port.CheckoutRequest,
) (domain.Order, error) {
	const op = "OrderService.Checkout"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.Cart(ctx, req.SessionID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if cart.Empty() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	order := domain.NewOrder(
		uuid.NewString(), user.UserID, cart,
		req.Shipping, req.PaymentMethod, time.Now().UTC(),
	)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.carts.ClearCart(ctx, req.SessionID); err != nil {
		log.Warn("order placed but cart not cleared",
			"orderID", order.OrderID, "err", err)
	}

	log.Info("order placed",
		"orderID", order.OrderID, "total", order.Total.String())
	return order, nil
}

func (s OrderService) Order(
	ctx context.Context, user domain.User, orderID string,
) (domain.Order, error) {
	const op = "OrderService.Order"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	o, err := s.orders.OrderByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if o.UserID != user.UserID && !user.IsAdmin() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	}
	return o, nil
}

func (s OrderService) UserOrders(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	const op = "OrderService.UserOrders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	os, err := s.orders.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return os, nil
}

func (s OrderService) AllOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderService.AllOrders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	os, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return os, nil
}

// UpdateStatus sets the new status and appends a tracking event. The
// tracking log is append-only; terminal orders reject further updates.
func (s OrderService) UpdateStatus(
	ctx context.Context, orderID string,
	status domain.OrderStatus, note string,
) (domain.Order, error) {
	const op = "OrderService.UpdateStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrInvalid)
	}

	o, err := s.orders.OrderByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if o.Status.Terminal() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrOrderClosed)
	}

	now := time.Now().UTC()
	o.Status = status
	o.Tracking = append(o.Tracking, domain.TrackingEvent{
		Status: string(status),
		Note:   note,
		At:     now,
	})
	o.UpdatedAt = now

	if err := s.orders.UpdateOrder(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (s OrderService) UpdatePaymentStatus(
	ctx context.Context, orderID string, status domain.PaymentStatus,
) (domain.Order, error) {
	const op = "OrderService.UpdatePaymentStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrInvalid)
	}

	o, err := s.orders.OrderByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	o.PaymentStatus = status
	o.Tracking = append(o.Tracking, domain.TrackingEvent{
		Status: "payment:" + string(status),
		At:     now,
	})
	o.UpdatedAt = now

	if err := s.orders.UpdateOrder(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}
