package service

import (
	"context"
	"fmt"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
)

var _ port.CartProvider = (*CartService)(nil)

// A CartService maintains the per-session cart and mirrors every
// mutation to the local store before returning the result.
type CartService struct {
	store   port.CartStore
	catalog port.CatalogProvider
}

func NewCartService(
	store port.CartStore, catalog port.CatalogProvider,
) CartService {
	return CartService{store, catalog}
}

func (s CartService) Cart(
	ctx context.Context, sessionID string,
) (domain.Cart, error) {
	const op = "CartService.Cart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, ok, err := s.store.LoadCart(sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.NewCart(), nil
	}
	return cart, nil
}

func (s CartService) AddItem(
	ctx context.Context, sessionID, productID string, quantity int,
) (domain.Cart, error) {
	const op = "CartService.AddItem"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart = cart.AddItem(product, quantity)
	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}

func (s CartService) UpdateQuantity(
	ctx context.Context, sessionID, productID string, quantity int,
) (domain.Cart, error) {
	const op = "CartService.UpdateQuantity"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart = cart.UpdateQuantity(productID, quantity)
	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}

func (s CartService) RemoveItem(
	ctx context.Context, sessionID, productID string,
) (domain.Cart, error) {
	const op = "CartService.RemoveItem"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart = cart.RemoveItem(productID)
	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}

func (s CartService) ClearCart(
	ctx context.Context, sessionID string,
) (domain.Cart, error) {
	const op = "CartService.ClearCart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart := domain.NewCart()
	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}
