package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
)

var _ port.Wishlist = (*WishlistService)(nil)

type WishlistService struct {
	wishlist port.WishlistRepository
	catalog  port.CatalogProvider
}

func NewWishlistService(
	wishlist port.WishlistRepository, catalog port.CatalogProvider,
) WishlistService {
	return WishlistService{wishlist, catalog}
}

// AddToWishlist is idempotent: re-adding an existing pair is not an error.
func (s WishlistService) AddToWishlist(
	ctx context.Context, userID, productID string,
) error {
	const op = "WishlistService.AddToWishlist"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.catalog.Product(ctx, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	item := domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.wishlist.AddWishlistItem(ctx, item); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s WishlistService) RemoveFromWishlist(
	ctx context.Context, userID, productID string,
) error {
	const op = "WishlistService.RemoveFromWishlist"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.wishlist.RemoveWishlistItem(ctx, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s WishlistService) UserWishlist(
	ctx context.Context, userID string,
) ([]domain.WishlistItem, error) {
	const op = "WishlistService.UserWishlist"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.wishlist.WishlistByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s WishlistService) Contains(
	ctx context.Context, userID, productID string,
) (bool, error) {
	const op = "WishlistService.Contains"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.wishlist.WishlistByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	for _, item := range items {
		if item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
