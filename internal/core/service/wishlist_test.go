package service_test

import (
	"testing"
	"time"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWishlist(t *testing.T) {

	t.Run("AddKnownProduct", func(t *testing.T) {
		repo := new(MockWishlistRepository)
		catalog := new(MockCatalogProvider)
		svc := service.NewWishlistService(repo, catalog)

		catalog.On("Product", mock.Anything, "p1").
			Return(knownProduct(), nil)
		repo.On(
			"AddWishlistItem", mock.Anything,
			mock.MatchedBy(func(item domain.WishlistItem) bool {
				return item.UserID == "u1" && item.ProductID == "p1"
			}),
		).Return(nil)

		require.NoError(t, svc.AddToWishlist(t.Context(), "u1", "p1"))
		repo.AssertExpectations(t)
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		repo := new(MockWishlistRepository)
		catalog := new(MockCatalogProvider)
		svc := service.NewWishlistService(repo, catalog)

		catalog.On("Product", mock.Anything, "ghost").
			Return(domain.Product{}, domain.ErrNotFound)

		err := svc.AddToWishlist(t.Context(), "u1", "ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(
			t, "AddWishlistItem", mock.Anything, mock.Anything,
		)
	})

	t.Run("Remove", func(t *testing.T) {
		repo := new(MockWishlistRepository)
		svc := service.NewWishlistService(repo, new(MockCatalogProvider))

		repo.On("RemoveWishlistItem", mock.Anything, "u1", "p1").Return(nil)

		require.NoError(t, svc.RemoveFromWishlist(t.Context(), "u1", "p1"))
	})

	t.Run("List", func(t *testing.T) {
		repo := new(MockWishlistRepository)
		svc := service.NewWishlistService(repo, new(MockCatalogProvider))

		items := []domain.WishlistItem{
			{UserID: "u1", ProductID: "p1", AddedAt: time.Now().UTC()},
			{UserID: "u1", ProductID: "p2", AddedAt: time.Now().UTC()},
		}
		repo.On("WishlistByUser", mock.Anything, "u1").Return(items, nil)

		got, err := svc.UserWishlist(t.Context(), "u1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Contains", func(t *testing.T) {
		repo := new(MockWishlistRepository)
		svc := service.NewWishlistService(repo, new(MockCatalogProvider))

		items := []domain.WishlistItem{
			{UserID: "u1", ProductID: "p1", AddedAt: time.Now().UTC()},
		}
		repo.On("WishlistByUser", mock.Anything, "u1").Return(items, nil)

		contains, err := svc.Contains(t.Context(), "u1", "p1")
		require.NoError(t, err)
		assert.True(t, contains)

		contains, err = svc.Contains(t.Context(), "u1", "p2")
		require.NoError(t, err)
		assert.False(t, contains)
	})
}
