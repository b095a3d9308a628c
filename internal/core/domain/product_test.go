package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {

	valid := func() domain.Product {
		return domain.Product{
			ProductID: "p1",
			Name:      "Mug",
			Category:  "home",
			Price:     decimal.RequireFromString("9.99"),
		}
	}

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("EmptyProductID", func(t *testing.T) {
		p := valid()
		p.ProductID = ""
		assert.ErrorIs(t, p.Validate(), domain.ErrInvalid)
	})

	t.Run("EmptyName", func(t *testing.T) {
		p := valid()
		p.Name = ""
		assert.ErrorIs(t, p.Validate(), domain.ErrInvalid)
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		p := valid()
		p.Price = decimal.Zero
		assert.ErrorIs(t, p.Validate(), domain.ErrInvalid)
	})

	t.Run("PriceAboveOriginal", func(t *testing.T) {
		p := valid()
		p.OriginalPrice = decimal.RequireFromString("5")
		assert.ErrorIs(t, p.Validate(), domain.ErrInvalid)
	})

	t.Run("DiscountedPriceBelowOriginal", func(t *testing.T) {
		p := valid()
		p.OriginalPrice = decimal.RequireFromString("19.99")
		require.NoError(t, p.Validate())
		assert.True(t, p.Discounted())
	})

	t.Run("NegativeStock", func(t *testing.T) {
		p := valid()
		p.StockQuantity = -1
		assert.ErrorIs(t, p.Validate(), domain.ErrInvalid)
	})
}

func TestSeedCatalog(t *testing.T) {

	t.Run("AllMembersValid", func(t *testing.T) {
		for _, p := range domain.SeedCatalog() {
			require.NoError(t, p.Validate(), "product %s", p.ProductID)
		}
	})

	t.Run("UniqueProductIDs", func(t *testing.T) {
		seen := make(map[string]struct{})
		for _, p := range domain.SeedCatalog() {
			_, dup := seen[p.ProductID]
			require.False(t, dup, "duplicate id %s", p.ProductID)
			seen[p.ProductID] = struct{}{}
		}
	})

	t.Run("CoversAllSeedCategories", func(t *testing.T) {
		got := make(map[string]struct{})
		for _, p := range domain.SeedCatalog() {
			got[p.Category] = struct{}{}
		}
		for _, c := range domain.SeedCategories() {
			assert.Contains(t, got, c)
		}
	})
}
