package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"github.com/storeworks/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	repo     *MockProductsRepository
	cache    *MockCatalogCache
	producer *MockSyncProducer
	observer *MockVersionObserver
	svc      *service.CatalogService
}

func newCatalogFixture(pollInterval time.Duration) catalogFixture {
	f := catalogFixture{
		repo:     new(MockProductsRepository),
		cache:    new(MockCatalogCache),
		producer: new(MockSyncProducer),
		observer: new(MockVersionObserver),
	}
	f.svc = service.NewCatalogService(
		f.repo, f.cache, f.producer, f.observer, time.Hour, pollInterval,
	)
	return f
}

func (f catalogFixture) expectCachePersist() {
	f.cache.On("SaveCatalog", mock.Anything, mock.Anything).Return(nil)
	f.cache.On("SetLastSync", mock.Anything).Return(nil)
}

func (f catalogFixture) expectSyncProduced() {
	f.producer.On("ProduceSync", mock.Anything, mock.Anything).Return(nil)
}

func adminProduct(id string) domain.Product {
	return domain.Product{
		ProductID: id,
		Name:      "testProduct",
		Category:  "electronics",
		Price:     decimal.RequireFromString("49.99"),
		InStock:   true,
	}
}

func TestCatalogBootstrap(t *testing.T) {

	t.Run("SeedsEmptyStore", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		seed := domain.SeedCatalog()

		f.repo.On("Count", mock.Anything).Return(int64(0), nil)
		f.repo.On("UpsertMany", mock.Anything, seed).Return(nil)
		f.repo.On("SetVersion", mock.Anything, domain.SeedVersion).Return(nil)
		f.expectCachePersist()
		f.expectSyncProduced()

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		ps, err := f.svc.Products(t.Context(), port.ProductQuery{})
		require.NoError(t, err)
		assert.Len(t, ps, len(seed))
		assert.Equal(t, domain.SeedVersion, f.svc.CurrentVersion())
		f.repo.AssertExpectations(t)
	})

	t.Run("ServesRemoteWhenComplete", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		remote := append(domain.SeedCatalog(), adminProduct("adm-1"))

		f.repo.On("Count", mock.Anything).Return(int64(len(remote)), nil)
		f.repo.On("All", mock.Anything).Return(remote, nil)
		f.repo.On("Version", mock.Anything).Return(uint64(3), nil)
		f.expectCachePersist()

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		ps, err := f.svc.Products(t.Context(), port.ProductQuery{})
		require.NoError(t, err)
		assert.Len(t, ps, len(remote))
		assert.Equal(t, uint64(3), f.svc.CurrentVersion())
		f.repo.AssertNotCalled(t, "UpsertMany", mock.Anything, mock.Anything)
	})

	t.Run("RepairsMissingSeedMembers", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		seed := domain.SeedCatalog()
		missing := seed[0]
		remote := append(seed[1:], adminProduct("adm-1"))

		f.repo.On("Count", mock.Anything).Return(int64(len(remote)), nil)
		f.repo.On("All", mock.Anything).Return(remote, nil)
		f.repo.On("Version", mock.Anything).Return(uint64(4), nil)
		f.repo.On(
			"UpsertMany", mock.Anything,
			mock.MatchedBy(func(ps []domain.Product) bool {
				return len(ps) == 1 && ps[0].ProductID == missing.ProductID
			}),
		).Return(nil)
		f.repo.On("SetVersion", mock.Anything, uint64(5)).Return(nil)
		f.expectCachePersist()
		f.expectSyncProduced()

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		got, err := f.svc.Product(t.Context(), missing.ProductID)
		require.NoError(t, err)
		assert.Equal(t, missing.Name, got.Name)

		ps, err := f.svc.Products(t.Context(), port.ProductQuery{})
		require.NoError(t, err)
		assert.Len(t, ps, len(seed)+1)
		assert.Equal(t, uint64(5), f.svc.CurrentVersion())
		f.repo.AssertExpectations(t)
	})

	t.Run("DegradesToLocalCache", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		cached := []domain.Product{adminProduct("adm-1")}

		f.repo.On("Count", mock.Anything).
			Return(int64(0), errors.New("store down"))
		f.cache.On("LoadCatalog").Return(cached, uint64(7), true, nil)

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		ps, err := f.svc.Products(t.Context(), port.ProductQuery{})
		require.NoError(t, err)
		assert.Len(t, ps, 1)
		assert.Equal(t, uint64(7), f.svc.CurrentVersion())
	})

	t.Run("DegradesToSeedWithoutCache", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)

		f.repo.On("Count", mock.Anything).
			Return(int64(0), errors.New("store down"))
		f.cache.On("LoadCatalog").
			Return(([]domain.Product)(nil), uint64(0), false, nil)

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		ps, err := f.svc.Products(t.Context(), port.ProductQuery{})
		require.NoError(t, err)
		assert.Len(t, ps, len(domain.SeedCatalog()))
		assert.Equal(t, domain.SeedVersion, f.svc.CurrentVersion())
	})
}

func TestCatalogResync(t *testing.T) {

	t.Run("ThrottledWithinInterval", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		remote := domain.SeedCatalog()

		f.repo.On("Count", mock.Anything).Return(int64(len(remote)), nil)
		f.repo.On("All", mock.Anything).Return(remote, nil)
		f.repo.On("Version", mock.Anything).Return(uint64(2), nil)
		f.expectCachePersist()

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		f.cache.On("LastSync").Return(time.Now().UTC(), true, nil)
		require.NoError(t, f.svc.Resync(t.Context()))

		f.repo.AssertNumberOfCalls(t, "All", 1)
	})

	t.Run("RefreshesAfterInterval", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		remote := domain.SeedCatalog()

		f.repo.On("Count", mock.Anything).Return(int64(len(remote)), nil)
		f.repo.On("All", mock.Anything).Return(remote, nil)
		f.repo.On("Version", mock.Anything).Return(uint64(2), nil)
		f.expectCachePersist()

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		stale := time.Now().UTC().Add(-2 * time.Hour)
		f.cache.On("LastSync").Return(stale, true, nil)
		require.NoError(t, f.svc.Resync(t.Context()))

		f.repo.AssertNumberOfCalls(t, "All", 2)
	})
}

func TestCatalogSaveProduct(t *testing.T) {

	t.Run("RejectsInvalidProduct", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)

		p := adminProduct("adm-1")
		p.Price = decimal.Zero

		_, err := f.svc.SaveProduct(t.Context(), p)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalid)
		f.repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("PersistsAndBumpsVersion", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		remote := domain.SeedCatalog()

		f.repo.On("Count", mock.Anything).Return(int64(len(remote)), nil)
		f.repo.On("All", mock.Anything).Return(remote, nil)
		f.repo.On("Version", mock.Anything).Return(uint64(3), nil)
		f.expectCachePersist()
		f.expectSyncProduced()

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		p := adminProduct("adm-1")
		f.repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("SetVersion", mock.Anything, uint64(4)).Return(nil)

		saved, err := f.svc.SaveProduct(t.Context(), p)
		require.NoError(t, err)
		assert.Equal(t, p.ProductID, saved.ProductID)
		assert.False(t, saved.UpdatedAt.IsZero())
		assert.Equal(t, uint64(4), f.svc.CurrentVersion())

		got, err := f.svc.Product(t.Context(), p.ProductID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		f.repo.AssertExpectations(t)
	})

	t.Run("AssignsIDToNewProduct", func(t *testing.T) {
		f := newCatalogFixture(time.Minute)
		remote := domain.SeedCatalog()

		f.repo.On("Count", mock.Anything).Return(int64(len(remote)), nil)
		f.repo.On("All", mock.Anything).Return(remote, nil)
		f.repo.On("Version", mock.Anything).Return(uint64(1), nil)
		f.expectCachePersist()
		f.expectSyncProduced()

		require.NoError(t, f.svc.Bootstrap(t.Context()))

		p := adminProduct("")
		f.repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("SetVersion", mock.Anything, uint64(2)).Return(nil)

		saved, err := f.svc.SaveProduct(t.Context(), p)
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ProductID)
		assert.False(t, saved.CreatedAt.IsZero())
	})
}

func TestCatalogDeleteProduct(t *testing.T) {
	f := newCatalogFixture(time.Minute)
	seed := domain.SeedCatalog()

	f.repo.On("Count", mock.Anything).Return(int64(0), nil)
	f.repo.On("UpsertMany", mock.Anything, seed).Return(nil)
	f.repo.On("SetVersion", mock.Anything, domain.SeedVersion).Return(nil)
	f.expectCachePersist()
	f.expectSyncProduced()

	require.NoError(t, f.svc.Bootstrap(t.Context()))

	victim := seed[0].ProductID
	f.repo.On("Delete", mock.Anything, victim).Return(nil)
	f.repo.On("SetVersion", mock.Anything, uint64(2)).Return(nil)

	require.NoError(t, f.svc.DeleteProduct(t.Context(), victim))

	_, err := f.svc.Product(t.Context(), victim)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, uint64(2), f.svc.CurrentVersion())
}

func TestCatalogQueries(t *testing.T) {
	f := newCatalogFixture(time.Minute)
	seed := domain.SeedCatalog()

	f.repo.On("Count", mock.Anything).Return(int64(len(seed)), nil)
	f.repo.On("All", mock.Anything).Return(seed, nil)
	f.repo.On("Version", mock.Anything).Return(uint64(1), nil)
	f.expectCachePersist()

	require.NoError(t, f.svc.Bootstrap(t.Context()))

	t.Run("FiltersByCategory", func(t *testing.T) {
		ps, err := f.svc.Products(
			t.Context(), port.ProductQuery{Category: "electronics"},
		)
		require.NoError(t, err)
		require.NotEmpty(t, ps)
		for _, p := range ps {
			assert.Equal(t, "electronics", p.Category)
		}
	})

	t.Run("FiltersFeatured", func(t *testing.T) {
		ps, err := f.svc.Products(
			t.Context(), port.ProductQuery{FeaturedOnly: true},
		)
		require.NoError(t, err)
		for _, p := range ps {
			assert.True(t, p.Featured)
		}
	})

	t.Run("Categories", func(t *testing.T) {
		cs, err := f.svc.Categories(t.Context())
		require.NoError(t, err)
		assert.ElementsMatch(t, domain.SeedCategories(), cs)
	})
}

func TestCatalogObservedVersion(t *testing.T) {
	f := newCatalogFixture(10 * time.Millisecond)
	remote := domain.SeedCatalog()

	f.repo.On("Count", mock.Anything).Return(int64(len(remote)), nil)
	f.repo.On("All", mock.Anything).Return(remote, nil)
	f.repo.On("Version", mock.Anything).Return(uint64(1), nil).Once()
	f.expectCachePersist()

	require.NoError(t, f.svc.Bootstrap(t.Context()))
	require.Equal(t, uint64(1), f.svc.CurrentVersion())

	// Another instance announces version 2, this one re-pulls.
	f.observer.On("ObservedVersion").Return(uint64(2), true)
	f.cache.On("InvalidateCatalog").Return(nil)
	f.repo.On("Version", mock.Anything).Return(uint64(2), nil)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go f.svc.Run(ctx)

	assert.Eventually(t, func() bool {
		return f.svc.CurrentVersion() == 2
	}, time.Second, 10*time.Millisecond)
}
