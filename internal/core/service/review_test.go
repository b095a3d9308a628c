package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	reviews *MockReviewsRepository
	orders  *MockOrdersRepository
	catalog *MockCatalogProvider
	svc     service.ReviewService
}

func newReviewFixture() reviewFixture {
	f := reviewFixture{
		reviews: new(MockReviewsRepository),
		orders:  new(MockOrdersRepository),
		catalog: new(MockCatalogProvider),
	}
	f.svc = service.NewReviewService(f.reviews, f.orders, f.catalog)
	return f
}

func knownProduct() domain.Product {
	return domain.Product{
		ProductID: "p1",
		Name:      "Mug",
		Category:  "home",
		Price:     decimal.RequireFromString("10"),
	}
}

func TestAddReview(t *testing.T) {

	reviewer := domain.User{UserID: "u1", Name: "Jordan"}

	t.Run("VerifiedAfterDelivery", func(t *testing.T) {
		f := newReviewFixture()

		f.catalog.On("Product", mock.Anything, "p1").
			Return(knownProduct(), nil)
		f.reviews.On("ReviewByProductAndUser", mock.Anything, "p1", "u1").
			Return(domain.Review{}, domain.ErrNotFound)
		f.orders.On("HasDelivered", mock.Anything, "u1", "p1").
			Return(true, nil)
		f.reviews.On("CreateReview", mock.Anything, mock.Anything).Return(nil)

		r, err := f.svc.AddReview(t.Context(), reviewer, "p1", 5, "great mug")
		require.NoError(t, err)
		assert.True(t, r.Verified)
		assert.Equal(t, "Jordan", r.UserName)
		assert.NotEmpty(t, r.ReviewID)
	})

	t.Run("UnverifiedWithoutDelivery", func(t *testing.T) {
		f := newReviewFixture()

		f.catalog.On("Product", mock.Anything, "p1").
			Return(knownProduct(), nil)
		f.reviews.On("ReviewByProductAndUser", mock.Anything, "p1", "u1").
			Return(domain.Review{}, domain.ErrNotFound)
		f.orders.On("HasDelivered", mock.Anything, "u1", "p1").
			Return(false, nil)
		f.reviews.On("CreateReview", mock.Anything, mock.Anything).Return(nil)

		r, err := f.svc.AddReview(t.Context(), reviewer, "p1", 4, "nice")
		require.NoError(t, err)
		assert.False(t, r.Verified)
	})

	t.Run("OneReviewPerUser", func(t *testing.T) {
		f := newReviewFixture()

		f.catalog.On("Product", mock.Anything, "p1").
			Return(knownProduct(), nil)
		f.reviews.On("ReviewByProductAndUser", mock.Anything, "p1", "u1").
			Return(domain.Review{ReviewID: "r1"}, nil)

		_, err := f.svc.AddReview(t.Context(), reviewer, "p1", 5, "again")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		f.reviews.AssertNotCalled(
			t, "CreateReview", mock.Anything, mock.Anything,
		)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		f := newReviewFixture()

		f.catalog.On("Product", mock.Anything, "ghost").
			Return(domain.Product{}, domain.ErrNotFound)

		_, err := f.svc.AddReview(t.Context(), reviewer, "ghost", 5, "what")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		f := newReviewFixture()

		f.catalog.On("Product", mock.Anything, "p1").
			Return(knownProduct(), nil)
		f.reviews.On("ReviewByProductAndUser", mock.Anything, "p1", "u1").
			Return(domain.Review{}, domain.ErrNotFound)
		f.orders.On("HasDelivered", mock.Anything, "u1", "p1").
			Return(false, nil)

		_, err := f.svc.AddReview(t.Context(), reviewer, "p1", 6, "over")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

func TestProductReviews(t *testing.T) {
	f := newReviewFixture()

	stored := []domain.Review{
		{ReviewID: "r1", ProductID: "p1", Rating: 5},
		{ReviewID: "r2", ProductID: "p1", Rating: 2},
	}
	f.reviews.On("ReviewsByProduct", mock.Anything, "p1").Return(stored, nil)

	rs, summary, err := f.svc.ProductReviews(t.Context(), "p1")
	require.NoError(t, err)
	assert.Len(t, rs, 2)
	assert.Equal(t, 2, summary.TotalCount)
	assert.InDelta(t, 3.5, summary.AverageRating, 0.001)
}

func TestMarkHelpful(t *testing.T) {

	t.Run("FirstVoteCounts", func(t *testing.T) {
		f := newReviewFixture()

		f.reviews.On("AddHelpfulVote", mock.Anything, "r1", "u1").
			Return(true, nil)

		require.NoError(t, f.svc.MarkHelpful(t.Context(), "u1", "r1"))
	})

	t.Run("SecondVoteRejected", func(t *testing.T) {
		f := newReviewFixture()

		f.reviews.On("AddHelpfulVote", mock.Anything, "r1", "u1").
			Return(false, nil)

		err := f.svc.MarkHelpful(t.Context(), "u1", "r1")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	})
}
