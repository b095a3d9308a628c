package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
)

var _ port.Reviews = (*ReviewService)(nil)

type ReviewService struct {
	reviews port.ReviewsRepository
	orders  port.OrdersRepository
	catalog port.CatalogProvider
}

func NewReviewService(
	reviews port.ReviewsRepository,
	orders port.OrdersRepository,
	catalog port.CatalogProvider,
) ReviewService {
	return ReviewService{reviews, orders, catalog}
}

// AddReview creates one review per user per product. The verified flag is
// set when the reviewer has a delivered order containing the product.
func (s ReviewService) AddReview(
	ctx context.Context, user domain.User,
	productID string, rating int, comment string,
) (domain.Review, error) {
	const op = "ReviewService.AddReview"

	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.catalog.Product(ctx, productID); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	_, err := s.reviews.ReviewByProductAndUser(ctx, productID, user.UserID)
	if err == nil {
		return domain.Review{},
			fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	verified, err := s.orders.HasDelivered(ctx, user.UserID, productID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	r := domain.Review{
		ReviewID:  uuid.NewString(),
		ProductID: productID,
		UserID:    user.UserID,
		UserName:  user.Name,
		Rating:    rating,
		Comment:   comment,
		Verified:  verified,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.Validate(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.reviews.CreateReview(ctx, r); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

func (s ReviewService) ProductReviews(
	ctx context.Context, productID string,
) ([]domain.Review, domain.ReviewSummary, error) {
	const op = "ReviewService.ProductReviews"

	if err := ctx.Err(); err != nil {
		return nil, domain.ReviewSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	rs, err := s.reviews.ReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, domain.ReviewSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return rs, domain.Summarize(rs), nil
}

// MarkHelpful increments the helpfulness counter at most once per user.
func (s ReviewService) MarkHelpful(
	ctx context.Context, userID, reviewID string,
) error {
	const op = "ReviewService.MarkHelpful"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	voted, err := s.reviews.AddHelpfulVote(ctx, reviewID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !voted {
		return fmt.Errorf("%s: %w", op, domain.ErrAlreadyVoted)
	}
	return nil
}
