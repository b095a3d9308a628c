package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.ReviewsRepository = (*ReviewsRepository)(nil)

type reviewDoc struct {
	ReviewID     string    `bson:"_id"`
	ProductID    string    `bson:"product_id"`
	UserID       string    `bson:"user_id"`
	UserName     string    `bson:"user_name"`
	Rating       int       `bson:"rating"`
	Comment      string    `bson:"comment"`
	Verified     bool      `bson:"verified"`
	HelpfulCount int       `bson:"helpful_count"`
	Voters       []string  `bson:"voters"`
	CreatedAt    time.Time `bson:"created_at"`
}

type ReviewsRepository struct {
	store DocumentStore
}

func NewReviewsRepository(store DocumentStore) ReviewsRepository {
	return ReviewsRepository{store}
}

func (r ReviewsRepository) CreateReview(
	ctx context.Context, v domain.Review,
) error {
	const op = "ReviewsRepository.CreateReview"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	doc := reviewDoc{
		ReviewID:     v.ReviewID,
		ProductID:    v.ProductID,
		UserID:       v.UserID,
		UserName:     v.UserName,
		Rating:       v.Rating,
		Comment:      v.Comment,
		Verified:     v.Verified,
		HelpfulCount: v.HelpfulCount,
		Voters:       []string{},
		CreatedAt:    v.CreatedAt,
	}
	if _, err := r.store.collection(reviewsCollection).
		InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ReviewsRepository) ReviewsByProduct(
	ctx context.Context, productID string,
) ([]domain.Review, error) {
	const op = "ReviewsRepository.ReviewsByProduct"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.store.collection(reviewsCollection).
		Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rs := make([]domain.Review, 0, len(docs))
	for _, doc := range docs {
		rs = append(rs, reviewToDomain(doc))
	}
	return rs, nil
}

func (r ReviewsRepository) ReviewByProductAndUser(
	ctx context.Context, productID, userID string,
) (domain.Review, error) {
	const op = "ReviewsRepository.ReviewByProductAndUser"

	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc reviewDoc
	err := r.store.collection(reviewsCollection).
		FindOne(ctx, bson.M{"product_id": productID, "user_id": userID}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Review{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return reviewToDomain(doc), nil
}

// AddHelpfulVote increments the counter only when the user has not voted
// before. The voter guard and the increment are one atomic update.
func (r ReviewsRepository) AddHelpfulVote(
	ctx context.Context, reviewID, userID string,
) (bool, error) {
	const op = "ReviewsRepository.AddHelpfulVote"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.M{"_id": reviewID, "voters": bson.M{"$ne": userID}}
	update := bson.M{
		"$inc":      bson.M{"helpful_count": 1},
		"$addToSet": bson.M{"voters": userID},
	}

	res, err := r.store.collection(reviewsCollection).
		UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if res.ModifiedCount == 0 {
		// either the review does not exist or the user already voted
		n, err := r.store.collection(reviewsCollection).
			CountDocuments(ctx, bson.M{"_id": reviewID})
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		if n == 0 {
			return false, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return false, nil
	}
	return true, nil
}

func reviewToDomain(d reviewDoc) domain.Review {
	return domain.Review{
		ReviewID:     d.ReviewID,
		ProductID:    d.ProductID,
		UserID:       d.UserID,
		UserName:     d.UserName,
		Rating:       d.Rating,
		Comment:      d.Comment,
		Verified:     d.Verified,
		HelpfulCount: d.HelpfulCount,
		Voters:       d.Voters,
		CreatedAt:    d.CreatedAt,
	}
}
