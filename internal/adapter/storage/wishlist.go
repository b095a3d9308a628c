package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.WishlistRepository = (*WishlistRepository)(nil)

type wishlistItemDoc struct {
	UserID    string    `bson:"user_id"`
	ProductID string    `bson:"product_id"`
	AddedAt   time.Time `bson:"added_at"`
}

type WishlistRepository struct {
	store DocumentStore
}

func NewWishlistRepository(store DocumentStore) WishlistRepository {
	return WishlistRepository{store}
}

// AddWishlistItem upserts on the (user, product) pair, so re-adding is a
// no-op rather than a duplicate.
func (r WishlistRepository) AddWishlistItem(
	ctx context.Context, item domain.WishlistItem,
) error {
	const op = "WishlistRepository.AddWishlistItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.M{"user_id": item.UserID, "product_id": item.ProductID}
	update := bson.M{
		"$setOnInsert": wishlistItemDoc{
			UserID:    item.UserID,
			ProductID: item.ProductID,
			AddedAt:   item.AddedAt,
		},
	}

	_, err := r.store.collection(wishlistCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r WishlistRepository) RemoveWishlistItem(
	ctx context.Context, userID, productID string,
) error {
	const op = "WishlistRepository.RemoveWishlistItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.store.collection(wishlistCollection).
		DeleteOne(ctx, bson.M{"user_id": userID, "product_id": productID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r WishlistRepository) WishlistByUser(
	ctx context.Context, userID string,
) ([]domain.WishlistItem, error) {
	const op = "WishlistRepository.WishlistByUser"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().SetSort(bson.M{"added_at": -1})
	cur, err := r.store.collection(wishlistCollection).
		Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []wishlistItemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]domain.WishlistItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, domain.WishlistItem{
			UserID:    doc.UserID,
			ProductID: doc.ProductID,
			AddedAt:   doc.AddedAt,
		})
	}
	return items, nil
}
