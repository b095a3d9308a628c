package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection    = "products"
	catalogMetaCollection = "catalog_meta"
	usersCollection       = "users"
	sessionsCollection    = "sessions"
	resetTokensCollection = "reset_tokens"
	ordersCollection      = "orders"
	reviewsCollection     = "reviews"
	wishlistCollection    = "wishlist"
)

// A DocumentStore is the shared client for the hosted document database
// all repositories read and write through.
type DocumentStore struct {
	cl *mongo.Client
	db *mongo.Database
}

func NewDocumentStore(
	ctx context.Context, uri, database string,
) (DocumentStore, error) {
	const op = "NewDocumentStore"
	log := slog.With("op", op)

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return DocumentStore{}, fmt.Errorf("%s: %w", op, err)
	}

	s := DocumentStore{cl: cl, db: cl.Database(database)}
	if err := s.cl.Ping(ctx, nil); err != nil {
		return DocumentStore{},
			fmt.Errorf("%s: document store is unavailable: %w", op, err)
	}

	log.Info("document store is available")
	return s, nil
}

func (s DocumentStore) Close(ctx context.Context) {
	const op = "DocumentStore.Close"
	log := slog.With("op", op)

	log.Info("closing document store...")

	if err := s.cl.Disconnect(ctx); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("document store is closed")
}

func (s DocumentStore) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
