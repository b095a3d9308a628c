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
)

var _ port.SessionsRepository = (*SessionsRepository)(nil)

type sessionDoc struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

type resetTokenDoc struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

type SessionsRepository struct {
	store DocumentStore
}

func NewSessionsRepository(store DocumentStore) SessionsRepository {
	return SessionsRepository{store}
}

func (r SessionsRepository) CreateSession(
	ctx context.Context, s domain.Session,
) error {
	const op = "SessionsRepository.CreateSession"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	doc := sessionDoc{
		Token:     s.Token,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	if _, err := r.store.collection(sessionsCollection).
		InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r SessionsRepository) SessionByToken(
	ctx context.Context, token string,
) (domain.Session, error) {
	const op = "SessionsRepository.SessionByToken"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc sessionDoc
	err := r.store.collection(sessionsCollection).
		FindOne(ctx, bson.M{"_id": token}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Session{},
				fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Session{
		Token:     doc.Token,
		UserID:    doc.UserID,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

func (r SessionsRepository) DeleteSession(
	ctx context.Context, token string,
) error {
	const op = "SessionsRepository.DeleteSession"
	return r.deleteByID(ctx, op, sessionsCollection, token)
}

func (r SessionsRepository) CreateResetToken(
	ctx context.Context, t domain.ResetToken,
) error {
	const op = "SessionsRepository.CreateResetToken"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	doc := resetTokenDoc{
		Token:     t.Token,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt,
	}
	if _, err := r.store.collection(resetTokensCollection).
		InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r SessionsRepository) ResetToken(
	ctx context.Context, token string,
) (domain.ResetToken, error) {
	const op = "SessionsRepository.ResetToken"

	if err := ctx.Err(); err != nil {
		return domain.ResetToken{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc resetTokenDoc
	err := r.store.collection(resetTokensCollection).
		FindOne(ctx, bson.M{"_id": token}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ResetToken{},
				fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.ResetToken{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.ResetToken{
		Token:     doc.Token,
		UserID:    doc.UserID,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

func (r SessionsRepository) DeleteResetToken(
	ctx context.Context, token string,
) error {
	const op = "SessionsRepository.DeleteResetToken"
	return r.deleteByID(ctx, op, resetTokensCollection, token)
}

func (r SessionsRepository) deleteByID(
	ctx context.Context, op, collection, id string,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.store.collection(collection).
		DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
