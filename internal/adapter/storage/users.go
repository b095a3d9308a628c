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

var _ port.UsersRepository = (*UsersRepository)(nil)

type addressDoc struct {
	Street     string `bson:"street"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postal_code"`
	Country    string `bson:"country"`
}

type userDoc struct {
	UserID       string     `bson:"_id"`
	Email        string     `bson:"email"`
	PasswordHash []byte     `bson:"password_hash"`
	Name         string     `bson:"name"`
	Phone        string     `bson:"phone"`
	Role         string     `bson:"role"`
	Address      addressDoc `bson:"address"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

type UsersRepository struct {
	store DocumentStore
}

func NewUsersRepository(store DocumentStore) UsersRepository {
	return UsersRepository{store}
}

func (r UsersRepository) CreateUser(ctx context.Context, u domain.User) error {
	const op = "UsersRepository.CreateUser"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err := r.store.collection(usersCollection).
		InsertOne(ctx, userToDoc(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r UsersRepository) UserByEmail(
	ctx context.Context, email string,
) (domain.User, error) {
	const op = "UsersRepository.UserByEmail"
	return r.findOne(ctx, op, bson.M{"email": email})
}

func (r UsersRepository) UserByID(
	ctx context.Context, userID string,
) (domain.User, error) {
	const op = "UsersRepository.UserByID"
	return r.findOne(ctx, op, bson.M{"_id": userID})
}

func (r UsersRepository) UpdateUser(ctx context.Context, u domain.User) error {
	const op = "UsersRepository.UpdateUser"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.store.collection(usersCollection).
		ReplaceOne(ctx, bson.M{"_id": u.UserID}, userToDoc(u))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r UsersRepository) findOne(
	ctx context.Context, op string, filter bson.M,
) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc userDoc
	err := r.store.collection(usersCollection).
		FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return userToDomain(doc), nil
}

func userToDoc(u domain.User) userDoc {
	return userDoc{
		UserID:       u.UserID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         string(u.Role),
		Address: addressDoc{
			Street:     u.Address.Street,
			City:       u.Address.City,
			State:      u.Address.State,
			PostalCode: u.Address.PostalCode,
			Country:    u.Address.Country,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userToDomain(d userDoc) domain.User {
	return domain.User{
		UserID:       d.UserID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Phone:        d.Phone,
		Role:         domain.Role(d.Role),
		Address: domain.Address{
			Street:     d.Address.Street,
			City:       d.Address.City,
			State:      d.Address.State,
			PostalCode: d.Address.PostalCode,
			Country:    d.Address.Country,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
