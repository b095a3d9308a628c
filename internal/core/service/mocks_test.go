package service_test

import (
	"context"
	"time"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"github.com/stretchr/testify/mock"
)

type MockProductsRepository struct {
	mock.Mock
}

func (m *MockProductsRepository) All(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductsRepository) Upsert(
	ctx context.Context, p domain.Product,
) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductsRepository) UpsertMany(
	ctx context.Context, ps []domain.Product,
) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func (m *MockProductsRepository) Delete(
	ctx context.Context, productID string,
) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockProductsRepository) Version(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockProductsRepository) SetVersion(
	ctx context.Context, v uint64,
) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) LoadCatalog() ([]domain.Product, uint64, bool, error) {
	args := m.Called()
	return args.Get(0).([]domain.Product), args.Get(1).(uint64),
		args.Bool(2), args.Error(3)
}

func (m *MockCatalogCache) SaveCatalog(
	ps []domain.Product, version uint64,
) error {
	args := m.Called(ps, version)
	return args.Error(0)
}

func (m *MockCatalogCache) InvalidateCatalog() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCatalogCache) LastSync() (time.Time, bool, error) {
	args := m.Called()
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

func (m *MockCatalogCache) SetLastSync(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

type MockSyncProducer struct {
	mock.Mock
}

func (m *MockSyncProducer) ProduceSync(
	ctx context.Context, evt domain.CatalogSyncEvent,
) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type MockVersionObserver struct {
	mock.Mock
}

func (m *MockVersionObserver) ObservedVersion() (uint64, bool) {
	args := m.Called()
	return args.Get(0).(uint64), args.Bool(1)
}

type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Products(
	ctx context.Context, q port.ProductQuery,
) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogProvider) Product(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogProvider) Categories(
	ctx context.Context,
) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockCartProvider struct {
	mock.Mock
}

func (m *MockCartProvider) Cart(
	ctx context.Context, sessionID string,
) (domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartProvider) AddItem(
	ctx context.Context, sessionID, productID string, quantity int,
) (domain.Cart, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartProvider) UpdateQuantity(
	ctx context.Context, sessionID, productID string, quantity int,
) (domain.Cart, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartProvider) RemoveItem(
	ctx context.Context, sessionID, productID string,
) (domain.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartProvider) ClearCart(
	ctx context.Context, sessionID string,
) (domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) LoadCart(
	sessionID string,
) (domain.Cart, bool, error) {
	args := m.Called(sessionID)
	return args.Get(0).(domain.Cart), args.Bool(1), args.Error(2)
}

func (m *MockCartStore) SaveCart(sessionID string, c domain.Cart) error {
	args := m.Called(sessionID, c)
	return args.Error(0)
}

func (m *MockCartStore) DropCart(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

type MockUsersRepository struct {
	mock.Mock
}

func (m *MockUsersRepository) CreateUser(
	ctx context.Context, u domain.User,
) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUsersRepository) UserByEmail(
	ctx context.Context, email string,
) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUsersRepository) UserByID(
	ctx context.Context, userID string,
) (domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUsersRepository) UpdateUser(
	ctx context.Context, u domain.User,
) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockSessionsRepository struct {
	mock.Mock
}

func (m *MockSessionsRepository) CreateSession(
	ctx context.Context, s domain.Session,
) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionsRepository) SessionByToken(
	ctx context.Context, token string,
) (domain.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockSessionsRepository) DeleteSession(
	ctx context.Context, token string,
) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionsRepository) CreateResetToken(
	ctx context.Context, t domain.ResetToken,
) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockSessionsRepository) ResetToken(
	ctx context.Context, token string,
) (domain.ResetToken, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.ResetToken), args.Error(1)
}

func (m *MockSessionsRepository) DeleteResetToken(
	ctx context.Context, token string,
) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockOrdersRepository struct {
	mock.Mock
}

func (m *MockOrdersRepository) CreateOrder(
	ctx context.Context, o domain.Order,
) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrdersRepository) OrderByID(
	ctx context.Context, orderID string,
) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersRepository) OrdersByUser(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersRepository) Orders(
	ctx context.Context,
) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersRepository) UpdateOrder(
	ctx context.Context, o domain.Order,
) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrdersRepository) HasDelivered(
	ctx context.Context, userID, productID string,
) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type MockReviewsRepository struct {
	mock.Mock
}

func (m *MockReviewsRepository) CreateReview(
	ctx context.Context, r domain.Review,
) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewsRepository) ReviewsByProduct(
	ctx context.Context, productID string,
) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewsRepository) ReviewByProductAndUser(
	ctx context.Context, productID, userID string,
) (domain.Review, error) {
	args := m.Called(ctx, productID, userID)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewsRepository) AddHelpfulVote(
	ctx context.Context, reviewID, userID string,
) (bool, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Error(1)
}

type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) AddWishlistItem(
	ctx context.Context, item domain.WishlistItem,
) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWishlistRepository) RemoveWishlistItem(
	ctx context.Context, userID, productID string,
) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockWishlistRepository) WishlistByUser(
	ctx context.Context, userID string,
) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}
