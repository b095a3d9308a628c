package port

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/storeworks/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound ports: the service surface consumed by HTTP handlers.

type ProductQuery struct {
	Category     string
	FeaturedOnly bool
}

type CatalogProvider interface {
	Products(ctx context.Context, q ProductQuery) ([]domain.Product, error)
	Product(ctx context.Context, productID string) (domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type CatalogAdmin interface {
	SaveProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	SaveProducts(ctx context.Context, ps []domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

type CartProvider interface {
	Cart(ctx context.Context, sessionID string) (domain.Cart, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (domain.Cart, error)
}

type Registration struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  domain.Address
}

type ProfileUpdate struct {
	Name    string
	Phone   string
	Address domain.Address
}

type Accounts interface {
	Register(ctx context.Context, reg Registration) (domain.User, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, domain.User, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (domain.User, error)
}

type CheckoutRequest struct {
	SessionID     string
	Shipping      domain.Address
	PaymentMethod string
}

type Orders interface {
	Checkout(ctx context.Context, user domain.User, req CheckoutRequest) (domain.Order, error)
	Order(ctx context.Context, user domain.User, orderID string) (domain.Order, error)
	UserOrders(ctx context.Context, userID string) ([]domain.Order, error)
	AllOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, note string) (domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) (domain.Order, error)
}

type Reviews interface {
	AddReview(ctx context.Context, user domain.User, productID string, rating int, comment string) (domain.Review, error)
	ProductReviews(ctx context.Context, productID string) ([]domain.Review, domain.ReviewSummary, error)
	MarkHelpful(ctx context.Context, userID, reviewID string) error
}

type Wishlist interface {
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
	UserWishlist(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	Contains(ctx context.Context, userID, productID string) (bool, error)
}

// Outbound ports: adapters the core services depend on.

type ProductsRepository interface {
	All(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, p domain.Product) error
	UpsertMany(ctx context.Context, ps []domain.Product) error
	Delete(ctx context.Context, productID string) error
	Version(ctx context.Context) (uint64, error)
	SetVersion(ctx context.Context, v uint64) error
}

type UsersRepository interface {
	CreateUser(ctx context.Context, u domain.User) error
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	UserByID(ctx context.Context, userID string) (domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) error
}

type SessionsRepository interface {
	CreateSession(ctx context.Context, s domain.Session) error
	SessionByToken(ctx context.Context, token string) (domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
	CreateResetToken(ctx context.Context, t domain.ResetToken) error
	ResetToken(ctx context.Context, token string) (domain.ResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error
}

type OrdersRepository interface {
	CreateOrder(ctx context.Context, o domain.Order) error
	OrderByID(ctx context.Context, orderID string) (domain.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, o domain.Order) error
	HasDelivered(ctx context.Context, userID, productID string) (bool, error)
}

type ReviewsRepository interface {
	CreateReview(ctx context.Context, r domain.Review) error
	ReviewsByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	ReviewByProductAndUser(ctx context.Context, productID, userID string) (domain.Review, error)
	AddHelpfulVote(ctx context.Context, reviewID, userID string) (bool, error)
}

type WishlistRepository interface {
	AddWishlistItem(ctx context.Context, item domain.WishlistItem) error
	RemoveWishlistItem(ctx context.Context, userID, productID string) error
	WishlistByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error)
}

type ImageStore interface {
	UploadImage(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	DownloadImage(ctx context.Context, imageID string) (io.ReadCloser, string, error)
	DeleteImage(ctx context.Context, imageID string) error
}

// CartStore mirrors the active carts into node-local storage.
type CartStore interface {
	LoadCart(sessionID string) (domain.Cart, bool, error)
	SaveCart(sessionID string, c domain.Cart) error
	DropCart(sessionID string) error
}

// CatalogCache is the node-local catalog mirror. It is only ever replaced
// wholesale or invalidated; the remote store stays authoritative.
type CatalogCache interface {
	LoadCatalog() (ps []domain.Product, version uint64, ok bool, err error)
	SaveCatalog(ps []domain.Product, version uint64) error
	InvalidateCatalog() error
	LastSync() (time.Time, bool, error)
	SetLastSync(t time.Time) error
}

type SyncProducer interface {
	ProduceSync(context.Context, domain.CatalogSyncEvent) error
}

// VersionObserver reports the latest catalog version announced by any
// storefront instance.
type VersionObserver interface {
	ObservedVersion() (uint64, bool)
}

type CatalogVersionProcessor interface {
	runnerContextWg
	closer
}
