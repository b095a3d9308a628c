package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.OrdersRepository = (*OrdersRepository)(nil)

type orderItemDoc struct {
	ProductID string `bson:"product_id"`
	Name      string `bson:"name"`
	Price     string `bson:"price"`
	Quantity  int    `bson:"quantity"`
}

type trackingEventDoc struct {
	Status string    `bson:"status"`
	Note   string    `bson:"note,omitempty"`
	At     time.Time `bson:"at"`
}

type orderDoc struct {
	OrderID         string             `bson:"_id"`
	UserID          string             `bson:"user_id"`
	Items           []orderItemDoc     `bson:"items"`
	Subtotal        string             `bson:"subtotal"`
	Tax             string             `bson:"tax"`
	Total           string             `bson:"total"`
	Status          string             `bson:"status"`
	PaymentStatus   string             `bson:"payment_status"`
	PaymentMethod   string             `bson:"payment_method"`
	ShippingAddress addressDoc         `bson:"shipping_address"`
	Tracking        []trackingEventDoc `bson:"tracking"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

type OrdersRepository struct {
	store DocumentStore
}

func NewOrdersRepository(store DocumentStore) OrdersRepository {
	return OrdersRepository{store}
}

func (r OrdersRepository) CreateOrder(
	ctx context.Context, o domain.Order,
) error {
	const op = "OrdersRepository.CreateOrder"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.store.collection(ordersCollection).
		InsertOne(ctx, orderToDoc(o)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r OrdersRepository) OrderByID(
	ctx context.Context, orderID string,
) (domain.Order, error) {
	const op = "OrdersRepository.OrderByID"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc orderDoc
	err := r.store.collection(ordersCollection).
		FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	o, err := orderToDomain(doc)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (r OrdersRepository) OrdersByUser(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	const op = "OrdersRepository.OrdersByUser"
	return r.find(ctx, op, bson.M{"user_id": userID})
}

func (r OrdersRepository) Orders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrdersRepository.Orders"
	return r.find(ctx, op, bson.M{})
}

func (r OrdersRepository) UpdateOrder(
	ctx context.Context, o domain.Order,
) error {
	const op = "OrdersRepository.UpdateOrder"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.store.collection(ordersCollection).
		ReplaceOne(ctx, bson.M{"_id": o.OrderID}, orderToDoc(o))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// HasDelivered reports whether the user has a delivered order containing
// the product. Used for the verified-review flag.
func (r OrdersRepository) HasDelivered(
	ctx context.Context, userID, productID string,
) (bool, error) {
	const op = "OrdersRepository.HasDelivered"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.M{
		"user_id":          userID,
		"status":           string(domain.OrderDelivered),
		"items.product_id": productID,
	}
	n, err := r.store.collection(ordersCollection).CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

func (r OrdersRepository) find(
	ctx context.Context, op string, filter bson.M,
) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.store.collection(ordersCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	os := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		o, err := orderToDomain(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		os = append(os, o)
	}
	return os, nil
}

func orderToDoc(o domain.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.String(),
			Quantity:  it.Quantity,
		})
	}

	tracking := make([]trackingEventDoc, 0, len(o.Tracking))
	for _, evt := range o.Tracking {
		tracking = append(tracking, trackingEventDoc{
			Status: evt.Status,
			Note:   evt.Note,
			At:     evt.At,
		})
	}

	return orderDoc{
		OrderID:       o.OrderID,
		UserID:        o.UserID,
		Items:         items,
		Subtotal:      o.Subtotal.String(),
		Tax:           o.Tax.String(),
		Total:         o.Total.String(),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentMethod: o.PaymentMethod,
		ShippingAddress: addressDoc{
			Street:     o.ShippingAddress.Street,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		Tracking:  tracking,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func orderToDomain(d orderDoc) (domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return domain.Order{}, err
		}
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     price,
			Quantity:  it.Quantity,
		})
	}

	subtotal, err := decimal.NewFromString(d.Subtotal)
	if err != nil {
		return domain.Order{}, err
	}
	tax, err := decimal.NewFromString(d.Tax)
	if err != nil {
		return domain.Order{}, err
	}
	total, err := decimal.NewFromString(d.Total)
	if err != nil {
		return domain.Order{}, err
	}

	tracking := make([]domain.TrackingEvent, 0, len(d.Tracking))
	for _, evt := range d.Tracking {
		tracking = append(tracking, domain.TrackingEvent{
			Status: evt.Status,
			Note:   evt.Note,
			At:     evt.At,
		})
	}

	return domain.Order{
		OrderID:       d.OrderID,
		UserID:        d.UserID,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Status:        domain.OrderStatus(d.Status),
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		PaymentMethod: d.PaymentMethod,
		ShippingAddress: domain.Address{
			Street:     d.ShippingAddress.Street,
			City:       d.ShippingAddress.City,
			State:      d.ShippingAddress.State,
			PostalCode: d.ShippingAddress.PostalCode,
			Country:    d.ShippingAddress.Country,
		},
		Tracking:  tracking,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
