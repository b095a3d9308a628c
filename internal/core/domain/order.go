package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// An OrderItem captures the price at purchase time, so later catalog
// edits never change a placed order.
type OrderItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

type TrackingEvent struct {
	Status string
	Note   string
	At     time.Time
}

type Order struct {
	OrderID         string
	UserID          string
	Items           []OrderItem
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentMethod   string
	ShippingAddress Address
	Tracking        []TrackingEvent
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder snapshots the cart into an immutable order in pending status
// with the tracking log seeded.
func NewOrder(
	orderID, userID string, cart Cart,
	shipping Address, paymentMethod string, now time.Time,
) Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Price:     ci.Price,
			Quantity:  ci.Quantity,
		})
	}

	return Order{
		OrderID:         orderID,
		UserID:          userID,
		Items:           items,
		Subtotal:        cart.Subtotal,
		Tax:             cart.Tax,
		Total:           cart.Total,
		Status:          OrderPending,
		PaymentStatus:   PaymentUnpaid,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shipping,
		Tracking: []TrackingEvent{
			{Status: "created", At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
