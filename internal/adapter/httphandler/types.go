package httphandler

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeworks/storefront/internal/core/domain"
)

// Money values travel as decimal strings to keep cents exact on the wire.

type (
	Product struct {
		ProductID     string   `json:"product_id"`
		Name          string   `json:"name"`
		Description   string   `json:"description"`
		Price         string   `json:"price"`
		OriginalPrice string   `json:"original_price,omitempty"`
		Images        []string `json:"images"`
		Category      string   `json:"category"`
		Featured      bool     `json:"featured"`
		InStock       bool     `json:"in_stock"`
		StockQuantity int      `json:"stock_quantity"`
	}

	CartItem struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Price     string `json:"price"`
		Image     string `json:"image,omitempty"`
		Quantity  int    `json:"quantity"`
	}

	Cart struct {
		Items    []CartItem `json:"items"`
		Subtotal string     `json:"subtotal"`
		Tax      string     `json:"tax"`
		Total    string     `json:"total"`
	}

	Address struct {
		Street     string `json:"street"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
		Country    string `json:"country"`
	}

	User struct {
		UserID  string  `json:"user_id"`
		Email   string  `json:"email"`
		Name    string  `json:"name"`
		Phone   string  `json:"phone,omitempty"`
		Role    string  `json:"role"`
		Address Address `json:"address"`
	}

	OrderItem struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Price     string `json:"price"`
		Quantity  int    `json:"quantity"`
	}

	TrackingEvent struct {
		Status string    `json:"status"`
		Note   string    `json:"note,omitempty"`
		At     time.Time `json:"at"`
	}

	Order struct {
		OrderID         string          `json:"order_id"`
		UserID          string          `json:"user_id"`
		Items           []OrderItem     `json:"items"`
		Subtotal        string          `json:"subtotal"`
		Tax             string          `json:"tax"`
		Total           string          `json:"total"`
		Status          string          `json:"status"`
		PaymentStatus   string          `json:"payment_status"`
		PaymentMethod   string          `json:"payment_method"`
		ShippingAddress Address         `json:"shipping_address"`
		Tracking        []TrackingEvent `json:"tracking"`
		CreatedAt       time.Time       `json:"created_at"`
	}

	Review struct {
		ReviewID     string    `json:"review_id"`
		ProductID    string    `json:"product_id"`
		UserName     string    `json:"user_name"`
		Rating       int       `json:"rating"`
		Comment      string    `json:"comment"`
		Verified     bool      `json:"verified"`
		HelpfulCount int       `json:"helpful_count"`
		CreatedAt    time.Time `json:"created_at"`
	}

	ReviewSummary struct {
		AverageRating float64 `json:"average_rating"`
		TotalCount    int     `json:"total_count"`
	}

	WishlistItem struct {
		ProductID string    `json:"product_id"`
		AddedAt   time.Time `json:"added_at"`
	}
)

func toProduct(p domain.Product) Product {
	var original string
	if p.Discounted() {
		original = p.OriginalPrice.String()
	}

	images := p.Images
	if images == nil {
		images = []string{}
	}

	return Product{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.String(),
		OriginalPrice: original,
		Images:        images,
		Category:      p.Category,
		Featured:      p.Featured,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toDomainProduct(p Product) (domain.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return domain.Product{}, err
	}

	var original decimal.Decimal
	if p.OriginalPrice != "" {
		original, err = decimal.NewFromString(p.OriginalPrice)
		if err != nil {
			return domain.Product{}, err
		}
	}

	return domain.Product{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         price,
		OriginalPrice: original,
		Images:        p.Images,
		Category:      p.Category,
		Featured:      p.Featured,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
	}, nil
}

func toDomainProducts(dtos []Product) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomainProduct(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toCart(c domain.Cart) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.String(),
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}
	return Cart{
		Items:    items,
		Subtotal: c.Subtotal.String(),
		Tax:      c.Tax.String(),
		Total:    c.Total.String(),
	}
}

func toAddress(a domain.Address) Address {
	return Address{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func toDomainAddress(a Address) domain.Address {
	return domain.Address{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func toUser(u domain.User) User {
	return User{
		UserID:  u.UserID,
		Email:   u.Email,
		Name:    u.Name,
		Phone:   u.Phone,
		Role:    string(u.Role),
		Address: toAddress(u.Address),
	}
}

func toOrder(o domain.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.String(),
			Quantity:  item.Quantity,
		})
	}

	tracking := make([]TrackingEvent, 0, len(o.Tracking))
	for _, evt := range o.Tracking {
		tracking = append(tracking, TrackingEvent{
			Status: evt.Status,
			Note:   evt.Note,
			At:     evt.At,
		})
	}

	return Order{
		OrderID:         o.OrderID,
		UserID:          o.UserID,
		Items:           items,
		Subtotal:        o.Subtotal.String(),
		Tax:             o.Tax.String(),
		Total:           o.Total.String(),
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: toAddress(o.ShippingAddress),
		Tracking:        tracking,
		CreatedAt:       o.CreatedAt,
	}
}

func toOrders(os []domain.Order) []Order {
	out := make([]Order, 0, len(os))
	for _, o := range os {
		out = append(out, toOrder(o))
	}
	return out
}

func toReview(r domain.Review) Review {
	return Review{
		ReviewID:     r.ReviewID,
		ProductID:    r.ProductID,
		UserName:     r.UserName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		Verified:     r.Verified,
		HelpfulCount: r.HelpfulCount,
		CreatedAt:    r.CreatedAt,
	}
}
