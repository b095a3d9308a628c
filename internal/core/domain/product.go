package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID     string
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal // zero when the product is not discounted
	Images        []string
	Category      string
	Featured      bool
	InStock       bool
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) Validate() error {
	const op = "Product.Validate"

	if p.ProductID == "" {
		return fmt.Errorf("%s: product id is empty: %w", op, ErrInvalid)
	}
	if p.Name == "" {
		return fmt.Errorf("%s: name is empty: %w", op, ErrInvalid)
	}
	if p.Category == "" {
		return fmt.Errorf("%s: category is empty: %w", op, ErrInvalid)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%s: price is not positive: %w", op, ErrInvalid)
	}
	if p.Discounted() && p.Price.GreaterThan(p.OriginalPrice) {
		return fmt.Errorf(
			"%s: price exceeds original price: %w", op, ErrInvalid,
		)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%s: negative stock quantity: %w", op, ErrInvalid)
	}
	return nil
}

func (p Product) Discounted() bool {
	return p.OriginalPrice.IsPositive()
}

// A CatalogSyncEvent announces a catalog version change to other
// storefront instances.
type CatalogSyncEvent struct {
	Version      uint64
	ProductCount int
	Reason       string
	OccurredAt   time.Time
}

const (
	SyncReasonSeeded   = "seeded"
	SyncReasonRepaired = "repaired"
	SyncReasonSaved    = "saved"
	SyncReasonDeleted  = "deleted"
)
