package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// taxRate is a flat 10% applied to the cart subtotal.
var taxRate = decimal.New(1, -1)

type CartItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Image     string
	Quantity  int
}

// A Cart is the authoritative representation of one session's shopping
// cart. Mutators return a new value with totals recomputed over the full
// item list, so a Cart read from storage is always internally consistent.
type Cart struct {
	Items     []CartItem
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	UpdatedAt time.Time
}

func NewCart() Cart {
	return Cart{}.recompute()
}

// AddItem merges quantity into an existing line item for the product or
// appends a new one. No upper bound on quantity is enforced here.
func (c Cart) AddItem(p Product, quantity int) Cart {
	if quantity < 1 {
		quantity = 1
	}

	for i, item := range c.Items {
		if item.ProductID == p.ProductID {
			c.Items[i].Quantity += quantity
			return c.recompute()
		}
	}

	var image string
	if len(p.Images) != 0 {
		image = p.Images[0]
	}

	c.Items = append(c.Items, CartItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     image,
		Quantity:  quantity,
	})
	return c.recompute()
}

func (c Cart) RemoveItem(productID string) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
	return c.recompute()
}

// UpdateQuantity replaces the line item's quantity. A non-positive
// quantity removes the line item entirely.
func (c Cart) UpdateQuantity(productID string, quantity int) Cart {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items[i].Quantity = quantity
			break
		}
	}
	return c.recompute()
}

func (c Cart) Quantity() (n int) {
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

func (c Cart) recompute() Cart {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	c.Subtotal = subtotal
	c.Tax = subtotal.Mul(taxRate)
	c.Total = c.Subtotal.Add(c.Tax)
	c.UpdatedAt = time.Now().UTC()
	return c
}
