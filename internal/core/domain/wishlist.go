package domain

import "time"

// A WishlistItem is the (user, product) relation with an add timestamp.
type WishlistItem struct {
	UserID    string
	ProductID string
	AddedAt   time.Time
}
