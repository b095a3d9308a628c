package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/storeworks/storefront/internal/core/port"
)

// GET v1/wishlist (200 OK)
// GET v1/wishlist/{productID} (200 OK)
// POST v1/wishlist/{productID} (204 No content, 404 Not found)
// DELETE v1/wishlist/{productID} (204 No content)

type WishlistHandler struct {
	wishlist port.Wishlist
}

func RegisterWishlist(
	mux *http.ServeMux, auth Authenticator, wishlist port.Wishlist,
) {
	h := WishlistHandler{wishlist}
	mux.HandleFunc("GET /v1/wishlist", auth.Require(h.GetWishlist))
	mux.HandleFunc("GET /v1/wishlist/{productID}", auth.Require(h.GetItem))
	mux.HandleFunc("POST /v1/wishlist/{productID}", auth.Require(h.PostItem))
	mux.HandleFunc(
		"DELETE /v1/wishlist/{productID}", auth.Require(h.DeleteItem),
	)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetWishlist"
	log := slog.With("op", op)

	user, _ := userFromContext(r.Context())
	items, err := h.wishlist.UserWishlist(r.Context(), user.UserID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	dtos := make([]WishlistItem, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, WishlistItem{
			ProductID: item.ProductID,
			AddedAt:   item.AddedAt,
		})
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (h WishlistHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetItem"
	log := slog.With("op", op)

	user, _ := userFromContext(r.Context())
	contains, err := h.wishlist.Contains(
		r.Context(), user.UserID, r.PathValue("productID"),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"contains": contains})
}

func (h WishlistHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostItem"
	log := slog.With("op", op)

	user, _ := userFromContext(r.Context())
	err := h.wishlist.AddToWishlist(
		r.Context(), user.UserID, r.PathValue("productID"),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.DeleteItem"
	log := slog.With("op", op)

	user, _ := userFromContext(r.Context())
	err := h.wishlist.RemoveFromWishlist(
		r.Context(), user.UserID, r.PathValue("productID"),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
