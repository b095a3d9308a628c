package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storeworks/storefront/internal/core/port"
)

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"product_id" string, "quantity" int} (200 OK)
// PUT v1/cart/items/{productID} JSON {"quantity" int} (200 OK)
// DELETE v1/cart/items/{productID} (200 OK)
// DELETE v1/cart (200 OK)

type CartHandler struct {
	cart port.CartProvider
}

func RegisterCart(mux *http.ServeMux, cart port.CartProvider) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PUT /v1/cart/items/{productID}", h.PutItem)
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	cart, err := h.cart.Cart(r.Context(), sessionID(w, r))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCart(cart))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cart, err := h.cart.AddItem(
		r.Context(), sessionID(w, r), req.ProductID, req.Quantity,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCart(cart))
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	log := slog.With("op", op)

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cart, err := h.cart.UpdateQuantity(
		r.Context(), sessionID(w, r), r.PathValue("productID"), req.Quantity,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCart(cart))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	cart, err := h.cart.RemoveItem(
		r.Context(), sessionID(w, r), r.PathValue("productID"),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCart(cart))
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	cart, err := h.cart.ClearCart(r.Context(), sessionID(w, r))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCart(cart))
}
