package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
)

// POST v1/checkout JSON (201 Created, 400 Bad request)
// GET v1/orders (200 OK)
// GET v1/orders/all admin (200 OK)
// GET v1/orders/{id} (200 OK, 403 Forbidden, 404 Not found)
// PUT v1/orders/{id}/status admin (200 OK, 409 Conflict)
// PUT v1/orders/{id}/payment admin (200 OK, 400 Bad request)

type OrderHandler struct {
	orders port.Orders
}

func RegisterOrders(
	mux *http.ServeMux, auth Authenticator, orders port.Orders,
) {
	h := OrderHandler{orders}
	mux.HandleFunc("POST /v1/checkout", auth.Require(h.Checkout))
	mux.HandleFunc("GET /v1/orders", auth.Require(h.ListOrders))
	mux.HandleFunc("GET /v1/orders/all", auth.RequireAdmin(h.ListAllOrders))
	mux.HandleFunc("GET /v1/orders/{id}", auth.Require(h.GetOrder))
	mux.HandleFunc(
		"PUT /v1/orders/{id}/status", auth.RequireAdmin(h.PutStatus),
	)
	mux.HandleFunc(
		"PUT /v1/orders/{id}/payment", auth.RequireAdmin(h.PutPaymentStatus),
	)
}

type (
	checkoutRequest struct {
		Shipping      Address `json:"shipping_address"`
		PaymentMethod string  `json:"payment_method"`
	}

	statusRequest struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}

	paymentStatusRequest struct {
		PaymentStatus string `json:"payment_status"`
	}
)

func (h OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "OrderHandler.Checkout"
	log := slog.With("op", op)

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	user, _ := userFromContext(r.Context())
	order, err := h.orders.Checkout(r.Context(), user, port.CheckoutRequest{
		SessionID:     sessionID(w, r),
		Shipping:      toDomainAddress(req.Shipping),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrder(order))
	log.Info("order placed", "orderID", order.OrderID)
}

func (h OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrderHandler.ListOrders"
	log := slog.With("op", op)

	user, _ := userFromContext(r.Context())
	orders, err := h.orders.UserOrders(r.Context(), user.UserID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrders(orders))
}

func (h OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrderHandler.ListAllOrders"
	log := slog.With("op", op)

	orders, err := h.orders.AllOrders(r.Context())
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrders(orders))
}

func (h OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrderHandler.GetOrder"
	log := slog.With("op", op)

	user, _ := userFromContext(r.Context())
	order, err := h.orders.Order(r.Context(), user, r.PathValue("id"))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(order))
}

func (h OrderHandler) PutStatus(w http.ResponseWriter, r *http.Request) {
	const op = "OrderHandler.PutStatus"
	log := slog.With("op", op)

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.orders.UpdateStatus(
		r.Context(), r.PathValue("id"),
		domain.OrderStatus(req.Status), req.Note,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(order))
}

func (h OrderHandler) PutPaymentStatus(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "OrderHandler.PutPaymentStatus"
	log := slog.With("op", op)

	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.orders.UpdatePaymentStatus(
		r.Context(), r.PathValue("id"),
		domain.PaymentStatus(req.PaymentStatus),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(order))
}
