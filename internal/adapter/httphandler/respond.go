package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storeworks/storefront/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func writeDomainErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalid):
		http.Error(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, domain.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusBadRequest)
	case errors.Is(err, domain.ErrAlreadyExists):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, domain.ErrAlreadyVoted):
		http.Error(w, "already voted", http.StatusConflict)
	case errors.Is(err, domain.ErrOrderClosed):
		http.Error(w, "order is closed", http.StatusConflict)
	default:
		http.Error(
			w, "internal error", http.StatusInternalServerError,
		)
		log.Error("unexpected error", "err", err)
	}
}
