package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storeworks/storefront/internal/core/port"
)

// GET v1/products/{id}/reviews (200 OK)
// POST v1/products/{id}/reviews JSON (201 Created, 409 Conflict)
// POST v1/reviews/{id}/helpful (204 No content, 409 Conflict)

type ReviewHandler struct {
	reviews port.Reviews
}

func RegisterReviews(
	mux *http.ServeMux, auth Authenticator, reviews port.Reviews,
) {
	h := ReviewHandler{reviews}
	mux.HandleFunc("GET /v1/products/{id}/reviews", h.ListReviews)
	mux.HandleFunc(
		"POST /v1/products/{id}/reviews", auth.Require(h.PostReview),
	)
	mux.HandleFunc(
		"POST /v1/reviews/{id}/helpful", auth.Require(h.PostHelpful),
	)
}

type (
	reviewRequest struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}

	reviewsResponse struct {
		Reviews []Review      `json:"reviews"`
		Summary ReviewSummary `json:"summary"`
	}
)

func (h ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewHandler.ListReviews"
	log := slog.With("op", op)

	reviews, summary, err := h.reviews.ProductReviews(
		r.Context(), r.PathValue("id"),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	dtos := make([]Review, 0, len(reviews))
	for _, rv := range reviews {
		dtos = append(dtos, toReview(rv))
	}

	writeJSON(w, http.StatusOK, reviewsResponse{
		Reviews: dtos,
		Summary: ReviewSummary{
			AverageRating: summary.AverageRating,
			TotalCount:    summary.TotalCount,
		},
	})
}

func (h ReviewHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewHandler.PostReview"
	log := slog.With("op", op)

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	user, _ := userFromContext(r.Context())
	review, err := h.reviews.AddReview(
		r.Context(), user, r.PathValue("id"), req.Rating, req.Comment,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReview(review))
}

func (h ReviewHandler) PostHelpful(w http.ResponseWriter, r *http.Request) {
	const op = "ReviewHandler.PostHelpful"
	log := slog.With("op", op)

	user, _ := userFromContext(r.Context())
	err := h.reviews.MarkHelpful(r.Context(), user.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
