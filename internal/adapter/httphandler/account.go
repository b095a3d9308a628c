package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storeworks/storefront/internal/core/port"
)

// POST v1/auth/register JSON (201 Created, 409 Conflict)
// POST v1/auth/signin JSON (200 OK, 401 Unauthorized)
// POST v1/auth/signout (204 No content)
// POST v1/auth/reset JSON {"email" string} (202 Accepted)
// POST v1/auth/reset/confirm JSON {"token", "password"} (204 No content)
// GET v1/profile (200 OK, 401 Unauthorized)
// PUT v1/profile JSON (200 OK, 401 Unauthorized)

type AccountHandler struct {
	accounts port.Accounts
}

func RegisterAccounts(
	mux *http.ServeMux, auth Authenticator, accounts port.Accounts,
) {
	h := AccountHandler{accounts}
	mux.HandleFunc("POST /v1/auth/register", h.Register)
	mux.HandleFunc("POST /v1/auth/signin", h.SignIn)
	mux.HandleFunc("POST /v1/auth/signout", h.SignOut)
	mux.HandleFunc("POST /v1/auth/reset", h.RequestReset)
	mux.HandleFunc("POST /v1/auth/reset/confirm", h.ConfirmReset)
	mux.HandleFunc("GET /v1/profile", auth.Require(h.GetProfile))
	mux.HandleFunc("PUT /v1/profile", auth.Require(h.PutProfile))
}

type (
	registerRequest struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Name     string  `json:"name"`
		Phone    string  `json:"phone"`
		Address  Address `json:"address"`
	}

	signInRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	signInResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	resetRequest struct {
		Email string `json:"email"`
	}

	resetConfirmRequest struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	profileRequest struct {
		Name    string  `json:"name"`
		Phone   string  `json:"phone"`
		Address Address `json:"address"`
	}
)

func (h AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.Register"
	log := slog.With("op", op)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	user, err := h.accounts.Register(r.Context(), port.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  toDomainAddress(req.Address),
	})
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUser(user))
}

func (h AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.SignIn"
	log := slog.With("op", op)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	session, user, err := h.accounts.SignIn(
		r.Context(), req.Email, req.Password,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{
		Token: session.Token,
		User:  toUser(user),
	})
}

func (h AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.SignOut"
	log := slog.With("op", op)

	token, ok := bearerToken(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.accounts.SignOut(r.Context(), token); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h AccountHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.RequestReset"
	log := slog.With("op", op)

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.accounts.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h AccountHandler) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.ConfirmReset"
	log := slog.With("op", op)

	var req resetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.accounts.ConfirmPasswordReset(
		r.Context(), req.Token, req.Password,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, toUser(user))
}

func (h AccountHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.PutProfile"
	log := slog.With("op", op)

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	user, _ := userFromContext(r.Context())
	updated, err := h.accounts.UpdateProfile(
		r.Context(), user.UserID, port.ProfileUpdate{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: toDomainAddress(req.Address),
		},
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUser(updated))
}
