package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		if ct != "application/json" &&
			!strings.HasPrefix(ct, "multipart/form-data") {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type ctxKey int

const userCtxKey ctxKey = iota

func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey).(domain.User)
	return u, ok
}

// An Authenticator resolves bearer tokens to users.
type Authenticator struct {
	accounts port.Accounts
}

func NewAuthenticator(accounts port.Accounts) Authenticator {
	return Authenticator{accounts}
}

// Require rejects requests without a valid bearer token.
func (a Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	const op = "Authenticator.Require"

	return func(w http.ResponseWriter, r *http.Request) {
		log := slog.With("op", op)

		token, ok := bearerToken(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := a.accounts.Authenticate(r.Context(), token)
		if err != nil {
			writeDomainErr(w, log, err)
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin rejects non-admin users.
func (a Authenticator) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.Require(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userFromContext(r.Context())
		if !user.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// sessionID reads the cart session header, issuing a fresh one when the
// client has none yet. The issued value is echoed back in the response.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	sid := r.Header.Get("X-Session-ID")
	if sid == "" {
		sid = uuid.NewString()
	}
	w.Header().Set("X-Session-ID", sid)
	return sid
}
