package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var _ port.Accounts = (*AccountService)(nil)

const minPasswordLen = 8

type AccountService struct {
	users    port.UsersRepository
	sessions port.SessionsRepository

	sessionTTL    time.Duration
	resetTokenTTL time.Duration
}

func NewAccountService(
	users port.UsersRepository,
	sessions port.SessionsRepository,
	sessionTTL time.Duration,
	resetTokenTTL time.Duration,
) AccountService {
	return AccountService{users, sessions, sessionTTL, resetTokenTTL}
}

func (s AccountService) Register(
	ctx context.Context, reg port.Registration,
) (domain.User, error) {
	const op = "AccountService.Register"

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	email := normalizeEmail(reg.Email)
	if err := validateCredentials(email, reg.Password); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(reg.Password), bcrypt.DefaultCost,
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	u := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         reg.Name,
		Phone:        reg.Phone,
		Role:         domain.RoleCustomer,
		Address:      reg.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (s AccountService) SignIn(
	ctx context.Context, email, password string,
) (domain.Session, domain.User, error) {
	const op = "AccountService.SignIn"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u, err := s.users.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrUnauthorized
		}
		return domain.Session{}, domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	err = bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password))
	if err != nil {
		return domain.Session{}, domain.User{},
			fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}

	now := time.Now().UTC()
	session := domain.Session{
		Token:     uuid.NewString(),
		UserID:    u.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return domain.Session{}, domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return session, u, nil
}

func (s AccountService) SignOut(ctx context.Context, token string) error {
	const op = "AccountService.SignOut"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AccountService) Authenticate(
	ctx context.Context, token string,
) (domain.User, error) {
	const op = "AccountService.Authenticate"

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.sessions.SessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrUnauthorized
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if session.Expired(time.Now().UTC()) {
		if err := s.sessions.DeleteSession(ctx, token); err != nil {
			slog.Warn("failed to delete expired session",
				"op", op, "err", err)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}

	u, err := s.users.UserByID(ctx, session.UserID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// RequestPasswordReset issues a reset token. An unknown email is not an
// error, so the endpoint does not reveal which addresses exist.
func (s AccountService) RequestPasswordReset(
	ctx context.Context, email string,
) error {
	const op = "AccountService.RequestPasswordReset"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	u, err := s.users.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Info("reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	t := domain.ResetToken{
		Token:     uuid.NewString(),
		UserID:    u.UserID,
		ExpiresAt: time.Now().UTC().Add(s.resetTokenTTL),
	}
	if err := s.sessions.CreateResetToken(ctx, t); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("reset token issued", "userID", u.UserID)
	return nil
}

func (s AccountService) ConfirmPasswordReset(
	ctx context.Context, token, newPassword string,
) error {
	const op = "AccountService.ConfirmPasswordReset"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%s: password too short: %w", op, domain.ErrInvalid)
	}

	t, err := s.sessions.ResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrUnauthorized
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if t.Expired(time.Now().UTC()) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}

	u, err := s.users.UserByID(ctx, t.UserID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(newPassword), bcrypt.DefaultCost,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sessions.DeleteResetToken(ctx, token); err != nil {
		slog.Warn("failed to delete used reset token", "op", op, "err", err)
	}
	return nil
}

func (s AccountService) UpdateProfile(
	ctx context.Context, userID string, upd port.ProfileUpdate,
) (domain.User, error) {
	const op = "AccountService.UpdateProfile"

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u.Name = upd.Name
	u.Phone = upd.Phone
	u.Address = upd.Address
	u.UpdatedAt = time.Now().UTC()

	if err := s.users.UpdateUser(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email: %w", domain.ErrInvalid)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password too short: %w", domain.ErrInvalid)
	}
	return nil
}
