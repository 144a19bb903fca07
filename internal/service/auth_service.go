package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"violation-tracker/internal/auth"
	"violation-tracker/internal/config"
	"violation-tracker/internal/metrics"
	"violation-tracker/internal/model"
)

// AuthUserStore is the user store the session issuer reads and writes.
type AuthUserStore interface {
	auth.RefreshStore
	FindByUsernameOrEmail(ctx context.Context, identity string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
}

// AuthService orchestrates login, refresh and logout on top of the token
// codec, the refresh manager and the password hasher.
type AuthService struct {
	users     AuthUserStore
	tokens    *auth.TokenCodec
	refresh   *auth.RefreshManager
	passwords *auth.PasswordHasher
}

func NewAuthService(cfg config.JWTConfig, users AuthUserStore, passwords *auth.PasswordHasher) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    auth.NewTokenCodec(cfg),
		refresh:   auth.NewRefreshManager(cfg, users),
		passwords: passwords,
	}
}

// Login checks identity (username or email) and password and starts a new
// session. Unknown identities and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, identity string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, identity)
	if errors.Is(err, model.ErrUserNotFound) {
		s.passwords.VerifyNothing(password)
		return model.TokenPair{}, s.fail(metrics.EventLogin, model.ErrInvalidCredentials)
	}
	if err != nil {
		return model.TokenPair{}, s.fail(metrics.EventLogin, fmt.Errorf("find user: %w", err))
	}

	if !s.passwords.Verify(password, user.PasswordHash) {
		return model.TokenPair{}, s.fail(metrics.EventLogin, model.ErrInvalidCredentials)
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return model.TokenPair{}, s.fail(metrics.EventLogin, err)
	}

	metrics.RecordAuthEvent(metrics.EventLogin, outcomeSuccess)
	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return pair, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// dead once this returns successfully. Two concurrent refreshes with the same
// token may both succeed; only the later rotation stays usable.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return model.TokenPair{}, s.fail(metrics.EventRefresh, model.ErrMissingToken)
	}

	user, err := s.refresh.Redeem(ctx, refreshToken)
	if err != nil {
		return model.TokenPair{}, s.fail(metrics.EventRefresh, err)
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return model.TokenPair{}, s.fail(metrics.EventRefresh, err)
	}

	metrics.RecordAuthEvent(metrics.EventRefresh, outcomeSuccess)
	return pair, nil
}

// Logout drops the user's refresh token. user is the identity established by
// access-token verification; nil means none was.
func (s *AuthService) Logout(ctx context.Context, user *model.AuthUser) error {
	if user == nil {
		return s.fail(metrics.EventLogout, model.ErrUnauthorized)
	}

	if err := s.refresh.Revoke(ctx, user.ID); err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return s.fail(metrics.EventLogout, err)
	}

	metrics.RecordAuthEvent(metrics.EventLogout, outcomeSuccess)
	slog.Info("user logged out", "user_id", user.ID)
	return nil
}

// VerifyAccessToken checks an access token without touching the store.
func (s *AuthService) VerifyAccessToken(token string) (model.AuthUser, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return model.AuthUser{}, err
	}
	return claims.User, nil
}

// Me returns the stored profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, user *model.AuthUser) (model.User, error) {
	if user == nil {
		return model.User{}, model.ErrUnauthorized
	}

	u, err := s.users.FindByID(ctx, user.ID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrUnauthorized
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *AuthService) issue(ctx context.Context, user model.User) (model.TokenPair, error) {
	access, err := s.tokens.Issue(user.AuthUser())
	if err != nil {
		return model.TokenPair{}, err
	}

	refresh, err := s.refresh.Rotate(ctx, user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:      access,
		ExpiresInMinutes: s.tokens.ExpiresInMinutes(),
		RefreshToken:     refresh.Token,
		RefreshExpiresAt: model.NewDateTime(refresh.ExpiresAt),
	}, nil
}

func (s *AuthService) fail(event string, err error) error {
	outcome := authOutcome(err)
	metrics.RecordAuthEvent(event, outcome)

	if outcome == outcomeError {
		slog.Error("auth event failed", "event", event, "error", err)
	} else {
		slog.Warn("auth event rejected", "event", event, "outcome", outcome)
	}
	return err
}

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

func authOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, model.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, model.ErrInvalidRefreshToken):
		return "invalid_refresh_token"
	case errors.Is(err, model.ErrExpiredRefreshToken):
		return "expired_refresh_token"
	case errors.Is(err, model.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, model.ErrUnauthorized):
		return "unauthorized"
	default:
		return outcomeError
	}
}
