package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"violation-tracker/internal/config"
	"violation-tracker/internal/model"
)

const refreshTokenBytes = 64

// RefreshStore is the slice of the user store that refresh tokens need.
type RefreshStore interface {
	FindByRefreshHash(ctx context.Context, hash string) (model.User, error)
	UpdateRefreshToken(ctx context.Context, userID int64, state model.RefreshTokenState) error
}

// RefreshToken is freshly issued refresh material. Token is the only copy of
// the plaintext secret and must be handed to the client exactly once.
type RefreshToken struct {
	Token     string
	Hash      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshManager issues, redeems and revokes single-session refresh tokens
// whose SHA-256 digest lives on the user row.
type RefreshManager struct {
	store RefreshStore
	ttl   time.Duration
	now   func() time.Time
}

func NewRefreshManager(cfg config.JWTConfig, store RefreshStore) *RefreshManager {
	return &RefreshManager{store: store, ttl: cfg.RefreshTTL(), now: time.Now}
}

// GenerateRefreshToken returns 64 random bytes encoded as unpadded base64url.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRefreshToken is the storage digest of a refresh token: hex SHA-256,
// unsalted so rows can be looked up by it.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (m *RefreshManager) Issue() (RefreshToken, error) {
	token, err := GenerateRefreshToken()
	if err != nil {
		return RefreshToken{}, err
	}

	now := m.now().UTC().Truncate(time.Second)
	return RefreshToken{
		Token:     token,
		Hash:      HashRefreshToken(token),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}, nil
}

// Rotate issues a new refresh token for the user and overwrites whatever was
// stored before, which kills the previous token.
func (m *RefreshManager) Rotate(ctx context.Context, userID int64) (RefreshToken, error) {
	issued, err := m.Issue()
	if err != nil {
		return RefreshToken{}, err
	}

	state := model.RefreshTokenState{
		Hash:      &issued.Hash,
		ExpiresAt: &issued.ExpiresAt,
		IssuedAt:  &issued.IssuedAt,
	}
	if err := m.store.UpdateRefreshToken(ctx, userID, state); err != nil {
		return RefreshToken{}, fmt.Errorf("store refresh token: %w", err)
	}

	return issued, nil
}

// Redeem resolves a presented refresh token to its owner. It does not extend
// the token; callers rotate right after a successful redemption.
func (m *RefreshManager) Redeem(ctx context.Context, token string) (model.User, error) {
	user, err := m.store.FindByRefreshHash(ctx, HashRefreshToken(token))
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrInvalidRefreshToken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find refresh token owner: %w", err)
	}

	if user.RefreshTokenExpiresAt == nil || user.RefreshTokenExpiresAt.Before(m.now()) {
		return model.User{}, model.ErrExpiredRefreshToken
	}

	return user, nil
}

func (m *RefreshManager) Revoke(ctx context.Context, userID int64) error {
	if err := m.store.UpdateRefreshToken(ctx, userID, model.RefreshTokenState{}); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}
