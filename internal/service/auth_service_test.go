package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"violation-tracker/internal/auth"
	"violation-tracker/internal/config"
	"violation-tracker/internal/model"
)

type memoryUserStore struct {
	mu      sync.Mutex
	users   map[int64]model.User
	findErr error
}

func newMemoryUserStore(users ...model.User) *memoryUserStore {
	store := &memoryUserStore{users: map[int64]model.User{}}
	for _, u := range users {
		store.users[u.ID] = u
	}
	return store
}

func (s *memoryUserStore) FindByUsernameOrEmail(_ context.Context, identity string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return model.User{}, s.findErr
	}

	identity = strings.ToLower(strings.TrimSpace(identity))
	var found *model.User
	for id := range s.users {
		u := s.users[id]
		if strings.ToLower(u.Username) != identity && strings.ToLower(u.Email) != identity {
			continue
		}
		if found == nil || u.ID < found.ID {
			found = &u
		}
	}
	if found == nil {
		return model.User{}, model.ErrUserNotFound
	}
	return *found, nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memoryUserStore) FindByRefreshHash(_ context.Context, hash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.RefreshTokenHash != nil && *u.RefreshTokenHash == hash {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memoryUserStore) UpdateRefreshToken(_ context.Context, userID int64, state model.RefreshTokenState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.RefreshTokenHash = state.Hash
	u.RefreshTokenExpiresAt = state.ExpiresAt
	u.RefreshTokenIssuedAt = state.IssuedAt
	s.users[userID] = u
	return nil
}

func (s *memoryUserStore) setRole(id int64, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[id]
	u.Role = role
	s.users[id] = u
}

func (s *memoryUserStore) user(id int64) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

var testJWT = config.JWTConfig{
	Secret:                "test-secret",
	Issuer:                "violation_system",
	ExpirationMinutes:     2880,
	RefreshExpirationDays: 7,
}

func newAuthFixture(t *testing.T) (*AuthService, *memoryUserStore) {
	t.Helper()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct")
	require.NoError(t, err)

	store := newMemoryUserStore(model.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         "operator",
		IsActive:     true,
	})
	return NewAuthService(testJWT, store, hasher), store
}

var urlSafeToken = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	t.Run("issues both tokens for correct credentials", func(t *testing.T) {
		svc, store := newAuthFixture(t)

		before := time.Now().UTC()
		pair, err := svc.Login(context.Background(), "alice", "correct")
		require.NoError(t, err)

		require.NotEmpty(t, pair.AccessToken)
		require.Regexp(t, urlSafeToken, pair.RefreshToken)
		require.Equal(t, 2880, pair.ExpiresInMinutes)
		require.WithinDuration(t, before.Add(7*24*time.Hour), pair.RefreshExpiresAt.Time, 5*time.Second)

		u := store.user(1)
		require.NotNil(t, u.RefreshTokenHash)
		require.Equal(t, auth.HashRefreshToken(pair.RefreshToken), *u.RefreshTokenHash)

		claims, err := svc.VerifyAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, model.AuthUser{ID: 1, Username: "alice", Role: "operator"}, claims)
	})

	t.Run("accepts email as identity", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Login(context.Background(), "Alice@Example.com", "correct")
		require.NoError(t, err)
	})

	t.Run("wrong password and unknown user share one error", func(t *testing.T) {
		svc, store := newAuthFixture(t)

		pair, err := svc.Login(context.Background(), "alice", "wrong")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
		require.Equal(t, model.TokenPair{}, pair)

		pair, err = svc.Login(context.Background(), "mallory", "correct")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
		require.Equal(t, model.TokenPair{}, pair)

		require.Nil(t, store.user(1).RefreshTokenHash)
	})

	t.Run("bytes past the bcrypt limit are not ignored", func(t *testing.T) {
		hasher := auth.NewPasswordHasher(bcrypt.MinCost)
		exact := strings.Repeat("k", auth.MaxPasswordBytes)
		hash, err := hasher.Hash(exact)
		require.NoError(t, err)
		store := newMemoryUserStore(model.User{ID: 2, Username: "budi", Email: "budi@example.com", PasswordHash: hash, Role: "operator", IsActive: true})
		svc := NewAuthService(testJWT, store, hasher)

		_, err = svc.Login(context.Background(), "budi", exact+"whatever")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
		require.Nil(t, store.user(2).RefreshTokenHash)

		_, err = svc.Login(context.Background(), "budi", exact)
		require.NoError(t, err)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		svc, store := newAuthFixture(t)
		store.findErr = errors.New("connection refused")

		_, err := svc.Login(context.Background(), "alice", "correct")
		require.Error(t, err)
		require.NotErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("second login replaces the first session", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		first, err := svc.Login(context.Background(), "alice", "correct")
		require.NoError(t, err)
		_, err = svc.Login(context.Background(), "alice", "correct")
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), first.RefreshToken)
		require.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	t.Parallel()

	t.Run("rotates and kills the presented token", func(t *testing.T) {
		svc, store := newAuthFixture(t)

		login, err := svc.Login(context.Background(), "alice", "correct")
		require.NoError(t, err)

		refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
		require.NoError(t, err)
		require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
		require.Equal(t, auth.HashRefreshToken(refreshed.RefreshToken), *store.user(1).RefreshTokenHash)

		_, err = svc.Refresh(context.Background(), login.RefreshToken)
		require.ErrorIs(t, err, model.ErrInvalidRefreshToken)

		_, err = svc.Refresh(context.Background(), refreshed.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("picks up role changes", func(t *testing.T) {
		svc, store := newAuthFixture(t)

		login, err := svc.Login(context.Background(), "alice", "correct")
		require.NoError(t, err)

		store.setRole(1, "admin")

		refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
		require.NoError(t, err)

		user, err := svc.VerifyAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "admin", user.Role)
	})

	t.Run("never issued token is invalid", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Refresh(context.Background(), "never-issued")
		require.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	})

	t.Run("empty token is missing", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Refresh(context.Background(), "  ")
		require.ErrorIs(t, err, model.ErrMissingToken)
	})

	t.Run("expired token is reported as expired", func(t *testing.T) {
		svc, store := newAuthFixture(t)

		hash := auth.HashRefreshToken("stale-token")
		expired := time.Now().Add(-time.Minute)
		require.NoError(t, store.UpdateRefreshToken(context.Background(), 1, model.RefreshTokenState{
			Hash:      &hash,
			ExpiresAt: &expired,
		}))

		_, err := svc.Refresh(context.Background(), "stale-token")
		require.ErrorIs(t, err, model.ErrExpiredRefreshToken)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	t.Parallel()

	t.Run("requires an authenticated user", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		require.ErrorIs(t, svc.Logout(context.Background(), nil), model.ErrUnauthorized)
	})

	t.Run("revokes the refresh token", func(t *testing.T) {
		svc, store := newAuthFixture(t)

		login, err := svc.Login(context.Background(), "alice", "correct")
		require.NoError(t, err)

		user := model.AuthUser{ID: 1, Username: "alice", Role: "operator"}
		require.NoError(t, svc.Logout(context.Background(), &user))
		require.Nil(t, store.user(1).RefreshTokenHash)
		require.Nil(t, store.user(1).RefreshTokenExpiresAt)
		require.Nil(t, store.user(1).RefreshTokenIssuedAt)

		_, err = svc.Refresh(context.Background(), login.RefreshToken)
		require.ErrorIs(t, err, model.ErrInvalidRefreshToken)

		require.NoError(t, svc.Logout(context.Background(), &user))
	})
}

func TestAuthServiceMe(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)

	u, err := svc.Me(context.Background(), &model.AuthUser{ID: 1})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)

	_, err = svc.Me(context.Background(), &model.AuthUser{ID: 99})
	require.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = svc.Me(context.Background(), nil)
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestAuthOutcome(t *testing.T) {
	t.Parallel()

	require.Equal(t, "success", authOutcome(nil))
	require.Equal(t, "invalid_refresh_token", authOutcome(model.ErrInvalidRefreshToken))
	require.Equal(t, "expired_refresh_token", authOutcome(model.ErrExpiredRefreshToken))
	require.Equal(t, "error", authOutcome(errors.New("boom")))
}
