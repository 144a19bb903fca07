package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"violation-tracker/internal/auth"
	"violation-tracker/internal/config"
	"violation-tracker/internal/middleware"
	"violation-tracker/internal/model"
	"violation-tracker/internal/service"
)

type mockAuthStore struct {
	mock.Mock
}

func (m *mockAuthStore) FindByRefreshHash(ctx context.Context, hash string) (model.User, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockAuthStore) UpdateRefreshToken(ctx context.Context, userID int64, state model.RefreshTokenState) error {
	args := m.Called(ctx, userID, state)
	return args.Error(0)
}

func (m *mockAuthStore) FindByUsernameOrEmail(ctx context.Context, identity string) (model.User, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockAuthStore) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

var handlerJWT = config.JWTConfig{
	Secret:                "handler-test-secret",
	Issuer:                "violation_system",
	ExpirationMinutes:     2880,
	RefreshExpirationDays: 7,
}

func newAuthHandlerFixture(t *testing.T) (*AuthHandler, *mockAuthStore, model.User) {
	t.Helper()
	passwords := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := passwords.Hash("correct")
	require.NoError(t, err)

	store := &mockAuthStore{}
	user := model.User{ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: hash, Role: "operator", IsActive: true}
	return NewAuthHandler(service.NewAuthService(handlerJWT, store, passwords)), store, user
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	t.Run("issues a token pair", func(t *testing.T) {
		t.Parallel()
		h, store, user := newAuthHandlerFixture(t)
		store.On("FindByUsernameOrEmail", mock.Anything, "alice").Return(user, nil)
		store.On("UpdateRefreshToken", mock.Anything, int64(7), mock.AnythingOfType("model.RefreshTokenState")).Return(nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"identity":"alice","password":"correct"}`))
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, model.StatusSuccess, body.Status)
		assert.Equal(t, "Authenticated", body.Message)

		var pair model.TokenPair
		require.NoError(t, json.Unmarshal(body.Data, &pair))
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, 2880, pair.ExpiresInMinutes)
		store.AssertExpectations(t)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()
		h, store, user := newAuthHandlerFixture(t)
		store.On("FindByUsernameOrEmail", mock.Anything, "alice").Return(user, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"identity":"alice","password":"wrong"}`))
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeEnvelope(t, rec).Message)
		store.AssertNotCalled(t, "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires identity and password", func(t *testing.T) {
		t.Parallel()
		h, store, _ := newAuthHandlerFixture(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"identity":"alice"}`))
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		store.AssertNotCalled(t, "FindByUsernameOrEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("reports a missing token for an empty body", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newAuthHandlerFixture(t)

		rec := httptest.NewRecorder()
		h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", http.NoBody))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Missing refresh_token", decodeEnvelope(t, rec).Message)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		t.Parallel()
		h, store, _ := newAuthHandlerFixture(t)
		store.On("FindByRefreshHash", mock.Anything, auth.HashRefreshToken("stale")).Return(model.User{}, model.ErrUserNotFound)

		rec := httptest.NewRecorder()
		h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", strings.NewReader(`{"refresh_token":"stale"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid refresh token", decodeEnvelope(t, rec).Message)
	})
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	t.Parallel()

	caller := model.AuthUser{ID: 7, Username: "alice", Role: "operator"}

	t.Run("logout clears the stored token", func(t *testing.T) {
		t.Parallel()
		h, store, _ := newAuthHandlerFixture(t)
		store.On("UpdateRefreshToken", mock.Anything, int64(7), model.RefreshTokenState{}).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), caller))
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, "Logged out", body.Message)
		assert.Equal(t, "null", string(body.Data))
		store.AssertExpectations(t)
	})

	t.Run("me returns the profile without secrets", func(t *testing.T) {
		t.Parallel()
		h, store, user := newAuthHandlerFixture(t)
		store.On("FindByID", mock.Anything, int64(7)).Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), caller))
		rec := httptest.NewRecorder()
		h.Me(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"alice"`)
		assert.NotContains(t, rec.Body.String(), user.PasswordHash)
	})

	t.Run("me without a caller is unauthorized", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newAuthHandlerFixture(t)

		rec := httptest.NewRecorder()
		h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
