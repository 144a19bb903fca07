package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"violation-tracker/internal/model"
)

type tokenVerifier interface {
	VerifyAccessToken(token string) (model.AuthUser, error)
}

type contextKey string

const authUserContextKey contextKey = "auth_user"

var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(\S+)$`)

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth verifies the bearer token and attaches the token's user to the
// request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match := bearerPattern.FindStringSubmatch(strings.TrimSpace(r.Header.Get("Authorization")))
		if match == nil {
			writeJSONError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		user, err := m.verifier.VerifyAccessToken(match[1])
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if _, exists := roleSet[strings.ToLower(user.Role)]; !exists {
				writeJSONError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithUser(ctx context.Context, user model.AuthUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext returns the authenticated user, or nil when the request
// did not pass RequireAuth.
func UserFromContext(ctx context.Context) (*model.AuthUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(model.AuthUser)
	if !ok {
		return nil, false
	}
	return &user, true
}
