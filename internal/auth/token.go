// Package auth holds the credential primitives of the session subsystem:
// signed access tokens, opaque rotating refresh tokens and password hashes.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"violation-tracker/internal/config"
	"violation-tracker/internal/model"
)

// Claims is the payload of an access token.
type Claims struct {
	User model.AuthUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 access tokens.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(cfg config.JWTConfig) *TokenCodec {
	return &TokenCodec{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.AccessTTL(),
		now:    time.Now,
	}
}

// ExpiresInMinutes is the lifetime reported to clients alongside a token.
func (c *TokenCodec) ExpiresInMinutes() int {
	return int(c.ttl / time.Minute)
}

func (c *TokenCodec) Issue(user model.AuthUser) (string, error) {
	now := c.now().UTC().Truncate(time.Second)

	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// Verify returns the claims of a well-formed, unexpired token signed with
// this codec's secret. Every failure is reported as model.ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, model.ErrInvalidToken
	}

	if claims.Subject != strconv.FormatInt(claims.User.ID, 10) {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}
