package model

import "time"

type User struct {
	ID                    int64      `json:"id"`
	UUID                  *string    `json:"uuid"`
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	PasswordHash          string     `json:"-"`
	Role                  string     `json:"role"`
	IsActive              bool       `json:"is_active"`
	Metadata              *string    `json:"metadata"`
	CreatedBy             *int64     `json:"created_by"`
	LastLoginAt           *time.Time `json:"last_login_at"`
	LastLoginIP           *string    `json:"last_login_ip"`
	RefreshTokenHash      *string    `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	RefreshTokenIssuedAt  *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// AuthUser is the user snippet carried inside an access token and attached
// to authenticated requests.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u User) AuthUser() AuthUser {
	return AuthUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

// RefreshTokenState is the partial update written to a user row when a
// refresh token is issued, rotated or revoked. Nil fields clear the column.
type RefreshTokenState struct {
	Hash      *string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
}

type TokenPair struct {
	AccessToken      string   `json:"access_token"`
	ExpiresInMinutes int      `json:"expires_in_minutes"`
	RefreshToken     string   `json:"refresh_token"`
	RefreshExpiresAt DateTime `json:"refresh_expires_at"`
}

type UserListData struct {
	Items      []User     `json:"items"`
	Pagination Pagination `json:"pagination"`
}
