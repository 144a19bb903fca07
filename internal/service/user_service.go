package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"violation-tracker/internal/auth"
	"violation-tracker/internal/model"
	"violation-tracker/pkg/apierror"
)

const (
	defaultUsersPerPage = 20
	defaultRole         = "operator"
	RoleAdmin           = "admin"
)

type UserStore interface {
	List(ctx context.Context, page int, perPage int) ([]model.User, int, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u model.User) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}

// AdminAccount is the account created when the users table is empty.
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

type UserService struct {
	users     UserStore
	passwords *auth.PasswordHasher
	now       func() time.Time
}

func NewUserService(users UserStore, passwords *auth.PasswordHasher) *UserService {
	return &UserService{users: users, passwords: passwords, now: time.Now}
}

func (s *UserService) List(ctx context.Context, page int, perPage int) (model.UserListData, error) {
	page = normalizePage(page)
	if perPage <= 0 {
		perPage = defaultUsersPerPage
	}

	items, total, err := s.users.List(ctx, page, perPage)
	if err != nil {
		return model.UserListData{}, err
	}

	return model.UserListData{Items: items, Pagination: model.NewPagination(page, perPage, total)}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor model.AuthUser, req model.CreateUserRequest) (model.User, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	id := uuid.NewString()
	createdBy := actor.ID
	u := model.User{
		UUID:         &id,
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         normalizeRole(req.Role),
		IsActive:     req.IsActive,
		Metadata:     emptyToNil(req.Metadata),
		CreatedBy:    &createdBy,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, err
	}

	slog.Info("user created", "user_id", u.ID, "username", u.Username, "created_by", actor.ID)
	return u, nil
}

// Update applies only the fields present in req.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return model.User{}, err
		}
		u.PasswordHash = hash
	}
	if req.Role != nil && strings.TrimSpace(*req.Role) != "" {
		u.Role = normalizeRole(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.SoftDelete(ctx, id, s.now().UTC())
}

// EnsureAdmin creates the admin account when no user exists yet.
func (s *UserService) EnsureAdmin(ctx context.Context, admin AdminAccount) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := s.passwords.Hash(admin.Password)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	u := model.User{
		UUID:         &id,
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
	}
	err = s.users.Create(ctx, &u)
	if errors.Is(err, model.ErrUserAlreadyExists) {
		// Soft-deleted rows still hold their usernames and emails.
		slog.Warn("no active users but the admin account is taken by a deleted user; skipping seed", "username", u.Username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Warn("created initial admin account; change its password", "username", u.Username)
	return nil
}

// hashPassword turns the bcrypt length limit into a field error for the client.
func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.passwords.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apierror.Validation(map[string]string{
			"password": fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes),
		})
	}
	return hash, err
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return defaultRole
	}
	return role
}
