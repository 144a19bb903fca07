package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"violation-tracker/internal/auth"
	"violation-tracker/internal/model"
	"violation-tracker/pkg/apierror"
)

// fakeUserStore keeps soft-deleted rows aside; like the users table, their
// usernames and emails stay taken.
type fakeUserStore struct {
	users   map[int64]model.User
	deleted map[int64]model.User
	nextID  int64
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	f := &fakeUserStore{users: map[int64]model.User{}, deleted: map[int64]model.User{}}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUserStore) List(_ context.Context, _ int, _ int) ([]model.User, int, error) {
	items := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		items = append(items, u)
	}
	return items, len(items), nil
}

func (f *fakeUserStore) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, rows := range []map[int64]model.User{f.users, f.deleted} {
		for _, existing := range rows {
			if existing.Username == u.Username || existing.Email == u.Email {
				return model.ErrUserAlreadyExists
			}
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, u model.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) SoftDelete(_ context.Context, id int64, _ time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	f.deleted[id] = u
	delete(f.users, id)
	return nil
}

func TestUserServiceCreate(t *testing.T) {
	t.Parallel()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	admin := model.AuthUser{ID: 1, Username: "admin", Role: RoleAdmin}

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, hasher)

		u, err := svc.Create(context.Background(), admin, model.CreateUserRequest{
			Username: " budi ",
			Email:    "budi@example.com",
			Password: "secret1",
			IsActive: true,
		})
		require.NoError(t, err)
		require.Equal(t, "budi", u.Username)
		require.Equal(t, "operator", u.Role)
		require.Equal(t, int64(1), *u.CreatedBy)
		require.True(t, hasher.Verify("secret1", store.users[u.ID].PasswordHash))
	})

	t.Run("duplicates are rejected", func(t *testing.T) {
		store := newFakeUserStore(model.User{ID: 3, Username: "budi", Email: "b@example.com"})
		svc := NewUserService(store, hasher)

		_, err := svc.Create(context.Background(), admin, model.CreateUserRequest{Username: "budi", Email: "x@example.com", Password: "secret1"})
		require.ErrorIs(t, err, model.ErrUserAlreadyExists)
	})

	t.Run("passwords bcrypt would truncate are a field error", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, hasher)

		_, err := svc.Create(context.Background(), admin, model.CreateUserRequest{
			Username: "budi",
			Email:    "budi@example.com",
			Password: strings.Repeat("a", 80),
		})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnprocessableEntity, apiErr.HTTPStatus)
		require.Contains(t, apiErr.Data, "password")
		require.Empty(t, store.users)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	t.Parallel()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	store := newFakeUserStore(model.User{ID: 4, Username: "sari", Email: "sari@example.com", PasswordHash: "old", Role: "operator", IsActive: true})
	svc := NewUserService(store, hasher)

	inactive := false
	u, err := svc.Update(context.Background(), 4, model.UpdateUserRequest{
		Password: strPtr("newpass"),
		Role:     strPtr("Admin"),
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, "sari@example.com", u.Email)
	require.Equal(t, "admin", u.Role)
	require.False(t, u.IsActive)
	require.True(t, hasher.Verify("newpass", store.users[4].PasswordHash))

	_, err = svc.Update(context.Background(), 40, model.UpdateUserRequest{})
	require.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = svc.Update(context.Background(), 4, model.UpdateUserRequest{Password: strPtr(strings.Repeat("é", 40))})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.HTTPStatus)
	require.True(t, hasher.Verify("newpass", store.users[4].PasswordHash))
}

func TestUserServiceEnsureAdmin(t *testing.T) {
	t.Parallel()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	account := AdminAccount{Username: "admin", Email: "admin@localhost", Password: "admin123"}

	t.Run("seeds an empty table", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, hasher)

		require.NoError(t, svc.EnsureAdmin(context.Background(), account))
		require.Len(t, store.users, 1)
		require.Equal(t, RoleAdmin, store.users[1].Role)
		require.True(t, hasher.Verify("admin123", store.users[1].PasswordHash))
	})

	t.Run("leaves existing users alone", func(t *testing.T) {
		store := newFakeUserStore(model.User{ID: 9, Username: "someone"})
		svc := NewUserService(store, hasher)

		require.NoError(t, svc.EnsureAdmin(context.Background(), account))
		require.Len(t, store.users, 1)
	})

	t.Run("tolerates an admin name held by a deleted user", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, hasher)
		require.NoError(t, svc.EnsureAdmin(context.Background(), account))
		require.NoError(t, svc.Delete(context.Background(), 1))

		count, err := store.Count(context.Background())
		require.NoError(t, err)
		require.Zero(t, count)

		require.NoError(t, svc.EnsureAdmin(context.Background(), account))
		require.Empty(t, store.users)
	})

	t.Run("other seed failures are returned", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, hasher)

		long := account
		long.Password = strings.Repeat("a", 73)
		require.Error(t, svc.EnsureAdmin(context.Background(), long))
		require.Empty(t, store.users)
	})
}

func TestUserServiceList(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeUserStore(model.User{ID: 1}, model.User{ID: 2}), auth.NewPasswordHasher(bcrypt.MinCost))

	data, err := svc.List(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Equal(t, 20, data.Pagination.PerPage)
	require.Equal(t, 2, data.Pagination.Total)
	require.Equal(t, 1, data.Pagination.TotalPages)
}
