package user_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type fakeRepo struct {
	create  func(ctx context.Context, u *user.User) error
	getByID func(ctx context.Context, id int64) (*user.User, error)
	list    func(ctx context.Context) ([]*user.User, error)
	update  func(ctx context.Context, u *user.User) error
	delete  func(ctx context.Context, id int64) error
}

func (f *fakeRepo) Create(ctx context.Context, u *user.User) error { return f.create(ctx, u) }
func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return f.getByID(ctx, id)
}
func (f *fakeRepo) List(ctx context.Context) ([]*user.User, error) { return f.list(ctx) }
func (f *fakeRepo) Update(ctx context.Context, u *user.User) error { return f.update(ctx, u) }
func (f *fakeRepo) Delete(ctx context.Context, id int64) error     { return f.delete(ctx, id) }

func newService(repo user.Repository) user.Service {
	logger := zerolog.Nop()
	return user.NewService(repo, &logger)
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	t.Run("assigns id", func(t *testing.T) {
		repo := &fakeRepo{
			create: func(_ context.Context, u *user.User) error {
				u.ID = 1
				return nil
			},
		}

		u, err := newService(repo).Create(context.Background(), user.CreateRequest{Name: "alice", Email: "alice@mail.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "alice", u.Name)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := newService(&fakeRepo{}).Create(context.Background(), user.CreateRequest{Name: "   ", Email: "a@b"})
		assert.ErrorIs(t, err, user.ErrNameRequired)
	})

	t.Run("email without at sign", func(t *testing.T) {
		_, err := newService(&fakeRepo{}).Create(context.Background(), user.CreateRequest{Name: "alice", Email: "alice.mail.com"})
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("blank email", func(t *testing.T) {
		_, err := newService(&fakeRepo{}).Create(context.Background(), user.CreateRequest{Name: "alice", Email: " "})
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &fakeRepo{
			create: func(_ context.Context, _ *user.User) error { return user.ErrEmailAlreadyUsed },
		}

		_, err := newService(repo).Create(context.Background(), user.CreateRequest{Name: "alice", Email: "alice@mail.com"})
		assert.ErrorIs(t, err, user.ErrEmailAlreadyUsed)
	})
}

func TestUpdate(t *testing.T) {
	stored := func() *user.User {
		return &user.User{ID: 1, Name: "alice", Email: "alice@mail.com"}
	}

	t.Run("nil fields keep stored values", func(t *testing.T) {
		var saved *user.User
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*user.User, error) { return stored(), nil },
			update: func(_ context.Context, u *user.User) error {
				saved = u
				return nil
			},
		}

		u, err := newService(repo).Update(context.Background(), 1, user.UpdateRequest{Name: ptr("alicia")})
		require.NoError(t, err)
		assert.Equal(t, "alicia", u.Name)
		assert.Equal(t, "alice@mail.com", u.Email)
		require.NotNil(t, saved)
		assert.Equal(t, "alice@mail.com", saved.Email)
	})

	t.Run("invalid patched email", func(t *testing.T) {
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*user.User, error) { return stored(), nil },
		}

		_, err := newService(repo).Update(context.Background(), 1, user.UpdateRequest{Email: ptr("no-at-sign")})
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*user.User, error) { return nil, user.ErrNotFound },
		}

		_, err := newService(repo).Update(context.Background(), 42, user.UpdateRequest{Name: ptr("x")})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("returns deleted user", func(t *testing.T) {
		deleted := false
		repo := &fakeRepo{
			getByID: func(_ context.Context, id int64) (*user.User, error) {
				return &user.User{ID: id, Name: "alice", Email: "alice@mail.com"}, nil
			},
			delete: func(_ context.Context, _ int64) error {
				deleted = true
				return nil
			},
		}

		u, err := newService(repo).Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, "alice", u.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*user.User, error) { return nil, user.ErrNotFound },
		}

		_, err := newService(repo).Delete(context.Background(), 42)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
