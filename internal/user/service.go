package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// CreateRequest carries the fields required to sign up a user.
type CreateRequest struct {
	Name  string
	Email string
}

// UpdateRequest carries a partial user update. Nil fields leave the stored
// value untouched.
type UpdateRequest struct {
	Name  *string
	Email *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo   Repository
	logger *zerolog.Logger
}

func NewService(repo Repository, logger *zerolog.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func validEmail(email string) bool {
	return strings.TrimSpace(email) != "" && strings.Contains(email, "@")
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if !validEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	u := &User{Name: req.Name, Email: req.Email}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", u.ID).Msg("user created")
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if !validEmail(*req.Email) {
			return nil, ErrInvalidEmail
		}
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return u, nil
}
