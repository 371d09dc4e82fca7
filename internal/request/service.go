package request

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/paging"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

var sortByCreatedDesc = paging.Sort{Field: "created", Direction: paging.Desc}

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*WithItems, error)
	GetByID(ctx context.Context, requestorID, requestID int64) (*WithItems, error)
	// ListOwn returns the requestor's own requests with fulfilling items.
	ListOwn(ctx context.Context, requestorID int64) ([]*WithItems, error)
	// ListOthers returns a page of requests filed by other users,
	// newest first.
	ListOthers(ctx context.Context, requestorID int64, from, size int) ([]*WithItems, error)
}

type service struct {
	repo   Repository
	users  user.Service
	logger *zerolog.Logger
}

func NewService(repo Repository, users user.Service, logger *zerolog.Logger) Service {
	return &service{repo: repo, users: users, logger: logger}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*WithItems, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	req := &Request{Description: description, RequestorID: requestorID}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", req.ID).Int64("requestor_id", requestorID).Msg("item request created")
	return &WithItems{Request: *req, Items: []Item{}}, nil
}

func (s *service) GetByID(ctx context.Context, requestorID, requestID int64) (*WithItems, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	return s.withItems(ctx, req)
}

func (s *service) ListOwn(ctx context.Context, requestorID int64) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requestorID int64, from, size int) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	page, err := paging.New(from, size, sortByCreatedDesc)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, requestorID, page)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *service) withItems(ctx context.Context, req *Request) (*WithItems, error) {
	items, err := s.repo.ItemsByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return &WithItems{Request: *req, Items: items}, nil
}

func (s *service) attachItems(ctx context.Context, requests []*Request) ([]*WithItems, error) {
	result := make([]*WithItems, 0, len(requests))
	for _, req := range requests {
		wi, err := s.withItems(ctx, req)
		if err != nil {
			return nil, err
		}
		result = append(result, wi)
	}
	return result, nil
}
