package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/paging"
	"github.com/nekogravitycat/shareit-backend/internal/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

var sortByIDAsc = paging.Sort{Field: "id", Direction: paging.Asc}

// CreateRequest carries the fields required to list an item.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	// RequestID links the item to the request it fulfills, if any.
	RequestID *int64
}

// UpdateRequest carries a partial item patch. Nil fields leave the stored
// value untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, ownerID int64) (*Item, error)
	Update(ctx context.Context, itemID, ownerID int64, req UpdateRequest) (*Item, error)
	// GetByID returns the bare item entity. Used by the booking engine for
	// availability and ownership checks.
	GetByID(ctx context.Context, id int64) (*Item, error)
	// Get assembles the item view for a requester: comments always,
	// last/next booking summaries only for the owner.
	Get(ctx context.Context, itemID, requesterID int64) (*WithBookings, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*WithBookings, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	users    user.Service
	requests request.Service
	logger   *zerolog.Logger
}

func NewService(repo Repository, users user.Service, requests request.Service, logger *zerolog.Logger) Service {
	return &service{repo: repo, users: users, requests: requests, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateRequest, ownerID int64) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionMissing
	}
	if req.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, ownerID, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", it.ID).Int64("owner_id", ownerID).Msg("item listed")
	return it, nil
}

func (s *service) Update(ctx context.Context, itemID, ownerID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrIncorrectOwner
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Get(ctx context.Context, itemID, requesterID int64) (*WithBookings, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.assembleView(ctx, it, requesterID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*WithBookings, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	page, err := paging.New(from, size, sortByIDAsc)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	views := make([]*WithBookings, 0, len(items))
	for _, it := range items {
		view, err := s.assembleView(ctx, it, ownerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	// Blank search returns an empty result without touching the store.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	page, err := paging.New(from, size, sortByIDAsc)
	if err != nil {
		return nil, err
	}

	return s.repo.Search(ctx, text, page)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	bookings, err := s.repo.ApprovedBookings(ctx, itemID, authorID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNeverBooked
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	now := time.Now()
	finished := false
	for _, b := range bookings {
		if b.End.Before(now) {
			finished = true
			break
		}
	}
	if !finished {
		return nil, ErrBookingNotFinished
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	cm := &Comment{Text: text, ItemID: itemID, AuthorID: authorID, AuthorName: author.Name}
	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}

	return cm, nil
}

func (s *service) assembleView(ctx context.Context, it *Item, requesterID int64) (*WithBookings, error) {
	comments, err := s.repo.CommentsByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}

	view := &WithBookings{Item: *it, Comments: comments}

	// Booking summaries are visible to the item's owner only.
	if it.OwnerID != requesterID {
		return view, nil
	}

	now := time.Now()
	if view.LastBooking, err = s.repo.LastBooking(ctx, it.ID, now); err != nil {
		return nil, err
	}
	if view.NextBooking, err = s.repo.NextBooking(ctx, it.ID, now); err != nil {
		return nil, err
	}

	return view, nil
}
