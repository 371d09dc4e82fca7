package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/paging"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

var sortByStartDesc = paging.Sort{Field: "b.start_time", Direction: paging.Desc}

// CreateRequest carries the fields required to book an item.
type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	// Create validates the booking request and persists it as WAITING.
	// No overlap check against existing bookings of the item is performed.
	Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error)
	// SetStatus applies the one-way WAITING -> APPROVED/REJECTED
	// transition on behalf of the item's owner.
	SetStatus(ctx context.Context, bookingID int64, approve bool, requesterID int64) (*Booking, error)
	// GetByID returns a booking to its booker or the item's owner.
	GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, rawState string, from, size int) ([]*Booking, error)
	ListByOwnerItems(ctx context.Context, ownerID int64, rawState string, from, size int) ([]*Booking, error)
}

type service struct {
	repo   Repository
	items  item.Service
	users  user.Service
	logger *zerolog.Logger
}

func NewService(repo Repository, items item.Service, users user.Service, logger *zerolog.Logger) Service {
	return &service{repo: repo, items: items, users: users, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error) {
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, item.ErrNotAvailable
	}

	now := time.Now()
	if req.Start.Before(now) || req.End.Before(now) || req.End.Before(req.Start) || req.End.Equal(req.Start) {
		return nil, ErrInvalidInterval
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}

	b := &Booking{
		Start:       req.Start,
		End:         req.End,
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Status:      StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", b.ID).
		Int64("item_id", b.ItemID).
		Int64("booker_id", b.BookerID).
		Msg("booking created")
	return b, nil
}

func (s *service) SetStatus(ctx context.Context, bookingID int64, approve bool, requesterID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		// A PATCH against a missing booking is reported as bad input,
		// not as a lookup miss.
		return nil, ErrIncorrectBooking
	}
	if b.ItemOwnerID != requesterID {
		return nil, ErrIncorrectOwner
	}

	status := StatusRejected
	if approve {
		status = StatusApproved
	}

	// Single conditional update: two concurrent transitions on the same
	// WAITING booking cannot both win.
	changed, err := s.repo.SetStatusIfWaiting(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrCannotConfirm
	}

	b.Status = status
	s.logger.Info().
		Int64("booking_id", b.ID).
		Str("status", string(status)).
		Msg("booking status set")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != requesterID && b.BookerID != requesterID {
		return nil, ErrIncorrectOwner
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, rawState string, from, size int) ([]*Booking, error) {
	state, page, err := s.listParams(ctx, bookerID, rawState, from, size)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByBooker(ctx, bookerID, state, page)
}

func (s *service) ListByOwnerItems(ctx context.Context, ownerID int64, rawState string, from, size int) ([]*Booking, error) {
	state, page, err := s.listParams(ctx, ownerID, rawState, from, size)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByOwnerItems(ctx, ownerID, state, page)
}

func (s *service) listParams(ctx context.Context, userID int64, rawState string, from, size int) (State, paging.Page, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", paging.Page{}, err
	}

	state, err := ParseState(rawState)
	if err != nil {
		return "", paging.Page{}, err
	}

	page, err := paging.New(from, size, sortByStartDesc)
	if err != nil {
		return "", paging.Page{}, err
	}

	return state, page, nil
}
