package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "not_found", "item not found")
	ErrIncorrectOwner     = apperror.New(http.StatusNotFound, "incorrect_owner", "item belongs to another user")
	ErrNotAvailable       = apperror.New(http.StatusBadRequest, "item_not_available", "item is not available")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "validation", "item name is required")
	ErrDescriptionMissing = apperror.New(http.StatusBadRequest, "validation", "item description is required")

	ErrNeverBooked        = apperror.New(http.StatusBadRequest, "incorrect_comment", "you never booked this item")
	ErrEmptyComment       = apperror.New(http.StatusBadRequest, "incorrect_comment", "comment must not be empty")
	ErrBookingNotFinished = apperror.New(http.StatusBadRequest, "incorrect_comment", "booking of this item is not finished yet")
)

// Item is a thing listed for sharing by its owner.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	// RequestID references the item request this item was created in
	// response to, if any.
	RequestID *int64
}

// BookingSummary is the short booking view attached to an item for its
// owner: the last finished and the next upcoming booking.
type BookingSummary struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// Comment is feedback left by a user who had a finished approved booking of
// the item.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// WithBookings is the item view returned to clients: comments always, the
// last/next booking summaries only when the requester owns the item.
type WithBookings struct {
	Item
	LastBooking *BookingSummary
	NextBooking *BookingSummary
	Comments    []Comment
}
