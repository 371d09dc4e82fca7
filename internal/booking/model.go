package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "not_found", "booking not found")
	ErrIncorrectOwner   = apperror.New(http.StatusNotFound, "incorrect_owner", "item belongs to another user")
	ErrOwnItem          = apperror.New(http.StatusNotFound, "not_found", "you cannot book your own item")
	ErrInvalidInterval  = apperror.New(http.StatusBadRequest, "incorrect_booking", "booking interval is set incorrectly")
	ErrIncorrectBooking = apperror.New(http.StatusBadRequest, "incorrect_booking", "check the booking id")
	ErrCannotConfirm    = apperror.New(http.StatusBadRequest, "incorrect_booking", "booking cannot be confirmed")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "unknown_state", "Unknown state: UNSUPPORTED_STATUS")
)

// Status is a persisted booking status.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled is reserved in the status set but never produced by
	// any transition.
	StatusCanceled Status = "CANCELED"
)

// State is a query-time booking filter. ALL/CURRENT/PAST/FUTURE classify
// bookings relative to the wall clock and are never stored.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
	StateApproved State = "APPROVED"
)

// ParseState validates a raw state token. Anything outside the vocabulary,
// including the stored-but-untransitioned CANCELED, is rejected.
func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected, StateApproved:
		return State(raw), nil
	default:
		return "", ErrUnknownState
	}
}

// Booking is a reservation of an item for the [start, end) window.
// ItemName, ItemOwnerID and BookerName are joined in by the repository.
type Booking struct {
	ID          int64
	Start       time.Time
	End         time.Time
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Status      Status
}
