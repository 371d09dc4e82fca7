package request

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "not_found", "item request not found")
	ErrEmptyDescription = apperror.New(http.StatusBadRequest, "validation", "request description must not be empty")
)

// Request is a standing ask for an item not yet listed.
type Request struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// Item is the summary of an item created in response to a request.
// The list is derived by a live query on the request id, never stored.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// WithItems pairs a request with the items fulfilling it.
type WithItems struct {
	Request
	Items []Item
}
