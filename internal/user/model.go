package user

import (
	"net/http"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "not_found", "user not found")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "duplicate_email", "email already used")
	ErrInvalidEmail     = apperror.New(http.StatusBadRequest, "validation", "email must be non-empty and contain @")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "validation", "name is required")
)

// User represents a registered user able to own items, book items of others
// and file item requests.
type User struct {
	ID    int64
	Name  string
	Email string
}
