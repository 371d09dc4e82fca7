package http

import "github.com/nekogravitycat/shareit-backend/internal/user"

// UserTag is the short user reference embedded in other responses.
type UserTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

type CreateUserBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
