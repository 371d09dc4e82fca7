package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
)

// ItemTag is the short item reference embedded in booking responses.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateItemBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CommentBody struct {
	Text string `json:"text"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

type BookingSummaryResponse struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func newBookingSummaryResponse(b *item.BookingSummary) *BookingSummaryResponse {
	if b == nil {
		return nil
	}
	return &BookingSummaryResponse{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{ID: cm.ID, Text: cm.Text, AuthorName: cm.AuthorName, Created: cm.Created}
}

type ItemWithBookingsResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Available   bool                    `json:"available"`
	RequestID   *int64                  `json:"requestId,omitempty"`
	LastBooking *BookingSummaryResponse `json:"lastBooking"`
	NextBooking *BookingSummaryResponse `json:"nextBooking"`
	Comments    []CommentResponse       `json:"comments"`
}

func NewItemWithBookingsResponse(view *item.WithBookings) ItemWithBookingsResponse {
	comments := make([]CommentResponse, len(view.Comments))
	for i := range view.Comments {
		comments[i] = NewCommentResponse(&view.Comments[i])
	}
	return ItemWithBookingsResponse{
		ID:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		Available:   view.Available,
		RequestID:   view.RequestID,
		LastBooking: newBookingSummaryResponse(view.LastBooking),
		NextBooking: newBookingSummaryResponse(view.NextBooking),
		Comments:    comments,
	}
}
