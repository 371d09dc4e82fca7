package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

type CreateBookingBody struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

type BookingResponse struct {
	ID     int64            `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Booker userHttp.UserTag `json:"booker"`
	Item   itemHttp.ItemTag `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}
