package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/identity"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation", Message: "invalid request body"})
		return
	}

	req := booking.CreateRequest{ItemID: body.ItemID, Start: body.Start, End: body.End}
	b, err := h.service.Create(c.Request.Context(), req, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation", Message: "approved must be a boolean"})
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), id, approved, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

func (h *Handler) ListByOwnerItems(c *gin.Context) {
	h.list(c, h.service.ListByOwnerItems)
}

type listFunc func(ctx context.Context, userID int64, rawState string, from, size int) ([]*booking.Booking, error)

func (h *Handler) list(c *gin.Context, query listFunc) {
	from, size, err := request.PageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	state := c.DefaultQuery("state", "ALL")
	bookings, err := query(c.Request.Context(), identity.UserID(c), state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.List(items))
}
