package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/identity"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
	itemrequest "github.com/nekogravitycat/shareit-backend/internal/request"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation", Message: "invalid request body"})
		return
	}

	req, err := h.service.Create(c.Request.Context(), identity.UserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(req))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	req, err := h.service.GetByID(c.Request.Context(), identity.UserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(req))
}

func (h *Handler) ListOwn(c *gin.Context) {
	requests, err := h.service.ListOwn(c.Request.Context(), identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(requests))
}

func (h *Handler) ListOthers(c *gin.Context) {
	from, size, err := request.PageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	requests, err := h.service.ListOthers(c.Request.Context(), identity.UserID(c), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(requests))
}

func toResponses(requests []*itemrequest.WithItems) []RequestResponse {
	items := make([]RequestResponse, len(requests))
	for i, req := range requests {
		items[i] = NewRequestResponse(req)
	}
	return response.List(items)
}
