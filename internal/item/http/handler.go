package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/identity"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation", Message: "invalid request body"})
		return
	}

	req := item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	}
	it, err := h.service.Create(c.Request.Context(), req, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var body UpdateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation", Message: "invalid request body"})
		return
	}

	req := item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	}
	it, err := h.service.Update(c.Request.Context(), id, identity.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.service.Get(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemWithBookingsResponse(view))
}

func (h *Handler) List(c *gin.Context) {
	from, size, err := request.PageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	views, err := h.service.ListByOwner(c.Request.Context(), identity.UserID(c), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemWithBookingsResponse, len(views))
	for i, view := range views {
		items[i] = NewItemWithBookingsResponse(view)
	}
	c.JSON(http.StatusOK, response.List(items))
}

func (h *Handler) Search(c *gin.Context) {
	from, size, err := request.PageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	found, err := h.service.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemResponse, len(found))
	for i, it := range found {
		items[i] = NewItemResponse(it)
	}
	c.JSON(http.StatusOK, response.List(items))
}

func (h *Handler) AddComment(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var body CommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation", Message: "invalid request body"})
		return
	}

	cm, err := h.service.AddComment(c.Request.Context(), id, identity.UserID(c), body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(cm))
}
