package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/identity"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type fakeService struct {
	item.Service
	create     func(ctx context.Context, req item.CreateRequest, ownerID int64) (*item.Item, error)
	update     func(ctx context.Context, itemID, ownerID int64, req item.UpdateRequest) (*item.Item, error)
	get        func(ctx context.Context, itemID, requesterID int64) (*item.WithBookings, error)
	search     func(ctx context.Context, text string, from, size int) ([]*item.Item, error)
	addComment func(ctx context.Context, itemID, authorID int64, text string) (*item.Comment, error)
}

func (f *fakeService) Create(ctx context.Context, req item.CreateRequest, ownerID int64) (*item.Item, error) {
	return f.create(ctx, req, ownerID)
}
func (f *fakeService) Update(ctx context.Context, itemID, ownerID int64, req item.UpdateRequest) (*item.Item, error) {
	return f.update(ctx, itemID, ownerID, req)
}
func (f *fakeService) Get(ctx context.Context, itemID, requesterID int64) (*item.WithBookings, error) {
	return f.get(ctx, itemID, requesterID)
}
func (f *fakeService) Search(ctx context.Context, text string, from, size int) ([]*item.Item, error) {
	return f.search(ctx, text, from, size)
}
func (f *fakeService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*item.Comment, error) {
	return f.addComment(ctx, itemID, authorID, text)
}

func newRouter(svc item.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	itemHttp.RegisterRoutes(r.Group(""), itemHttp.NewHandler(svc), identity.Required())
	return r
}

func perform(r *gin.Engine, method, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(identity.Header, userID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	t.Run("201 with owner from header", func(t *testing.T) {
		var gotOwner int64
		svc := &fakeService{
			create: func(_ context.Context, req item.CreateRequest, ownerID int64) (*item.Item, error) {
				gotOwner = ownerID
				return &item.Item{ID: 10, Name: req.Name, Description: req.Description, Available: req.Available, OwnerID: ownerID}, nil
			},
		}

		w := perform(newRouter(svc), nethttp.MethodPost, "/items", "1",
			`{"name":"drill","description":"cordless","available":true}`)
		require.Equal(t, nethttp.StatusCreated, w.Code)
		assert.Equal(t, int64(1), gotOwner)
	})

	t.Run("400 without available flag", func(t *testing.T) {
		w := perform(newRouter(&fakeService{}), nethttp.MethodPost, "/items", "1",
			`{"name":"drill","description":"cordless"}`)
		assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("absent fields patch as nil", func(t *testing.T) {
		var gotReq item.UpdateRequest
		svc := &fakeService{
			update: func(_ context.Context, _, _ int64, req item.UpdateRequest) (*item.Item, error) {
				gotReq = req
				return &item.Item{ID: 10, Name: "drill", Description: "cordless", Available: false, OwnerID: 1}, nil
			},
		}

		w := perform(newRouter(svc), nethttp.MethodPatch, "/items/10", "1", `{"available":false}`)
		require.Equal(t, nethttp.StatusOK, w.Code)
		assert.Nil(t, gotReq.Name)
		assert.Nil(t, gotReq.Description)
		require.NotNil(t, gotReq.Available)
		assert.False(t, *gotReq.Available)
	})

	t.Run("404 for non-owner", func(t *testing.T) {
		svc := &fakeService{
			update: func(_ context.Context, _, _ int64, _ item.UpdateRequest) (*item.Item, error) {
				return nil, item.ErrIncorrectOwner
			},
		}

		w := perform(newRouter(svc), nethttp.MethodPatch, "/items/10", "2", `{"name":"x"}`)
		assert.Equal(t, nethttp.StatusNotFound, w.Code)
	})
}

func TestGet(t *testing.T) {
	svc := &fakeService{
		get: func(_ context.Context, itemID, _ int64) (*item.WithBookings, error) {
			return &item.WithBookings{
				Item:     item.Item{ID: itemID, Name: "drill", Description: "cordless", Available: true, OwnerID: 1},
				Comments: []item.Comment{},
			}, nil
		},
	}

	w := perform(newRouter(svc), nethttp.MethodGet, "/items/10", "2", "")
	require.Equal(t, nethttp.StatusOK, w.Code)

	var body itemHttp.ItemWithBookingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(10), body.ID)
	assert.Nil(t, body.LastBooking)
	assert.NotNil(t, body.Comments)
}

func TestSearch(t *testing.T) {
	t.Run("passes text and defaults", func(t *testing.T) {
		var gotText string
		var gotFrom, gotSize int
		svc := &fakeService{
			search: func(_ context.Context, text string, from, size int) ([]*item.Item, error) {
				gotText, gotFrom, gotSize = text, from, size
				return nil, nil
			},
		}

		w := perform(newRouter(svc), nethttp.MethodGet, "/items/search?text=drill", "2", "")
		require.Equal(t, nethttp.StatusOK, w.Code)
		assert.Equal(t, "drill", gotText)
		assert.Equal(t, 0, gotFrom)
		assert.Equal(t, 20, gotSize)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})
}

func TestAddComment(t *testing.T) {
	t.Run("200 with author name", func(t *testing.T) {
		svc := &fakeService{
			addComment: func(_ context.Context, itemID, authorID int64, text string) (*item.Comment, error) {
				return &item.Comment{ID: 5, Text: text, ItemID: itemID, AuthorID: authorID, AuthorName: "bob", Created: time.Now()}, nil
			},
		}

		w := perform(newRouter(svc), nethttp.MethodPost, "/items/10/comment", "2", `{"text":"works great"}`)
		require.Equal(t, nethttp.StatusOK, w.Code)

		var body itemHttp.CommentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "bob", body.AuthorName)
		assert.Equal(t, "works great", body.Text)
	})

	t.Run("400 without prior booking", func(t *testing.T) {
		svc := &fakeService{
			addComment: func(_ context.Context, _, _ int64, _ string) (*item.Comment, error) {
				return nil, item.ErrNeverBooked
			},
		}

		w := perform(newRouter(svc), nethttp.MethodPost, "/items/10/comment", "2", `{"text":"hi"}`)
		require.Equal(t, nethttp.StatusBadRequest, w.Code)

		var body response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "incorrect_comment", body.Error)
	})
}
