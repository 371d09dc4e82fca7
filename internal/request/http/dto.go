package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/request"
)

type CreateRequestBody struct {
	Description string `json:"description"`
}

type RequestItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

type RequestResponse struct {
	ID          int64                 `json:"id"`
	Description string                `json:"description"`
	Created     time.Time             `json:"created"`
	Items       []RequestItemResponse `json:"items"`
}

func NewRequestResponse(req *request.WithItems) RequestResponse {
	items := make([]RequestItemResponse, len(req.Items))
	for i, it := range req.Items {
		items[i] = RequestItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			OwnerID:     it.OwnerID,
			RequestID:   it.RequestID,
		}
	}
	return RequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       items,
	}
}
