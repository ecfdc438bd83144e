package request

import (
	"time"

	"shareit/internal/domain"
	"shareit/internal/modules/item"
)

type CreateRequestRequest struct {
	Description string `json:"description" validate:"required"`
}

type RequestResponse struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Created     time.Time           `json:"created"`
	Items       []item.ItemResponse `json:"items"`
}

// RequestWithItems pairs a request with the items listed in answer to it.
type RequestWithItems struct {
	Request domain.Request
	Items   []domain.Item
}

func ToResponse(r *RequestWithItems) RequestResponse {
	return RequestResponse{
		ID:          r.Request.ID,
		Description: r.Request.Description,
		Created:     r.Request.Created,
		Items:       item.ToResponses(r.Items),
	}
}

func ToResponses(rs []RequestWithItems) []RequestResponse {
	out := make([]RequestResponse, 0, len(rs))
	for i := range rs {
		out = append(out, ToResponse(&rs[i]))
	}
	return out
}
