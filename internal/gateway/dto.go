package gateway

import "shareit/internal/pkg/datetime"

// The gateway binds requests into these types and rejects them with 400
// before anything reaches the server tier.

type userCreateRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=255"`
	Email string `json:"email" binding:"required,email,max=512"`
}

type userUpdateRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitnil,notblank,max=255"`
	Email *string `json:"email,omitempty" binding:"omitnil,email,max=512"`
}

type itemCreateRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId,omitempty" binding:"omitnil,gt=0"`
}

type itemUpdateRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitnil,notblank,max=255"`
	Description *string `json:"description,omitempty" binding:"omitnil,notblank"`
	Available   *bool   `json:"available,omitempty"`
	RequestID   *int64  `json:"requestId,omitempty" binding:"omitnil,gt=0"`
}

type commentCreateRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

type bookingCreateRequest struct {
	ItemID int64         `json:"itemId" binding:"required,gt=0"`
	Start  datetime.Time `json:"start" binding:"required,future"`
	End    datetime.Time `json:"end" binding:"required,future,gtfield=Start"`
}

type requestCreateRequest struct {
	Description string `json:"description" binding:"required,notblank"`
}
