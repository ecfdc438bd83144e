package booking

import (
	"time"

	"shareit/internal/domain"
	"shareit/internal/modules/item"
	"shareit/internal/modules/user"
	"shareit/internal/pkg/datetime"
)

type CreateBookingRequest struct {
	ItemID int64         `json:"itemId" validate:"required,gt=0"`
	Start  datetime.Time `json:"start" validate:"required"`
	End    datetime.Time `json:"end" validate:"required"`
}

type BookingResponse struct {
	ID     int64                `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status domain.BookingStatus `json:"status"`
	Item   *item.ItemResponse   `json:"item"`
	Booker *user.UserResponse   `json:"booker"`
}

func ToResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
	}
	if b.Item != nil {
		it := item.ToResponse(b.Item)
		resp.Item = &it
	}
	if b.Booker != nil {
		u := user.ToResponse(b.Booker)
		resp.Booker = &u
	}
	return resp
}

func ToResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToResponse(&bookings[i]))
	}
	return out
}
