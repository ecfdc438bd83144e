package item

import (
	"time"

	"shareit/internal/domain"
)

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitnil,gt=0"`
}

// UpdateItemRequest carries a partial update; nil fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId" validate:"omitnil,gt=0"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// BookingShort is the booking projection embedded in an owner's item view.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDetailsResponse is an item with its comments and, for the owner only,
// its surrounding bookings.
type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingShort     `json:"lastBooking"`
	NextBooking *BookingShort     `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

// ItemDetails is the service-level result behind ItemDetailsResponse.
type ItemDetails struct {
	Item        domain.Item
	LastBooking *domain.Booking
	NextBooking *domain.Booking
	Comments    []domain.Comment
}

func ToResponse(it *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func ToResponses(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToResponse(&items[i]))
	}
	return out
}

func ToBookingShort(b *domain.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

func ToCommentResponse(c *domain.Comment) CommentResponse {
	resp := CommentResponse{ID: c.ID, Text: c.Text, Created: c.Created}
	if c.Author != nil {
		resp.AuthorName = c.Author.Name
	}
	return resp
}

func ToDetailsResponse(d *ItemDetails) ItemDetailsResponse {
	comments := make([]CommentResponse, 0, len(d.Comments))
	for i := range d.Comments {
		comments = append(comments, ToCommentResponse(&d.Comments[i]))
	}
	return ItemDetailsResponse{
		ItemResponse: ToResponse(&d.Item),
		LastBooking:  ToBookingShort(d.LastBooking),
		NextBooking:  ToBookingShort(d.NextBooking),
		Comments:     comments,
	}
}

func ToDetailsResponses(details []ItemDetails) []ItemDetailsResponse {
	out := make([]ItemDetailsResponse, 0, len(details))
	for i := range details {
		out = append(out, ToDetailsResponse(&details[i]))
	}
	return out
}
