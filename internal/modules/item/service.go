package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/pkg/pagination"
	"shareit/internal/pkg/validator"
)

type Service struct {
	items    ItemRepository
	users    UserRepository
	requests RequestRepository
	bookings BookingRepository
	comments CommentRepository
	tx       TxRunner
	now      func() time.Time
}

func NewService(
	items ItemRepository,
	users UserRepository,
	requests RequestRepository,
	bookings BookingRepository,
	comments CommentRepository,
	tx TxRunner,
) *Service {
	return &Service{
		items:    items,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the source of "now" used for booking windows and comment timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*domain.Item, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	it := &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureUser(ctx, ownerID); err != nil {
			return err
		}
		if err := s.ensureRequest(ctx, req.RequestID); err != nil {
			return err
		}
		return s.items.Create(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) Update(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*domain.Item, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		req.Description = &desc
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var updated *domain.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.getItem(ctx, itemID)
		if err != nil {
			return err
		}
		if !it.IsOwnedBy(ownerID) {
			return fmt.Errorf("%w: user=%d item=%d", ErrNotOwner, ownerID, itemID)
		}
		if err := s.ensureRequest(ctx, req.RequestID); err != nil {
			return err
		}

		if req.Name != nil {
			it.Name = *req.Name
		}
		if req.Description != nil {
			it.Description = *req.Description
		}
		if req.Available != nil {
			it.Available = *req.Available
		}
		if req.RequestID != nil {
			it.RequestID = req.RequestID
		}
		if err := s.items.Update(ctx, it); err != nil {
			return err
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetByID returns the item with its comments; lastBooking and nextBooking are
// filled only when the viewer owns the item.
func (s *Service) GetByID(ctx context.Context, viewerID, itemID int64) (*ItemDetails, error) {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details, err := s.enrich(ctx, []domain.Item{*it}, it.IsOwnedBy(viewerID))
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListByOwner returns a page of the owner's items, each enriched as for GetByID.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]ItemDetails, error) {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, items, true)
}

// Search returns available items whose description contains text. Blank text
// matches nothing and does not reach the store.
func (s *Service) Search(ctx context.Context, text string, page pagination.Page) ([]domain.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Item{}, nil
	}
	return s.items.Search(ctx, text, page.Limit(), page.Offset())
}

func (s *Service) AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*domain.Comment, error) {
	var created *domain.Comment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		author, err := s.users.GetByID(ctx, authorID)
		if err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("%w: id=%d", ErrUserNotFound, authorID)
			}
			return err
		}
		if _, err := s.getItem(ctx, itemID); err != nil {
			return err
		}

		req.Text = strings.TrimSpace(req.Text)
		if err := validator.Check(req); err != nil {
			return err
		}

		now := s.now()
		ok, err := s.bookings.HasFinishedApproved(ctx, itemID, authorID, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: user=%d item=%d", ErrNotVerifiedRenter, authorID, itemID)
		}

		c := &domain.Comment{Text: req.Text, ItemID: itemID, AuthorID: authorID, Created: now}
		if err := s.comments.Create(ctx, c); err != nil {
			return err
		}
		c.Author = author
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) enrich(ctx context.Context, items []domain.Item, withBookings bool) ([]ItemDetails, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	comments, err := s.comments.ListByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]domain.Comment, len(items))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	bookingsByItem := make(map[int64][]domain.Booking)
	if withBookings {
		bookings, err := s.bookings.ListNotRejectedByItemIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
		}
	}

	now := s.now()
	out := make([]ItemDetails, 0, len(items))
	for _, it := range items {
		d := ItemDetails{Item: it, Comments: commentsByItem[it.ID]}
		if d.Comments == nil {
			d.Comments = []domain.Comment{}
		}
		if withBookings {
			d.LastBooking, d.NextBooking = LastAndNext(bookingsByItem[it.ID], now)
		}
		out = append(out, d)
	}
	return out, nil
}

// LastAndNext picks, among non-rejected bookings, the latest one that started
// before now and the earliest one starting after now. Equal starts go to the
// higher id.
func LastAndNext(bookings []domain.Booking, now time.Time) (last, next *domain.Booking) {
	for i := range bookings {
		b := &bookings[i]
		if b.Status == domain.BookingRejected {
			continue
		}
		switch {
		case b.Start.Before(now):
			if last == nil || b.Start.After(last.Start) || (b.Start.Equal(last.Start) && b.ID > last.ID) {
				last = b
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) || (b.Start.Equal(next.Start) && b.ID > next.ID) {
				next = b
			}
		}
	}
	return last, next
}

func (s *Service) getItem(ctx context.Context, id int64) (*domain.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrItemNotFound, id)
		}
		return nil, err
	}
	return it, nil
}

func (s *Service) ensureUser(ctx context.Context, id int64) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
	}
	return nil
}

func (s *Service) ensureRequest(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.requests.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrRequestNotFound, *id)
	}
	return nil
}
