package booking

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/pkg/pagination"
	"shareit/internal/pkg/validator"
)

type Service struct {
	bookings BookingRepository
	items    ItemRepository
	users    UserRepository
	tx       TxRunner
	now      func() time.Time
}

func NewService(bookings BookingRepository, items ItemRepository, users UserRepository, tx TxRunner) *Service {
	return &Service{
		bookings: bookings,
		items:    items,
		users:    users,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the source of "now" used by state filters.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create books an item for [start, end). The booking starts out WAITING for
// the owner's decision.
func (s *Service) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if !req.End.After(req.Start.Time) {
		return nil, fmt.Errorf("%w: start=%s end=%s", ErrInvalidPeriod,
			req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))
	}

	var created *domain.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.items.GetByID(ctx, req.ItemID)
		if err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("%w: id=%d", ErrItemNotFound, req.ItemID)
			}
			return err
		}
		booker, err := s.users.GetByID(ctx, bookerID)
		if err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("%w: id=%d", ErrUserNotFound, bookerID)
			}
			return err
		}
		if !it.Available {
			return fmt.Errorf("%w: id=%d", ErrItemUnavailable, it.ID)
		}
		if it.IsOwnedBy(bookerID) {
			return fmt.Errorf("%w: user=%d item=%d", ErrOwnItem, bookerID, it.ID)
		}

		b := &domain.Booking{
			ItemID:   it.ID,
			BookerID: bookerID,
			Start:    req.Start.UTC(),
			End:      req.End.UTC(),
			Status:   domain.BookingWaiting,
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			return err
		}
		b.Item = it
		b.Booker = booker
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Decide approves or rejects a WAITING booking on the caller's item. A booking
// can be decided once.
func (s *Service) Decide(ctx context.Context, ownerID, bookingID int64, approved bool) (*domain.Booking, error) {
	var decided *domain.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Item == nil || !b.Item.IsOwnedBy(ownerID) {
			return fmt.Errorf("%w: user=%d booking=%d", ErrNotItemOwner, ownerID, bookingID)
		}
		if b.IsDecided() {
			return fmt.Errorf("%w: id=%d status=%s", ErrAlreadyDecided, bookingID, b.Status)
		}

		b.Status = domain.BookingRejected
		if approved {
			b.Status = domain.BookingApproved
		}
		if err := s.bookings.UpdateStatus(ctx, b.ID, b.Status); err != nil {
			return err
		}
		decided = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// GetByID shows a booking to its booker or to the owner of the booked item.
func (s *Service) GetByID(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != userID && (b.Item == nil || !b.Item.IsOwnedBy(userID)) {
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
	}
	return b, nil
}

func (s *Service) ListForBooker(ctx context.Context, userID int64, stateToken string, page pagination.Page) ([]domain.Booking, error) {
	state, err := s.prepareListing(ctx, userID, stateToken)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, userID, state, s.now(), page.Limit(), page.Offset())
}

func (s *Service) ListForOwner(ctx context.Context, userID int64, stateToken string, page pagination.Page) ([]domain.Booking, error) {
	state, err := s.prepareListing(ctx, userID, stateToken)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, userID, state, s.now(), page.Limit(), page.Offset())
}

func (s *Service) prepareListing(ctx context.Context, userID int64, stateToken string) (domain.State, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: id=%d", ErrUserNotFound, userID)
	}
	return domain.ParseState(stateToken)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		return nil, err
	}
	return b, nil
}
