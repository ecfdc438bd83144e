package booking

import (
	"context"
	"time"

	"shareit/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ListByBooker(ctx context.Context, bookerID int64, state domain.State, now time.Time, limit, offset int) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state domain.State, now time.Time, limit, offset int) ([]domain.Booking, error)
}

type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
