package item

import (
	"context"
	"time"

	"shareit/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]domain.Item, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type RequestRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type BookingRepository interface {
	ListNotRejectedByItemIDs(ctx context.Context, itemIDs []int64) ([]domain.Booking, error)
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByItemIDs(ctx context.Context, itemIDs []int64) ([]domain.Comment, error)
}

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
