package request

import (
	"context"

	"shareit/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	ListByRequester(ctx context.Context, userID int64) ([]domain.Request, error)
	ListExceptRequester(ctx context.Context, userID int64, limit, offset int) ([]domain.Request, error)
}

type ItemRepository interface {
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error)
}

type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
