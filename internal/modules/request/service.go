package request

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
	requests RequestRepository
	items    ItemRepository
	users    UserRepository
	tx       TxRunner
	now      func() time.Time
}

func NewService(requests RequestRepository, items ItemRepository, users UserRepository, tx TxRunner) *Service {
	return &Service{
		requests: requests,
		items:    items,
		users:    users,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the source of creation timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequestRequest) (*RequestWithItems, error) {
	req.Description = strings.TrimSpace(req.Description)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	r := &domain.Request{Description: req.Description, RequesterID: userID, Created: s.now()}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureUser(ctx, userID); err != nil {
			return err
		}
		return s.requests.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return &RequestWithItems{Request: *r, Items: []domain.Item{}}, nil
}

// FindMine lists the user's own requests, newest first.
func (s *Service) FindMine(ctx context.Context, userID int64) ([]RequestWithItems, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, reqs)
}

// FindOthers pages through requests made by other users, newest first.
func (s *Service) FindOthers(ctx context.Context, userID int64, page pagination.Page) ([]RequestWithItems, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListExceptRequester(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, reqs)
}

func (s *Service) GetByID(ctx context.Context, userID, requestID int64) (*RequestWithItems, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrRequestNotFound, requestID)
		}
		return nil, err
	}
	out, err := s.attachItems(ctx, []domain.Request{*r})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// attachItems loads the items answering every request in one query and groups
// them by request id.
func (s *Service) attachItems(ctx context.Context, reqs []domain.Request) ([]RequestWithItems, error) {
	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]domain.Item, len(reqs))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	out := make([]RequestWithItems, 0, len(reqs))
	for _, r := range reqs {
		linked := byRequest[r.ID]
		if linked == nil {
			linked = []domain.Item{}
		}
		out = append(out, RequestWithItems{Request: r, Items: linked})
	}
	return out, nil
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
