package user

import (
	"context"
	"fmt"
	"strings"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/pkg/validator"
)

type Service struct {
	users UserRepository
	tx    TxRunner
}

func NewService(users UserRepository, tx TxRunner) *Service {
	return &Service{users: users, tx: tx}
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	u := &domain.User{Name: req.Name, Email: req.Email}
	if err := s.users.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, req.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		req.Email = &email
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if err := s.users.Update(ctx, u); err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
			}
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user and everything they own. Deleting an unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.users.Delete(ctx, id)
	})
}
