package repository

import (
	"context"

	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	return database.Conn(ctx, r.db).Omit("Requester").Create(req).Error
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	var req domain.Request
	if err := database.Conn(ctx, r.db).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&domain.Request{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// ListByRequester returns the user's own requests, newest first.
func (r *RequestRepository) ListByRequester(ctx context.Context, userID int64) ([]domain.Request, error) {
	var reqs []domain.Request
	err := database.Conn(ctx, r.db).
		Where("requester_id = ?", userID).
		Order("created DESC").
		Order("id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListExceptRequester returns a page of requests made by anyone but the user, newest first.
func (r *RequestRepository) ListExceptRequester(ctx context.Context, userID int64, limit, offset int) ([]domain.Request, error) {
	var reqs []domain.Request
	err := database.Conn(ctx, r.db).
		Where("requester_id <> ?", userID).
		Order("created DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
