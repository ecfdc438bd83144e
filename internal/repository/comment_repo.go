package repository

import (
	"context"

	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return database.Conn(ctx, r.db).Omit("Item", "Author").Create(c).Error
}

// ListByItemIDs returns comments with their authors, newest first.
func (r *CommentRepository) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]domain.Comment, error) {
	if len(itemIDs) == 0 {
		return []domain.Comment{}, nil
	}
	var comments []domain.Comment
	err := database.Conn(ctx, r.db).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
