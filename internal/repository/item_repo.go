package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/domain"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	return database.Conn(ctx, r.db).Omit("Owner", "Request").Create(item).Error
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	if err := database.Conn(ctx, r.db).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	return database.Conn(ctx, r.db).
		Model(&domain.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
			"request_id":  item.RequestID,
		}).Error
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	err := database.Conn(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Search matches text case-insensitively inside the description of available items.
func (r *ItemRepository) Search(ctx context.Context, text string, limit, offset int) ([]domain.Item, error) {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"

	db := database.Conn(ctx, r.db)
	var items []domain.Item
	err := db.
		Where("available = ?", true).
		Where(database.LowerExpr(db, "description")+` LIKE ? ESCAPE '\'`, pattern).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	if len(requestIDs) == 0 {
		return []domain.Item{}, nil
	}
	var items []domain.Item
	err := database.Conn(ctx, r.db).
		Where("request_id IN ?", requestIDs).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
