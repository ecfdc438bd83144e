package repository

import (
	"context"

	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return database.Conn(ctx, r.db).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := database.Conn(ctx, r.db).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&domain.User{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := database.Conn(ctx, r.db).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return database.Conn(ctx, r.db).
		Model(&domain.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{"name": u.Name, "email": u.Email}).Error
}

// Delete removes the user together with everything that references them: their
// comments and bookings, their items with the comments and bookings on those
// items, and their requests. Items listed in answer to those requests are kept
// but detached. Call it inside a transaction.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	db := database.Conn(ctx, r.db)
	owned := db.Model(&domain.Item{}).Select("id").Where("owner_id = ?", id)
	requests := db.Model(&domain.Request{}).Select("id").Where("requester_id = ?", id)

	steps := []func() error{
		func() error {
			return db.Where("author_id = ? OR item_id IN (?)", id, owned).Delete(&domain.Comment{}).Error
		},
		func() error {
			return db.Where("booker_id = ? OR item_id IN (?)", id, owned).Delete(&domain.Booking{}).Error
		},
		func() error {
			return db.Where("owner_id = ?", id).Delete(&domain.Item{}).Error
		},
		func() error {
			return db.Model(&domain.Item{}).Where("request_id IN (?)", requests).Update("request_id", nil).Error
		},
		func() error {
			return db.Where("requester_id = ?", id).Delete(&domain.Request{}).Error
		},
		func() error {
			return db.Delete(&domain.User{}, id).Error
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
