package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	b.Start = b.Start.UTC()
	b.End = b.End.UTC()
	return database.Conn(ctx, r.db).Omit("Item", "Booker").Create(b).Error
}

// GetByID loads the booking with its item and booker.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := database.Conn(ctx, r.db).
		Preload("Item").
		Preload("Booker").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListByBooker returns the user's bookings matching state, latest end first.
func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID int64, state domain.State, now time.Time, limit, offset int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := database.Conn(ctx, r.db).
		Preload("Item").
		Preload("Booker").
		Where("booker_id = ?", bookerID).
		Scopes(inState(state, now)).
		Order("end_date DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByOwner returns bookings on the user's items matching state, latest start first.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, state domain.State, now time.Time, limit, offset int) ([]domain.Booking, error) {
	db := database.Conn(ctx, r.db)
	owned := db.Model(&domain.Item{}).Select("id").Where("owner_id = ?", ownerID)

	var bookings []domain.Booking
	err := db.
		Preload("Item").
		Preload("Booker").
		Where("item_id IN (?)", owned).
		Scopes(inState(state, now)).
		Order("start_date DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListNotRejectedByItemIDs returns every booking on the items that is not REJECTED.
func (r *BookingRepository) ListNotRejectedByItemIDs(ctx context.Context, itemIDs []int64) ([]domain.Booking, error) {
	if len(itemIDs) == 0 {
		return []domain.Booking{}, nil
	}
	var bookings []domain.Booking
	err := database.Conn(ctx, r.db).
		Where("item_id IN ?", itemIDs).
		Where("status <> ?", domain.BookingRejected).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// HasFinishedApproved reports whether the user has an APPROVED booking of the
// item that ended before now.
func (r *BookingRepository) HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("item_id = ? AND booker_id = ?", itemID, bookerID).
		Where("status = ?", domain.BookingApproved).
		Where("end_date < ?", now.UTC()).
		Count(&count).Error
	return count > 0, err
}

// inState filters by state relative to now. SQLite compares stored timestamps as
// text, so now is moved to UTC to match what Create writes.
func inState(state domain.State, now time.Time) func(*gorm.DB) *gorm.DB {
	now = now.UTC()
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case domain.StateCurrent:
			return db.Where("start_date <= ? AND end_date >= ?", now, now)
		case domain.StatePast:
			return db.Where("end_date < ?", now)
		case domain.StateFuture:
			return db.Where("start_date > ?", now)
		case domain.StateWaiting:
			return db.Where("status = ?", domain.BookingWaiting)
		case domain.StateRejected:
			return db.Where("status = ?", domain.BookingRejected)
		default:
			return db
		}
	}
}
