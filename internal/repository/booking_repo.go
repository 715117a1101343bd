package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"juniorpass/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Listing").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Where("user_id = ?", userID).
		Order("start_date desc").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HasOverlap runs the boundary-inclusive interval test against the user's
// existing bookings: intervals that merely touch count as overlapping.
// Exposed as a package function so the booking transaction can run it on its
// own tx handle while holding the user's account row lock.
func HasOverlap(db *gorm.DB, userID int64, start, end time.Time) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE user_id = ?
  AND ((start_date <= ? AND end_date >= ?)
    OR (start_date <= ? AND end_date >= ?)
    OR (? <= start_date AND end_date <= ?))
`
	if err := db.Raw(q, userID, start, start, end, end, start, end).Scan(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, userID int64, start, end time.Time) (bool, error) {
	return HasOverlap(r.db.WithContext(ctx), userID, start, end)
}
