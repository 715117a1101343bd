package booking

import (
	"context"
	"time"

	"juniorpass/internal/domain"
)

type ListingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ChildChecker interface {
	BelongsTo(ctx context.Context, childID, parentID int64) (bool, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	HasOverlap(ctx context.Context, userID int64, start, end time.Time) (bool, error)
}

// NotificationSender is the fire-and-forget side channel. Implementations
// must never fail a committed booking: errors are logged by the caller and
// dropped.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, partnerID, bookingID, listingID, userID int64, start time.Time) error
	NotifyBookingConfirmed(ctx context.Context, userID, bookingID, listingID int64, start time.Time) error
}
