package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"juniorpass/internal/domain"
	"juniorpass/internal/modules/wallet"
	"juniorpass/internal/repository"
)

type Service struct {
	db       *gorm.DB
	listings ListingReader
	users    UserReader
	children ChildChecker
	bookings BookingReader
	notifs   NotificationSender
}

func NewService(
	db *gorm.DB,
	listings ListingReader,
	users UserReader,
	children ChildChecker,
	bookings BookingReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		db:       db,
		listings: listings,
		users:    users,
		children: children,
		bookings: bookings,
		notifs:   notifs,
	}
}

// CreateBooking validates the request, then atomically debits the user,
// credits the listing's partner, inserts the booking and appends a DEBIT
// ledger entry. The pre-transaction balance and overlap checks are advisory;
// both are re-run inside the transaction while the user's account row is
// locked, which closes the race between two concurrent requests for the same
// user. Returns the booking and the user's post-debit balance (computed from
// the locked row, not re-queried).
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, int64, error) {
	if req.ListingID == 0 || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, 0, ErrValidation
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, 0, ErrValidation
	}

	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrListingNotFound
		}
		return nil, 0, err
	}
	if !listing.Active {
		return nil, 0, ErrListingInactive
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}

	if req.ChildID != nil {
		ok, err := s.children.BelongsTo(ctx, *req.ChildID, req.UserID)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, ErrInvalidChild
		}
	}

	// Advisory checks; authoritative re-checks happen under the row lock.
	if user.Credit < listing.Credit {
		return nil, 0, ErrInsufficientCredits
	}
	overlap, err := s.bookings.HasOverlap(ctx, req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, 0, err
	}
	if overlap {
		return nil, 0, ErrOverlappingBooking
	}

	b := &domain.Booking{
		ListingID: listing.ID,
		UserID:    req.UserID,
		ChildID:   req.ChildID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	var updatedCredit int64

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := wallet.LockUser(tx, req.UserID)
		if err != nil {
			return err
		}

		// The user row lock serializes this re-check against any concurrent
		// booking by the same user that passed its own advisory check.
		overlap, err := repository.HasOverlap(tx, req.UserID, req.StartDate, req.EndDate)
		if err != nil {
			return err
		}
		if overlap {
			return ErrOverlappingBooking
		}

		if err := wallet.DebitUser(tx, locked, listing.Credit); err != nil {
			return err
		}

		partner, err := wallet.LockPartner(tx, listing.PartnerID)
		if err != nil {
			return err
		}
		if err := wallet.CreditPartner(tx, partner, listing.Credit); err != nil {
			return err
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		entry := &domain.Transaction{
			ParentID:   req.UserID,
			ChildID:    req.ChildID,
			ListingID:  &listing.ID,
			UsedCredit: listing.Credit,
			Type:       domain.TransactionDebit,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		updatedCredit = locked.Credit
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	// Best-effort, post-commit. A failed notification never fails the booking.
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, listing.PartnerID, b.ID, listing.ID, req.UserID, b.StartDate)
		_ = s.notifs.NotifyBookingConfirmed(ctx, req.UserID, b.ID, listing.ID, b.StartDate)
	}

	return b, updatedCredit, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}
