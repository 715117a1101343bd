package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"juniorpass/internal/domain"
)

// Service writes best-effort in-app notifications. It satisfies the sender
// interfaces of the booking and payment modules; callers invoke it after
// their transaction commits and drop any error it returns.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, partnerID, bookingID, listingID, userID int64, start time.Time) error {
	return s.create(ctx, &domain.Notification{
		RecipientID:   partnerID,
		RecipientKind: domain.RecipientPartner,
		Type:          domain.NotifyBookingCreated,
		Title:         "New booking",
		Body:          fmt.Sprintf("Booking #%d for listing #%d starts %s", bookingID, listingID, start.Format("2006-01-02 15:04")),
	})
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, userID, bookingID, listingID int64, start time.Time) error {
	return s.create(ctx, &domain.Notification{
		RecipientID:   userID,
		RecipientKind: domain.RecipientUser,
		Type:          domain.NotifyBookingConfirmed,
		Title:         "Booking confirmed",
		Body:          fmt.Sprintf("Your booking #%d starts %s", bookingID, start.Format("2006-01-02 15:04")),
	})
}

func (s *Service) NotifyTopUpCompleted(ctx context.Context, userID, amount int64) error {
	return s.create(ctx, &domain.Notification{
		RecipientID:   userID,
		RecipientKind: domain.RecipientUser,
		Type:          domain.NotifyTopUpCompleted,
		Title:         "Top-up completed",
		Body:          fmt.Sprintf("%d credits were added to your wallet", amount),
	})
}

func (s *Service) NotifyTopUpFailed(ctx context.Context, userID int64, reference string) error {
	return s.create(ctx, &domain.Notification{
		RecipientID:   userID,
		RecipientKind: domain.RecipientUser,
		Type:          domain.NotifyTopUpFailed,
		Title:         "Top-up failed",
		Body:          fmt.Sprintf("Payment %s was not completed", reference),
	})
}

func (s *Service) create(ctx context.Context, n *domain.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		s.log.Warn("notification write failed",
			zap.String("type", n.Type),
			zap.Int64("recipient_id", n.RecipientID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	var list []domain.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_id = ? AND recipient_kind = ?", userID, domain.RecipientUser).
		Order("created_at desc").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}

	var unread int64
	err = s.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND read_at IS NULL", userID, domain.RecipientUser).
		Count(&unread).Error
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	res := s.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ? AND recipient_kind = ?", id, userID, domain.RecipientUser).
		Update("read_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
