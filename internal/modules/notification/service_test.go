package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"juniorpass/internal/database"
	"juniorpass/internal/domain"
)

func setupNotifications(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:notification_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(db, nil), db
}

func TestNotifyWritesPerRecipient(t *testing.T) {
	svc, db := setupNotifications(t)
	ctx := context.Background()

	if err := svc.NotifyBookingCreated(ctx, 7, 1, 2, 3, time.Now()); err != nil {
		t.Fatalf("NotifyBookingCreated returned error: %v", err)
	}
	if err := svc.NotifyBookingConfirmed(ctx, 3, 1, 2, time.Now()); err != nil {
		t.Fatalf("NotifyBookingConfirmed returned error: %v", err)
	}

	var partnerRows int64
	db.Model(&domain.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ?", 7, domain.RecipientPartner).
		Count(&partnerRows)
	if partnerRows != 1 {
		t.Fatalf("expected 1 partner notification, got %d", partnerRows)
	}

	list, unread, err := svc.ListForUser(ctx, 3, 10)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(list) != 1 || unread != 1 {
		t.Fatalf("expected one unread user notification, got len=%d unread=%d", len(list), unread)
	}
	if list[0].Type != domain.NotifyBookingConfirmed {
		t.Fatalf("unexpected type %s", list[0].Type)
	}
}

func TestMarkAsReadScopedToRecipient(t *testing.T) {
	svc, _ := setupNotifications(t)
	ctx := context.Background()

	if err := svc.NotifyTopUpCompleted(ctx, 3, 50); err != nil {
		t.Fatalf("NotifyTopUpCompleted returned error: %v", err)
	}
	list, _, err := svc.ListForUser(ctx, 3, 10)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one notification, got %v err=%v", list, err)
	}
	id := list[0].ID

	// Another user cannot mark it.
	if err := svc.MarkAsRead(ctx, id, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for foreign recipient, got %v", err)
	}

	if err := svc.MarkAsRead(ctx, id, 3); err != nil {
		t.Fatalf("MarkAsRead returned error: %v", err)
	}

	_, unread, err := svc.ListForUser(ctx, 3, 10)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected unread 0 after marking, got %d", unread)
	}
}
