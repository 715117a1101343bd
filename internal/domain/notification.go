package domain

import (
	"database/sql"
	"time"
)

// Notification type constants
const (
	NotifyBookingCreated   = "booking.created"
	NotifyBookingConfirmed = "booking.confirmed"
	NotifyTopUpCompleted   = "payment.topup_completed"
	NotifyTopUpFailed      = "payment.topup_failed"
)

type RecipientKind string

const (
	RecipientUser    RecipientKind = "user"
	RecipientPartner RecipientKind = "partner"
)

// Notification is a best-effort in-app message written after a ledger event
// commits. It never participates in the financial transaction.
type Notification struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	RecipientID   int64         `json:"recipient_id" gorm:"index;not null"`
	RecipientKind RecipientKind `json:"recipient_kind" gorm:"type:varchar(16);not null;default:'user'"`
	Type          string        `json:"type" gorm:"index"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	ReadAt        sql.NullTime  `json:"read_at"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) IsRead() bool { return n.ReadAt.Valid }
