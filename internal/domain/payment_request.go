package domain

import "time"

type PaymentRequestStatus string

const (
	PaymentRequestPending   PaymentRequestStatus = "PENDING"
	PaymentRequestCompleted PaymentRequestStatus = "COMPLETED"
	PaymentRequestFailed    PaymentRequestStatus = "FAILED"
)

// PaymentRequest tracks one external top-up attempt. It is created PENDING
// once the gateway has acknowledged the request, and transitions exactly
// once to COMPLETED or FAILED when the webhook arrives. Terminal rows are
// never transitioned again; duplicate webhook deliveries must be no-ops.
type PaymentRequest struct {
	ID              int64                `json:"id" gorm:"primaryKey"`
	UserID          int64                `json:"user_id" gorm:"index;not null"`
	Amount          int64                `json:"amount" gorm:"not null"`
	ReferenceNumber string               `json:"reference_number" gorm:"uniqueIndex;not null"`
	HitpayPaymentID string               `json:"hitpay_payment_id" gorm:"index"`
	Status          PaymentRequestStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	WebhookReceived bool                 `json:"webhook_received" gorm:"not null;default:false"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Terminal reports whether the request has reached a final state.
func (p *PaymentRequest) Terminal() bool {
	return p.Status == PaymentRequestCompleted || p.Status == PaymentRequestFailed
}
