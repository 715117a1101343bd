package domain

import "time"

// Partner is a vendor offering enrichment classes. Credit accumulates from
// confirmed bookings and is settled out-of-band; the same non-negative
// invariant applies as for users.
type Partner struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	Name        string    `json:"name" validate:"required"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Credit      int64     `json:"credit" gorm:"not null;default:0;check:chk_partners_credit,credit >= 0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
