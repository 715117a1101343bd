package domain

import "time"

// Booking reserves a class slot for a user. Rows are immutable after
// creation; the interval [StartDate, EndDate] is boundary-inclusive for
// overlap purposes, so two bookings that merely touch still conflict.
type Booking struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ListingID int64     `json:"listing_id" gorm:"index;not null" validate:"required"`
	UserID    int64     `json:"user_id" gorm:"index;not null" validate:"required"`
	ChildID   *int64    `json:"child_id,omitempty"`
	StartDate time.Time `json:"start_date" gorm:"index;not null" validate:"required"`
	EndDate   time.Time `json:"end_date" gorm:"not null" validate:"required"`
	CreatedOn time.Time `json:"created_on" gorm:"autoCreateTime"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Child   *Child   `json:"child,omitempty" gorm:"foreignKey:ChildID"`
}
