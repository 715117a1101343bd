package booking

import "time"

type CreateBookingRequest struct {
	ListingID int64     `json:"listing_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	ChildID   *int64    `json:"child_id"`

	// UserID comes from the bearer token, never from the request body.
	UserID int64 `json:"-"`
}
