package booking

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrListingNotFound     = errors.New("listing not found")
	ErrListingInactive     = errors.New("listing is not active")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidChild        = errors.New("invalid child")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrOverlappingBooking  = errors.New("overlapping booking")
)
