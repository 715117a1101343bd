package payment

import "errors"

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrUserNotFound     = errors.New("user not found")
	ErrGateway          = errors.New("payment gateway error")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrRequestNotFound  = errors.New("payment request not found")
)
