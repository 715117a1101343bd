package payment

import "time"

type InitTopUpRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type InitTopUpResponse struct {
	URL             string `json:"url"`
	ReferenceNumber string `json:"reference_number"`
}

// WebhookEvent carries the gateway's POSTed form fields. Fields holds every
// non-signature field and is what the HMAC is computed over.
type WebhookEvent struct {
	PaymentID       string
	ReferenceNumber string
	Status          string
	Signature       string
	Fields          map[string]string
}

type StatusResponse struct {
	Status          string    `json:"status"`
	WebhookReceived bool      `json:"webhook_received"`
	UpdatedAt       time.Time `json:"updated_at"`
}
