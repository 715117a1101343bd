package payment

import (
	"context"

	"juniorpass/internal/domain"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type paymentRequestRepo interface {
	Create(ctx context.Context, p *domain.PaymentRequest) error
	GetByReference(ctx context.Context, reference string) (*domain.PaymentRequest, error)
}

// Gateway abstracts the external payment provider. CreatePaymentRequest must
// respect the context deadline; a timed-out call is a gateway error and no
// local row may be written for it.
type Gateway interface {
	CreatePaymentRequest(ctx context.Context, req GatewayRequest) (*GatewayPaymentRequest, error)
	VerifyWebhook(fields map[string]string, signature string) bool
}

type notificationSender interface {
	NotifyTopUpCompleted(ctx context.Context, userID, amount int64) error
	NotifyTopUpFailed(ctx context.Context, userID int64, reference string) error
}
