package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"juniorpass/internal/domain"
	"juniorpass/internal/modules/wallet"
	"juniorpass/internal/repository"
)

type Service struct {
	db       *gorm.DB
	payments paymentRequestRepo
	users    userReader
	gateway  Gateway
	notifs   notificationSender
	loggerf  func(format string, args ...interface{})

	webhookURL string
	currency   string
	expiry     time.Duration
}

func NewService(
	db *gorm.DB,
	payments paymentRequestRepo,
	users userReader,
	gateway Gateway,
	notifs notificationSender,
	loggerf func(format string, args ...interface{}),
	webhookURL string,
	expiry time.Duration,
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		db:         db,
		payments:   payments,
		users:      users,
		gateway:    gateway,
		notifs:     notifs,
		loggerf:    loggerf,
		webhookURL: webhookURL,
		currency:   "SGD",
		expiry:     expiry,
	}
}

// InitTopUp creates a gateway payment-request with a fresh reference number
// and persists the PENDING row only after the gateway acknowledged the
// request. A gateway failure or timeout leaves no local state behind.
func (s *Service) InitTopUp(ctx context.Context, userID, amount int64) (*InitTopUpResponse, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reference := uuid.NewString()
	created, err := s.gateway.CreatePaymentRequest(ctx, GatewayRequest{
		Amount:          amount,
		Currency:        s.currency,
		ReferenceNumber: reference,
		WebhookURL:      s.webhookURL,
		ExpiryDate:      time.Now().UTC().Add(s.expiry),
	})
	if err != nil {
		s.loggerf("level=error msg=gateway payment-request failed user_id=%d reference=%s err=%v", userID, reference, err)
		return nil, err
	}

	p := &domain.PaymentRequest{
		UserID:          userID,
		Amount:          amount,
		ReferenceNumber: reference,
		HitpayPaymentID: created.ID,
		Status:          domain.PaymentRequestPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=topup initiated user_id=%d reference=%s hitpay_id=%s amount=%d", userID, reference, created.ID, amount)

	return &InitTopUpResponse{URL: created.URL, ReferenceNumber: reference}, nil
}

// HandleWebhook applies one gateway delivery. The terminal transition is
// conditioned on the row still being PENDING under a row lock, so a second
// delivery of the same event changes nothing and credits nothing. Returns
// whether this delivery changed state.
func (s *Service) HandleWebhook(ctx context.Context, ev WebhookEvent) (bool, error) {
	if !s.gateway.VerifyWebhook(ev.Fields, ev.Signature) {
		s.loggerf("level=warn msg=webhook signature rejected reference=%s", ev.ReferenceNumber)
		return false, ErrInvalidSignature
	}

	// Only the two terminal gateway statuses may transition the row. A
	// progress status such as "pending" is acknowledged without touching
	// state, so it can never flip a live request to FAILED.
	completed := strings.EqualFold(ev.Status, "completed")
	if !completed && !strings.EqualFold(ev.Status, "failed") {
		s.loggerf("level=info msg=non-terminal webhook ignored reference=%s status=%s", ev.ReferenceNumber, ev.Status)
		return false, nil
	}
	terminal := domain.PaymentRequestFailed
	if completed {
		terminal = domain.PaymentRequestCompleted
	}

	var (
		changed bool
		applied *domain.PaymentRequest
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repository.LockByGatewayKeys(tx, ev.PaymentID, ev.ReferenceNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if p.Terminal() {
			changed = false
			return nil
		}

		changed, err = repository.CompleteIfPending(tx, p.ID, terminal)
		if err != nil {
			return err
		}
		if !changed || terminal != domain.PaymentRequestCompleted {
			applied = p
			return nil
		}

		// Credit is applied in the same transaction as the status flip, so a
		// crash between the two can never credit twice or complete uncredited.
		locked, err := wallet.LockUser(tx, p.UserID)
		if err != nil {
			return err
		}
		if err := wallet.CreditUser(tx, locked, p.Amount); err != nil {
			return err
		}
		entry := &domain.Transaction{
			ParentID:   p.UserID,
			UsedCredit: p.Amount,
			Type:       domain.TransactionCredit,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		applied = p
		return nil
	})
	if err != nil {
		return false, err
	}

	if !changed {
		s.loggerf("level=info msg=duplicate webhook ignored reference=%s", ev.ReferenceNumber)
		return false, nil
	}

	if s.notifs != nil && applied != nil {
		if terminal == domain.PaymentRequestCompleted {
			_ = s.notifs.NotifyTopUpCompleted(ctx, applied.UserID, applied.Amount)
		} else {
			_ = s.notifs.NotifyTopUpFailed(ctx, applied.UserID, applied.ReferenceNumber)
		}
	}
	s.loggerf("level=info msg=webhook applied reference=%s status=%s", ev.ReferenceNumber, terminal)
	return true, nil
}

// GetStatus is the read-only polling fallback for clients that missed the
// push; it never mutates state. A reference owned by another user reads as
// not found.
func (s *Service) GetStatus(ctx context.Context, userID int64, reference string) (*StatusResponse, error) {
	p, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrRequestNotFound
	}
	return &StatusResponse{
		Status:          string(p.Status),
		WebhookReceived: p.WebhookReceived,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}
