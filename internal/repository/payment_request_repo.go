package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"juniorpass/internal/domain"
)

type PaymentRequestRepository struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) *PaymentRequestRepository {
	return &PaymentRequestRepository{db: db}
}

func (r *PaymentRequestRepository) Create(ctx context.Context, p *domain.PaymentRequest) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRequestRepository) GetByReference(ctx context.Context, reference string) (*domain.PaymentRequest, error) {
	var p domain.PaymentRequest
	if err := r.db.WithContext(ctx).Where("reference_number = ?", reference).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// LockByGatewayKeys loads the row matching the webhook's
// (hitpay_payment_id, reference_number) pair under a row lock, so the caller
// can transition it without racing a duplicate delivery.
func LockByGatewayKeys(tx *gorm.DB, paymentID, reference string) (*domain.PaymentRequest, error) {
	var p domain.PaymentRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hitpay_payment_id = ? AND reference_number = ?", paymentID, reference).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CompleteIfPending performs the conditional terminal transition. It returns
// false when the row was already terminal, which makes duplicate webhook
// deliveries no-ops.
func CompleteIfPending(tx *gorm.DB, id int64, status domain.PaymentRequestStatus) (bool, error) {
	res := tx.Model(&domain.PaymentRequest{}).
		Where("id = ? AND status = ?", id, domain.PaymentRequestPending).
		Updates(map[string]interface{}{
			"status":           status,
			"webhook_received": true,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
