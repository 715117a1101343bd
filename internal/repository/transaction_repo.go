package repository

import (
	"context"

	"gorm.io/gorm"

	"juniorpass/internal/domain"
)

// TransactionRepository only appends and reads; ledger entries are immutable.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) ListByParent(ctx context.Context, parentID int64, limit, offset int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_on desc").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
