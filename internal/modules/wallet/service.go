package wallet

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"juniorpass/internal/domain"
	"juniorpass/internal/repository"
)

// Service exposes read access to a parent's credit balance and ledger. All
// balance mutations go through the tx-scoped helpers below; this service
// never opens a transaction of its own.
type Service struct {
	db     *gorm.DB
	ledger *repository.TransactionRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, ledger: repository.NewTransactionRepository(db)}
}

func (s *Service) BalanceOf(ctx context.Context, userID int64) (int64, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Select("id", "credit").First(&u, userID).Error; err != nil {
		return 0, err
	}
	return u.Credit, nil
}

func (s *Service) Ledger(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error) {
	return s.ledger.ListByParent(ctx, userID, limit, offset)
}

// LockUser loads the user's account row FOR UPDATE inside the caller's
// transaction. Holding this lock is what serializes concurrent bookings and
// top-ups for the same user.
func LockUser(tx *gorm.DB, userID int64) (*domain.User, error) {
	var u domain.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func LockPartner(tx *gorm.DB, partnerID int64) (*domain.Partner, error) {
	var p domain.Partner
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, partnerID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// DebitUser subtracts amount from a locked user row. The balance is
// re-derived from the locked row, not from any earlier advisory check, so a
// concurrent debit can never drive the balance negative.
func DebitUser(tx *gorm.DB, u *domain.User, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if u.Credit < amount {
		return ErrInsufficientCredits
	}
	u.Credit -= amount
	return tx.Model(&domain.User{}).Where("id = ?", u.ID).Update("credit", u.Credit).Error
}

// CreditUser adds amount to a locked user row. A zero amount is a valid
// no-op; only negative amounts are rejected.
func CreditUser(tx *gorm.DB, u *domain.User, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}
	u.Credit += amount
	return tx.Model(&domain.User{}).Where("id = ?", u.ID).Update("credit", u.Credit).Error
}

// CreditPartner adds amount to a locked partner row. Zero is a no-op, like
// CreditUser.
func CreditPartner(tx *gorm.DB, p *domain.Partner, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}
	p.Credit += amount
	return tx.Model(&domain.Partner{}).Where("id = ?", p.ID).Update("credit", p.Credit).Error
}
