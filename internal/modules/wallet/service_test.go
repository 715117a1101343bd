package wallet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"juniorpass/internal/database"
	"juniorpass/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:wallet_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, credit int64) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        fmt.Sprintf("%s@test.local", t.Name()),
		PasswordHash: "x",
		Role:         domain.RoleParent,
		Name:         "Test Parent",
		Credit:       credit,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func TestBalanceOf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	u := seedUser(t, db, 75)

	got, err := svc.BalanceOf(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("BalanceOf returned error: %v", err)
	}
	if got != 75 {
		t.Fatalf("expected balance 75, got %d", got)
	}
}

func TestBalanceOfUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.BalanceOf(context.Background(), 9999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestDebitAndCreditPersist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	u := seedUser(t, db, 100)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		return DebitUser(tx, locked, 40)
	})
	if err != nil {
		t.Fatalf("debit transaction failed: %v", err)
	}

	balance, err := svc.BalanceOf(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("BalanceOf returned error: %v", err)
	}
	if balance != 60 {
		t.Fatalf("expected balance 60 after debit, got %d", balance)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		return CreditUser(tx, locked, 15)
	})
	if err != nil {
		t.Fatalf("credit transaction failed: %v", err)
	}

	balance, _ = svc.BalanceOf(context.Background(), u.ID)
	if balance != 75 {
		t.Fatalf("expected balance 75 after credit, got %d", balance)
	}
}

func TestDebitInsufficientCredits(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, 30)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		return DebitUser(tx, locked, 31)
	})
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}

	var after domain.User
	if err := db.First(&after, u.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.Credit != 30 {
		t.Fatalf("failed debit must not change balance, got %d", after.Credit)
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, 30)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		return DebitUser(tx, locked, 0)
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreditRejectsNegativeAmount(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		return CreditUser(tx, locked, -5)
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreditZeroIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, 30)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		return CreditUser(tx, locked, 0)
	})
	if err != nil {
		t.Fatalf("zero credit must succeed, got %v", err)
	}

	var after domain.User
	if err := db.First(&after, u.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.Credit != 30 {
		t.Fatalf("zero credit must not change balance, got %d", after.Credit)
	}
}

func TestCreditPartnerPersists(t *testing.T) {
	db := setupTestDB(t)
	p := &domain.Partner{Name: "Vendor", Email: "vendor@test.local"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed partner: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := LockPartner(tx, p.ID)
		if err != nil {
			return err
		}
		return CreditPartner(tx, locked, 50)
	})
	if err != nil {
		t.Fatalf("credit partner failed: %v", err)
	}

	var after domain.Partner
	if err := db.First(&after, p.ID).Error; err != nil {
		t.Fatalf("reload partner: %v", err)
	}
	if after.Credit != 50 {
		t.Fatalf("expected partner credit 50, got %d", after.Credit)
	}
}

func TestLedgerOrderAndPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	u := seedUser(t, db, 0)

	for i := 1; i <= 3; i++ {
		entry := &domain.Transaction{
			ParentID:   u.ID,
			UsedCredit: int64(i * 10),
			Type:       domain.TransactionCredit,
		}
		if err := db.Create(entry).Error; err != nil {
			t.Fatalf("seed transaction: %v", err)
		}
	}

	entries, err := svc.Ledger(context.Background(), u.ID, 2, 0)
	if err != nil {
		t.Fatalf("Ledger returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	rest, err := svc.Ledger(context.Background(), u.ID, 2, 2)
	if err != nil {
		t.Fatalf("Ledger returned error: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 entry on second page, got %d", len(rest))
	}
}
