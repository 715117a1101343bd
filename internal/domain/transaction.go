package domain

import "time"

type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

// Transaction is an append-only ledger entry recording a credit movement on
// a parent's wallet. Entries are never updated or deleted. Every booking
// writes one DEBIT entry and every completed top-up writes one CREDIT entry,
// so the ledger fully accounts for the balance.
type Transaction struct {
	ID         int64           `json:"id" gorm:"primaryKey"`
	ParentID   int64           `json:"parent_id" gorm:"index;not null"`
	ChildID    *int64          `json:"child_id,omitempty"`
	ListingID  *int64          `json:"listing_id,omitempty"`
	UsedCredit int64           `json:"used_credit" gorm:"not null;check:chk_transactions_used_credit,used_credit > 0"`
	Type       TransactionType `json:"transaction_type" gorm:"column:transaction_type;type:varchar(16);not null;index"`
	CreatedOn  time.Time       `json:"created_on" gorm:"autoCreateTime"`

	Parent  *User    `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Child   *Child   `json:"child,omitempty" gorm:"foreignKey:ChildID"`
	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

func (Transaction) TableName() string { return "transactions" }
