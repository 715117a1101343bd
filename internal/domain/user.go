package domain

import "time"

type UserRole string

const (
	RoleParent  UserRole = "parent"
	RolePartner UserRole = "partner"
	RoleAdmin   UserRole = "admin"
)

// User is a parent account. Credit is the prepaid wallet balance; it is
// mutated only inside booking and payment-reconciliation transactions and
// must never go negative (backed by a DB CHECK constraint).
type User struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash  string    `json:"-"`
	Role          UserRole  `json:"role"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Credit        int64     `json:"credit" gorm:"not null;default:0;check:chk_users_credit,credit >= 0"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Child belongs to exactly one parent. Bookings may reference a child; the
// booking engine verifies the parent actually owns it.
type Child struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ParentID  int64     `json:"parent_id" gorm:"index;not null"`
	Name      string    `json:"name" validate:"required"`
	BirthDate time.Time `json:"birth_date,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Parent *User `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
}
