package domain

import "time"

// Listing is a bookable class offering owned by a partner, priced in
// credits. It is a read-only input to the booking transaction.
type Listing struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	PartnerID   int64     `json:"partner_id" gorm:"index;not null" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Credit      int64     `json:"credit" gorm:"not null" validate:"required,gt=0"`
	AgeGroup    string    `json:"age_group,omitempty"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Partner *Partner `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
}
