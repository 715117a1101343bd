package repository

import (
	"context"

	"gorm.io/gorm"

	"juniorpass/internal/domain"
)

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, p *domain.Partner) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PartnerRepository) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	var p domain.Partner
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
