package repository

import (
	"context"

	"gorm.io/gorm"

	"juniorpass/internal/domain"
)

type ChildRepository struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

func (r *ChildRepository) Create(ctx context.Context, c *domain.Child) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChildRepository) GetByID(ctx context.Context, id int64) (*domain.Child, error) {
	var c domain.Child
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChildRepository) ListByParent(ctx context.Context, parentID int64) ([]domain.Child, error) {
	var out []domain.Child
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// BelongsTo reports whether the child exists and is owned by the given
// parent.
func (r *ChildRepository) BelongsTo(ctx context.Context, childID, parentID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Child{}).
		Where("id = ? AND parent_id = ?", childID, parentID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
