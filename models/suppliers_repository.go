package models

import (
	"context"

	"gorm.io/gorm"
)

type SuppliersRepository struct {
	db *gorm.DB
}

func NewSuppliersRepository(db *gorm.DB) *SuppliersRepository {
	return &SuppliersRepository{
		db: db,
	}
}

// List returns all suppliers ordered by company name.
func (r *SuppliersRepository) List(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	if err := r.db.WithContext(ctx).
		Order("company_name").
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *SuppliersRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&Supplier{}).
		Where("supplier_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
