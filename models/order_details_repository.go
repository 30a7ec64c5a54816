package models

import (
	"context"

	"gorm.io/gorm"
)

type OrderDetailsRepository struct {
	db *gorm.DB
}

func NewOrderDetailsRepository(db *gorm.DB) *OrderDetailsRepository {
	return &OrderDetailsRepository{
		db: db,
	}
}

func (r *OrderDetailsRepository) ForProduct(ctx context.Context, productID int) ([]OrderDetail, error) {
	var details []OrderDetail
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("order_id").
		Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// CountForProducts counts the order details of all the given products.
func (r *OrderDetailsRepository) CountForProducts(ctx context.Context, productIDs []int) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDetail{}).
		Where("product_id IN ?", productIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteForProduct removes every order detail of the product in a single
// statement and returns how many were removed.
func (r *OrderDetailsRepository) DeleteForProduct(ctx context.Context, productID int) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&OrderDetail{})
	return res.RowsAffected, res.Error
}
