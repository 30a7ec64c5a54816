package models

import (
	"context"
	"errors"
	"iter"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// Create inserts the product and returns its generated ID. It fails with
// DuplicateNameError when the name is already used, ignoring case.
func (r *ProductsRepository) Create(ctx context.Context, product *Product) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &Product{}, "product_name", "product_id", product.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateNameError{Entity: "product", Name: product.Name}
		}
		return tx.Omit(clause.Associations).Create(product).Error
	})
	if err != nil {
		return 0, translateWrite(err, "product", product.Name)
	}
	return product.ID, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// GetDetail is GetByID with the category and supplier loaded for display.
func (r *ProductsRepository) GetDetail(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("product_id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Update writes every field of the product in one statement. Renaming onto
// a name used by another product fails with DuplicateNameError.
func (r *ProductsRepository) Update(ctx context.Context, product *Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &Product{}, "product_name", "product_id", product.Name, product.ID)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateNameError{Entity: "product", Name: product.Name}
		}

		res := tx.Model(&Product{}).
			Where("product_id = ?", product.ID).
			Updates(map[string]any{
				"product_name":      product.Name,
				"supplier_id":       nullable(product.SupplierID),
				"category_id":       nullable(product.CategoryID),
				"quantity_per_unit": nullable(product.QuantityPerUnit),
				"unit_price":        nullable(product.UnitPrice),
				"units_in_stock":    nullable(product.UnitsInStock),
				"units_on_order":    nullable(product.UnitsOnOrder),
				"reorder_level":     nullable(product.ReorderLevel),
				"discontinued":      product.Discontinued,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
	return translateWrite(err, "product", product.Name)
}

// ListFiltered streams the products matching filter ordered by name.
func (r *ProductsRepository) ListFiltered(ctx context.Context, filter ProductFilter) iter.Seq2[Product, error] {
	return stream[Product](ctx, r.db, func(query *gorm.DB) *gorm.DB {
		query = query.Model(&Product{})

		// Filter
		switch filter.Status {
		case StatusActive:
			query = query.Where("discontinued = ?", false)
		case StatusDiscontinued:
			query = query.Where("discontinued = ?", true)
		}
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}

		return query.Order("product_name")
	})
}

// InCategory returns every product referencing the category, discontinued
// or not.
func (r *ProductsRepository) InCategory(ctx context.Context, categoryID int) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("product_name").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DetachCategory clears the category reference of every product in the
// category and returns how many products changed.
func (r *ProductsRepository) DetachCategory(ctx context.Context, categoryID int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil)
	return res.RowsAffected, res.Error
}

// Delete removes the product row. Its order details must already be gone.
func (r *ProductsRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).
		Where("product_id = ?", id).
		Delete(&Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
