package models

import (
	"context"
	"errors"
	"iter"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

type CategoryFilter struct {
	NameContains string
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// Create inserts the category and returns its generated ID. It fails with
// DuplicateNameError when the name is already used, ignoring case.
func (r *CategoriesRepository) Create(ctx context.Context, category *Category) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &Category{}, "category_name", "category_id", category.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateNameError{Entity: "category", Name: category.Name}
		}
		return tx.Create(category).Error
	})
	if err != nil {
		return 0, translateWrite(err, "category", category.Name)
	}
	return category.ID, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetWithProducts loads the category and its active products, ordered by
// product name.
func (r *CategoriesRepository) GetWithProducts(ctx context.Context, id int) (*CategoryWithProducts, error) {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND discontinued = ?", id, false).
		Order("product_name").
		Find(&products).Error; err != nil {
		return nil, err
	}

	return &CategoryWithProducts{Category: *category, Products: products}, nil
}

func (r *CategoriesRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update writes every field of the category. Renaming onto a name used by
// another category fails with DuplicateNameError.
func (r *CategoriesRepository) Update(ctx context.Context, category *Category) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &Category{}, "category_name", "category_id", category.Name, category.ID)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateNameError{Entity: "category", Name: category.Name}
		}

		res := tx.Model(&Category{}).
			Where("category_id = ?", category.ID).
			Updates(map[string]any{
				"category_name": category.Name,
				"description":   nullable(category.Description),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	return translateWrite(err, "category", category.Name)
}

// ListFiltered streams matching categories ordered by name.
func (r *CategoriesRepository) ListFiltered(ctx context.Context, filter CategoryFilter) iter.Seq2[Category, error] {
	return stream[Category](ctx, r.db, func(query *gorm.DB) *gorm.DB {
		query = query.Model(&Category{})
		if filter.NameContains != "" {
			query = query.Where("LOWER(category_name) LIKE LOWER(?)", "%"+filter.NameContains+"%")
		}
		return query.Order("category_name")
	})
}

// Delete removes the category row. Dependent products must already be
// detached.
func (r *CategoriesRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).
		Where("category_id = ?", id).
		Delete(&Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
