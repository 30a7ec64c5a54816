package models

import (
	"context"
	"iter"

	"gorm.io/gorm"
)

// Repositories groups the repositories that share one store handle.
// Inside Transaction every repository runs on the same transaction.
type Repositories struct {
	db *gorm.DB

	Categories   *CategoriesRepository
	Products     *ProductsRepository
	Suppliers    *SuppliersRepository
	OrderDetails *OrderDetailsRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		Categories:   NewCategoriesRepository(db),
		Products:     NewProductsRepository(db),
		Suppliers:    NewSuppliersRepository(db),
		OrderDetails: NewOrderDetailsRepository(db),
	}
}

// Transaction runs fn as one committed unit. Returning an error from fn
// rolls back every write made through tx.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// stream runs the query built by build each time the sequence is ranged
// over and yields one scanned row at a time.
func stream[T any](ctx context.Context, db *gorm.DB, build func(*gorm.DB) *gorm.DB) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		rows, err := build(db.WithContext(ctx)).Rows()
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()

		scanner := db.WithContext(ctx)
		for rows.Next() {
			var item T
			if err := scanner.ScanRows(rows, &item); err != nil {
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

// nameTaken reports whether another row of model already uses name,
// ignoring case. excludeID skips the row being edited; zero skips nothing.
func nameTaken(tx *gorm.DB, model any, nameColumn, idColumn, name string, excludeID int) (bool, error) {
	query := tx.Model(model).Where("LOWER("+nameColumn+") = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where(idColumn+" <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// nullable unwraps an optional field into a value the driver stores as NULL
// when absent.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
