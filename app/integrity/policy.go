// Package integrity applies the cascade rules for deleting catalog records.
//
// Every delete is planned first, so the caller can show what depends on the
// record, and executed only with the user's confirmation. Execution runs in
// one transaction:
//
//   - a product takes its order details with it;
//   - a category leaves its products behind with no category.
package integrity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/northwind/catalog-console/app/logging"
	"github.com/northwind/catalog-console/models"
)

// ErrNotConfirmed is returned when a delete is executed without an
// affirmative confirmation. Nothing is written.
var ErrNotConfirmed = errors.New("deletion not confirmed")

// Confirmation is the user's answer to a delete prompt.
type Confirmation struct {
	confirmed bool
}

// Confirm reads a y/n answer. Only "y" and "yes", in any case, confirm.
func Confirm(answer string) Confirmation {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return Confirmation{confirmed: true}
	}
	return Confirmation{}
}

func (c Confirmation) Confirmed() bool {
	return c.confirmed
}

type ProductPlan struct {
	Product      models.Product
	OrderDetails int
}

type ProductDeletion struct {
	ProductID           int
	Name                string
	OrderDetailsDeleted int64
}

type CategoryPlan struct {
	Category     models.Category
	Products     []models.Product
	OrderDetails int64
}

type CategoryDeletion struct {
	CategoryID       int
	Name             string
	ProductsDetached int64
}

type Policy struct {
	store Store
}

func NewPolicy(store Store) *Policy {
	return &Policy{store: store}
}

// PlanProductDelete loads the product and counts its order details.
func (p *Policy) PlanProductDelete(ctx context.Context, id int) (ProductPlan, error) {
	product, err := p.store.GetProduct(ctx, id)
	if err != nil {
		return ProductPlan{}, err
	}
	details, err := p.store.OrderDetailsForProduct(ctx, id)
	if err != nil {
		return ProductPlan{}, fmt.Errorf("load order details of product %d: %w", id, err)
	}
	return ProductPlan{Product: *product, OrderDetails: len(details)}, nil
}

// DeleteProduct removes the planned product and all of its order details.
// Order details are re-read inside the transaction, so rows added since
// planning are removed too.
func (p *Policy) DeleteProduct(ctx context.Context, plan ProductPlan, c Confirmation) (ProductDeletion, error) {
	if !c.confirmed {
		return ProductDeletion{}, ErrNotConfirmed
	}

	id := plan.Product.ID
	result := ProductDeletion{ProductID: id, Name: plan.Product.Name}
	err := p.store.Atomic(ctx, func(tx Store) error {
		details, err := tx.OrderDetailsForProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("load order details of product %d: %w", id, err)
		}
		if len(details) > 0 {
			n, err := tx.DeleteOrderDetails(ctx, id)
			if err != nil {
				return fmt.Errorf("delete order details of product %d: %w", id, err)
			}
			result.OrderDetailsDeleted = n
		}
		return tx.DeleteProduct(ctx, id)
	})
	if err != nil {
		return ProductDeletion{}, err
	}

	logging.FromContext(ctx).Info("product deleted",
		"product_id", id,
		"order_details_deleted", result.OrderDetailsDeleted)
	return result, nil
}

// PlanCategoryDelete loads the category, the products referencing it and
// the number of order details on those products.
func (p *Policy) PlanCategoryDelete(ctx context.Context, id int) (CategoryPlan, error) {
	category, err := p.store.GetCategory(ctx, id)
	if err != nil {
		return CategoryPlan{}, err
	}
	products, err := p.store.ProductsInCategory(ctx, id)
	if err != nil {
		return CategoryPlan{}, fmt.Errorf("load products of category %d: %w", id, err)
	}

	ids := make([]int, len(products))
	for i, product := range products {
		ids[i] = product.ID
	}
	details, err := p.store.CountOrderDetails(ctx, ids)
	if err != nil {
		return CategoryPlan{}, fmt.Errorf("count order details of category %d: %w", id, err)
	}

	return CategoryPlan{Category: *category, Products: products, OrderDetails: details}, nil
}

// DeleteCategory detaches every product from the planned category and then
// removes the category. Products and their order details are kept.
func (p *Policy) DeleteCategory(ctx context.Context, plan CategoryPlan, c Confirmation) (CategoryDeletion, error) {
	if !c.confirmed {
		return CategoryDeletion{}, ErrNotConfirmed
	}

	id := plan.Category.ID
	result := CategoryDeletion{CategoryID: id, Name: plan.Category.Name}
	err := p.store.Atomic(ctx, func(tx Store) error {
		n, err := tx.DetachCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("detach products of category %d: %w", id, err)
		}
		result.ProductsDetached = n
		return tx.DeleteCategory(ctx, id)
	})
	if err != nil {
		return CategoryDeletion{}, err
	}

	logging.FromContext(ctx).Info("category deleted",
		"category_id", id,
		"products_detached", result.ProductsDetached)
	return result, nil
}
