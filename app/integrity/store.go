package integrity

import (
	"context"

	"github.com/northwind/catalog-console/models"
)

// Store is the data access the policy needs. Atomic runs fn against a
// Store bound to one transaction.
type Store interface {
	Atomic(ctx context.Context, fn func(tx Store) error) error

	GetProduct(ctx context.Context, id int) (*models.Product, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	ProductsInCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	OrderDetailsForProduct(ctx context.Context, productID int) ([]models.OrderDetail, error)
	CountOrderDetails(ctx context.Context, productIDs []int) (int64, error)

	DeleteOrderDetails(ctx context.Context, productID int) (int64, error)
	DeleteProduct(ctx context.Context, id int) error
	DetachCategory(ctx context.Context, categoryID int) (int64, error)
	DeleteCategory(ctx context.Context, id int) error
}

type repositoryStore struct {
	repos *models.Repositories
}

// FromRepositories adapts the gorm repositories to Store.
func FromRepositories(repos *models.Repositories) Store {
	return &repositoryStore{repos: repos}
}

func (s *repositoryStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	return s.repos.Transaction(ctx, func(tx *models.Repositories) error {
		return fn(&repositoryStore{repos: tx})
	})
}

func (s *repositoryStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.repos.Products.GetByID(ctx, id)
}

func (s *repositoryStore) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return s.repos.Categories.GetByID(ctx, id)
}

func (s *repositoryStore) ProductsInCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	return s.repos.Products.InCategory(ctx, categoryID)
}

func (s *repositoryStore) OrderDetailsForProduct(ctx context.Context, productID int) ([]models.OrderDetail, error) {
	return s.repos.OrderDetails.ForProduct(ctx, productID)
}

func (s *repositoryStore) CountOrderDetails(ctx context.Context, productIDs []int) (int64, error) {
	return s.repos.OrderDetails.CountForProducts(ctx, productIDs)
}

func (s *repositoryStore) DeleteOrderDetails(ctx context.Context, productID int) (int64, error) {
	return s.repos.OrderDetails.DeleteForProduct(ctx, productID)
}

func (s *repositoryStore) DeleteProduct(ctx context.Context, id int) error {
	return s.repos.Products.Delete(ctx, id)
}

func (s *repositoryStore) DetachCategory(ctx context.Context, categoryID int) (int64, error) {
	return s.repos.Products.DetachCategory(ctx, categoryID)
}

func (s *repositoryStore) DeleteCategory(ctx context.Context, id int) error {
	return s.repos.Categories.Delete(ctx, id)
}
