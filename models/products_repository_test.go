package models_test

import (
	"context"
	"testing"

	"github.com/northwind/catalog-console/app/database/databasetest"
	"github.com/northwind/catalog-console/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsRepository_Create(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	repos := models.NewRepositories(db)
	catID, err := repos.Categories.Create(ctx, &models.Category{Name: "Beverages"})
	require.NoError(t, err)
	databasetest.Seed(t, db, &models.Supplier{ID: 1, CompanyName: "Exotic Liquids"})

	price := decimal.RequireFromString("18.00")
	id, err := repos.Products.Create(ctx, &models.Product{
		Name:            "Chai",
		CategoryID:      &catID,
		SupplierID:      ptr(1),
		QuantityPerUnit: ptr("10 boxes x 20 bags"),
		UnitPrice:       &price,
		UnitsInStock:    ptr(39),
		ReorderLevel:    ptr(10),
	})
	require.NoError(t, err)

	got, err := repos.Products.GetDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Chai", got.Name)
	assert.True(t, price.Equal(*got.UnitPrice))
	assert.Equal(t, 39, *got.UnitsInStock)
	assert.Nil(t, got.UnitsOnOrder)
	assert.False(t, got.Discontinued)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Beverages", got.Category.Name)
	require.NotNil(t, got.Supplier)
	assert.Equal(t, "Exotic Liquids", got.Supplier.CompanyName)

	_, err = repos.Products.Create(ctx, &models.Product{Name: "CHAI"})
	var dup *models.DuplicateNameError
	assert.ErrorAs(t, err, &dup)
}

func TestProductsRepository_GetByID_NotFound(t *testing.T) {
	repo := models.NewProductsRepository(databasetest.New(t))

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestProductsRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := models.NewProductsRepository(databasetest.New(t))
	price := decimal.RequireFromString("19.00")
	id, err := repo.Create(ctx, &models.Product{Name: "Chang", UnitPrice: &price, UnitsInStock: ptr(17)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Product{Name: "Aniseed Syrup"})
	require.NoError(t, err)

	product, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	product.UnitsInStock = nil
	product.Discontinued = true
	require.NoError(t, repo.Update(ctx, product))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.UnitsInStock)
	assert.True(t, got.Discontinued)
	assert.True(t, price.Equal(*got.UnitPrice))

	product.Name = "aniseed syrup"
	var dup *models.DuplicateNameError
	assert.ErrorAs(t, repo.Update(ctx, product), &dup)

	assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: 999, Name: "Ghost"}), models.ErrProductNotFound)
}

func TestProductsRepository_ListFiltered(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	repos := models.NewRepositories(db)
	catID, err := repos.Categories.Create(ctx, &models.Category{Name: "Condiments"})
	require.NoError(t, err)
	databasetest.Seed(t, db,
		&models.Product{Name: "Ikura", Discontinued: false},
		&models.Product{Name: "Alice Mutton", Discontinued: true},
		&models.Product{Name: "Chef Anton's Gumbo Mix", Discontinued: true, CategoryID: &catID},
		&models.Product{Name: "Aniseed Syrup", CategoryID: &catID},
	)

	names := func(filter models.ProductFilter) []string {
		var out []string
		for _, p := range collect(t, repos.Products.ListFiltered(ctx, filter)) {
			out = append(out, p.Name)
		}
		return out
	}

	testCases := []struct {
		name     string
		filter   models.ProductFilter
		expected []string
	}{
		{
			name:     "All",
			filter:   models.ProductFilter{Status: models.StatusAll},
			expected: []string{"Alice Mutton", "Aniseed Syrup", "Chef Anton's Gumbo Mix", "Ikura"},
		},
		{
			name:     "Active",
			filter:   models.ProductFilter{Status: models.StatusActive},
			expected: []string{"Aniseed Syrup", "Ikura"},
		},
		{
			name:     "Discontinued",
			filter:   models.ProductFilter{Status: models.StatusDiscontinued},
			expected: []string{"Alice Mutton", "Chef Anton's Gumbo Mix"},
		},
		{
			name:     "Active in category",
			filter:   models.ProductFilter{Status: models.StatusActive, CategoryID: &catID},
			expected: []string{"Aniseed Syrup"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, names(tc.filter))
		})
	}
}

func TestProductsRepository_DetachCategory(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	repos := models.NewRepositories(db)
	catID, err := repos.Categories.Create(ctx, &models.Category{Name: "Grains"})
	require.NoError(t, err)
	otherID, err := repos.Categories.Create(ctx, &models.Category{Name: "Meat"})
	require.NoError(t, err)
	databasetest.Seed(t, db,
		&models.Product{Name: "Gnocchi", CategoryID: &catID},
		&models.Product{Name: "Ravioli", CategoryID: &catID, Discontinued: true},
		&models.Product{Name: "Pate", CategoryID: &otherID},
	)

	n, err := repos.Products.DetachCategory(ctx, catID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	remaining, err := repos.Products.InCategory(ctx, catID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	other, err := repos.Products.InCategory(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	all := collect(t, repos.Products.ListFiltered(ctx, models.ProductFilter{}))
	assert.Len(t, all, 3)
}

func TestOrderDetailsRepository(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	repos := models.NewRepositories(db)
	chai, err := repos.Products.Create(ctx, &models.Product{Name: "Chai"})
	require.NoError(t, err)
	chang, err := repos.Products.Create(ctx, &models.Product{Name: "Chang"})
	require.NoError(t, err)
	databasetest.Seed(t, db,
		&models.OrderDetail{OrderID: 10248, ProductID: chai, UnitPrice: decimal.NewFromInt(14), Quantity: 12},
		&models.OrderDetail{OrderID: 10249, ProductID: chai, UnitPrice: decimal.NewFromInt(14), Quantity: 5},
		&models.OrderDetail{OrderID: 10249, ProductID: chang, UnitPrice: decimal.NewFromInt(15), Quantity: 9},
	)

	details, err := repos.OrderDetails.ForProduct(ctx, chai)
	require.NoError(t, err)
	assert.Len(t, details, 2)

	count, err := repos.OrderDetails.CountForProducts(ctx, []int{chai, chang})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repos.OrderDetails.CountForProducts(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	removed, err := repos.OrderDetails.DeleteForProduct(ctx, chai)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err = repos.OrderDetails.CountForProducts(ctx, []int{chai, chang})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSuppliersRepository(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	databasetest.Seed(t, db,
		&models.Supplier{ID: 2, CompanyName: "New Orleans Cajun Delights"},
		&models.Supplier{ID: 1, CompanyName: "Exotic Liquids"},
	)
	repo := models.NewSuppliersRepository(db)

	suppliers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, "Exotic Liquids", suppliers[0].CompanyName)

	ok, err := repo.Exists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
