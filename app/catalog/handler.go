// Package catalog holds the product workflows of the console: add, edit,
// list, show and delete.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/northwind/catalog-console/app/console"
	"github.com/northwind/catalog-console/app/integrity"
	"github.com/northwind/catalog-console/app/logging"
	"github.com/northwind/catalog-console/app/validation"
	"github.com/northwind/catalog-console/models"
	"github.com/shopspring/decimal"
)

type ProductProvider interface {
	Create(ctx context.Context, product *models.Product) (int, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	GetDetail(ctx context.Context, id int) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	ListFiltered(ctx context.Context, filter models.ProductFilter) iter.Seq2[models.Product, error]
}

type CategoryLister interface {
	ListFiltered(ctx context.Context, filter models.CategoryFilter) iter.Seq2[models.Category, error]
	Exists(ctx context.Context, id int) (bool, error)
}

type SupplierLister interface {
	List(ctx context.Context) ([]models.Supplier, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type Validator interface {
	Validate(record any) validation.Result
}

type DeletePolicy interface {
	PlanProductDelete(ctx context.Context, id int) (integrity.ProductPlan, error)
	DeleteProduct(ctx context.Context, plan integrity.ProductPlan, c integrity.Confirmation) (integrity.ProductDeletion, error)
}

type CatalogHandler struct {
	products   ProductProvider
	categories CategoryLister
	suppliers  SupplierLister
	validator  Validator
	policy     DeletePolicy
}

func NewCatalogHandler(products ProductProvider, categories CategoryLister, suppliers SupplierLister, v Validator, policy DeletePolicy) *CatalogHandler {
	return &CatalogHandler{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		validator:  v,
		policy:     policy,
	}
}

// HandleAdd prompts for a new product and stores it once it is valid.
// Blank answers leave optional fields unset.
func (h *CatalogHandler) HandleAdd(ctx context.Context, c *console.Console) error {
	c.Title("Add New Product")

	var product models.Product
	name, err := c.Prompt("Enter Product Name")
	if err != nil {
		return err
	}
	product.Name = name

	if err := h.printCategories(ctx, c); err != nil {
		return err
	}
	if product.CategoryID, err = promptOptional(c, "Enter Category ID (or press Enter to skip)", "Category ID", console.ParseOptionalInt); err != nil {
		return err
	}

	if err := h.printSuppliers(ctx, c); err != nil {
		return err
	}
	if product.SupplierID, err = promptOptional(c, "Enter Supplier ID (or press Enter to skip)", "Supplier ID", console.ParseOptionalInt); err != nil {
		return err
	}

	qty, err := c.Prompt("Enter Quantity Per Unit (or press Enter to skip)")
	if err != nil {
		return err
	}
	if qty != "" {
		product.QuantityPerUnit = &qty
	}

	if product.UnitPrice, err = promptOptional(c, "Enter Unit Price (or press Enter to skip)", "Unit Price", console.ParseOptionalDecimal); err != nil {
		return err
	}
	if product.UnitsInStock, err = promptOptional(c, "Enter Units In Stock (or press Enter to skip)", "Units In Stock", console.ParseOptionalInt); err != nil {
		return err
	}
	if product.UnitsOnOrder, err = promptOptional(c, "Enter Units On Order (or press Enter to skip)", "Units On Order", console.ParseOptionalInt); err != nil {
		return err
	}
	if product.ReorderLevel, err = promptOptional(c, "Enter Reorder Level (or press Enter to skip)", "Reorder Level", console.ParseOptionalInt); err != nil {
		return err
	}

	disc, err := c.Prompt("Is this product discontinued? (y/n)")
	if err != nil {
		return err
	}
	product.Discontinued = console.ParseYesNo(disc)

	if err := h.validate(ctx, &product); err != nil {
		return err
	}

	id, err := h.products.Create(ctx, &product)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("product added", "product_id", id, "name", product.Name)
	c.Success("Product added successfully!")
	return nil
}

// HandleEdit loads a product and prompts for each field, showing the
// current value. A blank answer keeps the current value.
func (h *CatalogHandler) HandleEdit(ctx context.Context, c *console.Console) error {
	c.Title("Edit Product")

	id, err := promptID(c, "Enter Product ID to edit", "Product ID")
	if err != nil {
		return err
	}
	product, err := h.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	c.Printf("\nEditing Product: %s\n", product.Name)
	c.Muted("(Press Enter to keep current value)")

	name, err := c.Prompt(fmt.Sprintf("Product Name [%s]", product.Name))
	if err != nil {
		return err
	}
	if name != "" {
		product.Name = name
	}

	if err := h.printCategories(ctx, c); err != nil {
		return err
	}
	if err := promptKeep(c, fmt.Sprintf("Category ID [%s]", show(product.CategoryID)), "Category ID", console.ParseOptionalInt, &product.CategoryID); err != nil {
		return err
	}

	if err := h.printSuppliers(ctx, c); err != nil {
		return err
	}
	if err := promptKeep(c, fmt.Sprintf("Supplier ID [%s]", show(product.SupplierID)), "Supplier ID", console.ParseOptionalInt, &product.SupplierID); err != nil {
		return err
	}

	qty, err := c.Prompt(fmt.Sprintf("Quantity Per Unit [%s]", show(product.QuantityPerUnit)))
	if err != nil {
		return err
	}
	if qty != "" {
		product.QuantityPerUnit = &qty
	}

	if err := promptKeep(c, fmt.Sprintf("Unit Price [%s]", showPrice(product.UnitPrice)), "Unit Price", console.ParseOptionalDecimal, &product.UnitPrice); err != nil {
		return err
	}
	if err := promptKeep(c, fmt.Sprintf("Units In Stock [%s]", show(product.UnitsInStock)), "Units In Stock", console.ParseOptionalInt, &product.UnitsInStock); err != nil {
		return err
	}
	if err := promptKeep(c, fmt.Sprintf("Units On Order [%s]", show(product.UnitsOnOrder)), "Units On Order", console.ParseOptionalInt, &product.UnitsOnOrder); err != nil {
		return err
	}
	if err := promptKeep(c, fmt.Sprintf("Reorder Level [%s]", show(product.ReorderLevel)), "Reorder Level", console.ParseOptionalInt, &product.ReorderLevel); err != nil {
		return err
	}

	disc, err := c.Prompt(fmt.Sprintf("Discontinued [%s] (y/n)", yesNo(product.Discontinued)))
	if err != nil {
		return err
	}
	if disc != "" {
		product.Discontinued = console.ParseYesNo(disc)
	}

	if err := h.validate(ctx, product); err != nil {
		return err
	}
	if err := h.products.Update(ctx, product); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("product updated", "product_id", product.ID, "name", product.Name)
	c.Success("Product updated successfully!")
	return nil
}

// HandleList asks for a status filter and an optional category and prints
// the matching product names. Any status answer other than 2 or 3 lists
// all products; a blank category lists every category.
func (h *CatalogHandler) HandleList(ctx context.Context, c *console.Console) error {
	c.Title("Display Products")
	c.Println("1) All Products")
	c.Println("2) Active Products Only")
	c.Println("3) Discontinued Products Only")
	choice, err := c.Prompt("Enter your choice")
	if err != nil {
		return err
	}

	filter := models.ProductFilter{Status: models.StatusAll}
	switch choice {
	case "2":
		filter.Status = models.StatusActive
	case "3":
		filter.Status = models.StatusDiscontinued
	}

	input, err := c.Prompt("Enter Category ID to filter (or press Enter for all)")
	if err != nil {
		return err
	}
	if filter.CategoryID, err = console.ParseOptionalInt("Category ID", input); err != nil {
		return err
	}

	var products []models.Product
	for p, err := range h.products.ListFiltered(ctx, filter) {
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}

	logger := logging.FromContext(ctx)
	if filter.CategoryID != nil {
		logger = logger.With("category_id", *filter.CategoryID)
	}
	logger.Info("products listed", "filter", filter.Status.String(), "count", len(products))

	c.Printf("\n%s Products (%d found):\n", filter.Status, len(products))
	for _, p := range products {
		if p.Discontinued {
			c.Println(p.Name + " [DISCONTINUED]")
		} else {
			c.Println(p.Name)
		}
	}
	return nil
}

// HandleShow prints every field of one product.
func (h *CatalogHandler) HandleShow(ctx context.Context, c *console.Console) error {
	c.Title("Display Specific Product")

	id, err := promptID(c, "Enter Product ID", "Product ID")
	if err != nil {
		return err
	}
	product, err := h.products.GetDetail(ctx, id)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("product displayed", "product_id", product.ID)

	category := "N/A"
	if product.Category != nil {
		category = product.Category.Name
	}
	supplier := "N/A"
	if product.Supplier != nil {
		supplier = product.Supplier.CompanyName
	}
	price := "N/A"
	if product.UnitPrice != nil {
		price = "$" + product.UnitPrice.StringFixed(2)
	}

	c.Println()
	c.Printf("Product ID: %d\n", product.ID)
	c.Printf("Product Name: %s\n", product.Name)
	c.Printf("Category: %s\n", category)
	c.Printf("Supplier: %s\n", supplier)
	c.Printf("Quantity Per Unit: %s\n", orNA(product.QuantityPerUnit))
	c.Printf("Unit Price: %s\n", price)
	c.Printf("Units In Stock: %s\n", orNA(product.UnitsInStock))
	c.Printf("Units On Order: %s\n", orNA(product.UnitsOnOrder))
	c.Printf("Reorder Level: %s\n", orNA(product.ReorderLevel))
	c.Printf("Discontinued: %s\n", yesNo(product.Discontinued))
	return nil
}

// HandleDelete shows what deleting a product takes with it and deletes it
// after confirmation.
func (h *CatalogHandler) HandleDelete(ctx context.Context, c *console.Console) error {
	c.Title("Delete Product")

	id, err := promptID(c, "Enter Product ID to delete", "Product ID")
	if err != nil {
		return err
	}
	plan, err := h.policy.PlanProductDelete(ctx, id)
	if err != nil {
		return err
	}

	c.Printf("\nProduct: %s\n", plan.Product.Name)
	if plan.OrderDetails > 0 {
		c.Println()
		c.Warning(fmt.Sprintf("Warning: This product has %d related order detail(s).", plan.OrderDetails))
		c.Println("Deleting this product will also delete all related order details.")
	}

	answer, err := c.Prompt("\nAre you sure you want to delete this product? (y/n)")
	if err != nil {
		return err
	}

	_, err = h.policy.DeleteProduct(ctx, plan, integrity.Confirm(answer))
	if errors.Is(err, integrity.ErrNotConfirmed) {
		logging.FromContext(ctx).Info("product deletion cancelled", "product_id", id)
		c.Muted("Deletion cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	c.Success("Product deleted successfully!")
	return nil
}

// validate runs the field rules and then checks that the category and
// supplier references, when set, point at existing records.
func (h *CatalogHandler) validate(ctx context.Context, product *models.Product) error {
	result := h.validator.Validate(product)

	if product.CategoryID != nil {
		ok, err := h.categories.Exists(ctx, *product.CategoryID)
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if !ok {
			result.Valid = false
			result.Failures = append(result.Failures, validation.FieldError{
				Field:   "CategoryID",
				Message: fmt.Sprintf("Category ID %d does not exist", *product.CategoryID),
			})
		}
	}
	if product.SupplierID != nil {
		ok, err := h.suppliers.Exists(ctx, *product.SupplierID)
		if err != nil {
			return fmt.Errorf("check supplier: %w", err)
		}
		if !ok {
			result.Valid = false
			result.Failures = append(result.Failures, validation.FieldError{
				Field:   "SupplierID",
				Message: fmt.Sprintf("Supplier ID %d does not exist", *product.SupplierID),
			})
		}
	}

	return result.Err()
}

func (h *CatalogHandler) printCategories(ctx context.Context, c *console.Console) error {
	c.Println("\nAvailable Categories:")
	for cat, err := range h.categories.ListFiltered(ctx, models.CategoryFilter{}) {
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		c.Printf("%d) %s\n", cat.ID, cat.Name)
	}
	return nil
}

func (h *CatalogHandler) printSuppliers(ctx context.Context, c *console.Console) error {
	suppliers, err := h.suppliers.List(ctx)
	if err != nil {
		return fmt.Errorf("list suppliers: %w", err)
	}
	c.Println("\nAvailable Suppliers:")
	for _, s := range suppliers {
		c.Printf("%d) %s\n", s.ID, s.CompanyName)
	}
	return nil
}

func promptID(c *console.Console, label, field string) (int, error) {
	input, err := c.Prompt(label)
	if err != nil {
		return 0, err
	}
	return console.ParseID(field, input)
}

func promptOptional[T any](c *console.Console, label, field string, parse func(field, input string) (*T, error)) (*T, error) {
	input, err := c.Prompt(label)
	if err != nil {
		return nil, err
	}
	return parse(field, input)
}

// promptKeep overwrites *dst only when the answer is not blank.
func promptKeep[T any](c *console.Console, label, field string, parse func(field, input string) (*T, error), dst **T) error {
	v, err := promptOptional(c, label, field, parse)
	if err != nil {
		return err
	}
	if v != nil {
		*dst = v
	}
	return nil
}

// show formats an optional value for an edit prompt; absent is empty.
func show[T any](v *T) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func showPrice(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}

func orNA[T any](v *T) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprint(*v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
