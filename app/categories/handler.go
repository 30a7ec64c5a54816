package categories

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
)

type CategoryProvider interface {
	Create(ctx context.Context, category *models.Category) (int, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
	GetWithProducts(ctx context.Context, id int) (*models.CategoryWithProducts, error)
	Update(ctx context.Context, category *models.Category) error
	ListFiltered(ctx context.Context, filter models.CategoryFilter) iter.Seq2[models.Category, error]
}

type Validator interface {
	Validate(record any) validation.Result
}

type DeletePolicy interface {
	PlanCategoryDelete(ctx context.Context, id int) (integrity.CategoryPlan, error)
	DeleteCategory(ctx context.Context, plan integrity.CategoryPlan, c integrity.Confirmation) (integrity.CategoryDeletion, error)
}

type CategoryHandler struct {
	repo      CategoryProvider
	validator Validator
	policy    DeletePolicy
}

func NewCategoryHandler(r CategoryProvider, v Validator, policy DeletePolicy) *CategoryHandler {
	return &CategoryHandler{repo: r, validator: v, policy: policy}
}

func (h *CategoryHandler) HandleAdd(ctx context.Context, c *console.Console) error {
	c.Title("Add New Category")

	name, err := c.Prompt("Enter Category Name")
	if err != nil {
		return err
	}
	desc, err := c.Prompt("Enter Category Description (or press Enter to skip)")
	if err != nil {
		return err
	}

	category := &models.Category{Name: name}
	if desc != "" {
		category.Description = &desc
	}

	if err := h.validator.Validate(category).Err(); err != nil {
		return err
	}
	id, err := h.repo.Create(ctx, category)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("category added", "category_id", id, "name", category.Name)
	c.Success("Category added successfully!")
	return nil
}

// HandleEdit prompts for a new name and description. Blank answers keep
// the current values.
func (h *CategoryHandler) HandleEdit(ctx context.Context, c *console.Console) error {
	c.Title("Edit Category")

	id, err := promptID(c, "Enter Category ID to edit")
	if err != nil {
		return err
	}
	category, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	c.Printf("\nEditing Category: %s\n", category.Name)
	c.Muted("(Press Enter to keep current value)")

	name, err := c.Prompt(fmt.Sprintf("Category Name [%s]", category.Name))
	if err != nil {
		return err
	}
	if name != "" {
		category.Name = name
	}
	desc, err := c.Prompt(fmt.Sprintf("Description [%s]", description(category)))
	if err != nil {
		return err
	}
	if desc != "" {
		category.Description = &desc
	}

	if err := h.validator.Validate(category).Err(); err != nil {
		return err
	}
	if err := h.repo.Update(ctx, category); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("category updated", "category_id", category.ID, "name", category.Name)
	c.Success("Category updated successfully!")
	return nil
}

// HandleList prints the categories whose name contains the answer, ignoring
// case. A blank answer lists them all.
func (h *CategoryHandler) HandleList(ctx context.Context, c *console.Console) error {
	name, err := c.Prompt("Filter by name (or press Enter for all)")
	if err != nil {
		return err
	}
	categories, err := h.all(ctx, models.CategoryFilter{NameContains: name})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("categories listed", "name_contains", name, "count", len(categories))

	title := fmt.Sprintf("All Categories (%d found):", len(categories))
	if name != "" {
		title = fmt.Sprintf("Categories matching %q (%d found):", name, len(categories))
	}
	c.Println()
	c.Title(title)
	c.Println()
	for _, cat := range categories {
		c.Printf("%s - %s\n", cat.Name, description(&cat))
	}
	return nil
}

// HandleListWithProducts prints every category followed by its active
// products.
func (h *CategoryHandler) HandleListWithProducts(ctx context.Context, c *console.Console) error {
	categories, err := h.all(ctx, models.CategoryFilter{})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("categories listed with products", "count", len(categories))

	c.Println()
	c.Title("All Categories and their Active Products:")
	c.Println()
	for _, cat := range categories {
		full, err := h.repo.GetWithProducts(ctx, cat.ID)
		if err != nil {
			return fmt.Errorf("load products of category %d: %w", cat.ID, err)
		}
		c.Println(full.Name)
		printProducts(c, full.Products)
		c.Println()
	}
	return nil
}

func (h *CategoryHandler) HandleShow(ctx context.Context, c *console.Console) error {
	c.Title("Display Specific Category and its Products")

	id, err := promptID(c, "Enter Category ID")
	if err != nil {
		return err
	}
	category, err := h.repo.GetWithProducts(ctx, id)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("category displayed", "category_id", id)

	c.Printf("\n%s\n", category.Name)
	c.Printf("Description: %s\n\n", description(&category.Category))
	c.Println("Active Products:")
	printProducts(c, category.Products)
	return nil
}

// HandleDelete explains what deleting the category does to its products
// and deletes it after confirmation.
func (h *CategoryHandler) HandleDelete(ctx context.Context, c *console.Console) error {
	c.Title("Delete Category")

	id, err := promptID(c, "Enter Category ID to delete")
	if err != nil {
		return err
	}
	plan, err := h.policy.PlanCategoryDelete(ctx, id)
	if err != nil {
		return err
	}

	c.Printf("\nCategory: %s\n", plan.Category.Name)
	if len(plan.Products) > 0 {
		c.Println()
		c.Warning(fmt.Sprintf("Warning: This category has %d related product(s).", len(plan.Products)))
		if plan.OrderDetails > 0 {
			c.Printf("These products have %d related order detail(s).\n", plan.OrderDetails)
		}
		c.Println("Deleting this category will:")
		c.Println("  1. Set CategoryId to NULL for all related products")
		c.Println("  2. Products will remain in the database")
	}

	answer, err := c.Prompt("\nAre you sure you want to delete this category? (y/n)")
	if err != nil {
		return err
	}

	_, err = h.policy.DeleteCategory(ctx, plan, integrity.Confirm(answer))
	if errors.Is(err, integrity.ErrNotConfirmed) {
		logging.FromContext(ctx).Info("category deletion cancelled", "category_id", id)
		c.Muted("Deletion cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	c.Success("Category deleted successfully!")
	return nil
}

func (h *CategoryHandler) all(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	var categories []models.Category
	for cat, err := range h.repo.ListFiltered(ctx, filter) {
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func printProducts(c *console.Console, products []models.Product) {
	if len(products) == 0 {
		c.Muted("  (No active products)")
		return
	}
	for _, p := range products {
		c.Printf("  - %s\n", p.Name)
	}
}

func promptID(c *console.Console, label string) (int, error) {
	input, err := c.Prompt(label)
	if err != nil {
		return 0, err
	}
	return console.ParseID("Category ID", input)
}

func description(c *models.Category) string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}
