package models

// Category represents a product category.
// Products reference a category through Product.CategoryID; the category
// itself holds no collection of products.
type Category struct {
	ID          int     `gorm:"column:category_id;primaryKey"`
	Name        string  `gorm:"column:category_name;size:15;not null" validate:"nonblank,max=15" label:"Category Name"`
	Description *string `gorm:"column:description"`
}

func (c *Category) TableName() string {
	return "categories"
}

// CategoryWithProducts is a category together with the products that
// reference it, as loaded by CategoriesRepository.GetWithProducts.
type CategoryWithProducts struct {
	Category
	Products []Product
}
