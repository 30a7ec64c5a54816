package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Category and Supplier are belongs-to references used for display only;
// writes go through CategoryID and SupplierID.
type Product struct {
	ID              int              `gorm:"column:product_id;primaryKey"`
	Name            string           `gorm:"column:product_name;size:40;not null" validate:"nonblank,max=40" label:"Product Name"`
	SupplierID      *int             `gorm:"column:supplier_id"`
	CategoryID      *int             `gorm:"column:category_id"`
	QuantityPerUnit *string          `gorm:"column:quantity_per_unit;size:20" validate:"omitempty,max=20" label:"Quantity Per Unit"`
	UnitPrice       *decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)" validate:"omitempty,gte=0,lte=999999.99" label:"Unit Price" range:"Unit Price must be between 0 and 999999.99"`
	UnitsInStock    *int             `gorm:"column:units_in_stock;type:smallint" validate:"omitempty,gte=0,lte=32767" label:"Units In Stock" range:"Units In Stock must be a positive number"`
	UnitsOnOrder    *int             `gorm:"column:units_on_order;type:smallint" validate:"omitempty,gte=0,lte=32767" label:"Units On Order" range:"Units On Order must be a positive number"`
	ReorderLevel    *int             `gorm:"column:reorder_level;type:smallint" validate:"omitempty,gte=0,lte=32767" label:"Reorder Level" range:"Reorder Level must be a positive number"`
	Discontinued    bool             `gorm:"column:discontinued;not null;default:false"`

	Category *Category `gorm:"foreignKey:CategoryID" validate:"-"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" validate:"-"`
}

func (p *Product) TableName() string {
	return "products"
}

// Status selects products by their discontinued flag.
type Status int

const (
	StatusAll Status = iota
	StatusActive
	StatusDiscontinued
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusDiscontinued:
		return "Discontinued"
	default:
		return "All"
	}
}

type ProductFilter struct {
	Status     Status
	CategoryID *int
}
