package models

import "github.com/shopspring/decimal"

// OrderDetail is a line of an order. Only its link to a product matters
// here: order details are removed together with their product.
type OrderDetail struct {
	OrderID   int             `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	ProductID int             `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity  int16           `gorm:"column:quantity;not null"`
	Discount  float32         `gorm:"column:discount;not null"`
}

func (o *OrderDetail) TableName() string {
	return "order_details"
}
