package models

// Supplier is a read-only view of the suppliers table.
type Supplier struct {
	ID          int    `gorm:"column:supplier_id;primaryKey"`
	CompanyName string `gorm:"column:company_name;size:40;not null"`
}

func (s *Supplier) TableName() string {
	return "suppliers"
}
