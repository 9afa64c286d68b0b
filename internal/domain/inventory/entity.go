// internal/domain/inventory/entity.go
package inventory

import "time"

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeSale    MovementType = "sale"
	MovementTypeRestock MovementType = "restock"
	MovementTypeAdjust  MovementType = "adjustment"
)

// StockMovement is the audit record written alongside every stock change
type StockMovement struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	ProductID uint         `gorm:"not null;index" json:"product_id"`
	Type      MovementType `gorm:"not null;size:20" json:"type"`
	Quantity  int          `gorm:"not null" json:"quantity"` // negative for sales
	Reference string       `gorm:"size:100" json:"reference"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName overrides the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}
