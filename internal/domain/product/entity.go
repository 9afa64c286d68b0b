// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a sellable item in the catalog
type Product struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null;size:255" json:"name"`
	SKU        string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Barcode    string         `gorm:"size:100;index" json:"barcode"`
	Price      int64          `gorm:"not null" json:"price"` // selling price in the smallest currency unit
	Cost       int64          `gorm:"default:0" json:"cost"`
	Stock      int            `gorm:"not null;default:0" json:"stock"`
	CategoryID uint           `gorm:"index" json:"category_id"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Category groups products on the cashier screen
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// InStock reports whether at least qty units are available
func (p *Product) InStock(qty int) bool {
	return p.Stock >= qty
}
