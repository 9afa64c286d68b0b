// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/pos-backend/internal/domain/inventory"
	"github.com/your-org/pos-backend/internal/domain/operator"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&operator.Operator{},

		&product.Category{},
		&product.Product{},

		&order.Order{},
		&order.OrderItem{},

		&inventory.StockMovement{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_products_barcode ON products(barcode)",

		// Order indexes for the reports screen
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_method ON orders(payment_method)",

		// Order item indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Stock movement indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_product_created ON stock_movements(product_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds categories and sample products in development
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	if err := m.seedOperators(); err != nil {
		return fmt.Errorf("failed to seed operators: %w", err)
	}

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedOperators() error {
	var count int64
	m.db.Model(&operator.Operator{}).Count(&count)
	if count > 0 {
		return nil
	}

	adminPIN, err := auth.HashPIN("1234", 0)
	if err != nil {
		return err
	}
	cashierPIN, err := auth.HashPIN("5678", 0)
	if err != nil {
		return err
	}

	operators := []operator.Operator{
		{Name: "admin", Role: "admin", PINHash: adminPIN, IsActive: true},
		{Name: "cashier", Role: "cashier", PINHash: cashierPIN, IsActive: true},
	}

	return m.db.Create(&operators).Error
}

func (m *Migration) seedCategories() error {
	var count int64
	m.db.Model(&product.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []product.Category{
		{Name: "Beverages", SortOrder: 1},
		{Name: "Food", SortOrder: 2},
		{Name: "Snacks", SortOrder: 3},
		{Name: "Others", SortOrder: 4},
	}

	return m.db.Create(&categories).Error
}

func (m *Migration) seedProducts() error {
	var count int64
	m.db.Model(&product.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	var beverages product.Category
	if err := m.db.Where("name = ?", "Beverages").First(&beverages).Error; err != nil {
		return err
	}
	var food product.Category
	if err := m.db.Where("name = ?", "Food").First(&food).Error; err != nil {
		return err
	}

	products := []product.Product{
		{Name: "Coffee", SKU: "BEV-001", Price: 15000, Cost: 8000, Stock: 100, CategoryID: beverages.ID, IsActive: true},
		{Name: "Iced Tea", SKU: "BEV-002", Price: 10000, Cost: 4000, Stock: 80, CategoryID: beverages.ID, IsActive: true},
		{Name: "Mineral Water", SKU: "BEV-003", Price: 5000, Cost: 2500, Stock: 200, CategoryID: beverages.ID, IsActive: true},
		{Name: "Fried Rice", SKU: "FOOD-001", Price: 25000, Cost: 12000, Stock: 50, CategoryID: food.ID, IsActive: true},
		{Name: "Chicken Noodles", SKU: "FOOD-002", Price: 22000, Cost: 11000, Stock: 40, CategoryID: food.ID, IsActive: true},
	}

	return m.db.Create(&products).Error
}

// GetTableInfo logs row counts for the main tables
func (m *Migration) GetTableInfo() error {
	tables := []string{"operators", "categories", "products", "orders", "order_items", "stock_movements"}

	log.Println("📊 Table information:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("  %s: error (%v)", table, err)
			continue
		}
		log.Printf("  %s: %d rows", table, count)
	}
	return nil
}
