// internal/domain/inventory/service.go
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/product"
	"gorm.io/gorm"
)

var (
	// ErrInsufficientStock is returned when a decrement would drive stock negative
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductNotFound is returned when the product id does not exist
	ErrProductNotFound = errors.New("product not found")
)

// Service handles stock mutations against the remote backend
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DecrementStock reduces a product's stock by the quantity sold. The guard in
// the WHERE clause keeps stock from going negative under concurrent sales.
func (s *Service) DecrementStock(ctx context.Context, productID uint, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	result := s.db.WithContext(ctx).Model(&product.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock for product %d: %w", productID, result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&product.Product{}).
			Where("id = ?", productID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check product %d: %w", productID, err)
		}
		if count == 0 {
			return fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
		}
		return fmt.Errorf("product %d: %w", productID, ErrInsufficientStock)
	}

	// Best effort audit row; the decrement above has already committed.
	movement := StockMovement{
		ProductID: productID,
		Type:      MovementTypeSale,
		Quantity:  -quantity,
	}
	s.db.WithContext(ctx).Create(&movement)

	return nil
}

// RestoreStock adds quantity back, used when a completed order is voided
func (s *Service) RestoreStock(ctx context.Context, productID uint, quantity int, reference string) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	result := s.db.WithContext(ctx).Model(&product.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))

	if result.Error != nil {
		return fmt.Errorf("failed to restore stock for product %d: %w", productID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}

	movement := StockMovement{
		ProductID: productID,
		Type:      MovementTypeRestock,
		Quantity:  quantity,
		Reference: reference,
	}
	s.db.WithContext(ctx).Create(&movement)

	return nil
}

// GetMovements returns the recent stock movements for a product
func (s *Service) GetMovements(ctx context.Context, productID uint, limit int) ([]StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	var movements []StockMovement
	if err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}
	return movements, nil
}
