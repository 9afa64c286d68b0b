// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles order persistence and reporting against the remote backend
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// InsertOrder persists the order header and returns the new order id
func (s *Service) InsertOrder(ctx context.Context, o *Order) (uint, error) {
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	o.OrderNumber = o.GenerateOrderNumber()
	if err := s.db.WithContext(ctx).Model(o).Update("order_number", o.OrderNumber).Error; err != nil {
		return 0, fmt.Errorf("failed to set order number: %w", err)
	}

	return o.ID, nil
}

// InsertOrderItems persists one line-item record per cart line
func (s *Service) InsertOrderItems(ctx context.Context, orderID uint, items []OrderItem) error {
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}
	return nil
}

// ListRequest represents order list query parameters for the reports screen
type ListRequest struct {
	Page      int         `form:"page,default=1"`
	Limit     int         `form:"limit,default=20"`
	Status    OrderStatus `form:"status"`
	CashierID string      `form:"cashier_id"`
	DateFrom  string      `form:"date_from"`
	DateTo    string      `form:"date_to"`
}

// ListResponse represents orders with pagination
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetOrders retrieves orders with filtering and pagination
func (s *Service) GetOrders(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.WithContext(ctx).Model(&Order{}).Preload("Items")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.CashierID != "" {
		query = query.Where("cashier_id = ?", req.CashierID)
	}
	if req.DateFrom != "" {
		query = query.Where("created_at >= ?", req.DateFrom)
	}
	if req.DateTo != "" {
		query = query.Where("created_at <= ?", req.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetOrder retrieves a single order with its items
func (s *Service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var o Order
	result := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&o)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// SalesSummary aggregates completed sales for the reports screen
type SalesSummary struct {
	OrderCount   int64             `json:"order_count"`
	TotalRevenue int64             `json:"total_revenue"`
	ByMethod     []MethodBreakdown `json:"by_method"`
}

// MethodBreakdown is revenue grouped by payment method
type MethodBreakdown struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	OrderCount    int64         `json:"order_count"`
	Revenue       int64         `json:"revenue"`
}

// GetSalesSummary aggregates completed orders in the given date range
func (s *Service) GetSalesSummary(ctx context.Context, dateFrom, dateTo string) (*SalesSummary, error) {
	query := s.db.WithContext(ctx).Model(&Order{}).Where("status = ?", OrderStatusCompleted)
	if dateFrom != "" {
		query = query.Where("created_at >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("created_at <= ?", dateTo)
	}

	summary := &SalesSummary{}

	row := query.Session(&gorm.Session{}).
		Select("COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Row()
	if err := row.Scan(&summary.OrderCount, &summary.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	if err := query.Session(&gorm.Session{}).
		Select("payment_method, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("payment_method").
		Scan(&summary.ByMethod).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by method: %w", err)
	}

	return summary, nil
}
