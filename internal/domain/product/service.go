// internal/domain/product/service.go
package product

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/gorm"
)

// offlineProductsKey is the local Redis key holding the catalog snapshot used
// when the remote backend is unreachable.
const offlineProductsKey = "offline:products"

var (
	// ErrProductNotFound is returned when a product id does not exist
	ErrProductNotFound = fmt.Errorf("product not found")
)

// Service handles catalog reads and the offline product cache
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=50"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
}

// ListResponse represents a paginated product list
type ListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetProducts retrieves active products with filtering and pagination
func (s *Service) GetProducts(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	var products []Product
	var total int64

	query := s.db.WithContext(ctx).Model(&Product{}).
		Preload("Category").
		Where("is_active = ?", true)

	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR barcode = ?", like, like, req.Search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 50
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("name ASC").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Products: products,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetProduct retrieves a single product by id
func (s *Service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var prod Product
	result := s.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &prod, nil
}

// GetCategories retrieves all categories ordered for display
func (s *Service) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// CacheOffline stores the current active catalog in local Redis so the
// cashier screen keeps working while the backend is unreachable.
func (s *Service) CacheOffline(ctx context.Context) (int, error) {
	var products []Product
	if err := s.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).Find(&products).Error; err != nil {
		return 0, fmt.Errorf("failed to load products for offline cache: %w", err)
	}

	data, err := json.Marshal(products)
	if err != nil {
		return 0, fmt.Errorf("failed to encode offline product cache: %w", err)
	}

	// No expiry: a stale catalog beats an empty screen while offline.
	if err := s.redisClient.Set(ctx, offlineProductsKey, data, 0).Err(); err != nil {
		return 0, fmt.Errorf("failed to store offline product cache: %w", err)
	}

	return len(products), nil
}

// OfflineProducts returns the cached catalog snapshot from local Redis
func (s *Service) OfflineProducts(ctx context.Context) ([]Product, error) {
	data, err := s.redisClient.Get(ctx, offlineProductsKey).Result()
	if err == redis.Nil {
		return []Product{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read offline product cache: %w", err)
	}

	var products []Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, fmt.Errorf("failed to decode offline product cache: %w", err)
	}
	return products, nil
}
