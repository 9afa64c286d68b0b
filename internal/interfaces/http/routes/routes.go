// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/domain/inventory"
	"github.com/your-org/pos-backend/internal/domain/operator"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/syncer"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/capability"
	"github.com/your-org/pos-backend/internal/pkg/connectivity"
	"github.com/your-org/pos-backend/internal/pkg/receipt"
	"github.com/your-org/pos-backend/internal/pkg/session"
	"gorm.io/gorm"
)

// Dependencies carries the shared singletons the route handlers need. The
// cart store, connectivity monitor and sync agent have process-wide state, so
// they are built once in main and threaded through here.
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client

	Sessions *session.Cache
	Carts    *cart.Store
	Monitor  *connectivity.Monitor

	Operators *operator.Service
	Products  *product.Service
	Orders    *order.Service
	Inventory *inventory.Service
	Checkout  *checkout.Service
	Agent     *syncer.Agent

	Receipts    *receipt.Builder
	PDFRenderer *receipt.PDFRenderer
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	SetupAuthRoutes(rg, deps)
	SetupProductRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupCheckoutRoutes(rg, deps)
	SetupSyncRoutes(rg, deps)
	SetupOrderRoutes(rg, deps)
}

// SetupAuthRoutes sets up operator sign-in routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Operators, deps.Config, deps.Sessions)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Products)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
	products.Use(middleware.RequireCapability(capability.ProductsRead))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/offline-cache", productHandler.GetOfflineProducts)

		admin := products.Group("")
		admin.Use(middleware.RequireCapability(capability.AdminManage))
		{
			admin.POST("/offline-cache", productHandler.CacheOffline)
		}
	}
}

// SetupCartRoutes sets up cart routes for the cashier screen
func SetupCartRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.Products, deps.Monitor)

	carts := rg.Group("/cart")
	carts.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
	carts.Use(middleware.RequireCapability(capability.CheckoutProcess))
	{
		carts.GET("", cartHandler.GetCart)
		carts.DELETE("", cartHandler.ClearCart)
		carts.POST("/items", cartHandler.AddItem)
		carts.PUT("/items/:id", cartHandler.UpdateItem)
		carts.DELETE("/items/:id", cartHandler.RemoveItem)
	}
}

// SetupCheckoutRoutes sets up the payment route
func SetupCheckoutRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout)

	co := rg.Group("/checkout")
	co.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
	co.Use(middleware.RequireCapability(capability.CheckoutProcess))
	{
		co.POST("", checkoutHandler.ProcessPayment)
	}
}

// SetupSyncRoutes sets up offline queue sync routes
func SetupSyncRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	syncHandler := handlers.NewSyncHandler(deps.Agent, deps.Monitor)

	sync := rg.Group("/sync")
	sync.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
	sync.Use(middleware.RequireCapability(capability.SyncTrigger))
	{
		sync.POST("", syncHandler.TriggerSync)
		sync.GET("/status", syncHandler.GetStatus)
		sync.GET("/pending", syncHandler.GetPending)
	}
}

// SetupOrderRoutes sets up order history and reporting routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Inventory, deps.Receipts, deps.PDFRenderer)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
	orders.Use(middleware.RequireCapability(capability.ReportsRead))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
	}

	reports := rg.Group("/reports")
	reports.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
	reports.Use(middleware.RequireCapability(capability.ReportsRead))
	{
		reports.GET("/sales-summary", orderHandler.GetSalesSummary)
	}

	inv := rg.Group("/inventory")
	inv.Use(middleware.AuthMiddleware(deps.Config, deps.Sessions))
	inv.Use(middleware.RequireCapability(capability.ReportsRead))
	{
		inv.GET("/movements/:productId", orderHandler.GetStockMovements)
	}
}
