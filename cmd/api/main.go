// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/domain/inventory"
	"github.com/your-org/pos-backend/internal/domain/offline"
	"github.com/your-org/pos-backend/internal/domain/operator"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/syncer"
	"github.com/your-org/pos-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/pos-backend/internal/infrastructure/database/redis"
	httpserver "github.com/your-org/pos-backend/internal/interfaces/http"
	"github.com/your-org/pos-backend/internal/interfaces/http/routes"
	"github.com/your-org/pos-backend/internal/pkg/connectivity"
	"github.com/your-org/pos-backend/internal/pkg/notify"
	"github.com/your-org/pos-backend/internal/pkg/receipt"
	"github.com/your-org/pos-backend/internal/pkg/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := newLogger(cfg)

	// Connect to the remote backend database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to the terminal-local Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Local storage must be up; the backend may legitimately be down, the
	// terminal starts in offline mode then.
	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	if err := db.Health(); err != nil {
		log.Printf("⚠️ Backend unreachable at startup, running offline: %v", err)
	} else {
		// Run database migrations
		migration := postgres.NewMigration(db.GetDB())

		if err := migration.RunAutoMigrations(); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}

		if err := migration.CreateIndexes(); err != nil {
			log.Printf("Warning: Index creation failed: %v", err)
		}

		if cfg.IsDevelopment() {
			if err := migration.SeedInitialData(); err != nil {
				log.Printf("Warning: Data seeding failed: %v", err)
			}
			migration.GetTableInfo()
		}
	}

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	// Connectivity: the backend database ping is the online/offline probe
	monitor := connectivity.NewMonitor(db.Ping, cfg.Checkout.ProbeInterval, cfg.Checkout.ProbeTimeout, logger)
	monitor.Start(rootCtx)
	defer monitor.Stop()

	// Shared state and domain services
	notifier := notify.NewLogNotifier(logger)
	sessions := session.NewCache(cfg.JWT.SessionCacheTTL, nil)
	carts := cart.NewStore()
	queue := offline.NewQueue(redisClient.GetClient())
	receipts := receipt.NewBuilder(cfg.Store)

	operatorService := operator.NewService(db.GetDB(), cfg)
	productService := product.NewService(db.GetDB(), redisClient.GetClient(), cfg)
	orderService := order.NewService(db.GetDB(), cfg)
	inventoryService := inventory.NewService(db.GetDB(), cfg)

	checkoutService := checkout.NewService(
		carts,
		orderService,
		inventoryService,
		productService,
		queue,
		monitor,
		notifier,
		receipts,
		logger,
		cfg,
	)

	agent := syncer.NewAgent(queue, checkoutService, notifier, logger, cfg)
	if cfg.Sync.AutoSync {
		unwatch := agent.Watch(rootCtx, monitor)
		defer unwatch()
	}

	// Refresh the offline catalog snapshot while the backend is reachable
	if monitor.Online() {
		if count, err := productService.CacheOffline(rootCtx); err != nil {
			log.Printf("Warning: offline product cache refresh failed: %v", err)
		} else {
			log.Printf("📦 Offline product cache primed with %d products", count)
		}
	}

	log.Println("✅ All systems operational!")

	deps := &routes.Dependencies{
		Config:      cfg,
		DB:          db.GetDB(),
		RedisClient: redisClient.GetClient(),
		Sessions:    sessions,
		Carts:       carts,
		Monitor:     monitor,
		Operators:   operatorService,
		Products:    productService,
		Orders:      orderService,
		Inventory:   inventoryService,
		Checkout:    checkoutService,
		Agent:       agent,
		Receipts:    receipts,
		PDFRenderer: receipt.NewPDFRenderer(),
	}

	server := httpserver.NewServer(cfg, deps)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
