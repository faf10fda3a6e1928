package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hisably/pos-api/internal/application/service"
	"github.com/hisably/pos-api/internal/application/settlement"
	"github.com/hisably/pos-api/internal/config"
	"github.com/hisably/pos-api/internal/infrastructure/cache"
	"github.com/hisably/pos-api/internal/infrastructure/database"
	"github.com/hisably/pos-api/internal/infrastructure/repository"
	"github.com/hisably/pos-api/internal/presentation/http/handler"
	"github.com/hisably/pos-api/internal/presentation/http/routes"
	"github.com/hisably/pos-api/pkg/printer"
	"github.com/hisably/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Connect to Redis for dashboard caching. The API works without it.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis, dashboard caching disabled: %v", err)
			redisClient = nil
		}
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	txnRepo := repository.NewEmployeeTransactionRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	stockRepo := repository.NewStockRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	clientRepo := repository.NewClientRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	orderRepo := repository.NewSalesOrderRepository(db)
	orderItemRepo := repository.NewSalesOrderItemRepository(db)
	returnRepo := repository.NewSalesReturnRepository(db)
	returnItemRepo := repository.NewSalesReturnItemRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	purchaseItemRepo := repository.NewPurchaseItemRepository(db)
	purchaseReturnRepo := repository.NewPurchaseReturnRepository(db)
	purchaseReturnItemRepo := repository.NewPurchaseReturnItemRepository(db)
	transferRepo := repository.NewStockTransferRepository(db)
	transferItemRepo := repository.NewStockTransferItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	syncRepo := repository.NewSyncRepository(db)

	// Settlement engine shared by all document services
	engine := settlement.NewEngine(
		stockRepo,
		repository.NewDebtLedger(db),
		repository.NewCommissionLedger(db),
		employeeRepo,
	)

	// Initialize services
	authService := service.NewAuthService(employeeRepo, jwtManager)
	employeeService := service.NewEmployeeService(employeeRepo, txnRepo, commissionRepo, storeRepo)
	clientService := service.NewClientService(clientRepo, employeeRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	productService := service.NewProductService(productRepo, categoryRepo, unitRepo, stockRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	unitService := service.NewUnitService(unitRepo)
	storeService := service.NewStoreService(storeRepo, stockRepo)
	orderService := service.NewOrderService(txManager, engine, orderRepo, orderItemRepo, productRepo, unitRepo, clientRepo, settingsRepo)
	returnService := service.NewReturnService(txManager, engine, returnRepo, returnItemRepo, orderRepo, productRepo, unitRepo, clientRepo, settingsRepo)
	purchaseService := service.NewPurchaseService(txManager, engine, purchaseRepo, purchaseItemRepo, purchaseReturnRepo, purchaseReturnItemRepo, supplierRepo, productRepo, unitRepo, storeRepo)
	transferService := service.NewTransferService(txManager, engine, transferRepo, transferItemRepo, storeRepo, productRepo, unitRepo, stockRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, redisClient)
	settingsService := service.NewSettingsService(settingsRepo)
	reportService := service.NewReportService(orderRepo, analyticsRepo, clientRepo)
	syncService := service.NewSyncService(syncRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.Open(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullDevice()
	}
	printerService := service.NewPrinterService(thermalPrinter, orderRepo, returnRepo, settingsRepo, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Employee:  handler.NewEmployeeHandler(employeeService),
		Client:    handler.NewClientHandler(clientService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		Unit:      handler.NewUnitHandler(unitService),
		Store:     handler.NewStoreHandler(storeService),
		Order:     handler.NewOrderHandler(orderService),
		Return:    handler.NewReturnHandler(returnService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Transfer:  handler.NewTransferHandler(transferService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Report:    handler.NewReportHandler(reportService),
		Sync:      handler.NewSyncHandler(syncService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
