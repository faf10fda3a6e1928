package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hisably/pos-api/internal/config"
	"github.com/hisably/pos-api/internal/domain/entity"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/internal/presentation/http/handler"
	"github.com/hisably/pos-api/internal/presentation/http/middleware"
	"github.com/hisably/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Employee  *handler.EmployeeHandler
	Client    *handler.ClientHandler
	Supplier  *handler.SupplierHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Unit      *handler.UnitHandler
	Store     *handler.StoreHandler
	Order     *handler.OrderHandler
	Return    *handler.ReturnHandler
	Purchase  *handler.PurchaseHandler
	Transfer  *handler.TransferHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Report    *handler.ReportHandler
	Sync      *handler.SyncHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-employee rate limiter
		rateLimiter := middleware.NewEmployeeRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Documents settle stock, debt and commission on creation, so creating
	// them twice on a retried request is not acceptable. Idempotency keys
	// are mandatory on those routes.
	idem := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Profile
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings (admin only)
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.Get)
		settings.PUT("", middleware.RequireRole(entity.RoleAdmin), h.Settings.Update)
	}

	// Dashboard
	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard.Summary)
		dashboard.GET("/top-clients", h.Dashboard.TopClients)
		dashboard.GET("/employee-sales", h.Dashboard.EmployeeSales)
	}

	// Employees (admin only, except self-serve lookups)
	employees := protected.Group("/employees")
	employees.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		employees.GET("", h.Employee.List)
		employees.POST("", middleware.RequireRole(entity.RoleAdmin), h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Employee.Update)
		employees.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Employee.Delete)
		employees.GET("/:id/transactions", h.Employee.ListTransactions)
		employees.POST("/:id/transactions", middleware.RequireRole(entity.RoleAdmin), h.Employee.AddTransaction)
		employees.GET("/:id/balance", h.Employee.Balance)
		employees.GET("/:id/commissions", h.Employee.ListCommissions)
		employees.GET("/:id/commissions/total", h.Employee.CommissionTotal)
	}

	// Clients
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/debtors", h.Client.ListDebtors)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
		clients.POST("/:id/payments", h.Client.RecordPayment)
	}

	// Suppliers
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
		suppliers.POST("/:id/payments", h.Supplier.RecordPayment)
	}

	// Products and stock
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.GET("/:id/stock", h.Product.GetStock)
		products.PUT("/:id/stock", h.Product.SetStock)
	}

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	// Units
	units := protected.Group("/units")
	{
		units.GET("", h.Unit.List)
		units.POST("", h.Unit.Create)
		units.GET("/:id", h.Unit.Get)
		units.PUT("/:id", h.Unit.Update)
		units.DELETE("/:id", h.Unit.Delete)
	}

	// Stores
	stores := protected.Group("/stores")
	{
		stores.GET("", h.Store.List)
		stores.POST("", middleware.RequireRole(entity.RoleAdmin), h.Store.Create)
		stores.GET("/:id", h.Store.Get)
		stores.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Store.Update)
		stores.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Store.Delete)
		stores.GET("/:id/stock", h.Store.ListStock)
	}

	// Orders
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", idem, h.Order.Create)
		orders.GET("/due", h.Order.GetDueOrders)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/revert", h.Order.Revert)
		orders.POST("/:id/pay", h.Order.PayDue)
	}

	// Sales returns
	returns := protected.Group("/returns")
	{
		returns.GET("", h.Return.List)
		returns.POST("", idem, h.Return.Create)
		returns.GET("/:id", h.Return.Get)
		returns.POST("/:id/revert", h.Return.Revert)
	}

	// Purchases
	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idem, h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/revert", h.Purchase.Revert)
		purchases.POST("/:id/pay", h.Purchase.PayDue)
	}

	// Purchase returns
	purchaseReturns := protected.Group("/purchase-returns")
	{
		purchaseReturns.GET("", h.Purchase.ListReturns)
		purchaseReturns.POST("", idem, h.Purchase.CreateReturn)
		purchaseReturns.GET("/:id", h.Purchase.GetReturn)
		purchaseReturns.POST("/:id/revert", h.Purchase.RevertReturn)
	}

	// Stock transfers
	transfers := protected.Group("/transfers")
	{
		transfers.GET("", h.Transfer.List)
		transfers.POST("", idem, h.Transfer.Create)
		transfers.GET("/:id", h.Transfer.Get)
		transfers.POST("/:id/revert", h.Transfer.Revert)
	}

	// Reports (admin and managers)
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/commissions", h.Report.Commissions)
		reports.GET("/debtors", h.Report.Debtors)
	}

	// Sync bookkeeping
	sync := protected.Group("/sync")
	{
		sync.GET("/status", h.Sync.Status)
		sync.GET("/pending/:document", h.Sync.Pending)
		sync.POST("/acknowledge", h.Sync.Acknowledge)
	}

	// Printer
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
	}
}
