package database

import (
	"fmt"

	"github.com/hisably/pos-api/internal/config"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("running database migrations")

	err := db.AutoMigrate(
		// Organization entities
		&entity.Store{},
		&entity.Employee{},

		// Catalog entities
		&entity.Category{},
		&entity.Unit{},
		&entity.Product{},
		&entity.StockLevel{},

		// Party entities
		&entity.Client{},
		&entity.Supplier{},

		// Trade documents
		&entity.SalesOrder{},
		&entity.SalesOrderItem{},
		&entity.SalesReturn{},
		&entity.SalesReturnItem{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
		&entity.PurchaseReturn{},
		&entity.PurchaseReturnItem{},
		&entity.StockTransfer{},
		&entity.StockTransferItem{},

		// Money ledgers
		&entity.Commission{},
		&entity.EmployeeTransaction{},

		// System entities
		&entity.IdempotencyKey{},
		&entity.Settings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("database migrations completed")
	return nil
}

// SeedDefaultData seeds the default store, settings row, and admin account
func SeedDefaultData(db *gorm.DB, admin *config.AdminConfig) error {
	logrus.Info("seeding default data")

	var store entity.Store
	if err := db.Order("created_at ASC").First(&store).Error; err != nil {
		store = entity.Store{
			Name:     "Main Store",
			IsActive: true,
		}
		if err := db.Create(&store).Error; err != nil {
			return fmt.Errorf("failed to create default store: %w", err)
		}
		logrus.WithField("store_id", store.ID).Info("default store created")
	}

	var settings entity.Settings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.Settings{
			BusinessName:         "Hisably POS",
			Currency:             "USD",
			OrderCommissionRate:  0,
			ReturnCommissionRate: 0,
			LowStockAlerts:       true,
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}
	}

	// Create the admin account on first run
	if admin != nil && admin.Username != "" && admin.Password != "" {
		var existing entity.Employee
		if err := db.Where("username = ?", admin.Username).First(&existing).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash admin password: %w", err)
			}
			fullName := admin.FullName
			if fullName == "" {
				fullName = "Administrator"
			}
			account := entity.Employee{
				FullName: fullName,
				Username: admin.Username,
				Password: string(hashed),
				Role:     entity.RoleAdmin,
				StoreID:  &store.ID,
				IsActive: true,
			}
			if err := db.Create(&account).Error; err != nil {
				return fmt.Errorf("failed to create admin account: %w", err)
			}
			logrus.WithField("username", admin.Username).Info("admin account created")
		}
	}

	logrus.Info("default data seeding completed")
	return nil
}
