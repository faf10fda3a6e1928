package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductCode  string
	QuantitySold float64
	Revenue      int64 // cents
}

// TopClientResult represents a client's spending data
type TopClientResult struct {
	ClientID   uuid.UUID
	ClientName string
	TotalSpent int64 // cents
	OrderCount int
}

// EmployeeSalesResult represents an employee's sales performance
type EmployeeSalesResult struct {
	EmployeeID uuid.UUID
	FullName   string
	TotalSales int64 // cents
	OrderCount int
	Commission int64 // cents
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date        time.Time
	Revenue     int64 // cents
	OrderCount  int
	ReturnTotal int64 // cents
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by revenue over a date range
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)

	// GetTopClients returns top clients by total spending over a date range
	GetTopClients(ctx context.Context, start, end time.Time, limit int) ([]TopClientResult, error)

	// GetEmployeeSales returns per-employee sales totals with earned commissions
	GetEmployeeSales(ctx context.Context, start, end time.Time) ([]EmployeeSalesResult, error)

	// GetDailySales returns daily revenue and return totals for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTotalRevenue returns total revenue from active orders, in cents
	GetTotalRevenue(ctx context.Context, start, end time.Time) (int64, error)

	// GetOutstandingClientDebt sums all positive client debts, in cents
	GetOutstandingClientDebt(ctx context.Context) (int64, error)

	// GetOutstandingSupplierDebt sums all positive supplier debts, in cents
	GetOutstandingSupplierDebt(ctx context.Context) (int64, error)

	// GetOrderCount returns number of active orders over a date range
	GetOrderCount(ctx context.Context, start, end time.Time) (int64, error)
}
