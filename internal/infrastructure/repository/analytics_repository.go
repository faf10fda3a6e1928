package repository

import (
	"context"
	"time"

	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := r.db.WithContext(ctx).
		Table("sales_order_items").
		Select(`products.id as product_id,
			products.name as product_name,
			products.code as product_code,
			SUM(sales_order_items.base_quantity) as quantity_sold,
			SUM(sales_order_items.total) as revenue`).
		Joins("JOIN products ON products.id = sales_order_items.product_id").
		Joins("JOIN sales_orders ON sales_orders.id = sales_order_items.order_id").
		Where("sales_orders.status = ? AND sales_orders.order_date BETWEEN ? AND ?", enum.DocumentStatusActive, start, end).
		Where("sales_orders.deleted_at IS NULL AND sales_order_items.deleted_at IS NULL").
		Group("products.id, products.name, products.code").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetTopClients(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopClientResult, error) {
	var results []domainRepo.TopClientResult
	err := r.db.WithContext(ctx).
		Table("sales_orders").
		Select(`clients.id as client_id,
			clients.name as client_name,
			SUM(sales_orders.total_amount) as total_spent,
			COUNT(sales_orders.id) as order_count`).
		Joins("JOIN clients ON clients.id = sales_orders.client_id").
		Where("sales_orders.status = ? AND sales_orders.order_date BETWEEN ? AND ?", enum.DocumentStatusActive, start, end).
		Where("sales_orders.deleted_at IS NULL").
		Group("clients.id, clients.name").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetEmployeeSales(ctx context.Context, start, end time.Time) ([]domainRepo.EmployeeSalesResult, error) {
	var results []domainRepo.EmployeeSalesResult
	err := r.db.WithContext(ctx).
		Table("sales_orders").
		Select(`employees.id as employee_id,
			employees.full_name as full_name,
			SUM(sales_orders.total_amount) as total_sales,
			COUNT(sales_orders.id) as order_count,
			COALESCE((SELECT SUM(c.amount) FROM commissions c
				WHERE c.employee_id = employees.id
				AND c.date BETWEEN ? AND ?), 0) as commission`, start, end).
		Joins("JOIN employees ON employees.id = sales_orders.employee_id").
		Where("sales_orders.status = ? AND sales_orders.order_date BETWEEN ? AND ?", enum.DocumentStatusActive, start, end).
		Where("sales_orders.deleted_at IS NULL").
		Group("employees.id, employees.full_name").
		Order("total_sales DESC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult
	since := time.Now().AddDate(0, 0, -days)
	err := r.db.WithContext(ctx).
		Table("sales_orders").
		Select(`sales_orders.order_date as date,
			SUM(sales_orders.total_amount) as revenue,
			COUNT(sales_orders.id) as order_count,
			COALESCE((SELECT SUM(sr.total_amount) FROM sales_returns sr
				WHERE sr.return_date = sales_orders.order_date
				AND sr.status = 0 AND sr.deleted_at IS NULL), 0) as return_total`).
		Where("sales_orders.status = ? AND sales_orders.order_date >= ?", enum.DocumentStatusActive, since).
		Where("sales_orders.deleted_at IS NULL").
		Group("sales_orders.order_date").
		Order("date ASC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context, start, end time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("status = ? AND order_date BETWEEN ? AND ?", enum.DocumentStatusActive, start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *analyticsRepository) GetOutstandingClientDebt(ctx context.Context) (int64, error) {
	var debt int64
	err := r.db.WithContext(ctx).Model(&entity.Client{}).
		Where("debt > 0").
		Select("COALESCE(SUM(debt), 0)").
		Scan(&debt).Error
	return debt, err
}

func (r *analyticsRepository) GetOutstandingSupplierDebt(ctx context.Context) (int64, error) {
	var debt int64
	err := r.db.WithContext(ctx).Model(&entity.Supplier{}).
		Where("debt > 0").
		Select("COALESCE(SUM(debt), 0)").
		Scan(&debt).Error
	return debt, err
}

func (r *analyticsRepository) GetOrderCount(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("status = ? AND order_date BETWEEN ? AND ?", enum.DocumentStatusActive, start, end).
		Count(&count).Error
	return count, err
}
