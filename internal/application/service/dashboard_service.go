package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 2 * time.Minute
)

// DashboardService aggregates business metrics for the dashboard.
// Summaries are cached in redis for a short window since they join
// across most of the schema; the cache degrades to a direct query when
// redis is unavailable.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	redis         *redis.Client
}

// NewDashboardService creates a new dashboard service. The redis client
// may be nil, in which case caching is disabled.
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, redisClient *redis.Client) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		redis:         redisClient,
	}
}

// DashboardSummary is the headline dashboard payload
type DashboardSummary struct {
	TodayRevenue float64             `json:"today_revenue"`
	TodayOrders  int64               `json:"today_orders"`
	MonthRevenue float64             `json:"month_revenue"`
	MonthOrders  int64               `json:"month_orders"`
	ClientDebt   float64             `json:"client_debt"`
	SupplierDebt float64             `json:"supplier_debt"`
	DailySales   []DailySalesPoint   `json:"daily_sales"`
	TopProducts  []TopProductSummary `json:"top_products"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

// DailySalesPoint is one day in the sales chart
type DailySalesPoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
	Returns float64   `json:"returns"`
}

// TopProductSummary is one row in the top products table
type TopProductSummary struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	QuantitySold float64 `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// GetSummary returns the dashboard summary, from cache when fresh
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, dashboardCacheKey).Bytes()
		if err == nil {
			var summary DashboardSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
		} else if err != redis.Nil {
			logrus.WithError(err).Warn("dashboard cache read failed")
		}
	}

	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.redis.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("dashboard cache write failed")
			}
		}
	}

	return summary, nil
}

// InvalidateCache drops the cached summary. Called after settlements so
// the next dashboard read reflects the new document.
func (s *DashboardService) InvalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, dashboardCacheKey).Err(); err != nil {
		logrus.WithError(err).Warn("dashboard cache invalidation failed")
	}
}

func (s *DashboardService) buildSummary(ctx context.Context) (*DashboardSummary, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todayRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx, todayStart, now)
	if err != nil {
		return nil, err
	}
	todayOrders, err := s.analyticsRepo.GetOrderCount(ctx, todayStart, now)
	if err != nil {
		return nil, err
	}
	monthRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}
	monthOrders, err := s.analyticsRepo.GetOrderCount(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}
	clientDebt, err := s.analyticsRepo.GetOutstandingClientDebt(ctx)
	if err != nil {
		return nil, err
	}
	supplierDebt, err := s.analyticsRepo.GetOutstandingSupplierDebt(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.analyticsRepo.GetDailySales(ctx, 30)
	if err != nil {
		return nil, err
	}
	dailyPoints := make([]DailySalesPoint, len(daily))
	for i, d := range daily {
		dailyPoints[i] = DailySalesPoint{
			Date:    d.Date,
			Revenue: float64(d.Revenue) / 100,
			Orders:  d.OrderCount,
			Returns: float64(d.ReturnTotal) / 100,
		}
	}

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, monthStart, now, 10)
	if err != nil {
		return nil, err
	}
	topSummaries := make([]TopProductSummary, len(topProducts))
	for i, p := range topProducts {
		topSummaries[i] = TopProductSummary{
			ProductID:    p.ProductID.String(),
			Name:         p.ProductName,
			Code:         p.ProductCode,
			QuantitySold: p.QuantitySold,
			Revenue:      float64(p.Revenue) / 100,
		}
	}

	return &DashboardSummary{
		TodayRevenue: float64(todayRevenue) / 100,
		TodayOrders:  todayOrders,
		MonthRevenue: float64(monthRevenue) / 100,
		MonthOrders:  monthOrders,
		ClientDebt:   float64(clientDebt) / 100,
		SupplierDebt: float64(supplierDebt) / 100,
		DailySales:   dailyPoints,
		TopProducts:  topSummaries,
		GeneratedAt:  now,
	}, nil
}

// TopClientSummary is one row in the top clients table
type TopClientSummary struct {
	ClientID   string  `json:"client_id"`
	Name       string  `json:"name"`
	TotalSpent float64 `json:"total_spent"`
	OrderCount int     `json:"order_count"`
}

// GetTopClients returns the top spending clients over a date range
func (s *DashboardService) GetTopClients(ctx context.Context, start, end time.Time, limit int) ([]TopClientSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	results, err := s.analyticsRepo.GetTopClients(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]TopClientSummary, len(results))
	for i, r := range results {
		summaries[i] = TopClientSummary{
			ClientID:   r.ClientID.String(),
			Name:       r.ClientName,
			TotalSpent: float64(r.TotalSpent) / 100,
			OrderCount: r.OrderCount,
		}
	}
	return summaries, nil
}

// EmployeeSalesSummary is one row in the employee performance table
type EmployeeSalesSummary struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int     `json:"order_count"`
	Commission float64 `json:"commission"`
}

// GetEmployeeSales returns per-employee sales and commission totals
func (s *DashboardService) GetEmployeeSales(ctx context.Context, start, end time.Time) ([]EmployeeSalesSummary, error) {
	results, err := s.analyticsRepo.GetEmployeeSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	summaries := make([]EmployeeSalesSummary, len(results))
	for i, r := range results {
		summaries[i] = EmployeeSalesSummary{
			EmployeeID: r.EmployeeID.String(),
			FullName:   r.FullName,
			TotalSales: float64(r.TotalSales) / 100,
			OrderCount: r.OrderCount,
			Commission: float64(r.Commission) / 100,
		}
	}
	return summaries, nil
}
