package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hisably/pos-api/internal/application/service"
	"github.com/hisably/pos-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// periodFromQuery reads start_date and end_date, defaulting to the
// current month. The end date is exclusive.
func periodFromQuery(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			start = startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			end = endDate.AddDate(0, 0, 1)
		}
	}

	return start, end
}

// Summary handles getting the dashboard summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}

// TopClients handles listing the clients with the highest purchase totals
func (h *DashboardHandler) TopClients(c *gin.Context) {
	start, end := periodFromQuery(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	clients, err := h.dashboardService.GetTopClients(c.Request.Context(), start, end, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top clients retrieved successfully", clients)
}

// EmployeeSales handles listing per-employee sales totals
func (h *DashboardHandler) EmployeeSales(c *gin.Context) {
	start, end := periodFromQuery(c)

	sales, err := h.dashboardService.GetEmployeeSales(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee sales retrieved successfully", sales)
}
