package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hisably/pos-api/internal/application/service"
	"github.com/hisably/pos-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles business settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles getting the business settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles partially updating the business settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		BusinessName         *string  `json:"business_name" binding:"omitempty,min=1,max=255"`
		Currency             *string  `json:"currency" binding:"omitempty,max=10"`
		OrderCommissionRate  *float64 `json:"order_commission_rate"`
		ReturnCommissionRate *float64 `json:"return_commission_rate"`
		ReceiptFooter        *string  `json:"receipt_footer"`
		LowStockAlerts       *bool    `json:"low_stock_alerts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		BusinessName:         req.BusinessName,
		Currency:             req.Currency,
		OrderCommissionRate:  req.OrderCommissionRate,
		ReturnCommissionRate: req.ReturnCommissionRate,
		ReceiptFooter:        req.ReceiptFooter,
		LowStockAlerts:       req.LowStockAlerts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
