package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/hisably/pos-api/internal/application/service"
	"github.com/hisably/pos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles Excel report export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func writeWorkbook(c *gin.Context, file *excelize.File, name string) {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := file.Write(c.Writer); err != nil {
		logrus.WithError(err).Error("Failed to write report workbook")
	}
}

// Sales handles exporting the sales report
func (h *ReportHandler) Sales(c *gin.Context) {
	start, end := periodFromQuery(c)

	file, err := h.reportService.ExportSalesReport(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	writeWorkbook(c, file, "sales_report")
}

// Commissions handles exporting the commission report
func (h *ReportHandler) Commissions(c *gin.Context) {
	start, end := periodFromQuery(c)

	file, err := h.reportService.ExportCommissionReport(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	writeWorkbook(c, file, "commission_report")
}

// Debtors handles exporting the debtors report
func (h *ReportHandler) Debtors(c *gin.Context) {
	file, err := h.reportService.ExportDebtorsReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	writeWorkbook(c, file, "debtors_report")
}
