package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// reportPageSize bounds how many rows a single export pulls.
const reportPageSize = 10000

// ReportService builds spreadsheet exports of sales and commission data
type ReportService struct {
	orderRepo     repository.SalesOrderRepository
	analyticsRepo repository.AnalyticsRepository
	clientRepo    repository.ClientRepository
}

// NewReportService creates a new report service
func NewReportService(
	orderRepo repository.SalesOrderRepository,
	analyticsRepo repository.AnalyticsRepository,
	clientRepo repository.ClientRepository,
) *ReportService {
	return &ReportService{
		orderRepo:     orderRepo,
		analyticsRepo: analyticsRepo,
		clientRepo:    clientRepo,
	}
}

// ExportSalesReport builds a spreadsheet of orders over a date range
func (s *ReportService) ExportSalesReport(ctx context.Context, start, end time.Time) (*excelize.File, error) {
	params := &repository.SalesOrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: reportPageSize},
		StartDate:  &start,
		EndDate:    &end,
		SortBy:     "order_date",
		SortOrder:  "ASC",
	}
	orders, _, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice", "Date", "Seller", "Client", "Payment", "Total", "Paid", "Remaining", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, order := range orders {
		row := i + 2
		clientName := ""
		if order.Client != nil {
			clientName = order.Client.Name
		}
		status := "active"
		if order.Status == enum.DocumentStatusReverted {
			status = "reverted"
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), order.InvoiceNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), order.OrderDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), order.Employee.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), clientName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), order.PaymentType.String())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), float64(order.TotalAmount)/100)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), float64(order.AmountPaid)/100)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), float64(order.AmountRemaining)/100)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), status)
	}

	return f, nil
}

// ExportCommissionReport builds a spreadsheet of per-employee sales and
// commission totals over a date range
func (s *ReportService) ExportCommissionReport(ctx context.Context, start, end time.Time) (*excelize.File, error) {
	results, err := s.analyticsRepo.GetEmployeeSales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Commissions"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee", "Orders", "Total Sales", "Commission"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range results {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.OrderCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), float64(r.TotalSales)/100)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), float64(r.Commission)/100)
	}

	return f, nil
}

// ExportDebtorsReport builds a spreadsheet of clients with outstanding debt
func (s *ReportService) ExportDebtorsReport(ctx context.Context) (*excelize.File, error) {
	params := &pagination.PaginationParams{Page: 1, PerPage: reportPageSize}
	debtors, _, err := s.clientRepo.GetDebtors(ctx, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Debtors"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Client", "Phone", "Debt"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, client := range debtors {
		row := i + 2
		phone := ""
		if client.Phone != nil {
			phone = *client.Phone
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), client.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), phone)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), float64(client.Debt)/100)
	}

	return f, nil
}
