package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/application/service"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/internal/presentation/http/dto/request"
	"github.com/hisably/pos-api/internal/presentation/http/dto/response"
	"github.com/hisably/pos-api/pkg/pagination"
)

// TransferHandler handles stock transfer HTTP requests
type TransferHandler struct {
	transferService *service.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// List handles listing stock transfers
func (h *TransferHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.StockTransferFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.DocumentStatus(statusInt)
			params.Status = &status
		}
	}

	if fromStoreIDStr := c.Query("from_store_id"); fromStoreIDStr != "" {
		if fromStoreID, err := uuid.Parse(fromStoreIDStr); err == nil {
			params.FromStoreID = &fromStoreID
		}
	}

	if toStoreIDStr := c.Query("to_store_id"); toStoreIDStr != "" {
		if toStoreID, err := uuid.Parse(toStoreIDStr); err == nil {
			params.ToStoreID = &toStoreID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.transferService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transfers retrieved successfully", result)
}

// Create handles moving stock between stores
func (h *TransferHandler) Create(c *gin.Context) {
	employeeID := GetEmployeeID(c)
	if employeeID == nil {
		response.Unauthorized(c, "Employee not authenticated")
		return
	}

	var req request.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.TransferItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.TransferItemInput{
			ProductID: item.ProductID,
			UnitID:    item.UnitID,
			Quantity:  item.Quantity,
		}
	}

	transferDate := time.Now()
	if req.TransferDate != nil {
		transferDate = *req.TransferDate
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), &service.CreateTransferInput{
		EmployeeID:   *employeeID,
		FromStoreID:  req.FromStoreID,
		ToStoreID:    req.ToStoreID,
		TransferDate: transferDate,
		Notes:        req.Notes,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transfer created successfully", transfer)
}

// Get handles getting a single transfer
func (h *TransferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer retrieved successfully", transfer)
}

// Revert handles moving transferred stock back to the source store
func (h *TransferHandler) Revert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.RevertTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer reverted successfully", transfer)
}
