package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hisably/pos-api/internal/application/service"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/internal/presentation/http/dto/response"
)

// SyncHandler handles sync bookkeeping HTTP requests
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Status handles getting pending sync counts per document type
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.syncService.GetStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sync status retrieved successfully", status)
}

// Pending handles listing unsynced document IDs of one type
func (h *SyncHandler) Pending(c *gin.Context) {
	doc := repository.SyncDocument(c.Param("document"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	ids, err := h.syncService.ListPending(c.Request.Context(), doc, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending documents retrieved successfully", ids)
}

// Acknowledge handles marking documents as accepted by the central server
func (h *SyncHandler) Acknowledge(c *gin.Context) {
	var req struct {
		Acknowledgements []service.Acknowledgement `json:"acknowledgements" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	applied, err := h.syncService.Acknowledge(c.Request.Context(), req.Acknowledgements)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Acknowledgements applied successfully", gin.H{"applied": applied})
}
