package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/pagination"
)

// StockTransferRepository defines the interface for stock transfer data operations
type StockTransferRepository interface {
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StockTransferFilterParams) ([]entity.StockTransfer, int64, error)
	NextReferenceNo(ctx context.Context, date time.Time) (string, error)
}

// StockTransferFilterParams contains filtering parameters for transfer queries
type StockTransferFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Status      *enum.DocumentStatus
	FromStoreID *uuid.UUID
	ToStoreID   *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
}

// StockTransferItemRepository defines the interface for transfer line items
type StockTransferItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.StockTransferItem) error
	GetByTransferID(ctx context.Context, transferID uuid.UUID) ([]entity.StockTransferItem, error)
	DeleteByTransferID(ctx context.Context, transferID uuid.UUID) error
}
