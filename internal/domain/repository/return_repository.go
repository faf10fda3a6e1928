package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/pagination"
)

// SalesReturnRepository defines the interface for sales return data operations
type SalesReturnRepository interface {
	Create(ctx context.Context, ret *entity.SalesReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SalesReturnFilterParams) ([]entity.SalesReturn, int64, error)
	NextReturnNo(ctx context.Context, date time.Time) (string, error)
}

// SalesReturnFilterParams contains filtering parameters for return queries
type SalesReturnFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.DocumentStatus
	ClientID   *uuid.UUID
	EmployeeID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SalesReturnItemRepository defines the interface for return line items
type SalesReturnItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SalesReturnItem) error
	GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]entity.SalesReturnItem, error)
	DeleteByReturnID(ctx context.Context, returnID uuid.UUID) error
}
