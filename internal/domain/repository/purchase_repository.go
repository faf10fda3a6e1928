package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/pagination"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	Update(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	NextReferenceNo(ctx context.Context, date time.Time) (string, error)
}

// PurchaseFilterParams contains filtering parameters for purchase queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.DocumentStatus
	SupplierID *uuid.UUID
	StoreID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PurchaseItemRepository defines the interface for purchase line items
type PurchaseItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.PurchaseItem) error
	GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]entity.PurchaseItem, error)
	DeleteByPurchaseID(ctx context.Context, purchaseID uuid.UUID) error
}

// PurchaseReturnRepository defines the interface for purchase return data operations
type PurchaseReturnRepository interface {
	Create(ctx context.Context, ret *entity.PurchaseReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseReturnFilterParams) ([]entity.PurchaseReturn, int64, error)
	NextReturnNo(ctx context.Context, date time.Time) (string, error)
}

// PurchaseReturnFilterParams contains filtering parameters for purchase return queries
type PurchaseReturnFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.DocumentStatus
	SupplierID *uuid.UUID
	StoreID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// PurchaseReturnItemRepository defines the interface for purchase return line items
type PurchaseReturnItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.PurchaseReturnItem) error
	GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]entity.PurchaseReturnItem, error)
	DeleteByReturnID(ctx context.Context, returnID uuid.UUID) error
}
