package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/pkg/pagination"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SupplierFilterParams) ([]entity.Supplier, int64, error)
	// AdjustDebt atomically applies a signed delta, in cents, to the
	// supplier's debt. Positive deltas mean the business owes more.
	AdjustDebt(ctx context.Context, id uuid.UUID, delta int64) error
}

// SupplierFilterParams contains filtering parameters for supplier queries
type SupplierFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	Type         string
	WithDebtOnly bool
	SortBy       string
	SortOrder    string
}
