package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/pagination"
)

// CommissionRepository defines the interface for commission data operations.
// Commission rows are only ever written and removed as part of settling or
// reverting a source document; they are never edited in place.
type CommissionRepository interface {
	Create(ctx context.Context, commission *entity.Commission) error
	CreateBatch(ctx context.Context, commissions []entity.Commission) error
	GetBySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) ([]entity.Commission, error)
	DeleteBySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, params *CommissionFilterParams) ([]entity.Commission, int64, error)
	// TotalByEmployee sums commission amounts, in cents, over a date range.
	TotalByEmployee(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int64, error)
}

// CommissionFilterParams contains filtering parameters for commission queries
type CommissionFilterParams struct {
	Pagination *pagination.PaginationParams
	SourceType *enum.SourceType
	StartDate  *time.Time
	EndDate    *time.Time
}
