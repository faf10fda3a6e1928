package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ClientFilterParams) ([]entity.Client, int64, error)
	ListWithCursor(ctx context.Context, params *ClientCursorFilterParams) ([]entity.Client, error)
	// AdjustDebt atomically applies a signed delta, in cents, to the
	// client's debt. Positive deltas mean the client owes more.
	AdjustDebt(ctx context.Context, id uuid.UUID, delta int64) error
	GetDebtors(ctx context.Context, params *pagination.PaginationParams) ([]entity.Client, int64, error)
}

// ClientFilterParams contains filtering parameters for client queries
type ClientFilterParams struct {
	Pagination            *pagination.PaginationParams
	Search                string
	ResponsibleEmployeeID *uuid.UUID
	WithDebtOnly          bool
	SortBy                string
	SortOrder             string
}

// ClientCursorFilterParams contains cursor-based filtering for client queries
type ClientCursorFilterParams struct {
	Cursor                *pagination.CursorParams
	Search                string
	ResponsibleEmployeeID *uuid.UUID
	WithDebtOnly          bool
}
