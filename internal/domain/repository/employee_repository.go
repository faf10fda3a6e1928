package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/pagination"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByUsername(ctx context.Context, username string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *EmployeeFilterParams) ([]entity.Employee, int64, error)
	// StoreIDForEmployee returns the store an employee is assigned to, or
	// nil when the employee has no store assignment.
	StoreIDForEmployee(ctx context.Context, employeeID uuid.UUID) (*uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// EmployeeFilterParams contains filtering parameters for employee queries
type EmployeeFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Role       string
	StoreID    *uuid.UUID
	ActiveOnly bool
}

// EmployeeTransactionRepository defines the interface for the append-only
// employee money ledger. There is deliberately no Update or Delete for
// ledger rows other than DeleteByCommissionIDs, which is only used while
// compensating rows have already been written in the same transaction.
type EmployeeTransactionRepository interface {
	Create(ctx context.Context, txn *entity.EmployeeTransaction) error
	CreateBatch(ctx context.Context, txns []entity.EmployeeTransaction) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, params *TransactionFilterParams) ([]entity.EmployeeTransaction, int64, error)
	// Balance sums all signed amounts for an employee, in cents.
	Balance(ctx context.Context, employeeID uuid.UUID) (int64, error)
	GetByCommissionIDs(ctx context.Context, commissionIDs []uuid.UUID) ([]entity.EmployeeTransaction, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.TransactionType
	StartDate  *string
	EndDate    *string
}
