package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/hisably/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// EmployeeService handles employee management and the employee money ledger
type EmployeeService struct {
	employeeRepo   repository.EmployeeRepository
	txnRepo        repository.EmployeeTransactionRepository
	commissionRepo repository.CommissionRepository
	storeRepo      repository.StoreRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	txnRepo repository.EmployeeTransactionRepository,
	commissionRepo repository.CommissionRepository,
	storeRepo repository.StoreRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo:   employeeRepo,
		txnRepo:        txnRepo,
		commissionRepo: commissionRepo,
		storeRepo:      storeRepo,
	}
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	FullName string
	Username string
	Password string
	Email    *string
	Phone    *string
	Role     string
	StoreID  *uuid.UUID
}

// UpdateEmployeeInput represents the update employee input
type UpdateEmployeeInput struct {
	FullName *string
	Email    *string
	Phone    *string
	Role     *string
	StoreID  *uuid.UUID
	IsActive *bool
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleSeller:
		return true
	}
	return false
}

// CreateEmployee creates a new employee account
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	existing, err := s.employeeRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	if !validRole(input.Role) {
		return nil, apperror.NewBadRequestError("Unknown role")
	}

	if input.StoreID != nil {
		store, err := s.storeRepo.GetByID(ctx, *input.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, apperror.NewNotFoundError("Store")
		}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	employee := &entity.Employee{
		FullName: input.FullName,
		Username: input.Username,
		Password: hashed,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     input.Role,
		StoreID:  input.StoreID,
		IsActive: true,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"username": employee.Username,
		"role":     employee.Role,
	}).Info("employee created")

	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// UpdateEmployee updates an employee's profile and assignment
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	if input.FullName != nil {
		employee.FullName = *input.FullName
	}
	if input.Email != nil {
		employee.Email = input.Email
	}
	if input.Phone != nil {
		employee.Phone = input.Phone
	}
	if input.Role != nil {
		if !validRole(*input.Role) {
			return nil, apperror.NewBadRequestError("Unknown role")
		}
		employee.Role = *input.Role
	}
	if input.StoreID != nil {
		store, err := s.storeRepo.GetByID(ctx, *input.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, apperror.NewNotFoundError("Store")
		}
		employee.StoreID = input.StoreID
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// DeleteEmployee soft deletes an employee
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NewNotFoundError("Employee")
	}
	return s.employeeRepo.Delete(ctx, id)
}

// ListEmployees lists employees with filtering
func (s *EmployeeService) ListEmployees(ctx context.Context, params *repository.EmployeeFilterParams) (*pagination.PaginatedResult[entity.Employee], error) {
	employees, total, err := s.employeeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(employees, pag), nil
}

// AddTransactionInput represents a manual ledger entry
type AddTransactionInput struct {
	EmployeeID  uuid.UUID
	CreatedByID uuid.UUID
	Type        enum.TransactionType
	Amount      float64
	Notes       *string
	Date        time.Time
}

// creditTypes lists the transaction types that increase an employee's
// balance. Everything else is recorded as a negative amount.
func isCreditType(t enum.TransactionType) bool {
	switch t {
	case enum.TransactionCommission, enum.TransactionSalary, enum.TransactionBonus:
		return true
	}
	return false
}

// AddTransaction records a manual entry in the employee money ledger.
// The sign of the stored amount follows the transaction type, so
// callers always pass a positive amount.
func (s *EmployeeService) AddTransaction(ctx context.Context, input *AddTransactionInput) (*entity.EmployeeTransaction, error) {
	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("Unknown transaction type")
	}
	if input.Type == enum.TransactionCommission {
		return nil, apperror.NewBadRequestError("Commission entries are written by document settlement")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	amountCents := int64(input.Amount * 100)
	if !isCreditType(input.Type) {
		amountCents = -amountCents
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	createdBy := input.CreatedByID
	txn := &entity.EmployeeTransaction{
		EmployeeID:  input.EmployeeID,
		CreatedByID: &createdBy,
		Type:        input.Type,
		Amount:      amountCents,
		Notes:       input.Notes,
		Date:        date,
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"employee_id": input.EmployeeID,
		"type":        input.Type,
		"amount":      amountCents,
	}).Info("ledger entry recorded")

	return txn, nil
}

// ListTransactions lists an employee's ledger entries
func (s *EmployeeService) ListTransactions(ctx context.Context, employeeID uuid.UUID, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.EmployeeTransaction], error) {
	txns, total, err := s.txnRepo.ListByEmployee(ctx, employeeID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// Balance returns an employee's current ledger balance as a decimal amount
func (s *EmployeeService) Balance(ctx context.Context, employeeID uuid.UUID) (float64, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	if employee == nil {
		return 0, apperror.NewNotFoundError("Employee")
	}

	cents, err := s.txnRepo.Balance(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return float64(cents) / 100, nil
}

// ListCommissions lists an employee's commission rows
func (s *EmployeeService) ListCommissions(ctx context.Context, employeeID uuid.UUID, params *repository.CommissionFilterParams) (*pagination.PaginatedResult[entity.Commission], error) {
	commissions, total, err := s.commissionRepo.ListByEmployee(ctx, employeeID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(commissions, pag), nil
}

// CommissionTotal sums an employee's commissions over a date range
func (s *EmployeeService) CommissionTotal(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (float64, error) {
	cents, err := s.commissionRepo.TotalByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return 0, err
	}
	return float64(cents) / 100, nil
}
