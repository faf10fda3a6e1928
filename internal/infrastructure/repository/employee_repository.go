package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Store").
		First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	var employee entity.Employee
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&employee, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.Employee{}, "id = ?", id).Error
}

func (r *employeeRepository) List(ctx context.Context, params *domainRepo.EmployeeFilterParams) ([]entity.Employee, int64, error) {
	var employees []entity.Employee
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Employee{})

	if params.Search != "" {
		query = query.Where("full_name ILIKE ? OR username ILIKE ? OR phone ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Role != "" {
		query = query.Where("role = ?", params.Role)
	}

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Store").
		Order("full_name ASC").
		Find(&employees).Error

	return employees, total, err
}

func (r *employeeRepository) StoreIDForEmployee(ctx context.Context, employeeID uuid.UUID) (*uuid.UUID, error) {
	var employee entity.Employee
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Select("store_id").
		First(&employee, "id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return employee.StoreID, nil
}

func (r *employeeRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Employee{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

type employeeTransactionRepository struct {
	db *gorm.DB
}

// NewEmployeeTransactionRepository creates a new employee transaction repository
func NewEmployeeTransactionRepository(db *gorm.DB) domainRepo.EmployeeTransactionRepository {
	return &employeeTransactionRepository{db: db}
}

func (r *employeeTransactionRepository) Create(ctx context.Context, txn *entity.EmployeeTransaction) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(txn).Error
}

func (r *employeeTransactionRepository) CreateBatch(ctx context.Context, txns []entity.EmployeeTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&txns).Error
}

func (r *employeeTransactionRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, params *domainRepo.TransactionFilterParams) ([]entity.EmployeeTransaction, int64, error) {
	var txns []entity.EmployeeTransaction
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.EmployeeTransaction{}).
		Where("employee_id = ?", employeeID)

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC, created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

func (r *employeeTransactionRepository) Balance(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	var balance int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.EmployeeTransaction{}).
		Where("employee_id = ?", employeeID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	return balance, err
}

func (r *employeeTransactionRepository) GetByCommissionIDs(ctx context.Context, commissionIDs []uuid.UUID) ([]entity.EmployeeTransaction, error) {
	if len(commissionIDs) == 0 {
		return nil, nil
	}
	var txns []entity.EmployeeTransaction
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("related_commission_id IN ?", commissionIDs).
		Find(&txns).Error
	return txns, err
}
