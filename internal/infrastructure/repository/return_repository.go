package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type salesReturnRepository struct {
	db *gorm.DB
}

// NewSalesReturnRepository creates a new sales return repository
func NewSalesReturnRepository(db *gorm.DB) domainRepo.SalesReturnRepository {
	return &salesReturnRepository{db: db}
}

func (r *salesReturnRepository) Create(ctx context.Context, ret *entity.SalesReturn) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(ret).Error
}

func (r *salesReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error) {
	var ret entity.SalesReturn
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Client").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *salesReturnRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error) {
	var ret entity.SalesReturn
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Client").
		Preload("Order").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Unit").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *salesReturnRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesReturn{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *salesReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.SalesReturn{}, "id = ?", id).Error
}

func (r *salesReturnRepository) List(ctx context.Context, params *domainRepo.SalesReturnFilterParams) ([]entity.SalesReturn, int64, error) {
	var returns []entity.SalesReturn
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesReturn{})

	if params.Search != "" {
		query = query.Where("return_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.EmployeeID != nil {
		query = query.Where("employee_id = ?", *params.EmployeeID)
	}

	if params.StartDate != nil {
		query = query.Where("return_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("return_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Employee").
		Order(sortBy + " " + sortOrder).
		Find(&returns).Error

	return returns, total, err
}

func (r *salesReturnRepository) NextReturnNo(ctx context.Context, date time.Time) (string, error) {
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesReturn{}).
		Unscoped().
		Where("return_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SRN-%s-%04d", date.Format("20060102"), count+1), nil
}

type salesReturnItemRepository struct {
	db *gorm.DB
}

// NewSalesReturnItemRepository creates a new sales return item repository
func NewSalesReturnItemRepository(db *gorm.DB) domainRepo.SalesReturnItemRepository {
	return &salesReturnItemRepository{db: db}
}

func (r *salesReturnItemRepository) CreateBatch(ctx context.Context, items []entity.SalesReturnItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *salesReturnItemRepository) GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]entity.SalesReturnItem, error) {
	var items []entity.SalesReturnItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Product").
		Preload("Unit").
		Where("return_id = ?", returnID).
		Find(&items).Error
	return items, err
}

func (r *salesReturnItemRepository) DeleteByReturnID(ctx context.Context, returnID uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Delete(&entity.SalesReturnItem{}, "return_id = ?", returnID).Error
}
