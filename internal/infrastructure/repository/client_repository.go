package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("ResponsibleEmployee").
		First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) GetByPhone(ctx context.Context, phone string) (*entity.Client, error) {
	var client entity.Client
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&client, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.Client{}, "id = ?", id).Error
}

func (r *clientRepository) List(ctx context.Context, params *domainRepo.ClientFilterParams) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Client{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ResponsibleEmployeeID != nil {
		query = query.Where("responsible_employee_id = ?", *params.ResponsibleEmployeeID)
	}

	if params.WithDebtOnly {
		query = query.Where("debt > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("ResponsibleEmployee").
		Order(sortBy + " " + sortOrder).
		Find(&clients).Error

	return clients, total, err
}

// ListWithCursor returns clients using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *clientRepository) ListWithCursor(ctx context.Context, params *domainRepo.ClientCursorFilterParams) ([]entity.Client, error) {
	var clients []entity.Client

	params.Cursor.Validate()
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Client{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ResponsibleEmployeeID != nil {
		query = query.Where("responsible_employee_id = ?", *params.ResponsibleEmployeeID)
	}

	if params.WithDebtOnly {
		query = query.Where("debt > 0")
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&clients).Error

	return clients, err
}

func (r *clientRepository) AdjustDebt(ctx context.Context, id uuid.UUID, delta int64) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Client{}).
		Where("id = ?", id).
		Update("debt", gorm.Expr("debt + ?", delta)).Error
}

func (r *clientRepository) GetDebtors(ctx context.Context, params *pagination.PaginationParams) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Client{}).Where("debt > 0")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("ResponsibleEmployee").
		Order("debt DESC").
		Find(&clients).Error

	return clients, total, err
}
