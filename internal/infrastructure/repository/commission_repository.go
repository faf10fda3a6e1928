package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) domainRepo.CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, commission *entity.Commission) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(commission).Error
}

func (r *commissionRepository) CreateBatch(ctx context.Context, commissions []entity.Commission) error {
	if len(commissions) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&commissions).Error
}

func (r *commissionRepository) GetBySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) ([]entity.Commission, error) {
	var commissions []entity.Commission
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("source_id = ? AND source_type = ?", sourceID, sourceType).
		Find(&commissions).Error
	return commissions, err
}

func (r *commissionRepository) DeleteBySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Delete(&entity.Commission{}, "source_id = ? AND source_type = ?", sourceID, sourceType).Error
}

func (r *commissionRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, params *domainRepo.CommissionFilterParams) ([]entity.Commission, int64, error) {
	var commissions []entity.Commission
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Commission{}).
		Where("employee_id = ?", employeeID)

	if params.SourceType != nil {
		query = query.Where("source_type = ?", *params.SourceType)
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
		Find(&commissions).Error

	return commissions, total, err
}

func (r *commissionRepository) TotalByEmployee(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int64, error) {
	var total int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Commission{}).
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
