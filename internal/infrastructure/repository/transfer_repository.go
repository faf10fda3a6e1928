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

type stockTransferRepository struct {
	db *gorm.DB
}

// NewStockTransferRepository creates a new stock transfer repository
func NewStockTransferRepository(db *gorm.DB) domainRepo.StockTransferRepository {
	return &stockTransferRepository{db: db}
}

func (r *stockTransferRepository) Create(ctx context.Context, transfer *entity.StockTransfer) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(transfer).Error
}

func (r *stockTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	var transfer entity.StockTransfer
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("FromStore").
		Preload("ToStore").
		First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *stockTransferRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	var transfer entity.StockTransfer
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("FromStore").
		Preload("ToStore").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Unit").
		First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *stockTransferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockTransfer{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *stockTransferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.StockTransfer{}, "id = ?", id).Error
}

func (r *stockTransferRepository) List(ctx context.Context, params *domainRepo.StockTransferFilterParams) ([]entity.StockTransfer, int64, error) {
	var transfers []entity.StockTransfer
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockTransfer{})

	if params.Search != "" {
		query = query.Where("reference_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.FromStoreID != nil {
		query = query.Where("from_store_id = ?", *params.FromStoreID)
	}

	if params.ToStoreID != nil {
		query = query.Where("to_store_id = ?", *params.ToStoreID)
	}

	if params.StartDate != nil {
		query = query.Where("transfer_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("transfer_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("FromStore").
		Preload("ToStore").
		Order("created_at DESC").
		Find(&transfers).Error

	return transfers, total, err
}

func (r *stockTransferRepository) NextReferenceNo(ctx context.Context, date time.Time) (string, error) {
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockTransfer{}).
		Unscoped().
		Where("transfer_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TRF-%s-%04d", date.Format("20060102"), count+1), nil
}

type stockTransferItemRepository struct {
	db *gorm.DB
}

// NewStockTransferItemRepository creates a new stock transfer item repository
func NewStockTransferItemRepository(db *gorm.DB) domainRepo.StockTransferItemRepository {
	return &stockTransferItemRepository{db: db}
}

func (r *stockTransferItemRepository) CreateBatch(ctx context.Context, items []entity.StockTransferItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *stockTransferItemRepository) GetByTransferID(ctx context.Context, transferID uuid.UUID) ([]entity.StockTransferItem, error) {
	var items []entity.StockTransferItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Product").
		Preload("Unit").
		Where("transfer_id = ?", transferID).
		Find(&items).Error
	return items, err
}

func (r *stockTransferItemRepository) DeleteByTransferID(ctx context.Context, transferID uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Delete(&entity.StockTransferItem{}, "transfer_id = ?", transferID).Error
}
