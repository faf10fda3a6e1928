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

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) Update(ctx context.Context, purchase *entity.Purchase) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Supplier").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Supplier").
		Preload("Store").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Unit").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Purchase{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.Purchase{}, "id = ?", id).Error
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Purchase{})

	if params.Search != "" {
		query = query.Where("reference_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.StartDate != nil {
		query = query.Where("purchase_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("purchase_date <= ?", *params.EndDate)
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
		Preload("Supplier").
		Preload("Store").
		Order(sortBy + " " + sortOrder).
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) NextReferenceNo(ctx context.Context, date time.Time) (string, error) {
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Purchase{}).
		Unscoped().
		Where("purchase_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PUR-%s-%04d", date.Format("20060102"), count+1), nil
}

type purchaseItemRepository struct {
	db *gorm.DB
}

// NewPurchaseItemRepository creates a new purchase item repository
func NewPurchaseItemRepository(db *gorm.DB) domainRepo.PurchaseItemRepository {
	return &purchaseItemRepository{db: db}
}

func (r *purchaseItemRepository) CreateBatch(ctx context.Context, items []entity.PurchaseItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *purchaseItemRepository) GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]entity.PurchaseItem, error) {
	var items []entity.PurchaseItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Product").
		Preload("Unit").
		Where("purchase_id = ?", purchaseID).
		Find(&items).Error
	return items, err
}

func (r *purchaseItemRepository) DeleteByPurchaseID(ctx context.Context, purchaseID uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Delete(&entity.PurchaseItem{}, "purchase_id = ?", purchaseID).Error
}

type purchaseReturnRepository struct {
	db *gorm.DB
}

// NewPurchaseReturnRepository creates a new purchase return repository
func NewPurchaseReturnRepository(db *gorm.DB) domainRepo.PurchaseReturnRepository {
	return &purchaseReturnRepository{db: db}
}

func (r *purchaseReturnRepository) Create(ctx context.Context, ret *entity.PurchaseReturn) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(ret).Error
}

func (r *purchaseReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	var ret entity.PurchaseReturn
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Supplier").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *purchaseReturnRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	var ret entity.PurchaseReturn
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Supplier").
		Preload("Store").
		Preload("Purchase").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Unit").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *purchaseReturnRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseReturn{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.PurchaseReturn{}, "id = ?", id).Error
}

func (r *purchaseReturnRepository) List(ctx context.Context, params *domainRepo.PurchaseReturnFilterParams) ([]entity.PurchaseReturn, int64, error) {
	var returns []entity.PurchaseReturn
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseReturn{})

	if params.Search != "" {
		query = query.Where("return_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
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

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Supplier").
		Preload("Store").
		Order("created_at DESC").
		Find(&returns).Error

	return returns, total, err
}

func (r *purchaseReturnRepository) NextReturnNo(ctx context.Context, date time.Time) (string, error) {
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseReturn{}).
		Unscoped().
		Where("return_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PRN-%s-%04d", date.Format("20060102"), count+1), nil
}

type purchaseReturnItemRepository struct {
	db *gorm.DB
}

// NewPurchaseReturnItemRepository creates a new purchase return item repository
func NewPurchaseReturnItemRepository(db *gorm.DB) domainRepo.PurchaseReturnItemRepository {
	return &purchaseReturnItemRepository{db: db}
}

func (r *purchaseReturnItemRepository) CreateBatch(ctx context.Context, items []entity.PurchaseReturnItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *purchaseReturnItemRepository) GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]entity.PurchaseReturnItem, error) {
	var items []entity.PurchaseReturnItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Product").
		Preload("Unit").
		Where("return_id = ?", returnID).
		Find(&items).Error
	return items, err
}

func (r *purchaseReturnItemRepository) DeleteByReturnID(ctx context.Context, returnID uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Delete(&entity.PurchaseReturnItem{}, "return_id = ?", returnID).Error
}
