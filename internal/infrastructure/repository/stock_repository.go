package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

// Adjust upserts the (store, product) level and applies the delta in a
// single statement, so concurrent settlements never lose an update.
func (r *stockRepository) Adjust(ctx context.Context, storeID, productID uuid.UUID, delta float64) error {
	level := entity.StockLevel{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  delta,
	}
	return dbFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("stock_levels.quantity + ?", delta),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(&level).Error
}

func (r *stockRepository) Set(ctx context.Context, storeID, productID uuid.UUID, quantity float64) error {
	level := entity.StockLevel{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return dbFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   quantity,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(&level).Error
}

func (r *stockRepository) Quantity(ctx context.Context, storeID, productID uuid.UUID) (float64, error) {
	var level entity.StockLevel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		First(&level, "store_id = ? AND product_id = ?", storeID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return level.Quantity, err
}

func (r *stockRepository) Get(ctx context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error) {
	var level entity.StockLevel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Product").
		First(&level, "store_id = ? AND product_id = ?", storeID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &level, err
}

func (r *stockRepository) ListByStore(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.StockLevel, int64, error) {
	var levels []entity.StockLevel
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockLevel{}).
		Where("store_id = ?", storeID)

	if search != "" {
		query = query.Joins("JOIN products ON products.id = stock_levels.product_id").
			Where("products.name ILIKE ? OR products.code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.BaseUnit").
		Order("stock_levels.created_at ASC").
		Find(&levels).Error

	return levels, total, err
}

func (r *stockRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Store").
		Where("product_id = ?", productID).
		Find(&levels).Error
	return levels, err
}

func (r *stockRepository) TotalQuantity(ctx context.Context, productID uuid.UUID) (float64, error) {
	var total float64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockLevel{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *stockRepository) LowStock(ctx context.Context, storeID *uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StockLevel{}).
		Joins("JOIN products ON products.id = stock_levels.product_id").
		Where("stock_levels.quantity <= products.quantity_alert")

	if storeID != nil {
		query = query.Where("stock_levels.store_id = ?", *storeID)
	}

	err := query.Preload("Product").Preload("Store").Find(&levels).Error
	return levels, err
}
