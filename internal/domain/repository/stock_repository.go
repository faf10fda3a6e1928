package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/pkg/pagination"
)

// StockRepository defines the interface for per-store stock levels.
// Quantities are in the product's base unit and may go negative; the
// level row itself is never deleted once created.
type StockRepository interface {
	// Adjust atomically applies a signed delta to the stock level,
	// creating the level row at the delta if it does not exist yet.
	Adjust(ctx context.Context, storeID, productID uuid.UUID, delta float64) error
	// Set overwrites the stock level, used by manual stock counts.
	Set(ctx context.Context, storeID, productID uuid.UUID, quantity float64) error
	Quantity(ctx context.Context, storeID, productID uuid.UUID) (float64, error)
	Get(ctx context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.StockLevel, int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockLevel, error)
	// TotalQuantity sums a product's stock across all stores.
	TotalQuantity(ctx context.Context, productID uuid.UUID) (float64, error)
	// LowStock returns levels at or below the product's quantity alert.
	LowStock(ctx context.Context, storeID *uuid.UUID) ([]entity.StockLevel, error)
}
