package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// syncTables maps each sync document type to its table name. Every table
// listed here embeds the sync columns.
var syncTables = map[domainRepo.SyncDocument]string{
	domainRepo.SyncOrders:          "sales_orders",
	domainRepo.SyncReturns:         "sales_returns",
	domainRepo.SyncPurchases:       "purchases",
	domainRepo.SyncPurchaseReturns: "purchase_returns",
	domainRepo.SyncTransfers:       "stock_transfers",
}

type syncRepository struct {
	db *gorm.DB
}

// NewSyncRepository creates a new sync repository
func NewSyncRepository(db *gorm.DB) domainRepo.SyncRepository {
	return &syncRepository{db: db}
}

func (r *syncRepository) PendingCounts(ctx context.Context) (map[domainRepo.SyncDocument]int64, error) {
	counts := make(map[domainRepo.SyncDocument]int64, len(syncTables))
	for _, doc := range domainRepo.SyncDocuments {
		var count int64
		err := dbFrom(ctx, r.db).WithContext(ctx).Table(syncTables[doc]).
			Where("is_synced = ? AND deleted_at IS NULL", false).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		counts[doc] = count
	}
	return counts, nil
}

func (r *syncRepository) ListPendingIDs(ctx context.Context, doc domainRepo.SyncDocument, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := dbFrom(ctx, r.db).WithContext(ctx).Table(syncTables[doc]).
		Where("is_synced = ? AND deleted_at IS NULL", false).
		Order("last_modified ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *syncRepository) MarkSynced(ctx context.Context, doc domainRepo.SyncDocument, id uuid.UUID, serverID string) error {
	updates := map[string]interface{}{
		"is_synced":  true,
		"updated_at": time.Now(),
	}
	if serverID != "" {
		updates["server_id"] = serverID
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Table(syncTables[doc]).
		Where("id = ?", id).
		Updates(updates).Error
}
