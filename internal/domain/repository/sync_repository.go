package repository

import (
	"context"

	"github.com/google/uuid"
)

// SyncDocument names a document type that participates in offline sync
type SyncDocument string

const (
	SyncOrders          SyncDocument = "orders"
	SyncReturns         SyncDocument = "returns"
	SyncPurchases       SyncDocument = "purchases"
	SyncPurchaseReturns SyncDocument = "purchase_returns"
	SyncTransfers       SyncDocument = "transfers"
)

// SyncDocuments lists every document type in a stable order
var SyncDocuments = []SyncDocument{
	SyncOrders, SyncReturns, SyncPurchases, SyncPurchaseReturns, SyncTransfers,
}

// Valid reports whether the value names a known sync document type
func (d SyncDocument) Valid() bool {
	for _, known := range SyncDocuments {
		if d == known {
			return true
		}
	}
	return false
}

// SyncRepository defines the interface for offline sync bookkeeping
// across all document tables.
type SyncRepository interface {
	// PendingCounts returns how many unsynced rows each document type has.
	PendingCounts(ctx context.Context) (map[SyncDocument]int64, error)
	// ListPendingIDs returns IDs of unsynced rows for one document type.
	ListPendingIDs(ctx context.Context, doc SyncDocument, limit int) ([]uuid.UUID, error)
	// MarkSynced stamps a row as acknowledged by the central server.
	MarkSynced(ctx context.Context, doc SyncDocument, id uuid.UUID, serverID string) error
}
