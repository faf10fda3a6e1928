package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// SyncService tracks which documents the central server has acknowledged.
// Documents are created locally and pushed later; until acknowledged they
// count as pending.
type SyncService struct {
	syncRepo repository.SyncRepository
}

// NewSyncService creates a new sync service
func NewSyncService(syncRepo repository.SyncRepository) *SyncService {
	return &SyncService{syncRepo: syncRepo}
}

// SyncStatus summarizes the pending sync backlog
type SyncStatus struct {
	Pending map[repository.SyncDocument]int64 `json:"pending"`
	Total   int64                             `json:"total"`
}

// GetStatus returns pending counts per document type
func (s *SyncService) GetStatus(ctx context.Context) (*SyncStatus, error) {
	counts, err := s.syncRepo.PendingCounts(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	return &SyncStatus{Pending: counts, Total: total}, nil
}

// ListPending returns IDs of unsynced documents of one type, oldest first
func (s *SyncService) ListPending(ctx context.Context, doc repository.SyncDocument, limit int) ([]uuid.UUID, error) {
	if !doc.Valid() {
		return nil, apperror.NewBadRequestError("Unknown document type")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.syncRepo.ListPendingIDs(ctx, doc, limit)
}

// Acknowledgement records one document the central server accepted
type Acknowledgement struct {
	Document repository.SyncDocument `json:"document"`
	ID       uuid.UUID               `json:"id"`
	ServerID string                  `json:"server_id"`
}

// Acknowledge marks a batch of documents as synced. Failures are
// reported per entry so one bad ID does not block the rest.
func (s *SyncService) Acknowledge(ctx context.Context, acks []Acknowledgement) (int, error) {
	if len(acks) == 0 {
		return 0, apperror.NewBadRequestError("Nothing to acknowledge")
	}

	applied := 0
	for _, ack := range acks {
		if !ack.Document.Valid() {
			return applied, apperror.NewBadRequestError("Unknown document type")
		}
		if err := s.syncRepo.MarkSynced(ctx, ack.Document, ack.ID, ack.ServerID); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"document": ack.Document,
				"id":       ack.ID,
			}).Warn("sync acknowledgement failed")
			continue
		}
		applied++
	}

	return applied, nil
}
