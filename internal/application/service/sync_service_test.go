package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
)

type fakeSyncRepo struct {
	counts      map[repository.SyncDocument]int64
	pending     map[repository.SyncDocument][]uuid.UUID
	synced      []uuid.UUID
	failID      uuid.UUID
	lastLimit   int
	lastListDoc repository.SyncDocument
}

func (f *fakeSyncRepo) PendingCounts(ctx context.Context) (map[repository.SyncDocument]int64, error) {
	return f.counts, nil
}

func (f *fakeSyncRepo) ListPendingIDs(ctx context.Context, doc repository.SyncDocument, limit int) ([]uuid.UUID, error) {
	f.lastListDoc = doc
	f.lastLimit = limit
	ids := f.pending[doc]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeSyncRepo) MarkSynced(ctx context.Context, doc repository.SyncDocument, id uuid.UUID, serverID string) error {
	if id == f.failID {
		return errors.New("row not found")
	}
	f.synced = append(f.synced, id)
	return nil
}

func TestGetStatusSumsPendingCounts(t *testing.T) {
	repo := &fakeSyncRepo{counts: map[repository.SyncDocument]int64{
		repository.SyncOrders:    3,
		repository.SyncReturns:   1,
		repository.SyncPurchases: 0,
		repository.SyncTransfers: 2,
	}}
	svc := NewSyncService(repo)

	status, err := svc.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), status.Total)
	assert.Equal(t, int64(3), status.Pending[repository.SyncOrders])
}

func TestListPendingRejectsUnknownDocument(t *testing.T) {
	svc := NewSyncService(&fakeSyncRepo{})

	_, err := svc.ListPending(context.Background(), "invoices", 10)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestListPendingClampsLimit(t *testing.T) {
	repo := &fakeSyncRepo{pending: map[repository.SyncDocument][]uuid.UUID{}}
	svc := NewSyncService(repo)

	_, err := svc.ListPending(context.Background(), repository.SyncOrders, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)

	_, err = svc.ListPending(context.Background(), repository.SyncOrders, 9999)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)

	_, err = svc.ListPending(context.Background(), repository.SyncTransfers, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastLimit)
	assert.Equal(t, repository.SyncTransfers, repo.lastListDoc)
}

func TestAcknowledgeContinuesPastFailures(t *testing.T) {
	bad := uuid.New()
	repo := &fakeSyncRepo{failID: bad}
	svc := NewSyncService(repo)

	acks := []Acknowledgement{
		{Document: repository.SyncOrders, ID: uuid.New(), ServerID: "srv-1"},
		{Document: repository.SyncOrders, ID: bad, ServerID: "srv-2"},
		{Document: repository.SyncReturns, ID: uuid.New(), ServerID: "srv-3"},
	}

	applied, err := svc.Acknowledge(context.Background(), acks)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Len(t, repo.synced, 2)
}

func TestAcknowledgeRejectsEmptyBatch(t *testing.T) {
	svc := NewSyncService(&fakeSyncRepo{})

	_, err := svc.Acknowledge(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestAcknowledgeStopsOnUnknownDocument(t *testing.T) {
	repo := &fakeSyncRepo{}
	svc := NewSyncService(repo)

	acks := []Acknowledgement{
		{Document: repository.SyncOrders, ID: uuid.New()},
		{Document: "invoices", ID: uuid.New()},
	}

	applied, err := svc.Acknowledge(context.Background(), acks)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Equal(t, 1, applied)
}
