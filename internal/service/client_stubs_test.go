package service

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/models"
)

// fakeLocalSyncRepository is a map-backed LocalSyncRepository with optional
// fault injection per operation.
type fakeLocalSyncRepository struct {
	caches      map[string][]models.Transaction
	checkpoints map[string]time.Time

	readCacheErr       error
	writeCacheErr      error
	readCheckpointErr  error
	writeCheckpointErr error

	cacheWrites      int
	checkpointWrites int
}

func newFakeLocalSyncRepository() *fakeLocalSyncRepository {
	return &fakeLocalSyncRepository{
		caches:      make(map[string][]models.Transaction),
		checkpoints: make(map[string]time.Time),
	}
}

func (f *fakeLocalSyncRepository) ReadCache(_ context.Context, groupID string) ([]models.Transaction, error) {
	if f.readCacheErr != nil {
		return nil, f.readCacheErr
	}
	return f.caches[groupID], nil
}

func (f *fakeLocalSyncRepository) WriteCache(_ context.Context, groupID string, transactions []models.Transaction) error {
	if f.writeCacheErr != nil {
		return f.writeCacheErr
	}
	f.cacheWrites++
	f.caches[groupID] = transactions
	return nil
}

func (f *fakeLocalSyncRepository) ReadCheckpoint(_ context.Context, groupID string) (time.Time, error) {
	if f.readCheckpointErr != nil {
		return time.Time{}, f.readCheckpointErr
	}
	return f.checkpoints[groupID], nil
}

func (f *fakeLocalSyncRepository) WriteCheckpoint(_ context.Context, groupID string, checkpoint time.Time) error {
	if f.writeCheckpointErr != nil {
		return f.writeCheckpointErr
	}
	f.checkpointWrites++
	f.checkpoints[groupID] = checkpoint
	return nil
}

func (f *fakeLocalSyncRepository) DropGroup(_ context.Context, groupID string) error {
	delete(f.caches, groupID)
	delete(f.checkpoints, groupID)
	return nil
}

// stubServerAdapter delegates the sync-facing methods to func fields and
// returns zero values for everything else.
type stubServerAdapter struct {
	fetchChangelogFn     func(ctx context.Context, groupID string, since time.Time) (models.ChangelogResponse, error)
	checkPendingFn       func(ctx context.Context, groupID string, since time.Time) (bool, error)
	fetchReconcileFeedFn func(ctx context.Context, groupID string) (models.ReconcileResponse, error)
}

func (s *stubServerAdapter) SetToken(string) {}
func (s *stubServerAdapter) Token() string   { return "" }

func (s *stubServerAdapter) Register(context.Context, models.User) (models.User, error) {
	return models.User{}, nil
}

func (s *stubServerAdapter) Login(context.Context, models.User) (models.User, error) {
	return models.User{}, nil
}

func (s *stubServerAdapter) CreateGroup(context.Context, string) (models.Group, error) {
	return models.Group{}, nil
}

func (s *stubServerAdapter) GetGroup(context.Context, string) (models.Group, error) {
	return models.Group{}, nil
}

func (s *stubServerAdapter) JoinGroup(context.Context, string) error  { return nil }
func (s *stubServerAdapter) LeaveGroup(context.Context, string) error { return nil }

func (s *stubServerAdapter) CreateTransaction(context.Context, models.TransactionDraft) (models.Transaction, error) {
	return models.Transaction{}, nil
}

func (s *stubServerAdapter) UpdateTransaction(context.Context, string, models.TransactionUpdate) (models.Transaction, error) {
	return models.Transaction{}, nil
}

func (s *stubServerAdapter) DeleteTransaction(context.Context, string) error { return nil }

func (s *stubServerAdapter) FetchChangelog(ctx context.Context, groupID string, since time.Time) (models.ChangelogResponse, error) {
	if s.fetchChangelogFn != nil {
		return s.fetchChangelogFn(ctx, groupID, since)
	}
	return models.ChangelogResponse{}, nil
}

func (s *stubServerAdapter) CheckPending(ctx context.Context, groupID string, since time.Time) (bool, error) {
	if s.checkPendingFn != nil {
		return s.checkPendingFn(ctx, groupID, since)
	}
	return false, nil
}

func (s *stubServerAdapter) FetchReconcileFeed(ctx context.Context, groupID string) (models.ReconcileResponse, error) {
	if s.fetchReconcileFeedFn != nil {
		return s.fetchReconcileFeedFn(ctx, groupID)
	}
	return models.ReconcileResponse{}, nil
}
