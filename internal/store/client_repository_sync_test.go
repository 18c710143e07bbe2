package store

import (
	"context"
	"testing"
	"time"

	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalSyncRepo(t *testing.T) LocalSyncRepository {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.ClientStorage{CacheDBPath: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewLocalSyncRepository(db, logger.Nop())
}

func cachedTransaction(id string, groupID string, amount int64) models.Transaction {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return models.Transaction{
		ID:        id,
		OwnerID:   7,
		Amount:    amount,
		Currency:  "CLP",
		Date:      now,
		GroupID:   &groupID,
		Version:   1,
		UpdatedAt: now,
	}
}

func TestLocalSyncRepository_CacheRoundTrip(t *testing.T) {
	repo := newTestLocalSyncRepo(t)
	ctx := context.Background()

	txns := []models.Transaction{
		cachedTransaction("txn-1", "group-1", 100),
		cachedTransaction("txn-2", "group-1", 250),
	}

	require.NoError(t, repo.WriteCache(ctx, "group-1", txns))

	got, err := repo.ReadCache(ctx, "group-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "txn-1", got[0].ID)
	assert.Equal(t, int64(250), got[1].Amount)
	require.NotNil(t, got[0].GroupID)
	assert.Equal(t, "group-1", *got[0].GroupID)
}

func TestLocalSyncRepository_WriteCacheReplaces(t *testing.T) {
	repo := newTestLocalSyncRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteCache(ctx, "group-1", []models.Transaction{
		cachedTransaction("txn-1", "group-1", 100),
		cachedTransaction("txn-2", "group-1", 200),
	}))
	require.NoError(t, repo.WriteCache(ctx, "group-1", []models.Transaction{
		cachedTransaction("txn-3", "group-1", 300),
	}))

	got, err := repo.ReadCache(ctx, "group-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "txn-3", got[0].ID)
}

func TestLocalSyncRepository_UnknownGroupIsEmpty(t *testing.T) {
	repo := newTestLocalSyncRepo(t)

	got, err := repo.ReadCache(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalSyncRepository_GroupsAreIsolated(t *testing.T) {
	repo := newTestLocalSyncRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteCache(ctx, "group-1", []models.Transaction{cachedTransaction("txn-1", "group-1", 100)}))
	require.NoError(t, repo.WriteCache(ctx, "group-2", []models.Transaction{cachedTransaction("txn-2", "group-2", 200)}))

	one, err := repo.ReadCache(ctx, "group-1")
	require.NoError(t, err)
	two, err := repo.ReadCache(ctx, "group-2")
	require.NoError(t, err)

	require.Len(t, one, 1)
	require.Len(t, two, 1)
	assert.Equal(t, "txn-1", one[0].ID)
	assert.Equal(t, "txn-2", two[0].ID)
}

func TestLocalSyncRepository_CheckpointRoundTrip(t *testing.T) {
	repo := newTestLocalSyncRepo(t)
	ctx := context.Background()

	// never synced: zero checkpoint, no error
	cp, err := repo.ReadCheckpoint(ctx, "group-1")
	require.NoError(t, err)
	assert.True(t, cp.IsZero())

	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.WriteCheckpoint(ctx, "group-1", first))

	cp, err = repo.ReadCheckpoint(ctx, "group-1")
	require.NoError(t, err)
	assert.True(t, cp.Equal(first))

	// upsert overwrites
	second := first.Add(time.Hour)
	require.NoError(t, repo.WriteCheckpoint(ctx, "group-1", second))

	cp, err = repo.ReadCheckpoint(ctx, "group-1")
	require.NoError(t, err)
	assert.True(t, cp.Equal(second))
}

func TestLocalSyncRepository_DropGroup(t *testing.T) {
	repo := newTestLocalSyncRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteCache(ctx, "group-1", []models.Transaction{cachedTransaction("txn-1", "group-1", 100)}))
	require.NoError(t, repo.WriteCheckpoint(ctx, "group-1", time.Now()))

	require.NoError(t, repo.DropGroup(ctx, "group-1"))

	got, err := repo.ReadCache(ctx, "group-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	cp, err := repo.ReadCheckpoint(ctx, "group-1")
	require.NoError(t, err)
	assert.True(t, cp.IsZero())
}
