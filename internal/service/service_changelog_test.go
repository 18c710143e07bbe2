// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupPtr(s string) *string { return &s }

// txn is a shorthand constructor for Transaction used only in tests.
func txn(id string, version int64, groupID *string, deleted bool) models.Transaction {
	return models.Transaction{
		ID:       id,
		OwnerID:  7,
		Amount:   1000,
		Currency: "CLP",
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		GroupID:  groupID,
		Deleted:  deleted,
		Version:  version,
	}
}

// TestEntriesForMutation_DecisionMatrix covers every cell of the entry
// derivation table: which logs receive which entry kind for each kind of
// mutation.
func TestEntriesForMutation_DecisionMatrix(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	type want struct {
		kind  models.EntryKind
		group string
	}

	tests := []struct {
		name string
		prev *models.Transaction
		next models.Transaction
		want []want
	}{
		{
			name: "Create/Personal → no entries",
			prev: nil,
			next: txn("t1", 1, nil, false),
			want: nil,
		},
		{
			name: "Create/InGroup → ADDED",
			prev: nil,
			next: txn("t1", 1, groupPtr("g1"), false),
			want: []want{{models.EntryAdded, "g1"}},
		},
		{
			name: "Edit/Personal → no entries",
			prev: ptr(txn("t1", 1, nil, false)),
			next: txn("t1", 2, nil, false),
			want: nil,
		},
		{
			name: "Edit/SameGroup → MODIFIED",
			prev: ptr(txn("t1", 1, groupPtr("g1"), false)),
			next: txn("t1", 2, groupPtr("g1"), false),
			want: []want{{models.EntryModified, "g1"}},
		},
		{
			name: "Affiliate/PersonalToGroup → ADDED",
			prev: ptr(txn("t1", 1, nil, false)),
			next: txn("t1", 2, groupPtr("g1"), false),
			want: []want{{models.EntryAdded, "g1"}},
		},
		{
			name: "Unaffiliate/GroupToPersonal → REMOVED",
			prev: ptr(txn("t1", 1, groupPtr("g1"), false)),
			next: txn("t1", 2, nil, false),
			want: []want{{models.EntryRemoved, "g1"}},
		},
		{
			name: "Switch/GroupToGroup → REMOVED old + ADDED new",
			prev: ptr(txn("t1", 1, groupPtr("g1"), false)),
			next: txn("t1", 2, groupPtr("g2"), false),
			want: []want{{models.EntryRemoved, "g1"}, {models.EntryAdded, "g2"}},
		},
		{
			name: "Delete/InGroup → REMOVED",
			prev: ptr(txn("t1", 1, groupPtr("g1"), false)),
			next: txn("t1", 2, groupPtr("g1"), true),
			want: []want{{models.EntryRemoved, "g1"}},
		},
		{
			name: "Delete/Personal → no entries",
			prev: ptr(txn("t1", 1, nil, false)),
			next: txn("t1", 2, nil, true),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EntriesForMutation(tt.prev, tt.next, 7, now)

			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.kind, got[i].Kind)
				assert.Equal(t, w.group, got[i].GroupID)
				assert.Equal(t, tt.next.ID, got[i].TransactionID)
				assert.Equal(t, int64(7), got[i].ActorID)
				assert.True(t, got[i].TS.Equal(now))
				assert.NotEmpty(t, got[i].EventID)
				// snapshots always carry the full post-mutation state
				assert.Equal(t, tt.next.Version, got[i].Snapshot.Version)
				assert.Equal(t, tt.next.Deleted, got[i].Snapshot.Deleted)
			}
		})
	}
}

func TestEntriesForMutation_DeterministicEventIDs(t *testing.T) {
	now := time.Now()
	prev := txn("t1", 1, groupPtr("g1"), false)
	next := txn("t1", 2, groupPtr("g1"), false)

	first := EntriesForMutation(&prev, next, 7, now)
	second := EntriesForMutation(&prev, next, 7, now.Add(time.Minute))

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	// retried derivations of the same mutation must collide on event id
	assert.Equal(t, first[0].EventID, second[0].EventID)
}

func TestEntriesForMutation_GroupSwitchIDsDiffer(t *testing.T) {
	now := time.Now()
	prev := txn("t1", 1, groupPtr("g1"), false)
	next := txn("t1", 2, groupPtr("g2"), false)

	got := EntriesForMutation(&prev, next, 7, now)

	require.Len(t, got, 2)
	// same transaction version in two logs must not collide
	assert.NotEqual(t, got[0].EventID, got[1].EventID)
}

func ptr(t models.Transaction) *models.Transaction { return &t }

func newTestChangelogService(groups *stubGroupRepository, entries *stubChangelogRepository, txns *stubTransactionRepository) *changelogService {
	if groups == nil {
		groups = &stubGroupRepository{getGroupFn: memberGroup("g1", 7, 7, 8)}
	}
	if entries == nil {
		entries = &stubChangelogRepository{}
	}
	if txns == nil {
		txns = &stubTransactionRepository{}
	}
	return &changelogService{
		changelogRepository:   entries,
		transactionRepository: txns,
		groupRepository:       groups,
		retentionWindow:       30 * 24 * time.Hour,
		lookbackWindow:        2 * 365 * 24 * time.Hour,
		pageLimit:             100,
		logger:                logger.Nop(),
	}
}

func TestChangelogService_QueryEntries_NonMemberRejected(t *testing.T) {
	svc := newTestChangelogService(nil, nil, nil)

	_, err := svc.QueryEntries(context.Background(), 99, "g1", time.Time{})
	require.ErrorIs(t, err, ErrNotGroupMember)
}

func TestChangelogService_QueryEntries_ExpiredCheckpoint(t *testing.T) {
	svc := newTestChangelogService(nil, nil, nil)

	tooOld := time.Now().Add(-31 * 24 * time.Hour)
	_, err := svc.QueryEntries(context.Background(), 7, "g1", tooOld)
	require.ErrorIs(t, err, ErrCheckpointTooOld)
}

func TestChangelogService_QueryEntries_ZeroCheckpointExempt(t *testing.T) {
	// A device that never synced has no checkpoint at all; it must be able
	// to fetch from the beginning regardless of the retention window.
	entries := &stubChangelogRepository{
		queryEntriesFn: func(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error) {
			assert.True(t, since.IsZero())
			return []models.ChangelogEntry{{EventID: "e1", GroupID: groupID, Kind: models.EntryAdded}}, nil
		},
	}
	svc := newTestChangelogService(nil, entries, nil)

	resp, err := svc.QueryEntries(context.Background(), 7, "g1", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Length)
}

func TestChangelogService_QueryEntries_QueriesOnePastTheCap(t *testing.T) {
	var gotLimit int
	entries := &stubChangelogRepository{
		queryEntriesFn: func(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := newTestChangelogService(nil, entries, nil)

	// The extra row is the truncation sentinel; it is never served.
	_, err := svc.QueryEntries(context.Background(), 7, "g1", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 101, gotLimit)
}

func TestChangelogService_QueryEntries_StampsServerTime(t *testing.T) {
	entries := &stubChangelogRepository{
		queryEntriesFn: func(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error) {
			return nil, nil
		},
	}
	svc := newTestChangelogService(nil, entries, nil)

	before := time.Now()
	resp, err := svc.QueryEntries(context.Background(), 7, "g1", time.Time{})
	require.NoError(t, err)

	// The stamp precedes the query, so entries committed while it ran land
	// after the checkpoint a client adopts from it.
	assert.False(t, resp.ServerTime.Before(before))
	assert.False(t, resp.ServerTime.After(time.Now()))
}

func TestChangelogService_QueryEntries_FlagsTruncation(t *testing.T) {
	ts := time.Now().Add(-time.Minute)
	page := make([]models.ChangelogEntry, 0, 101)
	for i := 0; i < 101; i++ {
		// Identical timestamps: the cap cuts inside a ts tie, which only the
		// server can detect.
		page = append(page, models.ChangelogEntry{
			EventID: fmt.Sprintf("e%d", i),
			GroupID: "g1",
			Kind:    models.EntryAdded,
			TS:      ts,
			Seq:     int64(i),
		})
	}
	entries := &stubChangelogRepository{
		queryEntriesFn: func(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error) {
			if len(page) > limit {
				return page[:limit], nil
			}
			return page, nil
		},
	}
	svc := newTestChangelogService(nil, entries, nil)

	resp, err := svc.QueryEntries(context.Background(), 7, "g1", time.Time{})
	require.NoError(t, err)

	assert.True(t, resp.Truncated)
	assert.Equal(t, 100, resp.Length)
	assert.Len(t, resp.Entries, 100)
}

func TestChangelogService_QueryEntries_ExactlyFullPageNotTruncated(t *testing.T) {
	page := make([]models.ChangelogEntry, 100)
	for i := range page {
		page[i] = models.ChangelogEntry{EventID: fmt.Sprintf("e%d", i), GroupID: "g1", Kind: models.EntryAdded}
	}
	entries := &stubChangelogRepository{
		queryEntriesFn: func(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error) {
			return page, nil
		},
	}
	svc := newTestChangelogService(nil, entries, nil)

	resp, err := svc.QueryEntries(context.Background(), 7, "g1", time.Time{})
	require.NoError(t, err)

	assert.False(t, resp.Truncated)
	assert.Equal(t, 100, resp.Length)
}

func TestChangelogService_HasPending(t *testing.T) {
	entries := &stubChangelogRepository{
		hasEntriesAfterFn: func(ctx context.Context, groupID string, since time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := newTestChangelogService(nil, entries, nil)

	pending, err := svc.HasPending(context.Background(), 7, "g1", time.Now())
	require.NoError(t, err)
	assert.True(t, pending)

	_, err = svc.HasPending(context.Background(), 99, "g1", time.Now())
	require.ErrorIs(t, err, ErrNotGroupMember)
}

func TestChangelogService_ReconcileFeed(t *testing.T) {
	txns := &stubTransactionRepository{
		listGroupTransactionsFn: func(ctx context.Context, groupID string, since time.Time) ([]models.Transaction, error) {
			// lookback window bounds the feed
			assert.True(t, time.Since(since) > 700*24*time.Hour)
			return []models.Transaction{
				txn("t1", 3, groupPtr("g1"), false),
				txn("t2", 1, groupPtr("g1"), false),
			}, nil
		},
	}
	svc := newTestChangelogService(nil, nil, txns)

	before := time.Now()
	resp, err := svc.ReconcileFeed(context.Background(), 7, "g1")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Length)
	assert.Equal(t, "t1", resp.Snapshots[0].TransactionID)
	assert.Equal(t, int64(3), resp.Snapshots[0].Version)
	assert.False(t, resp.ServerTime.Before(before))
}

func TestChangelogService_ReconcileFeed_RepositoryError(t *testing.T) {
	txns := &stubTransactionRepository{
		listGroupTransactionsFn: func(ctx context.Context, groupID string, since time.Time) ([]models.Transaction, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestChangelogService(nil, nil, txns)

	_, err := svc.ReconcileFeed(context.Background(), 7, "g1")
	require.Error(t, err)
}
