// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/metrics"
	"github.com/boletapp/gastify-sync/internal/store"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
)

// changelogService is the concrete implementation of ChangelogService. It
// serves the read side of the protocol to authenticated group members and
// enforces the retention-window and page-limit rules.
type changelogService struct {
	changelogRepository   store.ChangelogRepository
	transactionRepository store.TransactionRepository
	groupRepository       store.GroupRepository

	retentionWindow time.Duration
	lookbackWindow  time.Duration
	pageLimit       int

	logger *logger.Logger
}

// NewChangelogService constructs a ChangelogService with the protocol knobs
// taken from cfg.
func NewChangelogService(storages *store.Storages, cfg config.Sync, logger *logger.Logger) ChangelogService {
	return &changelogService{
		changelogRepository:   storages.ChangelogRepository,
		transactionRepository: storages.TransactionRepository,
		groupRepository:       storages.GroupRepository,
		retentionWindow:       cfg.RetentionWindow,
		lookbackWindow:        cfg.LookbackWindow,
		pageLimit:             cfg.PageLimit,
		logger:                logger,
	}
}

func (c *changelogService) QueryEntries(ctx context.Context, actorID int64, groupID string, since time.Time) (models.ChangelogResponse, error) {
	log := logger.FromContext(ctx)

	if err := c.requireMember(ctx, groupID, actorID); err != nil {
		return models.ChangelogResponse{}, err
	}

	// A checkpoint older than the retention window may point past entries
	// the pruner already deleted; serving from it could silently skip
	// removals. The zero value is a first sync, not an old checkpoint.
	if !since.IsZero() && time.Since(since) > c.retentionWindow {
		log.Warn().
			Str("group_id", groupID).
			Time("since", since).
			Msg("checkpoint predates retention window, refusing incremental page")
		return models.ChangelogResponse{}, ErrCheckpointTooOld
	}

	// Captured before the page query so that entries committed during it
	// stay after the checkpoint the client adopts.
	pageTime := time.Now()

	// One row past the cap distinguishes a truncated page from an exactly
	// full one. Counting the page itself would misreport truncation on
	// same-ts ties cut mid-group and whenever client and server disagree
	// about the cap.
	entries, err := c.changelogRepository.QueryEntries(ctx, groupID, since, c.pageLimit+1)
	if err != nil {
		return models.ChangelogResponse{}, fmt.Errorf("changelog page query failed: %w", err)
	}
	metrics.PageQueries.Inc()

	truncated := len(entries) > c.pageLimit
	if truncated {
		entries = entries[:c.pageLimit]
	}

	return models.ChangelogResponse{
		Entries:    entries,
		Length:     len(entries),
		Truncated:  truncated,
		ServerTime: pageTime,
	}, nil
}

func (c *changelogService) HasPending(ctx context.Context, actorID int64, groupID string, since time.Time) (bool, error) {
	if err := c.requireMember(ctx, groupID, actorID); err != nil {
		return false, err
	}

	pending, err := c.changelogRepository.HasEntriesAfter(ctx, groupID, since)
	if err != nil {
		return false, fmt.Errorf("pending probe failed: %w", err)
	}
	metrics.PendingProbes.WithLabelValues(strconv.FormatBool(pending)).Inc()

	return pending, nil
}

func (c *changelogService) ReconcileFeed(ctx context.Context, actorID int64, groupID string) (models.ReconcileResponse, error) {
	log := logger.FromContext(ctx)

	if err := c.requireMember(ctx, groupID, actorID); err != nil {
		return models.ReconcileResponse{}, err
	}

	// Capture the instant before reading: anything written after it will be
	// picked up by the client's next incremental sync from this checkpoint.
	feedTime := time.Now()

	transactions, err := c.transactionRepository.ListGroupTransactions(ctx, groupID, feedTime.Add(-c.lookbackWindow))
	if err != nil {
		return models.ReconcileResponse{}, fmt.Errorf("reconciliation feed query failed: %w", err)
	}

	snapshots := make([]models.Snapshot, 0, len(transactions))
	for _, txn := range transactions {
		snapshots = append(snapshots, models.SnapshotOf(txn))
	}
	metrics.ReconcileFeeds.Inc()

	log.Debug().
		Str("group_id", groupID).
		Int("snapshots", len(snapshots)).
		Msg("reconciliation feed served")

	return models.ReconcileResponse{
		Snapshots:  snapshots,
		Length:     len(snapshots),
		ServerTime: feedTime,
	}, nil
}

func (c *changelogService) requireMember(ctx context.Context, groupID string, actorID int64) error {
	group, err := c.groupRepository.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("group lookup failed: %w", err)
	}
	if !group.HasMember(actorID) {
		return ErrNotGroupMember
	}
	return nil
}

// EntriesForMutation derives the changelog entries a transaction mutation
// must append, from the state before (nil for a create) and after it.
//
// The decision matrix, per group log:
//   - enters a group (create in group, affiliation set, group switch target):
//     ADDED
//   - stays in the same group with changed content: MODIFIED
//   - leaves a group (soft delete, affiliation cleared, group switch source):
//     REMOVED
//   - personal transactions (no group before or after): no entries at all
//
// A group switch therefore emits two entries with the same transaction
// version, one per group log. Every snapshot is the full post-mutation state,
// so replaying clients never need a follow-up fetch.
func EntriesForMutation(prev *models.Transaction, next models.Transaction, actorID int64, now time.Time) []models.ChangelogEntry {
	var prevGroup, nextGroup string
	if prev != nil && prev.GroupID != nil && !prev.Deleted {
		prevGroup = *prev.GroupID
	}
	if next.GroupID != nil && !next.Deleted {
		nextGroup = *next.GroupID
	}

	if prevGroup == nextGroup {
		if nextGroup == "" {
			return nil
		}
		return []models.ChangelogEntry{newEntry(models.EntryModified, nextGroup, next, actorID, now)}
	}

	entries := make([]models.ChangelogEntry, 0, 2)
	if prevGroup != "" {
		entries = append(entries, newEntry(models.EntryRemoved, prevGroup, next, actorID, now))
	}
	if nextGroup != "" {
		entries = append(entries, newEntry(models.EntryAdded, nextGroup, next, actorID, now))
	}
	return entries
}

func newEntry(kind models.EntryKind, groupID string, txn models.Transaction, actorID int64, now time.Time) models.ChangelogEntry {
	return models.ChangelogEntry{
		EventID:       utils.EventID(txn.ID, txn.Version, string(kind), groupID),
		GroupID:       groupID,
		Kind:          kind,
		TransactionID: txn.ID,
		Snapshot:      models.SnapshotOf(txn),
		ActorID:       actorID,
		TS:            now,
	}
}
