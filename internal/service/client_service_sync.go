// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/boletapp/gastify-sync/internal/adapter"
	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/store"
	"github.com/boletapp/gastify-sync/internal/validators"
	"github.com/boletapp/gastify-sync/models"
)

// clientSyncService is the concrete ClientSyncService. It replays changelog
// pages onto an in-memory projection of the local cache and persists the
// result with one atomic cache write, so an interrupted run never leaves a
// half-applied cache behind.
type clientSyncService struct {
	local     store.LocalSyncRepository
	adapter   adapter.ServerAdapter
	validator validators.Validator
	gate      SyncGate

	mu       sync.Mutex
	inFlight map[string]bool

	logger *logger.Logger
}

// NewClientSyncService constructs a ClientSyncService wired to the local
// cache and the server adapter, with the protocol knobs taken from cfg.
func NewClientSyncService(local store.LocalSyncRepository, serverAdapter adapter.ServerAdapter, cfg config.Sync, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		local:     local,
		adapter:   serverAdapter,
		validator: validators.NewEntryValidator(),
		gate:      NewSyncCooldown(cfg.CooldownSteps, cfg.CooldownReset),
		inFlight:  make(map[string]bool),
		logger:    logger,
	}
}

func (s *clientSyncService) SyncIncremental(ctx context.Context, groupID string) (models.SyncOutcome, error) {
	log := logger.FromContext(ctx)

	release, err := s.acquire(groupID)
	if err != nil {
		return failure(models.ReasonNone, time.Time{}), err
	}
	defer release()

	checkpoint, err := s.local.ReadCheckpoint(ctx, groupID)
	if err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("read checkpoint: %w", err)
	}

	page, err := s.adapter.FetchChangelog(ctx, groupID, checkpoint)
	if err != nil {
		if errors.Is(err, adapter.ErrCheckpointExpired) {
			log.Warn().Str("group_id", groupID).Msg("checkpoint expired on server, reconciliation required")
			return failure(models.ReasonCheckpointExpired, checkpoint), err
		}
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("fetch changelog: %w", err)
	}

	// The checkpoint candidate is the server-clock instant the page was
	// taken at. The local clock never touches checkpoints: a device running
	// ahead of the server would otherwise hide entries committed right
	// after the run behind its own inflated timestamp.
	if page.Length == 0 {
		if err = s.local.WriteCheckpoint(ctx, groupID, page.ServerTime); err != nil {
			return failure(models.ReasonTransient, checkpoint), fmt.Errorf("write checkpoint: %w", err)
		}
		return models.SyncOutcome{Status: models.SyncSuccess, Checkpoint: page.ServerTime}, nil
	}

	cached, err := s.local.ReadCache(ctx, groupID)
	if err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("read cache: %w", err)
	}

	projection, err := s.replay(ctx, groupID, cached, page.Entries)
	if err != nil {
		log.Err(err).Str("group_id", groupID).Msg("corrupt changelog entry, aborting without applying")
		return failure(models.ReasonCorruptEntry, checkpoint), err
	}

	if err = s.local.WriteCache(ctx, groupID, projection); err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("write cache: %w", err)
	}

	// The server flags a page cut off at the cap. Applied entries are kept
	// (replay is idempotent) but the checkpoint must not move, or the
	// remainder would be silently skipped. Only the server can tell
	// truncation from an exactly full page: the cut can fall inside a run
	// of entries sharing one timestamp, where no ts-keyed pending check
	// would see the leftovers.
	if page.Truncated {
		log.Info().
			Str("group_id", groupID).
			Int("applied", page.Length).
			Msg("changelog page truncated, reconciliation recommended")
		return models.SyncOutcome{
			Status:     models.SyncPartialTruncated,
			Applied:    page.Length,
			Checkpoint: checkpoint,
		}, nil
	}

	if err = s.local.WriteCheckpoint(ctx, groupID, page.ServerTime); err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("write checkpoint: %w", err)
	}

	log.Debug().
		Str("group_id", groupID).
		Int("applied", page.Length).
		Time("checkpoint", page.ServerTime).
		Msg("incremental sync applied")

	return models.SyncOutcome{
		Status:     models.SyncSuccess,
		Applied:    page.Length,
		Checkpoint: page.ServerTime,
	}, nil
}

func (s *clientSyncService) SyncFull(ctx context.Context, groupID string) (models.SyncOutcome, error) {
	log := logger.FromContext(ctx)

	release, err := s.acquire(groupID)
	if err != nil {
		return failure(models.ReasonNone, time.Time{}), err
	}
	defer release()

	checkpoint, err := s.local.ReadCheckpoint(ctx, groupID)
	if err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("read checkpoint: %w", err)
	}

	feed, err := s.adapter.FetchReconcileFeed(ctx, groupID)
	if err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("fetch reconcile feed: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(feed.Snapshots))
	for i := range feed.Snapshots {
		snapshot := feed.Snapshots[i]
		if err = s.validator.Validate(ctx, snapshot); err != nil {
			log.Err(err).Str("group_id", groupID).Msg("corrupt snapshot in reconcile feed")
			return failure(models.ReasonCorruptEntry, checkpoint), err
		}
		transactions = append(transactions, transactionFromSnapshot(snapshot, groupID))
	}

	if err = s.local.WriteCache(ctx, groupID, transactions); err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("write cache: %w", err)
	}
	if err = s.local.WriteCheckpoint(ctx, groupID, feed.ServerTime); err != nil {
		return failure(models.ReasonTransient, checkpoint), fmt.Errorf("write checkpoint: %w", err)
	}

	log.Info().
		Str("group_id", groupID).
		Int("snapshots", feed.Length).
		Time("checkpoint", feed.ServerTime).
		Msg("full reconciliation applied")

	return models.SyncOutcome{
		Status:     models.SyncSuccess,
		Applied:    feed.Length,
		Checkpoint: feed.ServerTime,
	}, nil
}

func (s *clientSyncService) PollPending(ctx context.Context, groupID string) (bool, error) {
	checkpoint, err := s.local.ReadCheckpoint(ctx, groupID)
	if err != nil {
		return false, fmt.Errorf("read checkpoint: %w", err)
	}

	return s.adapter.CheckPending(ctx, groupID, checkpoint)
}

func (s *clientSyncService) State(ctx context.Context, groupID string) (models.SyncState, error) {
	checkpoint, err := s.local.ReadCheckpoint(ctx, groupID)
	if err != nil {
		return "", fmt.Errorf("read checkpoint: %w", err)
	}
	if checkpoint.IsZero() {
		return models.StateNeverSynced, nil
	}

	pending, err := s.adapter.CheckPending(ctx, groupID, checkpoint)
	if err != nil {
		return "", fmt.Errorf("pending probe: %w", err)
	}
	if pending {
		return models.StateStale, nil
	}
	return models.StateSynced, nil
}

// replay applies one changelog page onto the cached transaction set and
// returns the resulting projection. Nothing is persisted here: a corrupt
// entry aborts the whole page before any write happens.
//
// Replay is idempotent and tolerant of re-delivery: an entry older than the
// cached version of its transaction is skipped, and removal of an absent
// transaction is a no-op.
func (s *clientSyncService) replay(ctx context.Context, groupID string, cached []models.Transaction, entries []models.ChangelogEntry) ([]models.Transaction, error) {
	byID := make(map[string]models.Transaction, len(cached)+len(entries))
	order := make([]string, 0, len(cached)+len(entries))
	for _, txn := range cached {
		byID[txn.ID] = txn
		order = append(order, txn.ID)
	}

	for i := range entries {
		entry := entries[i]
		if err := s.validator.Validate(ctx, entry); err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.EventID, err)
		}

		existing, known := byID[entry.TransactionID]

		switch entry.Kind {
		case models.EntryRemoved:
			if known && existing.Version > entry.Snapshot.Version {
				continue
			}
			delete(byID, entry.TransactionID)

		case models.EntryAdded, models.EntryModified:
			if known && existing.Version > entry.Snapshot.Version {
				continue
			}
			if !known {
				order = append(order, entry.TransactionID)
			}
			byID[entry.TransactionID] = transactionFromSnapshot(entry.Snapshot, groupID)
		}
	}

	projection := make([]models.Transaction, 0, len(byID))
	for _, id := range order {
		if txn, ok := byID[id]; ok {
			projection = append(projection, txn)
		}
	}
	return projection, nil
}

func (s *clientSyncService) acquire(groupID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[groupID] {
		return nil, ErrSyncInProgress
	}
	if wait, ok := s.gate.Acquire(groupID, time.Now()); !ok {
		return nil, fmt.Errorf("%w: retry in %s", ErrSyncCooldown, wait.Round(time.Second))
	}

	s.inFlight[groupID] = true
	return func() {
		s.mu.Lock()
		delete(s.inFlight, groupID)
		s.mu.Unlock()
	}, nil
}

func failure(reason models.FailureReason, checkpoint time.Time) models.SyncOutcome {
	return models.SyncOutcome{
		Status:     models.SyncFailed,
		Reason:     reason,
		Checkpoint: checkpoint,
	}
}

func transactionFromSnapshot(s models.Snapshot, groupID string) models.Transaction {
	txn := models.Transaction{
		ID:        s.TransactionID,
		OwnerID:   s.OwnerID,
		Amount:    s.Amount,
		Currency:  s.Currency,
		Date:      s.Date,
		Deleted:   s.Deleted,
		Version:   s.Version,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Category != nil {
		txn.Category = *s.Category
	}
	if s.Note != nil {
		txn.Note = *s.Note
	}
	gid := groupID
	txn.GroupID = &gid
	return txn
}
