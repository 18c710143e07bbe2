// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/metrics"
	"github.com/boletapp/gastify-sync/internal/store"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
)

// transactionService is the concrete implementation of TransactionService.
// It enforces owner-only mutation and derives the changelog entries each
// mutation must append, committing both through one atomic repository call.
type transactionService struct {
	transactionRepository store.TransactionRepository
	groupRepository       store.GroupRepository
	idGenerator           *utils.UUIDGenerator
	logger                *logger.Logger
}

// NewTransactionService constructs a TransactionService wired to the given
// repositories.
func NewTransactionService(storages *store.Storages, logger *logger.Logger) TransactionService {
	return &transactionService{
		transactionRepository: storages.TransactionRepository,
		groupRepository:       storages.GroupRepository,
		idGenerator:           utils.NewUUIDGenerator(),
		logger:                logger,
	}
}

func (t *transactionService) CreateTransaction(ctx context.Context, actorID int64, draft models.TransactionDraft) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	if draft.Amount == 0 || draft.Currency == "" || draft.Date.IsZero() {
		return models.Transaction{}, ErrInvalidDataProvided
	}
	if draft.GroupID != nil {
		if err := t.requireMember(ctx, *draft.GroupID, actorID); err != nil {
			return models.Transaction{}, err
		}
	}

	now := time.Now()
	txn := models.Transaction{
		ID:        t.idGenerator.Generate(),
		OwnerID:   actorID,
		Amount:    draft.Amount,
		Currency:  draft.Currency,
		Date:      draft.Date,
		Category:  draft.Category,
		Note:      draft.Note,
		GroupID:   draft.GroupID,
		Version:   1,
		UpdatedAt: now,
		CreatedAt: now,
	}

	entries := EntriesForMutation(nil, txn, actorID, now)
	if err := t.saveWithEntries(ctx, txn, entries); err != nil {
		log.Err(err).Str("transaction_id", txn.ID).Msg("transaction creation failed")
		return models.Transaction{}, err
	}

	return txn, nil
}

func (t *transactionService) UpdateTransaction(ctx context.Context, actorID int64, transactionID string, update models.TransactionUpdate) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return models.Transaction{}, ErrEmptyUpdate
	}

	prev, err := t.transactionRepository.GetTransaction(ctx, transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction lookup failed: %w", err)
	}
	if prev.OwnerID != actorID {
		return models.Transaction{}, ErrNotOwner
	}
	if prev.Deleted {
		return models.Transaction{}, ErrTransactionDeleted
	}

	next := applyUpdate(prev, update)
	if update.GroupID != nil && (prev.GroupID == nil || *prev.GroupID != *update.GroupID) {
		if err = t.requireMember(ctx, *update.GroupID, actorID); err != nil {
			return models.Transaction{}, err
		}
	}

	now := time.Now()
	next.Version = prev.Version + 1
	next.UpdatedAt = now

	entries := EntriesForMutation(&prev, next, actorID, now)
	if err = t.saveWithEntries(ctx, next, entries); err != nil {
		log.Err(err).Str("transaction_id", transactionID).Msg("transaction update failed")
		return models.Transaction{}, err
	}

	return next, nil
}

func (t *transactionService) DeleteTransaction(ctx context.Context, actorID int64, transactionID string) error {
	log := logger.FromContext(ctx)

	prev, err := t.transactionRepository.GetTransaction(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("transaction lookup failed: %w", err)
	}
	if prev.OwnerID != actorID {
		return ErrNotOwner
	}
	if prev.Deleted {
		// Deleting twice is a no-op, not an error.
		return nil
	}

	now := time.Now()
	next := prev
	next.Deleted = true
	next.Version = prev.Version + 1
	next.UpdatedAt = now

	entries := EntriesForMutation(&prev, next, actorID, now)
	if err = t.saveWithEntries(ctx, next, entries); err != nil {
		log.Err(err).Str("transaction_id", transactionID).Msg("transaction deletion failed")
		return err
	}

	return nil
}

// GetTransaction returns the transaction to its owner, or to any member of
// the group it is affiliated with.
func (t *transactionService) GetTransaction(ctx context.Context, actorID int64, transactionID string) (models.Transaction, error) {
	txn, err := t.transactionRepository.GetTransaction(ctx, transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction lookup failed: %w", err)
	}

	if txn.OwnerID == actorID {
		return txn, nil
	}
	if txn.GroupID != nil && !txn.Deleted {
		if err = t.requireMember(ctx, *txn.GroupID, actorID); err == nil {
			return txn, nil
		}
	}

	return models.Transaction{}, ErrNotOwner
}

func (t *transactionService) saveWithEntries(ctx context.Context, txn models.Transaction, entries []models.ChangelogEntry) error {
	if err := t.transactionRepository.SaveWithEntries(ctx, txn, entries); err != nil {
		return err
	}
	for _, entry := range entries {
		metrics.EntriesAppended.WithLabelValues(string(entry.Kind)).Inc()
	}
	return nil
}

func (t *transactionService) requireMember(ctx context.Context, groupID string, actorID int64) error {
	group, err := t.groupRepository.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("group lookup failed: %w", err)
	}
	if !group.HasMember(actorID) {
		return ErrNotGroupMember
	}
	return nil
}

func applyUpdate(prev models.Transaction, update models.TransactionUpdate) models.Transaction {
	next := prev

	if update.Amount != nil {
		next.Amount = *update.Amount
	}
	if update.Currency != nil {
		next.Currency = *update.Currency
	}
	if update.Date != nil {
		next.Date = *update.Date
	}
	if update.Category != nil {
		next.Category = *update.Category
	}
	if update.Note != nil {
		next.Note = *update.Note
	}
	if update.ClearGroup {
		next.GroupID = nil
	} else if update.GroupID != nil {
		gid := *update.GroupID
		next.GroupID = &gid
	}

	return next
}
