// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/models"
)

// localSyncRepository is the SQLite-backed implementation of
// [LocalSyncRepository].
type localSyncRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSyncRepository constructs a [LocalSyncRepository] backed by the
// provided cache database and logger.
func NewLocalSyncRepository(db *DB, logger *logger.Logger) LocalSyncRepository {
	return &localSyncRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localSyncRepository) ReadCache(ctx context.Context, groupID string) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, readCachedTransactions, groupID)
	if err != nil {
		log.Err(err).
			Str("func", "localSyncRepository.ReadCache").
			Str("group_id", groupID).
			Msg("failed to read cached transactions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cached := make([]models.Transaction, 0, 50)

	for rows.Next() {
		var txn models.Transaction
		err = rows.Scan(
			&txn.ID, &txn.OwnerID, &txn.Amount, &txn.Currency, &txn.Date,
			&txn.Category, &txn.Note, &txn.Deleted, &txn.Version, &txn.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		gid := groupID
		txn.GroupID = &gid
		cached = append(cached, txn)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cached, nil
}

// WriteCache replaces the group's projection in one database transaction, so
// readers never observe a half-applied sync.
func (l *localSyncRepository) WriteCache(ctx context.Context, groupID string, transactions []models.Transaction) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearCachedTransactions, groupID); err != nil {
		log.Err(err).
			Str("func", "localSyncRepository.WriteCache").
			Str("group_id", groupID).
			Msg("failed to clear cached transactions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, txn := range transactions {
		_, err = tx.ExecContext(ctx, insertCachedTransaction,
			groupID, txn.ID, txn.OwnerID, txn.Amount, txn.Currency, txn.Date,
			txn.Category, txn.Note, txn.Deleted, txn.Version, txn.UpdatedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "localSyncRepository.WriteCache").
				Str("group_id", groupID).
				Str("transaction_id", txn.ID).
				Msg("failed to insert cached transaction")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (l *localSyncRepository) ReadCheckpoint(ctx context.Context, groupID string) (time.Time, error) {
	var checkpoint time.Time

	err := l.DB.QueryRowContext(ctx, readSyncCheckpoint, groupID).Scan(&checkpoint)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Never synced. The zero checkpoint is meaningful to the caller.
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return checkpoint, nil
}

func (l *localSyncRepository) WriteCheckpoint(ctx context.Context, groupID string, checkpoint time.Time) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, upsertSyncCheckpoint, groupID, checkpoint)
	if err != nil {
		log.Err(err).
			Str("func", "localSyncRepository.WriteCheckpoint").
			Str("group_id", groupID).
			Time("checkpoint", checkpoint).
			Msg("failed to write checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localSyncRepository) DropGroup(ctx context.Context, groupID string) error {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearCachedTransactions, groupID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, deleteSyncCheckpoint, groupID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
