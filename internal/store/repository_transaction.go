// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/models"
)

// transactionRepository is the PostgreSQL-backed implementation of
// [TransactionRepository]. The mutation path commits the transaction row and
// its changelog entries inside one database transaction — a mutation that
// cannot be logged must not be persisted at all, and vice versa.
type transactionRepository struct {
	*DB
	logger *logger.Logger
}

// NewTransactionRepository constructs a [TransactionRepository] backed by
// the provided database connection and logger.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	return &transactionRepository{
		DB:     db,
		logger: logger,
	}
}

// GetTransaction fetches one transaction by id. A missing row maps to
// [ErrTransactionNotFound].
func (t *transactionRepository) GetTransaction(ctx context.Context, transactionID string) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	row := t.DB.QueryRowContext(ctx, getTransaction, transactionID)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, ErrTransactionNotFound
		}
		log.Err(err).
			Str("func", "transactionRepository.GetTransaction").
			Str("transaction_id", transactionID).
			Msg("failed to scan transaction row")
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return txn, nil
}

// SaveWithEntries implements the atomic mutation+changelog commit.
//
// Version 1 inserts a fresh row; any later version runs an optimistic-locked
// UPDATE that expects the stored row to be exactly one version behind. Zero
// affected rows on that UPDATE means another writer got there first and the
// whole unit fails with [ErrVersionConflict].
//
// Entry appends use ON CONFLICT (event_id) DO NOTHING: a retried execution
// of the same logical mutation recomputes the same deterministic event id
// and the duplicate append becomes a no-op instead of a second entry.
func (t *transactionRepository) SaveWithEntries(ctx context.Context, transaction models.Transaction, entries []models.ChangelogEntry) error {
	log := logger.FromContext(ctx)

	dbTx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.SaveWithEntries").
			Str("transaction_id", transaction.ID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer dbTx.Rollback()

	if err = t.saveTransactionRow(ctx, dbTx, transaction); err != nil {
		return err
	}

	for _, entry := range entries {
		if err = t.appendEntry(ctx, dbTx, entry); err != nil {
			log.Err(err).
				Str("func", "transactionRepository.SaveWithEntries").
				Str("transaction_id", transaction.ID).
				Str("group_id", entry.GroupID).
				Str("event_id", entry.EventID).
				Msg("failed to append changelog entry, rolling back mutation")
			return err
		}
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ListGroupTransactions implements the reconciliation feed.
func (t *transactionRepository) ListGroupTransactions(ctx context.Context, groupID string, since time.Time) ([]models.Transaction, error) {
	query, args, err := buildListGroupTransactionsQuery(ctx, groupID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.queryTransactions(ctx, query, args...)
}

// ListOwnerGroupTransactions returns one member's live transactions in the
// group.
func (t *transactionRepository) ListOwnerGroupTransactions(ctx context.Context, groupID string, ownerID int64) ([]models.Transaction, error) {
	query, args, err := buildListOwnerGroupTransactionsQuery(ctx, groupID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.queryTransactions(ctx, query, args...)
}

func (t *transactionRepository) saveTransactionRow(ctx context.Context, dbTx *sql.Tx, txn models.Transaction) error {
	log := logger.FromContext(ctx)

	if txn.Version == 1 {
		result, err := dbTx.ExecContext(ctx, insertTransaction,
			txn.ID, txn.OwnerID, txn.Amount, txn.Currency, txn.Date, txn.Category, txn.Note,
			txn.GroupID, txn.Deleted, txn.Version, txn.UpdatedAt, txn.CreatedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "transactionRepository.saveTransactionRow").
				Str("transaction_id", txn.ID).
				Msg("failed to insert transaction")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return ErrTransactionNotSaved
		}
		return nil
	}

	result, err := dbTx.ExecContext(ctx, updateTransaction,
		txn.ID, txn.Amount, txn.Currency, txn.Date, txn.Category, txn.Note,
		txn.GroupID, txn.Deleted, txn.Version, txn.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.saveTransactionRow").
			Str("transaction_id", txn.ID).
			Int64("version", txn.Version).
			Msg("failed to update transaction")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (t *transactionRepository) appendEntry(ctx context.Context, dbTx *sql.Tx, entry models.ChangelogEntry) error {
	snapshot, err := json.Marshal(entry.Snapshot)
	if err != nil {
		return fmt.Errorf("encode changelog snapshot: %w", err)
	}

	_, err = dbTx.ExecContext(ctx, appendChangelogEntry,
		entry.EventID, entry.GroupID, string(entry.Kind), entry.TransactionID,
		snapshot, entry.ActorID, entry.TS,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			// Concurrent retry already wrote this event. Not a failure.
			return nil
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (t *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	rows, err := t.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.queryTransactions").
			Msg("failed to execute transactions query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, 50)

	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "transactionRepository.queryTransactions").
				Msg("failed to scan transaction row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		results = append(results, txn)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "transactionRepository.queryTransactions").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var txn models.Transaction
	var groupID sql.NullString

	err := row.Scan(
		&txn.ID, &txn.OwnerID, &txn.Amount, &txn.Currency, &txn.Date,
		&txn.Category, &txn.Note, &groupID, &txn.Deleted, &txn.Version,
		&txn.UpdatedAt, &txn.CreatedAt,
	)
	if err != nil {
		return models.Transaction{}, err
	}

	if groupID.Valid {
		txn.GroupID = &groupID.String
	}
	return txn, nil
}
