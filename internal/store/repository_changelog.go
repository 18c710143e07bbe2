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

// changelogRepository is the PostgreSQL-backed implementation of
// [ChangelogRepository]. It only ever reads and prunes; appends go through
// the transaction repository so they commit atomically with the mutation.
type changelogRepository struct {
	*DB
	logger *logger.Logger
}

// NewChangelogRepository constructs a [ChangelogRepository] backed by the
// provided database connection and logger.
func NewChangelogRepository(db *DB, logger *logger.Logger) ChangelogRepository {
	return &changelogRepository{
		DB:     db,
		logger: logger,
	}
}

// QueryEntries returns one incremental-sync page: entries of the group with
// ts strictly after since, ascending by (ts, seq), at most limit rows.
func (c *changelogRepository) QueryEntries(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildQueryEntriesQuery(ctx, groupID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "changelogRepository.QueryEntries").
			Str("group_id", groupID).
			Msg("failed to execute changelog page query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ChangelogEntry, 0, limit)

	for rows.Next() {
		entry, scanErr := scanChangelogEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "changelogRepository.QueryEntries").
				Str("group_id", groupID).
				Msg("failed to scan changelog row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// HasEntriesAfter reports whether at least one entry exists for the group
// after since. Backs the poll endpoint, so it must stay cheap: a limit-1
// probe on the same (group_id, ts) key the page query uses.
func (c *changelogRepository) HasEntriesAfter(ctx context.Context, groupID string, since time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildHasEntriesAfterQuery(ctx, groupID, since)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = c.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		log.Err(err).
			Str("func", "changelogRepository.HasEntriesAfter").
			Str("group_id", groupID).
			Msg("failed to execute existence probe")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// PruneExpired deletes entries older than before across all groups and
// returns the number of rows removed.
func (c *changelogRepository) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, pruneChangelogEntries, before)
	if err != nil {
		log.Err(err).
			Str("func", "changelogRepository.PruneExpired").
			Time("before", before).
			Msg("failed to prune changelog entries")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return pruned, nil
}

func scanChangelogEntry(row rowScanner) (models.ChangelogEntry, error) {
	var entry models.ChangelogEntry
	var kind string
	var snapshot []byte

	err := row.Scan(
		&entry.EventID, &entry.GroupID, &kind, &entry.TransactionID,
		&snapshot, &entry.ActorID, &entry.TS, &entry.Seq,
	)
	if err != nil {
		return models.ChangelogEntry{}, err
	}

	entry.Kind = models.EntryKind(kind)
	if err = json.Unmarshal(snapshot, &entry.Snapshot); err != nil {
		return models.ChangelogEntry{}, fmt.Errorf("decode changelog snapshot: %w", err)
	}

	return entry, nil
}
