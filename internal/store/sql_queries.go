// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`

	createGroup = `INSERT INTO groups (group_id, name, owner_id, membership_version)
		VALUES ($1, $2, $3, 1)
		RETURNING created_at;`

	addGroupMember = `INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2);`

	removeGroupMember = `DELETE FROM group_members
		WHERE group_id = $1 AND user_id = $2;`

	countGroupMembers = `SELECT COUNT(*) FROM group_members WHERE group_id = $1;`

	deleteGroup = `DELETE FROM groups WHERE group_id = $1;`

	bumpMembershipVersion = `UPDATE groups
		SET membership_version = membership_version + 1
		WHERE group_id = $1;`

	transferGroupOwnership = `UPDATE groups
		SET owner_id = $2, membership_version = membership_version + 1
		WHERE group_id = $1;`

	getGroup = `SELECT group_id, name, owner_id, membership_version, created_at
		FROM groups
		WHERE group_id = $1;`

	getGroupMembers = `SELECT user_id FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at, user_id;`

	getTransaction = `SELECT
			id, owner_id, amount, currency, date, category, note,
			group_id, deleted, version, updated_at, created_at
		FROM transactions
		WHERE id = $1;`

	insertTransaction = `INSERT INTO transactions (
			id, owner_id, amount, currency, date, category, note,
			group_id, deleted, version, updated_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	updateTransaction = `UPDATE transactions SET
			amount = $2,
			currency = $3,
			date = $4,
			category = $5,
			note = $6,
			group_id = $7,
			deleted = $8,
			version = $9,
			updated_at = $10
		WHERE id = $1 AND version = $9 - 1;`

	appendChangelogEntry = `INSERT INTO changelog_entries (
			event_id, group_id, kind, transaction_id, snapshot, actor_id, ts
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id) DO NOTHING;`

	pruneChangelogEntries = `DELETE FROM changelog_entries
		WHERE ts < $1;`
)

// changelogColumns is the column list shared by the changelog query
// builders, in scan order.
var changelogColumns = []string{
	"event_id", "group_id", "kind", "transaction_id",
	"snapshot", "actor_id", "ts", "seq",
}

// buildQueryEntriesQuery builds the incremental-sync page query: entries of
// one group strictly newer than since, ascending by (ts, seq), capped at
// limit. The (ts, seq) order is the protocol's total order. The service
// queries one row past its page cap and flags truncation itself, so a cut
// inside a run of equal timestamps is still reported.
func buildQueryEntriesQuery(_ context.Context, groupID string, since time.Time, limit int) (string, []any, error) {
	return sq.Select(changelogColumns...).
		From("changelog_entries").
		Where(sq.Eq{"group_id": groupID}).
		Where(sq.Gt{"ts": since}).
		OrderBy("ts ASC", "seq ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildHasEntriesAfterQuery builds the limit-1 existence probe backing the
// poll/badge detector. Since is always a checkpoint the server itself issued
// between entries, never an entry's own timestamp, so the ts-keyed boundary
// is exact.
func buildHasEntriesAfterQuery(_ context.Context, groupID string, since time.Time) (string, []any, error) {
	return sq.Select("1").
		From("changelog_entries").
		Where(sq.Eq{"group_id": groupID}).
		Where(sq.Gt{"ts": since}).
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildListGroupTransactionsQuery builds the reconciliation feed query:
// live transactions currently affiliated with the group, bounded by the
// lookback window.
func buildListGroupTransactionsQuery(_ context.Context, groupID string, since time.Time) (string, []any, error) {
	return sq.Select(
		"id", "owner_id", "amount", "currency", "date", "category", "note",
		"group_id", "deleted", "version", "updated_at", "created_at",
	).
		From("transactions").
		Where(sq.Eq{"group_id": groupID, "deleted": false}).
		Where(sq.GtOrEq{"date": since}).
		OrderBy("date ASC", "id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildListOwnerGroupTransactionsQuery builds the departing-member feed:
// one owner's live transactions inside the group.
func buildListOwnerGroupTransactionsQuery(_ context.Context, groupID string, ownerID int64) (string, []any, error) {
	return sq.Select(
		"id", "owner_id", "amount", "currency", "date", "category", "note",
		"group_id", "deleted", "version", "updated_at", "created_at",
	).
		From("transactions").
		Where(sq.Eq{"group_id": groupID, "owner_id": ownerID, "deleted": false}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
